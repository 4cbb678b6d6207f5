package flatten

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatten_DeeplyNested(t *testing.T) {
	nested := []any{
		1,
		[]any{2, []any{3, 4, []any{5, 6}}, 7},
		8,
		[]any{[]any{9, []any{10, 11}}, 12, []any{13, []any{14, []any{15}}}},
		16,
	}

	expected := []any{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	assert.Equal(t, expected, Flatten(nested))
}

func TestFlatten_Map(t *testing.T) {
	got := Flatten(map[string]any{"name": "Coxinha", "price": 5.2})

	// Map keys are visited in sorted order.
	assert.Equal(t, []any{"name", "Coxinha", "price", 5.2}, got)
}

func TestFlatten_MapInsideSequence(t *testing.T) {
	got := Flatten([]any{map[string]any{"name": "X"}, 1})

	assert.Equal(t, []any{"name", "X", 1}, got)
}

func TestFlatten_EmptyInput(t *testing.T) {
	assert.Empty(t, Flatten([]any{}))
}

func TestFlatten_BareValue(t *testing.T) {
	assert.Equal(t, []any{5}, Flatten(5))
	assert.Equal(t, []any{"x"}, Flatten("x"))
}

func TestFlatten_SingleWrapperUnwraps(t *testing.T) {
	got := Flatten([]any{[]any{1, 2, 3}})

	assert.Equal(t, []any{1, 2, 3}, got)
}

func TestFlatten_ConditionPairs(t *testing.T) {
	conditions := []any{
		[]any{"name", "Coxinha"},
		[]any{"price", 3.2},
	}

	flat := Flatten(conditions)
	assert.Equal(t, []any{"name", "Coxinha", "price", 3.2}, flat)
	assert.Equal(t, []any{"name", "price"}, Even(flat))
	assert.Equal(t, []any{"Coxinha", 3.2}, Odd(flat))
}

func TestFlatten_TypedSlices(t *testing.T) {
	got := Flatten([]any{[]int{1, 2}, []string{"a"}})

	assert.Equal(t, []any{1, 2, "a"}, got)
}

func TestFlatten_ByteSliceIsScalar(t *testing.T) {
	got := Flatten([]any{[]byte("ab"), 1})

	assert.Equal(t, []any{[]byte("ab"), 1}, got)
}

func TestIndexMap(t *testing.T) {
	got := IndexMap([]any{"a", []any{"b", "c"}})

	assert.Equal(t, map[int]any{0: "a", 1: "b", 2: "c"}, got)
}

func TestEvenOdd_Empty(t *testing.T) {
	assert.Empty(t, Even(nil))
	assert.Empty(t, Odd(nil))
}
