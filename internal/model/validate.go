package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Validation failure kinds reported in FieldError.Kind.
const (
	KindMissing       = "missing"
	KindStringType    = "string_type"
	KindStringEmpty   = "string_too_short"
	KindNumberType    = "number_type"
	KindNumberParsing = "number_parsing"
	KindEnum          = "enum"
)

// FieldError describes a single per-field validation failure: which field,
// what went wrong and the offending value.
type FieldError struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message"`
}

// ValidatePayload checks that a decoded JSON object has the shape
// {name: string, price: number, category: <known category>}. Extra fields
// are ignored. It returns one error per failing field; an empty result
// means the payload is valid.
func ValidatePayload(payload map[string]any) []FieldError {
	var errs []FieldError

	if v, ok := payload[ColumnName]; !ok {
		errs = append(errs, FieldError{Field: ColumnName, Kind: KindMissing, Message: "field is required"})
	} else if fe := checkName(v); fe != nil {
		errs = append(errs, *fe)
	}

	if v, ok := payload[ColumnPrice]; !ok {
		errs = append(errs, FieldError{Field: ColumnPrice, Kind: KindMissing, Message: "field is required"})
	} else if _, fe := checkPrice(v); fe != nil {
		errs = append(errs, *fe)
	}

	if v, ok := payload[ColumnCategory]; !ok {
		errs = append(errs, FieldError{Field: ColumnCategory, Kind: KindMissing, Message: "field is required"})
	} else if fe := checkCategory(v); fe != nil {
		errs = append(errs, *fe)
	}

	return errs
}

// ValidatePartialPayload checks an update payload: every supplied known
// field must be valid, and at least one must be present.
func ValidatePartialPayload(payload map[string]any) []FieldError {
	var errs []FieldError
	known := 0

	if v, ok := payload[ColumnName]; ok {
		known++
		if fe := checkName(v); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if v, ok := payload[ColumnPrice]; ok {
		known++
		if _, fe := checkPrice(v); fe != nil {
			errs = append(errs, *fe)
		}
	}
	if v, ok := payload[ColumnCategory]; ok {
		known++
		if fe := checkCategory(v); fe != nil {
			errs = append(errs, *fe)
		}
	}

	if known == 0 {
		errs = append(errs, FieldError{
			Kind:    KindMissing,
			Message: "at least one of name, price or category is required",
		})
	}
	return errs
}

// FieldsFromPayload extracts the typed field values of a payload that has
// already passed validation. Fields absent from the payload stay nil.
func FieldsFromPayload(payload map[string]any) Fields {
	var f Fields
	if v, ok := payload[ColumnName]; ok {
		if s, ok := v.(string); ok {
			f.Name = &s
		}
	}
	if v, ok := payload[ColumnPrice]; ok {
		if d, fe := checkPrice(v); fe == nil {
			f.Price = &d
		}
	}
	if v, ok := payload[ColumnCategory]; ok {
		if s, ok := v.(string); ok {
			c := Category(s)
			f.Category = &c
		}
	}
	return f
}

func checkName(v any) *FieldError {
	s, ok := v.(string)
	if !ok {
		return &FieldError{Field: ColumnName, Kind: KindStringType, Value: v, Message: "value must be a string"}
	}
	if s == "" {
		return &FieldError{Field: ColumnName, Kind: KindStringEmpty, Value: v, Message: "value must not be empty"}
	}
	return nil
}

// checkPrice accepts integer, floating-point or exact-decimal input and
// normalizes it to a decimal. JSON bodies are decoded with json.Number, so
// the usual path converts through the literal text of the number, never
// through a binary float.
func checkPrice(v any) (decimal.Decimal, *FieldError) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		if err != nil {
			return decimal.Decimal{}, &FieldError{Field: ColumnPrice, Kind: KindNumberParsing, Value: v, Message: "value is not a valid number"}
		}
		return d, nil
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	default:
		return decimal.Decimal{}, &FieldError{Field: ColumnPrice, Kind: KindNumberType, Value: v, Message: "value must be a number"}
	}
}

func checkCategory(v any) *FieldError {
	s, ok := v.(string)
	if !ok {
		return &FieldError{Field: ColumnCategory, Kind: KindStringType, Value: v, Message: "value must be a string"}
	}
	if !Category(s).Valid() {
		return &FieldError{Field: ColumnCategory, Kind: KindEnum, Value: v, Message: "value is not a known category"}
	}
	return nil
}
