package handler

import (
	"errors"
	"net/http"
	"strconv"

	"cantina-api/internal/model"
	"cantina-api/internal/response"
	"cantina-api/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

// ProductHandler handles product-related HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /api/products. An empty catalogue yields 204 with empty
// data rather than an error.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.List(r.Context())
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			response.Write(w, http.StatusNoContent, "No products have been created yet.", response.WithData([]model.Row{}))
			return
		}
		h.writeFailure(w, err)
		return
	}

	response.Write(w, http.StatusOK, "OK", response.WithData(rows))
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, err := decodePayload(r)
	if err != nil {
		response.BadJSON(w)
		return
	}

	if fieldErrs := model.ValidatePayload(payload); len(fieldErrs) > 0 {
		response.Write(w, http.StatusBadRequest, "The submitted data is invalid.", response.WithError(fieldErrs))
		return
	}

	fields := model.FieldsFromPayload(payload)
	row, err := h.service.Create(r.Context(), *fields.Name, *fields.Category, *fields.Price)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			response.Write(w, http.StatusConflict, "This product already exists.", response.WithError(err))
			return
		}
		h.writeFailure(w, err)
		return
	}

	response.Write(w, http.StatusCreated, "Product created.", response.WithData(row))
}

// Get handles GET /api/products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	row, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			response.Write(w, http.StatusNotFound, "Product not found.")
			return
		}
		h.writeFailure(w, err)
		return
	}

	response.Write(w, http.StatusOK, "Product found.", response.WithData(row))
}

// Update handles PUT /api/products/{id} with a partial payload: any subset
// of name, category and price.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	payload, err := decodePayload(r)
	if err != nil {
		response.BadJSON(w)
		return
	}

	if fieldErrs := model.ValidatePartialPayload(payload); len(fieldErrs) > 0 {
		response.Write(w, http.StatusBadRequest, "The submitted data is invalid.", response.WithError(fieldErrs))
		return
	}

	err = h.service.Update(r.Context(), id, model.FieldsFromPayload(payload))
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			response.Write(w, http.StatusNotFound, "Product not found.")
			return
		}
		h.writeFailure(w, err)
		return
	}

	response.Write(w, http.StatusNoContent, "Product updated.")
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNoResult) {
			response.Write(w, http.StatusNotFound, "Product not found.")
			return
		}
		h.writeFailure(w, err)
		return
	}

	response.Write(w, http.StatusNoContent, "The product has been deleted.")
}

// writeFailure maps an execution error to the SQL-error or the generic
// internal-error preset.
func (h *ProductHandler) writeFailure(w http.ResponseWriter, err error) {
	if isDatabaseError(err) {
		h.logger.Error().Err(err).Msg("database error")
		response.SQLError(w, err)
		return
	}
	h.logger.Error().Err(err).Msg("internal error")
	response.InternalError(w, err)
}

// productID extracts the {id} path variable. The route pattern restricts
// it to digits, so a parse failure means an out-of-range value.
func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.Write(w, http.StatusNotFound, "Product not found.")
		return 0, false
	}
	return id, true
}
