package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bgmsons/internal/catalog"

	"github.com/go-chi/chi/v5"
)

// productPayload is the client-owned slice of a product. The id is
// accepted for symmetry with what clients send back on update, but the
// URL always wins.
type productPayload struct {
	ID            string   `json:"id,omitempty"`
	Name          string   `json:"name" validate:"required,max=200"`
	Category      string   `json:"category" validate:"required,max=100"`
	Subcategory   string   `json:"subcategory" validate:"required,max=100"`
	Images        []string `json:"images" validate:"required,min=1,dive,required"`
	Created       string   `json:"created" validate:"required,datetime=2006-01-02"`
	Description   string   `json:"description" validate:"required"`
	Specification string   `json:"specification" validate:"required"`
	Features      string   `json:"features" validate:"required"`
}

func (p *productPayload) toProduct() *catalog.Product {
	return &catalog.Product{
		Name:          p.Name,
		Category:      p.Category,
		Subcategory:   p.Subcategory,
		Images:        p.Images,
		Created:       p.Created,
		Description:   p.Description,
		Specification: p.Specification,
		Features:      p.Features,
	}
}

// Product bodies carry base64 data URIs, so they get a higher byte
// ceiling than the rest of the API.
func readProductJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 8 * 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.GetAll(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}

	if err := writeJSON(w, http.StatusOK, products); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) getProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	product, err := app.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := readProductJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := payload.toProduct()
	if err := app.products.Create(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrInvalidDate) {
			app.badRequestResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("product created", "id", product.ID, "name", product.Name, "admin", adminFromContext(r))

	w.Header().Set("Location", fmt.Sprintf("/api/products/%s", product.ID))
	if err := writeJSON(w, http.StatusCreated, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	var payload productPayload
	if err := readProductJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	product := payload.toProduct()
	product.ID = id

	if err := app.products.Update(r.Context(), product); err != nil {
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			app.notFoundResponse(w, r, err)
		case errors.Is(err, catalog.ErrInvalidDate):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	app.logger.Infow("product updated", "id", id, "admin", adminFromContext(r))

	if err := writeJSON(w, http.StatusOK, product); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "productID")

	if err := app.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			app.notFoundResponse(w, r, err)
			return
		}
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("product deleted", "id", id, "admin", adminFromContext(r))

	w.WriteHeader(http.StatusNoContent)
}
