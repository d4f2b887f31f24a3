package handlers

import (
	"net/http"
)

// GetProductsHandler godoc
// @Summary List all products
// @Tags produtos
// @Produce json
// @Success 200 {array} models.Product
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := productService.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, r, err, "fetch products")
		return
	}
	respond(w, r, http.StatusOK, products)
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags produtos
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	product, err := productService.FindByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err, "fetch product")
		return
	}
	respond(w, r, http.StatusOK, product)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description The id is assigned by the database; an id in the body is ignored.
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	created, err := productService.Save(r.Context(), req.toModel())
	if err != nil {
		respondServiceError(w, r, err, "create product")
		return
	}
	respond(w, r, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Replace name, price and quantity of a product
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param product body ProductRequest true "Updated product"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos/{id} [put]
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	updated, err := productService.Update(r.Context(), id, req.toModel())
	if err != nil {
		respondServiceError(w, r, err, "update product")
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// PatchProductHandler godoc
// @Summary Partially update a product
// @Description Applies only the given fields (name, price, quantity; nome, preco, quantidade
// @Description are accepted too). Unknown keys and "id" are ignored.
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Param fields body object true "Field to value mapping"
// @Success 200 {object} models.Product
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos/{id} [patch]
func PatchProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	var fields map[string]any
	if err := readJSON(w, r, &fields); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	updated, err := productService.UpdatePartial(r.Context(), id, fields)
	if err != nil {
		respondServiceError(w, r, err, "update product")
		return
	}
	respond(w, r, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags produtos
// @Security BearerAuth
// @Param id path int true "Product ID"
// @Success 204 "Deleted successfully"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/produtos/{id} [delete]
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := productService.DeleteByID(r.Context(), id); err != nil {
		respondServiceError(w, r, err, "delete product")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
