package handlers

import (
	"github.com/volatiletech/null/v8"

	"github.com/rogerio-castellano/loja-api/internal/models"
)

// ProductRequest is the body of POST and PUT. A client supplied id is never read.
type ProductRequest struct {
	Name     null.String  `json:"name" swaggertype:"string"`
	Price    null.Float64 `json:"price" swaggertype:"number"`
	Quantity null.Int     `json:"quantity" swaggertype:"integer"`
}

func (p ProductRequest) toModel() models.Product {
	return models.Product{
		Name:     p.Name,
		Price:    p.Price,
		Quantity: p.Quantity,
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
