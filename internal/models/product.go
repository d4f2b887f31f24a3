package models

import "github.com/volatiletech/null/v8"

// Product represents a product record stored in the products table.
// All fields but ID are optional and serialize as null when unset.
type Product struct {
	ID       int64        `json:"id"`
	Name     null.String  `json:"name" swaggertype:"string"`
	Price    null.Float64 `json:"price" swaggertype:"number"`
	Quantity null.Int     `json:"quantity" swaggertype:"integer"`
}
