package handlers

import (
	"context"

	"github.com/rogerio-castellano/loja-api/internal/service"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

var (
	productService *service.ProductService
	dbPinger       Pinger
)

func SetProductService(s *service.ProductService) {
	productService = s
}

// SetPinger sets the dependency checked by the readiness probe; nil means always ready.
func SetPinger(p Pinger) {
	dbPinger = p
}
