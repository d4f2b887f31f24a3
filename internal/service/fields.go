package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cast"
	"github.com/volatiletech/null/v8"

	"github.com/rogerio-castellano/loja-api/internal/models"
)

// ErrInvalidField is wrapped by every FieldError.
var ErrInvalidField = errors.New("invalid field value")

// FieldError reports a partial-update value that cannot be assigned to its field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

type fieldSetter func(p *models.Product, v any) error

// updatableFields is the allow-list for partial updates. The Portuguese keys are the
// column names of the legacy produto table. "id" is deliberately absent.
var updatableFields = map[string]fieldSetter{
	"name":       setName,
	"nome":       setName,
	"price":      setPrice,
	"preco":      setPrice,
	"quantity":   setQuantity,
	"quantidade": setQuantity,
}

// applyFields works on a copy so a failing entry leaves p untouched.
func applyFields(p *models.Product, fields map[string]any) error {
	next := *p
	for key, value := range fields {
		set, ok := updatableFields[key]
		if !ok {
			continue
		}
		if err := set(&next, value); err != nil {
			return err
		}
	}
	*p = next
	return nil
}

func setName(p *models.Product, v any) error {
	switch s := v.(type) {
	case nil:
		p.Name = null.String{}
	case string:
		p.Name = null.StringFrom(s)
	default:
		return &FieldError{Field: "name", Reason: fmt.Sprintf("expected string, got %T", v)}
	}
	return nil
}

func setPrice(p *models.Product, v any) error {
	if v == nil {
		p.Price = null.Float64{}
		return nil
	}
	if !isNumber(v) {
		return &FieldError{Field: "price", Reason: fmt.Sprintf("expected number, got %T", v)}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return &FieldError{Field: "price", Reason: err.Error()}
	}
	p.Price = null.Float64From(f)
	return nil
}

func setQuantity(p *models.Product, v any) error {
	if v == nil {
		p.Quantity = null.Int{}
		return nil
	}
	if !isNumber(v) {
		return &FieldError{Field: "quantity", Reason: fmt.Sprintf("expected integer, got %T", v)}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return &FieldError{Field: "quantity", Reason: err.Error()}
	}
	if f != math.Trunc(f) {
		return &FieldError{Field: "quantity", Reason: fmt.Sprintf("%v is not an integer", v)}
	}
	if !quantityInRange(f) {
		return &FieldError{Field: "quantity", Reason: fmt.Sprintf("%v is out of range", v)}
	}
	p.Quantity = null.IntFrom(int(f))
	return nil
}

// quantityInRange reports whether q fits the INTEGER quantity column.
func quantityInRange(q float64) bool {
	return q >= math.MinInt32 && q <= math.MaxInt32
}

// validateProduct checks a whole record before it is saved.
func validateProduct(p models.Product) error {
	if p.Quantity.Valid && !quantityInRange(float64(p.Quantity.Int)) {
		return &FieldError{Field: "quantity", Reason: fmt.Sprintf("%d is out of range", p.Quantity.Int)}
	}
	return nil
}

func isNumber(v any) bool {
	switch v.(type) {
	case json.Number, float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}
