package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/loja-api/internal/service"
)

// readJSON tries to read the body of a request and converts it into JSON.
// Numbers decoded into interface values are kept as json.Number.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to write response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respond(w, r, status, ErrorResponse{Error: message})
}

// respondServiceError maps service error kinds onto status codes. Anything that is not a
// domain error is a backing store failure: it is logged and hidden behind a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var fieldErr *service.FieldError
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "product not found")
	case errors.As(err, &fieldErr):
		respondError(w, r, http.StatusBadRequest, fieldErr.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("could not " + action)
		respondError(w, r, http.StatusInternalServerError, "could not "+action)
	}
}

func productID(r *http.Request) (int64, error) {
	idStr := chi.URLParam(r, "id")
	if idStr == "" {
		return 0, errors.New("product ID is required")
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product ID")
	}
	return id, nil
}
