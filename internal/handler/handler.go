package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"furniturehub/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Response is the envelope wrapping every API payload.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the window of a paginated listing.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// newPagination derives the page count from the total and limit.
func newPagination(page, limit, total int) *Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeData writes a successful envelope around data.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// writeMessage writes a successful envelope with a message and optional data.
func writeMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, Response{Success: true, Message: message, Data: data})
}

// writePage writes a successful envelope around a paginated listing.
func writePage(w http.ResponseWriter, data interface{}, page, limit, total int) {
	writeJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       data,
		Pagination: newPagination(page, limit, total),
	})
}

// writeErrorMessage writes a failure envelope with the given status and message.
func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Message: message})
}

// writeError maps an error to its HTTP status and writes the failure
// envelope. Domain errors carry stable codes; anything else is reported as
// an internal error without leaking detail.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeErrorMessage(w, statusForCode(domainErr.Code), domainErr.Message)
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeErrorMessage(w, http.StatusInternalServerError, "Internal server error")
}

// pathID parses the named path segment as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, model.ErrValidation("Invalid " + name + " format")
	}
	return id, nil
}

// pageParams reads page/limit query parameters, returning the page, the
// limit and the derived offset. Defaults are page 1 with 20 items.
func pageParams(r *http.Request) (page, limit, offset int) {
	page = 1
	limit = 20
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	return page, limit, (page - 1) * limit
}

// statusForCode maps a domain error code to an HTTP status.
func statusForCode(code string) int {
	switch code {
	case model.ErrCodeValidation,
		model.ErrCodeEmptyCart,
		model.ErrCodeInvalidTransition,
		model.ErrCodeInsufficientStock,
		model.ErrCodeAlreadyInWishlist:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodeForbidden:
		return http.StatusForbidden
	case model.ErrCodeProductNotFound,
		model.ErrCodeCategoryNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeCartItemNotFound,
		model.ErrCodeWishlistNotFound,
		model.ErrCodeNotifNotFound,
		model.ErrCodeUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
