package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"resort_booking/internal/domain"
)

const (
	codeInvalidRequestBody  = "invalid_request_body"
	codeInvalidInput        = "invalid_input"
	codeUnauthenticated     = "unauthenticated"
	codeInvalidCredentials  = "invalid_credentials"
	codeDuplicateIdentity   = "duplicate_identity"
	codePriceMismatch       = "price_mismatch"
	codeReferentialIntegrit = "referential_integrity"
	codeNotFound            = "not_found"
	codeForbidden           = "forbidden"
	codeRateLimited         = "rate_limited"
	codeInternalError       = "internal_error"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

// writeDomainError maps service errors onto status codes. Unknown errors are
// logged and reported as 500 without detail.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	if ie := domain.IsInputError(err); ie != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid input", Code: codeInvalidInput, Fields: ie.Fields()})
		return
	}
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, codeUnauthenticated, "Unauthorized")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, codeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, domain.ErrDuplicateIdentity):
		// one message for every duplicate, whichever key collided
		writeError(w, http.StatusConflict, codeDuplicateIdentity, "Email already exists")
	case errors.Is(err, domain.ErrPriceMismatch):
		writeError(w, http.StatusConflict, codePriceMismatch, "total_cost does not match the current price")
	case errors.Is(err, domain.ErrReferentialIntegrity):
		writeError(w, http.StatusUnprocessableEntity, codeReferentialIntegrit, "unknown product or customer")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

// decodeJSON reads a single JSON object into dst; on failure it writes a 400 and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "Invalid JSON payload")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "Invalid JSON payload")
		return false
	}
	return true
}

func errorsIsAny(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
