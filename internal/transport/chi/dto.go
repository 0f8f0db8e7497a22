package chi

import (
	"encoding/json"
	"net/http"

	"github.com/supplyline-io/supplysearch/internal/domain/search"
)

// Error codes returned in the error envelope.
const (
	codeBadRequest        = "BAD_REQUEST"
	codeInvalidQuery      = "INVALID_QUERY"
	codeUnknownEntityType = "UNKNOWN_ENTITY_TYPE"
	codeNotFound          = "NOT_FOUND"
	codeInternalError     = "INTERNAL_ERROR"
)

// pagination echoes the effective page window back to the client.
type pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// searchResponse is the success envelope for search results.
type searchResponse struct {
	Success    bool            `json:"success"`
	Data       []search.Result `json:"data"`
	Total      int             `json:"total"`
	HasMore    bool            `json:"hasMore"`
	Pagination pagination      `json:"pagination"`
}

// dataResponse is the generic success envelope.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Error:   errorBody{Code: code, Message: message},
	})
}
