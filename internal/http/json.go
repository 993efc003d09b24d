package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/hallyustars/storefront-go/internal/service"
)

// WriteJSON writes a JSON response with the given status code and data.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		// Response writer errors (e.g., client disconnect) can't be recovered from here.
		return
	}
}

// ErrorParams groups parameters for WriteError.
type ErrorParams struct {
	Code    int
	ErrCode string
	Err     error
}

// WriteError writes a JSON error response using ErrorParams.
func WriteError(w http.ResponseWriter, p ErrorParams) {
	WriteJSON(w, p.Code, map[string]string{"error": p.ErrCode, "message": p.Err.Error()})
}

// WriteActionError renders a form action failure as a 400 with either a
// form-level message or per-field messages, matching the shape the
// storefront's account forms consume.
func WriteActionError(w http.ResponseWriter, actionErr *service.ActionError) {
	body := map[string]any{}
	if actionErr.FormError != "" {
		body["formError"] = actionErr.FormError
	}
	if len(actionErr.FieldErrors) > 0 {
		body["fieldErrors"] = actionErr.FieldErrors
	}
	WriteJSON(w, http.StatusBadRequest, body)
}
