package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xluoyu/corgi-docs/internal/validate"
)

// Problem is the JSON body of an error response.
type Problem struct {
	Status  int              `json:"status"`
	Message string           `json:"message"`
	Errors  []validate.Error `json:"errors,omitempty"`
}

// JSON writes v as indented JSON with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// Error writes a JSON problem with the given status and message.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, Problem{Status: status, Message: msg})
}

// ErrorFrom writes err as a JSON problem. Validation errors keep their
// individual field errors.
func ErrorFrom(w http.ResponseWriter, status int, err error) {
	p := Problem{Status: status, Message: err.Error()}
	var ve validate.ValidationError
	if errors.As(err, &ve) {
		p.Errors = ve.Errors()
	}
	JSON(w, status, p)
}
