package utils

import (
	"io"
	"net/http"
)

// WriteText writes body as a plain text response with the given status code.
//
// It sets the "Content-Type" header to "text/plain; charset=utf-8" and
// "X-Content-Type-Options" to "nosniff" before writing the status code.
//
// Returns the number of bytes written and any error from the underlying
// writer.
//
// Example usage:
//
//	WriteText(w, "index", http.StatusOK)
//	WriteText(w, "request took too long", http.StatusRequestTimeout)
func WriteText(w http.ResponseWriter, body string, statusCode int) (int, error) {
	h := w.Header()
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(statusCode)

	// bodiless statuses such as 204 and 304 reject any Write
	if body == "" {
		return 0, nil
	}
	return io.WriteString(w, body)
}
