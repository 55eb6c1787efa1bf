package response

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// JSON writes v as application/json with the given status.
// Status 0 means 200, or 204 when v is nil.
func JSON(w http.ResponseWriter, status int, v any) error {
	if status == 0 {
		if v == nil {
			status = http.StatusNoContent
		} else {
			status = http.StatusOK
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	switch status {
	case http.StatusNoContent, http.StatusNotModified:
		return nil
	}

	return json.NewEncoder(w).Encode(v)
}

// DecodeJSON reads a JSON request body into dst. Unknown fields and trailing
// data are rejected. Failures are returned as ErrBadRequest, or
// ErrRequestEntityTooLarge when the body exceeded a MaxBytesReader limit.
func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return ErrBadRequest.WithMessage("request body is empty")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return ErrRequestEntityTooLarge.WithError(err)
		case errors.Is(err, io.EOF):
			return ErrBadRequest.WithMessage("request body is empty")
		default:
			return ErrBadRequest.WithMessage("malformed JSON body").WithError(err)
		}
	}

	if dec.More() {
		return ErrBadRequest.WithMessage("request body must contain a single JSON value")
	}

	return nil
}

// Redirect responds with 302 Found.
func Redirect(w http.ResponseWriter, r *http.Request, url string) {
	http.Redirect(w, r, url, http.StatusFound)
}

// NoContent responds with 204 No Content.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
