package response

import (
	"errors"
	"net/http"
)

// statusCode is implemented by errors that carry their own HTTP status.
type statusCode interface {
	StatusCode() int
}

// ToHTTPError converts any error to an HTTPError.
func ToHTTPError(err error) HTTPError {
	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	status := http.StatusInternalServerError
	var sc statusCode
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	base, ok := httpErrorsByStatus[status]
	if !ok {
		base = ErrInternalServerError
	}

	return base.WithError(err)
}

// Error writes err as a JSON HTTPError body.
func Error(w http.ResponseWriter, err error) {
	httpErr := ToHTTPError(err)
	_ = JSON(w, httpErr.Status, httpErr)
}
