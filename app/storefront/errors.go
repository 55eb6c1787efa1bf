package storefront

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
	"github.com/Chrissankov/gymshark-ecommerce/core/locale"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/loginflow"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
	"github.com/Chrissankov/gymshark-ecommerce/core/users"
)

// toHTTPError maps domain errors to API errors. Unknown errors pass through
// and render as 500.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return response.ErrNotFound.WithMessage("product not found")
	case errors.Is(err, catalog.ErrInvalidProduct):
		return validationError(err, "invalid product")
	case errors.Is(err, catalog.ErrInvalidFilter):
		return response.ErrBadRequest.WithMessage("invalid filter expression").WithError(err)

	case errors.Is(err, users.ErrInvalidCredentials):
		return response.ErrUnauthorized.WithMessage("invalid username or password")
	case errors.Is(err, users.ErrDuplicateUsername):
		return response.ErrConflict.WithMessage("username already exists")
	case errors.Is(err, users.ErrInvalidInput):
		return validationError(err, "username and password are required")
	case errors.Is(err, loginflow.ErrPasswordMismatch):
		return response.ErrUnprocessableEntity.WithMessage("passwords do not match")
	case errors.Is(err, loginflow.ErrInvalidTransition):
		return response.ErrConflict.WithMessage("action not available in the current dialog state")

	case errors.Is(err, locale.ErrUnsupported):
		return response.ErrUnprocessableEntity.WithMessage("unsupported language").WithError(err)

	case errors.Is(err, imageref.ErrTooLarge):
		return response.ErrRequestEntityTooLarge.WithMessage("image too large")
	case errors.Is(err, imageref.ErrEmptyUpload), errors.Is(err, imageref.ErrNotImage):
		return response.ErrUnprocessableEntity.WithMessage("upload is not an image").WithError(err)
	case errors.Is(err, imageref.ErrSuperseded):
		return response.ErrConflict.WithMessage("image replaced by a newer upload")
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return response.ErrRequestEntityTooLarge.WithError(err)
	}
	return err
}

func validationError(err error, message string) error {
	httpErr := response.ErrUnprocessableEntity.WithMessage(message)

	var fields validation.Errors
	if !errors.As(err, &fields) {
		return httpErr
	}
	details := make(map[string]any, len(fields))
	for name, ferr := range fields {
		details[name] = ferr.Error()
	}
	return httpErr.WithDetails(map[string]any{"fields": details})
}

func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	err = toHTTPError(err)
	if response.ToHTTPError(err).Status >= http.StatusInternalServerError {
		a.logger.ErrorContext(r.Context(), "request failed",
			logger.Component("storefront"), logger.Route(r.URL.Path), logger.Error(err))
	}
	response.Error(w, err)
}
