package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cosmicchronic/marketplace/internal/api/metrics"
	"github.com/cosmicchronic/marketplace/internal/api/middleware"
	"github.com/cosmicchronic/marketplace/internal/core/domain"
)

// ctxSession returns the session injected by the Auth middleware. A missing
// session means the route was registered without Auth; reject with 401.
func ctxSession(c echo.Context) (*domain.Session, error) {
	sess, _ := c.Get(middleware.KeySession).(*domain.Session)
	if sess == nil || sess.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sess, nil
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}

// rejected records a refused mutation and passes err through.
func rejected(operation string, err error) error {
	metrics.MutationsRejectedTotal.WithLabelValues(operation, rejectionReason(err)).Inc()
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "no_session"
	case errors.Is(err, domain.ErrInvalidRole), errors.Is(err, domain.ErrInvalidStrain), errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "error"
	}
}
