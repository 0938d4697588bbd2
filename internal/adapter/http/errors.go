package http

import (
	"context"
	"errors"
	"net/http"

	"stablevault-backend/internal/domain/borrow"
	"stablevault-backend/internal/domain/vault"
	"stablevault-backend/internal/usecase/history"
	"stablevault-backend/internal/usecase/intent"
	ucvault "stablevault-backend/internal/usecase/vault"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Map domain errors → HTTP codes. Anything unrecognised came from the
// ledger and is reported as an upstream failure.
func writeErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, history.ErrInvalidRange),
		errors.Is(err, ucvault.ErrInvalidAmount),
		errors.Is(err, intent.ErrInvalidAmount),
		errors.Is(err, intent.ErrZeroAddress),
		errors.Is(err, intent.ErrMaturityElapsed):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, borrow.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "record not found"})
	case errors.Is(err, vault.ErrUnsupported):
		return c.JSON(http.StatusNotImplemented, ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "ledger timed out"})
	}
	zap.L().Error("ledger read failed",
		zap.String("path", c.Path()),
		zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
		zap.Error(err))
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "ledger unavailable"})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}
