package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data any) error {
	return writeSuccess(c, http.StatusOK, message, data)
}

func WriteCreatedResponse(c echo.Context, message string, data any) error {
	return writeSuccess(c, http.StatusCreated, message, data)
}

func writeSuccess(c echo.Context, code int, message string, data any) error {
	return c.JSON(code, SuccessResponse{Status: "success", Message: message, Data: data})
}

// WriteErrorResponse hides the cause of server-side failures from clients.
func WriteErrorResponse(c echo.Context, err error, errors any) error {
	code := StatusCode(err)
	msg := err.Error()
	if code >= http.StatusInternalServerError {
		log.Ctx(c.Request().Context()).Error().Err(err).Str("component", "http").Msg("request failed")
		if code == http.StatusInternalServerError {
			msg = ErrInternalServer.Error()
		}
	}
	return c.JSON(code, ErrorResponse{Status: "error", Message: msg, Errors: errors})
}
