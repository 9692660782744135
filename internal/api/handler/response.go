package handler

import "github.com/labstack/echo/v4"

// Response is the canonical envelope for every API response, success and
// error alike: {status, message, data}.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{Status: status, Message: message, Data: data})
}
