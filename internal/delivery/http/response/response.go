// Package response holds the JSON helpers shared by all HTTP handlers.
// Error payloads are always {"error": message} with a localized message;
// success payloads are endpoint-specific.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// JSON writes a success payload as-is.
func JSON(c echo.Context, statusCode int, payload any) error {
	return c.JSON(statusCode, payload)
}

// Message writes a {"message": ...} success payload.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, map[string]string{"message": message})
}

// Error writes the localized error payload.
func Error(c echo.Context, statusCode int, message string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, map[string]string{"error": message})
}

// BindingError rejects a request body that failed to bind.
func BindingError(c echo.Context) error {
	return Error(c, http.StatusBadRequest, "البيانات المرسلة غير صحيحة")
}
