package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// actorEmail extracts the email claim injected by the Auth middleware and
// fast-fails before any service call: an empty value means the middleware
// did not run or the token carried no identity, either way the request is
// not authenticated.
func actorEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return email, nil
}
