package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/avoronov/library-catalog/internal/model"
	md "github.com/avoronov/library-catalog/pkg/middleware"
)

const userContextKey = "user"

// authenticate resolves the bearer token to a user and stores it on the
// request context. Requests without a valid access token get 401.
func (h *Handler) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authorization := c.Request().Header.Get(md.AuthorizationHeader)
		if authorization == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "No Authorization Header")
		}
		if !strings.HasPrefix(authorization, md.Bearer) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization Header")
		}
		tokenStr := strings.TrimPrefix(authorization, md.Bearer)

		user, err := h.authSvc.Resolve(c.Request().Context(), tokenStr)
		if err != nil {
			return httpError(err)
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func (h *Handler) requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !currentUser(c).IsStaff {
			return echo.NewHTTPError(http.StatusForbidden, "staff permission required")
		}
		return next(c)
	}
}

func currentUser(c echo.Context) model.User {
	user, _ := c.Get(userContextKey).(model.User)
	return user
}
