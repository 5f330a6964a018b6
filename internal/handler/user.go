package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/avoronov/library-catalog/internal/model"
)

func (h *Handler) Token(c echo.Context) error {
	var req model.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pair, err := h.authSvc.Issue(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, pair)
}

func (h *Handler) TokenRefresh(c echo.Context) error {
	var req model.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	access, err := h.authSvc.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.AccessToken{Access: access})
}

func (h *Handler) TokenVerify(c echo.Context) error {
	var req model.VerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authSvc.Verify(req.Token); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, struct{}{})
}

func (h *Handler) TokenLogout(c echo.Context) error {
	var req model.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.authSvc.Revoke(req.Refresh); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, struct{}{})
}

func (h *Handler) Register(c echo.Context) error {
	var req model.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userSvc.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, model.NewUserResponse(user))
}

func (h *Handler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, model.NewUserProfile(currentUser(c)))
}

func (h *Handler) UpdateMe(c echo.Context) error {
	return h.updateMe(c, false)
}

func (h *Handler) PatchMe(c echo.Context) error {
	return h.updateMe(c, true)
}

func (h *Handler) updateMe(c echo.Context, partial bool) error {
	var req model.UserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userSvc.Update(c.Request().Context(), currentUser(c).ID, req, partial)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewUserResponse(user))
}

func (h *Handler) DeleteMe(c echo.Context) error {
	if err := h.userSvc.Delete(c.Request().Context(), currentUser(c).ID); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) UpdatePassword(c echo.Context) error {
	var req model.PasswordUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userSvc.ChangePassword(c.Request().Context(), currentUser(c).ID, req.Password); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusOK)
}
