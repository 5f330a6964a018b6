package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/avoronov/library-catalog/internal/errs"
	md "github.com/avoronov/library-catalog/pkg/middleware"
	"github.com/avoronov/library-catalog/pkg/validate"
)

type Handler struct {
	authSvc AuthService
	userSvc UserService
	bookSvc BookService
	log     *zap.Logger
}

func New(authSvc AuthService, userSvc UserService, bookSvc BookService, log *zap.Logger) *Handler {
	return &Handler{
		authSvc: authSvc,
		userSvc: userSvc,
		bookSvc: bookSvc,
		log:     log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	users := api.Group("/users")
	users.POST("", h.Register)
	users.POST("/token", h.Token)
	users.POST("/token/refresh", h.TokenRefresh)
	users.POST("/token/verify", h.TokenVerify)
	users.POST("/token/logout", h.TokenLogout)

	me := users.Group("/me", h.authenticate)
	me.GET("", h.Me)
	me.PUT("", h.UpdateMe)
	me.PATCH("", h.PatchMe)
	me.DELETE("", h.DeleteMe)
	me.PUT("/password", h.UpdatePassword)

	books := api.Group("/books")
	books.GET("", h.ListBooks)
	books.GET("/:id", h.GetBook)

	staff := api.Group("/books", h.authenticate, h.requireStaff)
	staff.POST("", h.CreateBook)
	staff.PUT("/:id", h.UpdateBook)
	staff.PATCH("/:id", h.PatchBook)
	staff.DELETE("/:id", h.DeleteBook)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// httpError translates service-layer errors to HTTP statuses. Only handlers
// perform this mapping.
func httpError(err error) error {
	var ve *errs.ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
