package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"stallfinder/internal/config"
	"stallfinder/internal/errors"
	"stallfinder/internal/handler"
	"stallfinder/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	stallHandler *handler.StallHandler,
	menuHandler *handler.MenuHandler,
	reviewHandler *handler.ReviewHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes: the JWT middleware resolves the bearer token all the
	// way to a user record, so handlers always see an existing actor.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey: "actor",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return authService.ResolveActor(c.Request().Context(), tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	}))

	secured.GET("/me", authHandler.Me)

	// Stall routes
	secured.POST("/stalls", stallHandler.Create)
	secured.GET("/stalls", stallHandler.List)
	secured.GET("/stalls/:stall_id", stallHandler.Get)
	secured.PUT("/stalls/:stall_id", stallHandler.Update)
	secured.DELETE("/stalls/:stall_id", stallHandler.Delete)

	// Menu routes
	secured.POST("/stalls/:stall_id/menu", menuHandler.Create)
	secured.GET("/stalls/:stall_id/menu", menuHandler.List)
	secured.PUT("/stalls/:stall_id/menu/:item_id", menuHandler.Update)
	secured.DELETE("/stalls/:stall_id/menu/:item_id", menuHandler.Delete)
	secured.DELETE("/stalls/:stall_id/menu/category/:category", menuHandler.DeleteByCategory)

	// Review routes
	secured.POST("/stalls/:stall_id/reviews", reviewHandler.Create)
	secured.GET("/stalls/:stall_id/reviews", reviewHandler.List)
	secured.PUT("/stalls/:stall_id/reviews/:review_id", reviewHandler.Update)
	secured.DELETE("/stalls/:stall_id/reviews/:review_id", reviewHandler.Delete)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
