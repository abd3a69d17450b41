package router

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"cms/internal/auth"
	"cms/internal/config"
	"cms/internal/errors"
	"cms/internal/handler"
	"cms/internal/logging"
	"cms/internal/metrics"
	"cms/internal/model"
	"cms/internal/repository"
)

// route statically declares a path together with its authentication
// requirement and optional authorization predicate.
type route struct {
	method  string
	path    string
	handler echo.HandlerFunc
	secured bool
	policy  echo.MiddlewareFunc
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	tokenStore auth.TokenStoreInterface,
	userHandler *handler.UserHandler,
	authHandler *handler.AuthHandler,
	contentHandler *handler.ContentHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(requestLogger())

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	bearer := []echo.MiddlewareFunc{
		jwtAuth(cfg.JWTSecret),
		loadUser(userRepo, tokenStore),
	}

	routes := []route{
		{method: http.MethodPost, path: "/registration/", handler: userHandler.Register},
		{method: http.MethodPost, path: "/registration/verify-email/", handler: userHandler.VerifyEmail},
		{method: http.MethodPost, path: "/registration/verify-mobile-number/", handler: userHandler.VerifyMobileNumber},
		{method: http.MethodPost, path: "/authenticate/", handler: authHandler.Login},
		{method: http.MethodPost, path: "/authenticate/refresh/", handler: authHandler.Refresh},
		{method: http.MethodGet, path: "/authenticate/", handler: authHandler.Me, secured: true},
		{method: http.MethodGet, path: "/authenticate/logout/", handler: authHandler.Logout, secured: true},
		{method: http.MethodPost, path: "/authenticate/change-password/", handler: authHandler.ChangePassword, secured: true},
		{method: http.MethodGet, path: "/content/:id/", handler: contentHandler.Get, secured: true},
		{method: http.MethodGet, path: "/content/all/", handler: contentHandler.GetAll, secured: true},
		{method: http.MethodPost, path: "/content/add/", handler: contentHandler.Add, secured: true, policy: requireCollectionManage},
		{method: http.MethodPut, path: "/content/update/:id/", handler: contentHandler.Update, secured: true},
		{method: http.MethodGet, path: "/content/delete/:id/", handler: contentHandler.Delete, secured: true},
	}

	for _, r := range routes {
		var mw []echo.MiddlewareFunc
		if r.secured {
			mw = append(mw, bearer...)
		}
		if r.policy != nil {
			mw = append(mw, r.policy)
		}
		e.Add(r.method, r.path, r.handler, mw...)
	}
}

// jwtAuth validates the bearer token signature and expiry. Per the public
// contract, a missing or invalid token surfaces as 400, not 401.
func jwtAuth(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		ErrorHandler: func(c echo.Context, err error) error {
			return tokenNotProvided(c)
		},
	})
}

// loadUser resolves the token claims into a full user record with role
// expanded, rejecting blacklisted access tokens, and stores it on the context.
func loadUser(userRepo repository.UserRepository, tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return tokenNotProvided(c)
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return tokenNotProvided(c)
			}
			rawID, ok := claims["user_id"].(float64)
			if !ok || rawID <= 0 {
				return tokenNotProvided(c)
			}
			jti, _ := claims["jti"].(string)

			ctx := c.Request().Context()
			if jti != "" && tokenStore.IsAccessTokenBlacklisted(ctx, jti) {
				return tokenNotProvided(c)
			}

			user, err := userRepo.FindByID(ctx, uint(rawID))
			if err != nil {
				return tokenNotProvided(c)
			}

			c.Set(handler.ContextUserKey, user)
			c.Set(handler.ContextJTIKey, jti)
			return next(c)
		}
	}
}

// requireCollectionManage gates content creation on the collection-level
// policy: an active super admin or an active author.
func requireCollectionManage(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get(handler.ContextUserKey).(*model.User)
		if !ok {
			return tokenNotProvided(c)
		}
		if !auth.CanManageCollection(user) {
			return c.JSON(http.StatusForbidden, echo.Map{
				"status": http.StatusForbidden,
				"error":  errors.ErrPermissionDenied.Error(),
			})
		}
		return next(c)
	}
}

func tokenNotProvided(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"status": http.StatusBadRequest,
		"error":  errors.ErrTokenNotProvided.Error(),
	})
}

// requestLogger emits one structured line per request through the shared logger.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logging.L().WithFields(logrus.Fields{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": v.Latency.Milliseconds(),
				"request_id": v.RequestID,
			}).Info("request")
			return nil
		},
	})
}

// errorHandler is the catch-all boundary: echo errors keep their status inside
// the response envelope; anything else logs a stack trace and goes out as a
// 500 carrying the raw error string.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if he, ok := err.(*echo.HTTPError); ok {
		_ = c.JSON(he.Code, echo.Map{
			"status": he.Code,
			"error":  fmt.Sprintf("%v", he.Message),
		})
		return
	}

	logging.L().WithFields(logrus.Fields{
		"stack": string(debug.Stack()),
	}).WithError(err).Error("unhandled error")
	_ = c.JSON(http.StatusInternalServerError, echo.Map{
		"status": http.StatusInternalServerError,
		"error":  err.Error(),
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
