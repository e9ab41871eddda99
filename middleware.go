package folio

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	"github.com/eringen/folio/auth"
)

const claimsKey = "folio.claims"

// Ten files of 10 MiB plus form overhead.
const maxRequestBody = "110M"

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			entry := a.Log.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
				"ip":      v.RemoteIP,
			})
			if v.Error != nil && v.Status >= http.StatusInternalServerError {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.BodyLimit(maxRequestBody))

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: a.Config.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, a.Config.UploadURL+"/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		HSTSMaxAge:         31536000,
	}))

	e.Use(a.cacheControlMiddleware)
}

// cacheControlMiddleware keeps browsers (mobile Safari in particular) from
// serving stale gallery and blog lists.
func (a *App) cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, a.Config.UploadURL+"/"):
			h.Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/feed.xml" || path == "/sitemap.xml":
			h.Set("Cache-Control", "public, max-age=3600")
		case strings.HasPrefix(path, "/api/"):
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		return next(c)
	}
}

// requireAuth rejects requests without a valid bearer token: 401 when no
// credentials are sent, 403 when they do not verify.
func (a *App) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, present := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !present {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
		}
		if token == "" {
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
		}
		claims, err := a.Tokens.Verify(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusForbidden, "invalid or expired token").SetInternal(err)
		}
		c.Set(claimsKey, claims)
		return next(c)
	}
}

// bearerToken extracts the token from an Authorization header. present is
// false when no credentials were sent at all; a non-Bearer scheme yields
// present with an empty token.
func bearerToken(header string) (token string, present bool) {
	scheme, rest, _ := strings.Cut(strings.TrimSpace(header), " ")
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return rest, true
}

// CurrentAdmin returns the username of the authenticated admin, or "" on
// public routes.
func CurrentAdmin(c echo.Context) string {
	claims, ok := c.Get(claimsKey).(*auth.Claims)
	if !ok {
		return ""
	}
	return claims.Username
}
