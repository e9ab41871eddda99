package folio

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/auth"
)

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

func (a *App) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid login payload")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}
	ip := c.RealIP()
	if !a.loginLimiter.Allow(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}

	if err := a.checkCredentials(username, req.Password); err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			return err
		}
		a.Log.WithField("username", username).WithField("ip", ip).Warn("failed login")
		return echo.NewHTTPError(http.StatusUnauthorized, auth.ErrInvalidCredentials.Error())
	}
	a.loginLimiter.Reset(ip)

	token, exp, err := a.Tokens.Issue(username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: formatTime(exp)})
}

func (a *App) checkCredentials(username, password string) error {
	admin, err := a.Store.GetAdmin(username)
	if errors.Is(err, ErrNotFound) {
		return auth.ErrInvalidCredentials
	}
	if err != nil {
		return err
	}
	return auth.CheckPassword(admin.PasswordHash, password)
}
