package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/token"
)

func bearerToken(c echo.Context) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authorization header missing")
	}
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "authorization header is not a bearer token")
	}
	return raw, nil
}

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	c.Set("userID", sub)
	c.Set("role", role)
}

// RequireAuth admits any request carrying a valid access token.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			claims, err := token.ParseAccessToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}

// RequireRoles additionally checks the role claim against the allowed set.
func RequireRoles(secret []byte, roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}
			claims, err := token.ParseAccessToken(raw, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}
			role, _ := claims["role"].(string)
			if _, ok := allowed[role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}
