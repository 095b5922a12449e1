package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	DevCookie  = "LANDLINK_UID"
	DevDefault = "dev-user"
)

// DevLogin resolves the caller from the dev cookie or ?uid= when no bearer
// token already did. Disabled outside development.
func DevLogin(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			if uid, _ := c.Get("uid").(string); uid != "" {
				return next(c)
			}
			uid := ""
			if ck, err := c.Cookie(DevCookie); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				uid = c.QueryParam("uid")
				if uid == "" {
					uid = DevDefault
				}
				c.SetCookie(&http.Cookie{Name: DevCookie, Value: uid, Path: "/"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
