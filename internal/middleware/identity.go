package middleware

// identity.go holds helpers shared across middleware files for pulling
// the caller's identity out of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user id as a string, or
// "anon" when the request carries no identity. JWTAuth stores the raw
// sub claim, so both string and numeric forms are handled.
func currentUserID(c echo.Context) string {
	for _, key := range []string{"user_id", "userID"} {
		v := c.Get(key)
		if v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t != "" {
				return t
			}
		case float64:
			return strconv.FormatUint(uint64(t), 10)
		case uint64:
			return strconv.FormatUint(t, 10)
		}
	}
	return "anon"
}
