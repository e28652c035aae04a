package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/crossfit-rzeszow/timetable-api/internal/response"
)

// RequireToken validates the shared API token. The token is read from the
// Authorization bearer header or, for calendar clients that cannot set
// headers on subscription URLs, from the ?token= query parameter.
func RequireToken(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			provided = strings.TrimPrefix(h, "Bearer ")
		} else if q := c.Query("token"); q != "" {
			provided = q
		}

		if provided == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		c.Next()
	}
}
