package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/http/helper"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

const CurrentUserKey = "current_user"

// TokenAuth resolves the bearer token into a user and stores it on the
// gin context. Handlers read it back with CurrentUser; there is no
// request-global state outside the context.
func TokenAuth(auth port.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		if !strings.HasPrefix(header, "Bearer ") {
			helper.RenderError(c, domain.Unauthorized())
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")

		user, err := auth.Authorize(c.Request.Context(), token)

		if err != nil {
			helper.RenderError(c, domain.Unauthorized())
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, exists := c.Get(CurrentUserKey)

	if !exists {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)
	return user, ok
}
