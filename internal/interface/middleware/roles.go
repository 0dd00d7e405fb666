package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cadastrolabs/cadastro-api/pkg/response"
)

// RequireRole guards a route group: the verified token must carry at least
// one of the given roles. Must run after Auth.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := RolesFromCtx(c)
		for _, have := range roles {
			for _, want := range allowed {
				if have == want {
					c.Next()
					return
				}
			}
		}
		resp := response.Error[any](c, http.StatusForbidden, "insufficient role", nil)
		c.AbortWithStatusJSON(resp.Status, resp)
	}
}
