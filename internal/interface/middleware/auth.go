package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
)

const (
	CtxUserEmailKey = "userEmail"
	CtxUserRolesKey = "userRoles"
)

// Auth validates the Authorization: Bearer token and injects the subject
// email and role claims into the Gin context. Validity is signature plus
// expiry only — no session store behind it.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			resp := response.Error[any](c, http.StatusUnauthorized, "missing bearer token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			resp := response.Error[any](c, http.StatusUnauthorized, "invalid or expired token", nil)
			c.AbortWithStatusJSON(resp.Status, resp)
			return
		}
		c.Set(CtxUserEmailKey, claims.Subject)
		c.Set(CtxUserRolesKey, claims.Roles)
		c.Next()
	}
}

// RolesFromCtx returns the role claims set by Auth.
func RolesFromCtx(c *gin.Context) []string {
	if v, ok := c.Get(CtxUserRolesKey); ok {
		if roles, ok := v.([]string); ok {
			return roles
		}
	}
	return nil
}
