package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cadastrolabs/cadastro-api/internal/container"
	"github.com/cadastrolabs/cadastro-api/internal/domain/entity"
	handlers "github.com/cadastrolabs/cadastro-api/internal/interface/http"
	"github.com/cadastrolabs/cadastro-api/internal/interface/middleware"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

type TwoFactorModule struct {
	Handler *handlers.TwoFactorHandler
	JWT     *helpers.JWTManager
}

func NewTwoFactorModule(h *handlers.TwoFactorHandler, jwt *helpers.JWTManager) *TwoFactorModule {
	return &TwoFactorModule{Handler: h, JWT: jwt}
}

func (m *TwoFactorModule) Register(rg *gin.RouterGroup) {
	// Verify and 2FA login run before the caller holds a full token,
	// so both stay public behind tight IP limits.
	codeLimiter := middleware.RateLimit(container.GetRedis(), 15, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/2fa/verify", codeLimiter, m.Handler.Verify)
	rg.POST("/auth/2fa/login", codeLimiter, m.Handler.Login)

	// Setup requires a logged-in user
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RequireRole(entity.RoleUser, entity.RoleAdmin))
	auth.Use(middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.POST("/auth/2fa/setup", m.Handler.Setup)
	}
}
