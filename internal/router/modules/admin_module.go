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

type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.JWT))
	admin.Use(middleware.RequireRole(entity.RoleAdmin))
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser(), nil))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.POST("/users/:id/promote", m.Handler.Promote)
	}
}
