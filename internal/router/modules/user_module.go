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

// UserModule wires user CRUD routes under /api/v1/users.
// Every route requires a valid token carrying USER or ADMIN.

type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/v1/users")
	users.Use(middleware.Auth(m.JWT))
	users.Use(middleware.RequireRole(entity.RoleUser, entity.RoleAdmin))
	users.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil))
	{
		users.GET("", m.Handler.GetByQuery)
		users.GET("/all", m.Handler.List)
		users.GET("/:id", m.Handler.GetByID)
		users.PUT("/:id", m.Handler.Update)
		users.PUT("/:id/password", m.Handler.UpdatePassword)
		users.POST("/:id/picture", m.Handler.UploadPicture)
		users.DELETE("/:id", m.Handler.Delete)
	}
}
