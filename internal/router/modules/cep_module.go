package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cadastrolabs/cadastro-api/internal/container"
	handlers "github.com/cadastrolabs/cadastro-api/internal/interface/http"
	"github.com/cadastrolabs/cadastro-api/internal/interface/middleware"
)

type CepModule struct {
	Handler *handlers.CepHandler
}

func NewCepModule(h *handlers.CepHandler) *CepModule {
	return &CepModule{Handler: h}
}

func (m *CepModule) Register(rg *gin.RouterGroup) {
	// Public lookup, rate-limited per IP to protect the upstream service
	rl := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/cep/:cep", rl, m.Handler.Lookup)
}
