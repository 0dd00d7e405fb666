package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
)

type CepHandler struct {
	Svc    *application.CepService
	Logger *logrus.Logger
}

func NewCepHandler(svc *application.CepService, logger *logrus.Logger) *CepHandler {
	return &CepHandler{Svc: svc, Logger: logger}
}

// Lookup GET /api/cep/:cep
func (h *CepHandler) Lookup(c *gin.Context) {
	addr, err := h.Svc.Lookup(c.Request.Context(), c.Param("cep"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, addr, "address", nil)
	c.JSON(resp.Status, resp)
}
