package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
)

type AdminHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.UserService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))

	users, total, err := h.Svc.List(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, newUserResponses(users), "users", map[string]any{
		"page": page, "size": size, "total": total,
	})
	c.JSON(resp.Status, resp)
}

// Promote POST /api/admin/users/:id/promote
func (h *AdminHandler) Promote(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.Svc.PromoteToAdmin(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, newUserResponse(u), "user promoted to admin", nil)
	c.JSON(resp.Status, resp)
}
