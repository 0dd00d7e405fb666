package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
	"github.com/cadastrolabs/cadastro-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateUserRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email" binding:"omitempty,email"`
	CPF          string `json:"cpf" binding:"omitempty,cpf"`
	RG           string `json:"rg"`
	Phone        string `json:"phone" binding:"omitempty,max=15"`
	Address      string `json:"address"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state" binding:"omitempty,len=2"`
	ZipCode      string `json:"zip_code" binding:"omitempty,len=8,numeric"`
	Gender       string `json:"gender"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid user id", nil)
		c.JSON(resp.Status, resp)
		return 0, false
	}
	return id, true
}

// GetByID GET /api/users/:id
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, newUserResponse(u), "user", nil)
	c.JSON(resp.Status, resp)
}

// GetByQuery GET /api/users?cpf=...|email=...
func (h *UserHandler) GetByQuery(c *gin.Context) {
	if cpf := c.Query("cpf"); cpf != "" {
		u, err := h.Svc.GetByCPF(c.Request.Context(), cpf)
		if err != nil {
			fail(c, err)
			return
		}
		resp := response.Success(c, http.StatusOK, newUserResponse(u), "user", nil)
		c.JSON(resp.Status, resp)
		return
	}
	if email := c.Query("email"); email != "" {
		u, err := h.Svc.GetByEmail(c.Request.Context(), email)
		if err != nil {
			fail(c, err)
			return
		}
		resp := response.Success(c, http.StatusOK, newUserResponse(u), "user", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Error[any](c, http.StatusBadRequest, "cpf or email query parameter required", nil)
	c.JSON(resp.Status, resp)
}

// List GET /api/users/all?page=&size=
func (h *UserHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))

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

// Update PUT /api/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, err := h.Svc.Update(c.Request.Context(), id, application.UpdateInput{
		Name:         req.Name,
		Email:        req.Email,
		CPF:          req.CPF,
		RG:           req.RG,
		Phone:        req.Phone,
		Address:      req.Address,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Gender:       req.Gender,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, newUserResponse(u), "user updated", nil)
	c.JSON(resp.Status, resp)
}

// UpdatePassword PUT /api/users/:id/password
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	if err := h.Svc.UpdatePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}
	resp := response.Success[any](c, http.StatusOK, gin.H{"updated": true}, "password updated", nil)
	c.JSON(resp.Status, resp)
}

// UploadPicture POST /api/users/:id/picture (multipart form, field "file")
func (h *UserHandler) UploadPicture(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "file field required", nil)
		c.JSON(resp.Status, resp)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadProfilePicture(c.Request.Context(), id, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		fail(c, err)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"profile_picture_url": url}, "profile picture updated", nil)
	c.JSON(resp.Status, resp)
}

// Delete DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
