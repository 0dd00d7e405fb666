package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/internal/interface/middleware"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
	"github.com/cadastrolabs/cadastro-api/pkg/validation"
)

type TwoFactorHandler struct {
	Svc    *application.TwoFactorService
	Logger *logrus.Logger
}

func NewTwoFactorHandler(svc *application.TwoFactorService, logger *logrus.Logger) *TwoFactorHandler {
	return &TwoFactorHandler{Svc: svc, Logger: logger}
}

type twoFactorCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Setup POST /api/auth/2fa/setup (auth required)
// Issues a fresh secret and QR for the caller. Safe to repeat before
// verification: the pending secret is simply replaced.
func (h *TwoFactorHandler) Setup(c *gin.Context) {
	email := c.GetString(middleware.CtxUserEmailKey)
	if email == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.Setup(c.Request.Context(), email)
	if err != nil {
		fail(c, err)
		return
	}

	resp := response.Success(c, http.StatusCreated, gin.H{
		"secret":  res.Secret,
		"qr_code": res.QRCode,
	}, "scan the QR code with an authenticator app, then verify", nil)
	c.JSON(resp.Status, resp)
}

// Verify POST /api/auth/2fa/verify
// First valid code activates 2FA and completes the login in one round trip.
func (h *TwoFactorHandler) Verify(c *gin.Context) {
	var req twoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.Verify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	resp := response.Success(c, http.StatusOK, tokenResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, "2FA activated successfully", nil)
	c.JSON(resp.Status, resp)
}

// Login POST /api/auth/2fa/login
func (h *TwoFactorHandler) Login(c *gin.Context) {
	var req twoFactorCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.LoginWith2FA(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	resp := response.Success(c, http.StatusOK, tokenResponse{Token: res.Token, ExpiresAt: res.ExpiresAt}, "login successful", nil)
	c.JSON(resp.Status, resp)
}
