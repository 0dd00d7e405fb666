package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/application"
	"github.com/cadastrolabs/cadastro-api/pkg/response"
	"github.com/cadastrolabs/cadastro-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Password          string `json:"password" binding:"required,pwd"`
	CPF               string `json:"cpf" binding:"required,cpf"`
	RG                string `json:"rg" binding:"required"`
	Phone             string `json:"phone" binding:"required,max=15"`
	Address           string `json:"address"`
	Number            string `json:"number"`
	Complement        string `json:"complement"`
	Neighborhood      string `json:"neighborhood"`
	City              string `json:"city" binding:"required"`
	State             string `json:"state" binding:"required,len=2"`
	ZipCode           string `json:"zip_code" binding:"required,len=8,numeric"`
	Gender            string `json:"gender"`
	DateOfBirth       string `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	TermsAccepted     bool   `json:"terms_accepted"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token             string        `json:"token,omitempty"`
	ExpiresAt         *time.Time    `json:"expires_at,omitempty"`
	RequiresTwoFactor bool          `json:"requires_2fa"`
	User              *UserResponse `json:"user,omitempty"`
}

func newAuthResponse(res *application.AuthResult) authResponse {
	out := authResponse{Token: res.Token, RequiresTwoFactor: res.RequiresTwoFactor}
	if res.Token != "" {
		exp := res.ExpiresAt
		out.ExpiresAt = &exp
	}
	if res.User != nil {
		u := newUserResponse(res.User)
		out.User = &u
	}
	return out
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	var dob time.Time
	if req.DateOfBirth != "" {
		var err error
		dob, err = time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			resp := response.Error[any](c, http.StatusBadRequest, "invalid payload",
				map[string]string{"date_of_birth": "must match datetime format: 2006-01-02"})
			c.JSON(resp.Status, resp)
			return
		}
	}

	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:              req.Name,
		Email:             req.Email,
		Password:          req.Password,
		CPF:               req.CPF,
		RG:                req.RG,
		Phone:             req.Phone,
		Address:           req.Address,
		Number:            req.Number,
		Complement:        req.Complement,
		Neighborhood:      req.Neighborhood,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		Gender:            req.Gender,
		DateOfBirth:       dob,
		TermsAccepted:     req.TermsAccepted,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		fail(c, err)
		return
	}

	resp := response.Success(c, http.StatusCreated, newAuthResponse(res), "user registered", nil)
	c.JSON(resp.Status, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	msg := "login successful"
	if res.RequiresTwoFactor {
		msg = "two-factor code required"
	}
	resp := response.Success(c, http.StatusOK, newAuthResponse(res), msg, nil)
	c.JSON(resp.Status, resp)
}
