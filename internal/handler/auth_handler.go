package handler

import (
	"net/http"

	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth service.AuthFlow
}

func NewAuthHandler(auth service.AuthFlow) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register godoc
// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.RegisterRequest  true  "Registration data"
// @Success      201   {object}  dto.Envelope{payload=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/auth [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Created Successfully", dto.NewUserResponse(user))
}

// Login godoc
// @Summary      Log in and receive an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.Envelope{payload=dto.LoginResponse}
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      401   {object}  dto.ErrorEnvelope
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	ctx := c.Request.Context()
	user, err := h.auth.ValidateCredentials(ctx, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.auth.Login(ctx, user)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.LoginResponse{
		User:        dto.NewUserResponse(result.User),
		AccessToken: result.AccessToken,
	})
}
