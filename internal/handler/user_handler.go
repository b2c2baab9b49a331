package handler

import (
	"net/http"

	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	users service.UserStore
}

func NewUserHandler(users service.UserStore) *UserHandler {
	return &UserHandler{users: users}
}

// Me godoc
// @Summary      Current user profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope{payload=dto.UserResponse}
// @Failure      401  {object}  dto.ErrorEnvelope
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.NewUserResponse(user))
}

// UpdateMe godoc
// @Summary      Update the current user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.UpdateUserRequest  true  "Fields to change"
// @Success      200   {object}  dto.Envelope{payload=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      401   {object}  dto.ErrorEnvelope
// @Failure      409   {object}  dto.ErrorEnvelope
// @Router       /api/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	user, err := h.users.Update(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User updated successfully", dto.NewUserResponse(user))
}

// DeleteMe godoc
// @Summary      Delete the current user and their tasks
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Envelope
// @Failure      401  {object}  dto.ErrorEnvelope
// @Failure      404  {object}  dto.ErrorEnvelope
// @Router       /api/users/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	userID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, err := h.users.Delete(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, msg, nil)
}

// List godoc
// @Summary      List users
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page number"     default(1)
// @Param        limit  query     int  false  "Items per page"  default(10)
// @Success      200    {object}  dto.Envelope{payload=[]dto.UserResponse}
// @Failure      400    {object}  dto.ErrorEnvelope
// @Failure      401    {object}  dto.ErrorEnvelope
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	users, err := h.users.List(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.NewUserResponses(users))
}

// GetByID godoc
// @Summary      User profile
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  dto.Envelope{payload=dto.UserResponse}
// @Failure      404     {object}  dto.ErrorEnvelope
// @Failure      406     {object}  dto.ErrorEnvelope
// @Router       /api/users/{userId} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := parseUUIDParam(c, "userId")
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.NewUserResponse(user))
}
