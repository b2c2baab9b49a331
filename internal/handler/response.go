package handler

import (
	"errors"
	"fmt"
	"strings"

	"taskmanager/internal/apperror"
	"taskmanager/internal/dto"
	"taskmanager/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func respond(c *gin.Context, status int, message string, payload any) {
	c.JSON(status, dto.Envelope{
		StatusCode: status,
		Message:    message,
		Payload:    payload,
	})
}

func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	if kind == apperror.KindInternal {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	}
	_ = c.Error(err)

	status := kind.Status()
	c.AbortWithStatusJSON(status, dto.ErrorEnvelope{
		StatusCode: status,
		Message:    apperror.PublicMessage(err),
	})
}

func respondValidation(c *gin.Context, err error) {
	respondError(c, apperror.BadRequest(ValidationMessage(err)))
}

// ValidationMessage turns binding errors into a client-facing sentence.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return strings.Join(msgs, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "email":
		return field + " must be an email"
	case "uuid":
		return field + " must be a UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("%s must not be less than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", field, fe.Tag())
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperror.NotAcceptable("Validation failed (uuid is expected)")
	}
	return id, nil
}

func currentUser(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		return uuid.Nil, apperror.Unauthorized("Not authenticated")
	}
	return id, nil
}

// selfFromPath resolves :userId and requires it to match the token subject.
func selfFromPath(c *gin.Context) (uuid.UUID, error) {
	callerID, err := currentUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	pathID, err := parseUUIDParam(c, "userId")
	if err != nil {
		return uuid.Nil, err
	}
	if pathID != callerID {
		return uuid.Nil, apperror.NotAcceptable("Access to another user's tasks is not allowed")
	}
	return callerID, nil
}
