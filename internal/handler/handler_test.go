package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"taskmanager/internal/auth"
	"taskmanager/internal/handler"
	"taskmanager/internal/middleware"
	"taskmanager/internal/service/mocks"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type testEnv struct {
	router *gin.Engine
	users  *mocks.UserStore
	tasks  *mocks.TaskStore
	auth   *mocks.AuthFlow
	tokens *auth.TokenManager
}

func setupTest() *testEnv {
	gin.SetMode(gin.TestMode)
	env := &testEnv{
		router: gin.New(),
		users:  new(mocks.UserStore),
		tasks:  new(mocks.TaskStore),
		auth:   new(mocks.AuthFlow),
		tokens: auth.NewTokenManager(testSecret, time.Hour),
	}

	authHandler := handler.NewAuthHandler(env.auth)
	userHandler := handler.NewUserHandler(env.users)
	taskHandler := handler.NewTaskHandler(env.tasks)

	api := env.router.Group("/api")
	api.POST("/auth", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	guarded := api.Group("")
	guarded.Use(middleware.JWTAuthMiddleware(env.tokens))
	guarded.GET("/users", userHandler.List)
	guarded.GET("/users/me", userHandler.Me)
	guarded.PATCH("/users/me", userHandler.UpdateMe)
	guarded.DELETE("/users/me", userHandler.DeleteMe)
	guarded.GET("/users/:userId", userHandler.GetByID)
	guarded.POST("/tasks", taskHandler.Create)
	guarded.GET("/tasks/:taskId", taskHandler.GetByID)
	guarded.GET("/tasks/users/:userId", taskHandler.ListByOwner)
	guarded.PATCH("/tasks/:taskId/users/:userId", taskHandler.Update)
	guarded.DELETE("/tasks/:taskId/users/:userId", taskHandler.Delete)

	return env
}

func (e *testEnv) tokenFor(t *testing.T, id uuid.UUID) string {
	t.Helper()
	token, err := e.tokens.GenerateToken(id.String(), "a@b.com")
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope), resp.Body.String())
	return resp, envelope
}
