package handler

import (
	"net/http"

	"taskmanager/internal/dto"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks service.TaskStore
}

func NewTaskHandler(tasks service.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create godoc
// @Summary      Create a task owned by the caller
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTaskRequest  true  "Task data"
// @Success      201   {object}  dto.Envelope{payload=dto.TaskResponse}
// @Failure      400   {object}  dto.ErrorEnvelope
// @Failure      401   {object}  dto.ErrorEnvelope
// @Failure      404   {object}  dto.ErrorEnvelope
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	ownerID, err := currentUser(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Task created successfully", dto.NewTaskResponse(task))
}

// GetByID godoc
// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Success      200     {object}  dto.Envelope{payload=dto.TaskResponse}
// @Failure      401     {object}  dto.ErrorEnvelope
// @Failure      404     {object}  dto.ErrorEnvelope
// @Failure      406     {object}  dto.ErrorEnvelope
// @Router       /api/tasks/{taskId} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.tasks.FindByID(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.NewTaskResponse(task))
}

// ListByOwner godoc
// @Summary      List the caller's tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true   "Owner ID, must be the caller"
// @Param        page    query     int     false  "Page number"     default(1)
// @Param        limit   query     int     false  "Items per page"  default(10)
// @Success      200     {object}  dto.Envelope{payload=[]dto.TaskResponse}
// @Failure      400     {object}  dto.ErrorEnvelope
// @Failure      404     {object}  dto.ErrorEnvelope
// @Failure      406     {object}  dto.ErrorEnvelope
// @Router       /api/tasks/users/{userId} [get]
func (h *TaskHandler) ListByOwner(c *gin.Context) {
	ownerID, err := selfFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var q dto.PaginationQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondValidation(c, err)
		return
	}

	tasks, err := h.tasks.ListByOwner(c.Request.Context(), ownerID, q.Page, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Success", dto.NewTaskResponses(tasks))
}

// Update godoc
// @Summary      Update one of the caller's tasks
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string                 true  "Task ID"
// @Param        userId  path      string                 true  "Owner ID, must be the caller"
// @Param        body    body      dto.UpdateTaskRequest  true  "Fields to change"
// @Success      200     {object}  dto.Envelope{payload=dto.TaskResponse}
// @Failure      400     {object}  dto.ErrorEnvelope
// @Failure      404     {object}  dto.ErrorEnvelope
// @Failure      406     {object}  dto.ErrorEnvelope
// @Router       /api/tasks/{taskId}/users/{userId} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		respondError(c, err)
		return
	}
	ownerID, err := selfFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), ownerID, taskID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Task updated successfully", dto.NewTaskResponse(task))
}

// Delete godoc
// @Summary      Delete one of the caller's tasks
// @Tags         Tasks
// @Produce      json
// @Security     BearerAuth
// @Param        taskId  path      string  true  "Task ID"
// @Param        userId  path      string  true  "Owner ID, must be the caller"
// @Success      200     {object}  dto.Envelope
// @Failure      404     {object}  dto.ErrorEnvelope
// @Failure      406     {object}  dto.ErrorEnvelope
// @Router       /api/tasks/{taskId}/users/{userId} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID, err := parseUUIDParam(c, "taskId")
	if err != nil {
		respondError(c, err)
		return
	}
	ownerID, err := selfFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}

	msg, err := h.tasks.Delete(c.Request.Context(), ownerID, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, msg, nil)
}
