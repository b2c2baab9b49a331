package dto

// RegisterRequest is the body of POST /api/auth and the createUser socket event.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Fullname string `json:"fullname" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Fullname *string `json:"fullname" binding:"omitempty,min=1"`
	Username *string `json:"username" binding:"omitempty,min=1"`
}

// CreateTaskRequest leaves status optional; an empty status means pending.
type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	Status      string `json:"status" binding:"omitempty,oneof=pending inProgress completed"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1"`
	Description *string `json:"description" binding:"omitempty,min=1"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending inProgress completed"`
}

type PaginationQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

// UpdateTaskEvent is the payload of the updateTask socket event.
type UpdateTaskEvent struct {
	TaskID        string            `json:"taskId" binding:"required,uuid"`
	UpdateTaskDto UpdateTaskRequest `json:"updateTaskDto"`
}

// DeleteTaskEvent is the payload of the deleteTask socket event.
type DeleteTaskEvent struct {
	TaskID string `json:"taskId" binding:"required,uuid"`
}
