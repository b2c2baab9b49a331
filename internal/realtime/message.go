package realtime

import "encoding/json"

// Inbound events.
const (
	EventCreateUser = "createUser"
	EventCreateTask = "createTask"
	EventUpdateTask = "updateTask"
	EventDeleteTask = "deleteTask"
)

// Outbound events.
const (
	EventUserCreated = "userCreated"
	EventTaskCreated = "taskCreated"
	EventTaskUpdated = "taskUpdated"
	EventTaskDeleted = "taskDeleted"
	EventException   = "exception"
)

// Message is the frame exchanged in both directions: {"event": ..., "data": ...}.
type Message struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type exceptionPayload struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type deletedPayload struct {
	TaskID  string `json:"taskId"`
	Message string `json:"message"`
}
