// Package realtime mirrors the user and task operations over a websocket.
// Each result goes back to the connection that sent the event.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"taskmanager/internal/apperror"
	"taskmanager/internal/dto"
	"taskmanager/internal/handler"
	"taskmanager/internal/middleware"
	"taskmanager/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 16
)

type Gateway struct {
	registry *Registry
	users    service.UserStore
	tasks    service.TaskStore
	tokens   middleware.TokenParser
	validate *validator.Validate
	upgrader websocket.Upgrader
}

func NewGateway(registry *Registry, users service.UserStore, tasks service.TaskStore, tokens middleware.TokenParser) *Gateway {
	v := validator.New()
	v.SetTagName("binding")

	return &Gateway{
		registry: registry,
		users:    users,
		tasks:    tasks,
		tokens:   tokens,
		validate: v,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// ServeWS upgrades GET /ws. A bearer token may arrive in the Authorization
// header or the token query parameter; without one the connection is anonymous.
func (g *Gateway) ServeWS(c *gin.Context) {
	userID, err := g.identify(c)
	if err != nil {
		status := apperror.KindOf(err).Status()
		c.AbortWithStatusJSON(status, dto.ErrorEnvelope{StatusCode: status, Message: apperror.PublicMessage(err)})
		return
	}

	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	session := newSession(conn, userID, sendBuffer)
	g.registry.Add(session)
	log.Info().
		Str("session_id", session.ID).
		Bool("authenticated", session.Authenticated()).
		Int("sessions", g.registry.Len()).
		Msg("Client connected")

	go g.writePump(session)
	g.readPump(c.Request.Context(), session)
}

func (g *Gateway) identify(c *gin.Context) (uuid.UUID, error) {
	tokenStr := c.Query("token")
	if header := c.GetHeader("Authorization"); header != "" {
		t, ok := middleware.BearerToken(header)
		if !ok {
			return uuid.Nil, apperror.Unauthorized("Authorization header format must be Bearer {token}")
		}
		tokenStr = t
	}
	if tokenStr == "" {
		return uuid.Nil, nil
	}

	claims, err := g.tokens.ParseToken(tokenStr)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("Invalid user ID in token")
	}
	return userID, nil
}

func (g *Gateway) readPump(ctx context.Context, s *Session) {
	defer func() {
		g.registry.Remove(s.ID)
		s.conn.Close()
		log.Info().Str("session_id", s.ID).Int("sessions", g.registry.Len()).Msg("Client disconnected")
	}()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in Message
		if err := s.conn.ReadJSON(&in); err != nil {
			if malformed(err) {
				g.reply(s, exception(apperror.BadRequest("Malformed message")))
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session_id", s.ID).Msg("Websocket read failed")
			}
			return
		}

		g.reply(s, g.Handle(ctx, s.ID, in))
	}
}

// malformed reports a frame that arrived intact but did not decode.
func malformed(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (g *Gateway) writePump(s *Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(msg); err != nil {
				log.Warn().Err(err).Str("session_id", s.ID).Msg("Websocket write failed")
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) reply(s *Session, msg Message) {
	if !s.enqueue(msg) {
		log.Warn().Str("session_id", s.ID).Str("event", msg.Event).Msg("Send buffer full, dropping message")
	}
}

// Handle runs one inbound event for the session with the given connection id
// and returns the frame for its sender.
func (g *Gateway) Handle(ctx context.Context, sessionID string, in Message) Message {
	s, ok := g.registry.Get(sessionID)
	if !ok {
		return exception(apperror.Unauthorized("Session is closed"))
	}

	event, payload, err := g.dispatch(ctx, s, in)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			log.Error().Err(err).Str("session_id", s.ID).Str("event", in.Event).Msg("Event failed")
		}
		return exception(err)
	}
	return encode(event, payload)
}

func (g *Gateway) dispatch(ctx context.Context, s *Session, in Message) (string, any, error) {
	if in.Event != EventCreateUser && !s.Authenticated() {
		return "", nil, apperror.Unauthorized("Authentication required")
	}

	switch in.Event {
	case EventCreateUser:
		var req dto.RegisterRequest
		if err := g.decode(in.Data, &req); err != nil {
			return "", nil, err
		}
		user, err := g.users.Create(ctx, req)
		if err != nil {
			return "", nil, err
		}
		return EventUserCreated, dto.NewUserResponse(user), nil

	case EventCreateTask:
		var req dto.CreateTaskRequest
		if err := g.decode(in.Data, &req); err != nil {
			return "", nil, err
		}
		task, err := g.tasks.Create(ctx, s.UserID, req)
		if err != nil {
			return "", nil, err
		}
		return EventTaskCreated, dto.NewTaskResponse(task), nil

	case EventUpdateTask:
		var req dto.UpdateTaskEvent
		if err := g.decode(in.Data, &req); err != nil {
			return "", nil, err
		}
		taskID, err := parseTaskID(req.TaskID)
		if err != nil {
			return "", nil, err
		}
		task, err := g.tasks.Update(ctx, s.UserID, taskID, req.UpdateTaskDto)
		if err != nil {
			return "", nil, err
		}
		return EventTaskUpdated, dto.NewTaskResponse(task), nil

	case EventDeleteTask:
		var req dto.DeleteTaskEvent
		if err := g.decode(in.Data, &req); err != nil {
			return "", nil, err
		}
		taskID, err := parseTaskID(req.TaskID)
		if err != nil {
			return "", nil, err
		}
		msg, err := g.tasks.Delete(ctx, s.UserID, taskID)
		if err != nil {
			return "", nil, err
		}
		return EventTaskDeleted, deletedPayload{TaskID: req.TaskID, Message: msg}, nil

	default:
		return "", nil, apperror.BadRequest("Unknown event " + in.Event)
	}
}

// decode unmarshals and validates with the same binding tags as the HTTP surface.
func (g *Gateway) decode(data json.RawMessage, dst any) error {
	if len(data) == 0 {
		return apperror.BadRequest("Missing event data")
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return apperror.BadRequest("Invalid event data")
	}
	if err := g.validate.Struct(dst); err != nil {
		return apperror.BadRequest(handler.ValidationMessage(err))
	}
	return nil
}

func parseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NotAcceptable("Validation failed (uuid is expected)")
	}
	return id, nil
}

func encode(event string, payload any) Message {
	raw, err := json.Marshal(payload)
	if err != nil {
		return exception(apperror.Internal(err))
	}
	return Message{Event: event, Data: raw}
}

func exception(err error) Message {
	raw, _ := json.Marshal(exceptionPayload{
		StatusCode: apperror.KindOf(err).Status(),
		Message:    apperror.PublicMessage(err),
	})
	return Message{Event: EventException, Data: raw}
}
