package server

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chesswrapper-go/internal/errors"
)

// MessageType names a WebSocket message.
type MessageType string

const (
	MessageTypeMove  MessageType = "move"
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// Message is the envelope for every WebSocket frame in either direction.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// upgradeSession rejects plain HTTP requests and resolves the session
// before the upgrade, so an unknown ID gets a 404 instead of a socket.
func (s *Server) upgradeSession(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	sess, err := s.store.Get(c.Params("id"))
	if err != nil {
		return err
	}
	c.Locals("session", sess)
	return c.Next()
}

func (s *Server) handleSocket(conn *websocket.Conn) {
	sess, ok := conn.Locals("session").(*Session)
	if !ok {
		conn.Close()
		return
	}
	s.cfg.Logf(2, "game %s: socket opened\n", sess.ID)

	if err := conn.WriteJSON(stateMessage(sess.View())); err != nil {
		conn.Close()
		return
	}

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var reply Message
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = errorMessage(fmt.Errorf("message: %v: %w", err, errors.ErrFormat))
		} else {
			reply = s.handleMessage(sess, msg)
		}
		if err := conn.WriteJSON(reply); err != nil {
			break
		}
	}
	s.cfg.Logf(2, "game %s: socket closed\n", sess.ID)
}

// handleMessage answers one client message with the new state or an error.
func (s *Server) handleMessage(sess *Session, msg Message) Message {
	switch msg.Type {
	case MessageTypeMove:
		var req MoveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return errorMessage(fmt.Errorf("move payload: %v: %w", err, errors.ErrFormat))
		}
		view, err := sess.Apply(req)
		if err != nil {
			return errorMessage(err)
		}
		return stateMessage(view)
	case MessageTypeState:
		return stateMessage(sess.View())
	default:
		return errorMessage(fmt.Errorf("unknown message type %q: %w", msg.Type, errors.ErrValidation))
	}
}

func stateMessage(view StateView) Message {
	return Message{Type: MessageTypeState, Payload: mustJSON(view)}
}

func errorMessage(err error) Message {
	return Message{Type: MessageTypeError, Payload: mustJSON(errorBody(err))}
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}
