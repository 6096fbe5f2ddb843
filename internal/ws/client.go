package ws

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"skill-gap/internal/domain/skill"
	"skill-gap/internal/session"
	"skill-gap/internal/usecase"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	opTimeout      = 5 * time.Second

	TypeReport = "report"
	TypeError  = "error"
)

// Message is the envelope for every server frame.
type Message struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// LevelMessage is the only frame a client sends.
type LevelMessage struct {
	Skill string `json:"skill"`
	Level *int   `json:"level"`
}

var errBadFrame = errors.New("expected {\"skill\": string, \"level\": 0-10}")

type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID uuid.UUID
	uc        usecase.DashboardUsecase
	logger    zerolog.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, sessionID uuid.UUID, uc usecase.DashboardUsecase, logger zerolog.Logger) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, 16),
		sessionID: sessionID,
		uc:        uc,
		logger:    logger,
	}
}

// ReadPump applies level frames until the socket closes. Successful updates are broadcast
// to the whole session; errors go back to this socket only.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Debug().Err(err).Msg("ws read")
			}
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		view, reply := c.process(ctx, data)
		cancel()

		if view != nil {
			c.hub.Publish(ctx, c.sessionID, *view)
			continue
		}
		c.reply(reply)
	}
}

// process applies one frame. It returns the new view, or an error frame for the sender.
func (c *Client) process(ctx context.Context, data []byte) (*usecase.DashboardView, []byte) {
	var msg LevelMessage
	if err := json.Unmarshal(data, &msg); err != nil || msg.Skill == "" || msg.Level == nil {
		return nil, errorFrame(errBadFrame)
	}
	if *msg.Level < skill.DashboardMinUserLevel || *msg.Level > skill.MaxLevel {
		return nil, errorFrame(errBadFrame)
	}

	view, err := c.uc.SetLevels(ctx, c.sessionID, session.Update{Skill: msg.Skill, Level: *msg.Level})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return nil, errorFrame(err)
		}
		c.logger.Error().Err(err).Str("session_id", c.sessionID.String()).Msg("ws set level")
		return nil, errorFrame(usecase.ErrInternal)
	}
	return &view, nil
}

func (c *Client) reply(b []byte) {
	select {
	case c.send <- b:
	default:
	}
}

func errorFrame(err error) []byte {
	b, _ := json.Marshal(Message{Type: TypeError, Error: err.Error()})
	return b
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
