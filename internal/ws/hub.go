package ws

import (
	"context"
	"encoding/json"
	"sync"

	"skill-gap/internal/delivery/http/handler"
	"skill-gap/internal/usecase"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type outbound struct {
	sessionID uuid.UUID
	payload   []byte
}

// Hub fans messages out to the sockets of one session. All membership changes go through Run.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]struct{}
	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]struct{}),
		broadcast:  make(chan outbound, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return nil

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.sessionID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[client.sessionID] = set
			}
			set[client] = struct{}{}
			total := h.countLocked()
			h.mutex.Unlock()
			h.logger.Debug().Str("session_id", client.sessionID.String()).Int("total_clients", total).Msg("ws connected")

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			targets := make([]*Client, 0, len(h.clients[msg.sessionID]))
			for c := range h.clients[msg.sessionID] {
				targets = append(targets, c)
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if set, ok := h.clients[client.sessionID]; ok {
		if _, ok := set[client]; ok {
			delete(set, client)
			close(client.send)
		}
		if len(set) == 0 {
			delete(h.clients, client.sessionID)
		}
	}
	total := h.countLocked()
	h.mutex.Unlock()
	h.logger.Debug().Str("session_id", client.sessionID.String()).Int("total_clients", total).Msg("ws disconnected")
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast queues message for every socket of the session. It never blocks.
func (h *Hub) Broadcast(sessionID uuid.UUID, message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- outbound{sessionID: sessionID, payload: message}:
	default:
		h.logger.Warn().Str("session_id", sessionID.String()).Msg("ws broadcast dropped: buffer full")
	}
}

// Publish sends the recomputed report to the session's sockets.
func (h *Hub) Publish(_ context.Context, sessionID uuid.UUID, view usecase.DashboardView) {
	b, err := reportFrame(view)
	if err != nil {
		h.logger.Error().Err(err).Msg("ws marshal report")
		return
	}
	h.Broadcast(sessionID, b)
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}

func (h *Hub) SessionClientCount(sessionID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[sessionID])
}

func reportFrame(view usecase.DashboardView) ([]byte, error) {
	return json.Marshal(Message{Type: TypeReport, Data: handler.ToSessionResponse(view)})
}
