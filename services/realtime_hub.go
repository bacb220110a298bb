package services

import (
	"sync"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/metrics"
	"github.com/sunfrisky19/model-meals-workouts/models"
)

// Conn is the part of *websocket.Conn the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type WSClient struct {
	SessionID string
	Conn      Conn
	mu        sync.Mutex
}

// Write serializes writes; gorilla connections allow one concurrent writer.
func (c *WSClient) Write(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(messageType, data)
}

// PredictionEvent is the frame pushed to subscribers after each classification.
type PredictionEvent struct {
	Kind       string             `json:"kind"`
	Prediction *models.Prediction `json:"prediction"`
}

// PredictionHub fans predictions out to the websocket subscribers of the session that made them.
type PredictionHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewPredictionHub() *PredictionHub {
	return &PredictionHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *PredictionHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.SessionID] == nil {
		h.clients[c.SessionID] = make(map[*WSClient]struct{})
	}
	h.clients[c.SessionID][c] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeSubscribers.Inc()
}

// Unregister is idempotent.
func (h *PredictionHub) Unregister(c *WSClient) {
	h.mu.Lock()
	set := h.clients[c.SessionID]
	_, ok := set[c]
	if ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.SessionID)
		}
	}
	h.mu.Unlock()
	if ok {
		metrics.RealtimeSubscribers.Dec()
		_ = c.Conn.Close()
	}
}

func (h *PredictionHub) Subscribers(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

// PublishPrediction sends a prediction.created event. Clients whose write fails are dropped.
func (h *PredictionHub) PublishPrediction(sessionID string, p *models.Prediction) {
	if sessionID == "" {
		return
	}
	msg, err := json.Marshal(PredictionEvent{Kind: "prediction.created", Prediction: p})
	if err != nil {
		logging.Error().Err(err).Msg("marshal prediction event")
		return
	}

	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Write(websocket.TextMessage, msg); err != nil {
			logging.Debug().Err(err).Str("session_id", sessionID).Msg("dropping realtime subscriber")
			h.Unregister(c)
		}
	}
}
