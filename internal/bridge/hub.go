// Package bridge streams simulation state to an external renderer over a
// websocket and accepts typed commands back.
package bridge

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/appengine-ltd/wildlands/internal/console"
	"github.com/appengine-ltd/wildlands/internal/game"
	"github.com/appengine-ltd/wildlands/internal/platform/logger"
)

const (
	frameState = "state"
	frameReply = "reply"
)

// Frame is every server-to-client message.
type Frame struct {
	Type    string     `json:"type"`
	State   *game.View `json:"state,omitempty"`
	Reply   string     `json:"reply,omitempty"`
	Handled bool       `json:"handled,omitempty"`
}

type reply struct {
	client *Client
	data   []byte
}

// Hub maintains the connected renderers and fans state frames out to them.
// State changes are coalesced: a burst of mutations produces one frame
// carrying the latest view.
type Hub struct {
	sim     *game.Simulation
	console *console.Console
	logger  *logger.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	replies    chan reply
	changed    chan struct{}
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub(sim *game.Simulation, cons *console.Console, log *logger.Logger) *Hub {
	return &Hub{
		sim:        sim,
		console:    cons,
		logger:     log,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		replies:    make(chan reply),
		changed:    make(chan struct{}, 1),
		done:       make(chan struct{}),
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, closing
// every client.
func (h *Hub) Run(ctx context.Context) {
	unsubscribe := h.sim.Subscribe(func(game.View) {
		select {
		case h.changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("bridge hub shutting down")
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			return
		case client := <-h.register:
			h.logger.Infof("renderer connected from %s", client.conn.RemoteAddr())
			data, ok := h.stateFrame()
			h.mu.Lock()
			h.clients[client] = true
			if ok {
				h.deliver(client, data)
			}
			h.mu.Unlock()
		case msg := <-h.replies:
			h.mu.Lock()
			if h.clients[msg.client] {
				h.deliver(msg.client, msg.data)
			}
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Info("renderer disconnected")
			}
			h.mu.Unlock()
		case <-h.changed:
			data, ok := h.stateFrame()
			if !ok {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				h.deliver(client, data)
			}
			h.mu.Unlock()
		}
	}
}

// Clients reports the number of connected renderers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// deliver queues data for client, dropping the client when it cannot keep
// up. Callers hold h.mu.
func (h *Hub) deliver(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		if _, ok := h.clients[client]; ok {
			delete(h.clients, client)
			close(client.send)
			h.logger.Warn("renderer too slow, dropped")
		}
	}
}

func (h *Hub) stateFrame() ([]byte, bool) {
	view := h.sim.View()
	data, err := json.Marshal(Frame{Type: frameState, State: &view})
	if err != nil {
		h.logger.Errorf("marshal state frame: %v", err)
		return nil, false
	}
	return data, true
}

// execute runs one command line and encodes the reply frame.
func (h *Hub) execute(ctx context.Context, line string) []byte {
	res := h.console.Execute(ctx, line)
	data, err := json.Marshal(Frame{Type: frameReply, Reply: res.Message, Handled: res.Handled})
	if err != nil {
		h.logger.Errorf("marshal reply frame: %v", err)
		return nil
	}
	return data
}
