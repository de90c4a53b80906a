package notify

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/doeshing/vosh/internal/ports"
)

// companionMessage is the wire format pushed to a companion device.
type companionMessage struct {
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

// Companion pushes candidate commands over a websocket to a companion
// device (for non-KDE setups). The connection is dialed lazily and re-dialed
// once after a write failure; beyond that the push is dropped.
type Companion struct {
	url  string
	log  ports.Logger
	mu   sync.Mutex
	conn *websocket.Conn
}

// NewCompanion builds the notifier for the given ws:// URL.
func NewCompanion(url string, log ports.Logger) *Companion {
	return &Companion{url: url, log: log}
}

// Push implements ports.Notifier.
func (c *Companion) Push(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(companionMessage{Kind: "command", Content: text})
	if err != nil {
		return err
	}

	if err := c.write(payload); err != nil {
		// stale connection: drop it and retry once
		c.drop()
		if err := c.write(payload); err != nil {
			return err
		}
	}
	return nil
}

func (c *Companion) write(payload []byte) error {
	if c.conn == nil {
		conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
		if err != nil {
			return err
		}
		c.conn = conn
		c.log.Debug("connected to companion", map[string]interface{}{"url": c.url})
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Companion) drop() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Enabled reports whether a companion URL is configured.
func (c *Companion) Enabled() bool {
	return c.url != ""
}

var _ ports.Notifier = (*Companion)(nil)
