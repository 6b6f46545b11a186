package dock

import (
	"fmt"
	"log"
	"net"
	"time"
)

// DefaultAddr is the helper daemon's listen address.
const DefaultAddr = "localhost:5050"

const dialTimeout = 500 * time.Millisecond

// Window levels understood by the helper daemon.
const (
	LevelNormal   = 0
	LevelFloating = 3
)

// Client pushes Z-order and stickiness hints to the out-of-process helper.
// Every message opens a fresh TCP connection, writes and closes; no response
// is read. Sends are best effort: when the daemon is not running the hint is
// dropped after a log line and the caller proceeds with reduced effect.
type Client struct {
	addr string
}

// NewClient returns a client for the given address, DefaultAddr when empty.
func NewClient(addr string) *Client {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Client{addr: addr}
}

// Move asks the daemon to move a window.
func (c *Client) Move(windowID uint32, x, y int) {
	c.send(fmt.Sprintf("window_move %d %d %d", windowID, x, y))
}

// Level asks the daemon to put a window on the given window level.
func (c *Client) Level(windowID uint32, level int) {
	c.send(fmt.Sprintf("window_level %d %d", windowID, level))
}

// Sticky asks the daemon to pin a window to all workspaces (or unpin it).
func (c *Client) Sticky(windowID uint32, sticky bool) {
	v := 0
	if sticky {
		v = 1
	}
	c.send(fmt.Sprintf("window_sticky %d %d", windowID, v))
}

func (c *Client) send(message string) {
	conn, err := net.DialTimeout("tcp", c.addr, dialTimeout)
	if err != nil {
		log.Printf("dock: send skipped, %v", err)
		return
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(message)); err != nil {
		log.Printf("dock: write failed: %v", err)
	}
}
