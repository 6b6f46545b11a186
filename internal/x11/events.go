package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// EventHandler receives window lifecycle and workspace notifications
// derived from root window property changes.
type EventHandler interface {
	WindowCreated(windowID uint32)
	WindowDestroyed(windowID uint32)
	WorkspaceActivated(workspaceID int)
	WorkspaceDestroyed(workspaceID int)
}

// Watcher translates root PropertyNotify events into handler callbacks.
// Created and destroyed windows are found by diffing _NET_CLIENT_LIST
// between notifications. Callbacks run on the X event loop goroutine.
type Watcher struct {
	conn    *Connection
	handler EventHandler

	known   map[xproto.Window]struct{}
	desktop int
	count   int
}

// NewWatcher creates a watcher over the connection's root window.
func NewWatcher(conn *Connection, handler EventHandler) *Watcher {
	return &Watcher{
		conn:    conn,
		handler: handler,
		known:   make(map[xproto.Window]struct{}),
	}
}

// Start snapshots current state and subscribes to root property changes.
func (w *Watcher) Start() error {
	if err := xwindow.New(w.conn.XUtil, w.conn.Root).Listen(xproto.EventMaskPropertyChange); err != nil {
		return fmt.Errorf("failed to listen on root window: %w", err)
	}

	w.snapshot()

	xevent.PropertyNotifyFun(func(xu *xgbutil.XUtil, ev xevent.PropertyNotifyEvent) {
		name, err := xprop.AtomName(xu, ev.Atom)
		if err != nil {
			return
		}
		switch name {
		case "_NET_CLIENT_LIST":
			w.diffClients()
		case "_NET_CURRENT_DESKTOP":
			w.desktopChanged()
		case "_NET_NUMBER_OF_DESKTOPS":
			w.countChanged()
		}
	}).Connect(w.conn.XUtil, w.conn.Root)

	return nil
}

func (w *Watcher) snapshot() {
	if clients, err := ewmh.ClientListGet(w.conn.XUtil); err == nil {
		for _, win := range clients {
			w.known[win] = struct{}{}
		}
	}
	if d, err := w.conn.CurrentDesktop(); err == nil {
		w.desktop = d
	}
	if n, err := w.conn.DesktopCount(); err == nil {
		w.count = n
	}
}

func (w *Watcher) diffClients() {
	clients, err := ewmh.ClientListGet(w.conn.XUtil)
	if err != nil {
		return
	}

	current := make(map[xproto.Window]struct{}, len(clients))
	for _, win := range clients {
		current[win] = struct{}{}
		if _, ok := w.known[win]; !ok {
			w.handler.WindowCreated(uint32(win))
		}
	}
	for win := range w.known {
		if _, ok := current[win]; !ok {
			w.handler.WindowDestroyed(uint32(win))
		}
	}
	w.known = current
}

func (w *Watcher) desktopChanged() {
	d, err := w.conn.CurrentDesktop()
	if err != nil || d == w.desktop {
		return
	}
	w.desktop = d
	w.handler.WorkspaceActivated(d)
}

func (w *Watcher) countChanged() {
	n, err := w.conn.DesktopCount()
	if err != nil || n == w.count {
		return
	}
	for ws := n; ws < w.count; ws++ {
		w.handler.WorkspaceDestroyed(ws)
	}
	w.count = n
}
