package hotkeys

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/planewm/planewm/internal/config"
)

// Dispatcher runs one controller command parsed from a hotkey binding.
type Dispatcher interface {
	Dispatch(command string, args []string, out io.Writer) error
}

// x11Accessor is an optional interface for backends that expose X11
// internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
}

// Handler binds global keyboard shortcuts to controller commands.
type Handler struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	disp Dispatcher
}

var ignoreModsOnce sync.Once

// NewHandler creates a hotkey handler over the backend's X connection.
func NewHandler(backend any, disp Dispatcher) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
	}

	ignoreModsOnce.Do(func() {
		configureIgnoreMods(xu)
	})

	return &Handler{
		xu:   xu,
		root: root,
		disp: disp,
	}
}

// RegisterAll binds every configured hotkey. Bindings that fail to grab are
// logged and skipped so one conflict does not take down the rest.
func (h *Handler) RegisterAll(bindings []config.HotkeyConfig) {
	for _, b := range bindings {
		if err := h.Register(b.Key, b.Command); err != nil {
			log.Printf("hotkey %q: %v", b.Key, err)
		}
	}
}

// Register binds one key sequence to a command line, e.g.
// "mod4-h" -> "focus west".
func (h *Handler) Register(keySequence, commandLine string) error {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	command, args := fields[0], fields[1:]

	return h.RegisterFunc(keySequence, func() {
		if err := h.disp.Dispatch(command, args, io.Discard); err != nil {
			log.Printf("hotkey %q: %v", keySequence, err)
		}
	})
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return fmt.Errorf("no X connection to grab keys on")
	}
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	if xu == nil {
		return
	}
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
