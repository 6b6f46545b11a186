package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/planewm/planewm/internal/config"
	"github.com/planewm/planewm/internal/controller"
	"github.com/planewm/planewm/internal/daemon"
	"github.com/planewm/planewm/internal/hotkeys"
	"github.com/planewm/planewm/internal/ipc"
	"github.com/planewm/planewm/internal/overlay"
	"github.com/planewm/planewm/internal/switcher"
	"github.com/planewm/planewm/internal/x11"
)

// controllerCommands are the dispatcher commands forwarded to the daemon.
var controllerCommands = map[string]bool{
	"focus":           true,
	"swap":            true,
	"warp":            true,
	"toggle":          true,
	"ratio":           true,
	"rotate":          true,
	"mirror":          true,
	"equalize":        true,
	"preselect":       true,
	"grid":            true,
	"padding":         true,
	"gap":             true,
	"offset":          true,
	"layout":          true,
	"serialize":       true,
	"deserialize":     true,
	"snapshot":        true,
	"send-to-desktop": true,
	"send-to-monitor": true,
	"focus-monitor":   true,
	"focus-window":    true,
	"close":           true,
	"query":           true,
}

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: planewm daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: planewm daemon")
			os.Exit(2)
		}
		runDaemon()
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		if controllerCommands[os.Args[1]] {
			os.Exit(runClientCommand(os.Args[1], os.Args[2:]))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: planewm <command> [operands]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the planewm daemon (foreground)")
	fmt.Fprintln(w, "  switch [backend]    Pick a window via rofi/fuzzel/wofi/dmenu and focus it")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Window commands (sent to the running daemon):")
	fmt.Fprintln(w, "  focus <target>      Focus window: north east south west prev next biggest")
	fmt.Fprintln(w, "  swap <target>       Exchange the focused window with the target")
	fmt.Fprintln(w, "  warp <target>       Re-insert the focused window at the target leaf")
	fmt.Fprintln(w, "  toggle <kind>       float sticky fullscreen parent split native-fullscreen")
	fmt.Fprintln(w, "  ratio <dir> [step]  Adjust the split ratio toward a direction")
	fmt.Fprintln(w, "  preselect <dir>     Preselect the next insertion region (or cancel)")
	fmt.Fprintln(w, "  grid r:c:x:y:w:h    Snap a floating window to a grid cell")
	fmt.Fprintln(w, "  close               Close the focused window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Workspace commands:")
	fmt.Fprintln(w, "  layout <mode>       Activate layout: bsp monocle float")
	fmt.Fprintln(w, "  rotate <degrees>    Rotate the tree: 90 180 270")
	fmt.Fprintln(w, "  mirror <axis>       Mirror the tree: vertical horizontal")
	fmt.Fprintln(w, "  equalize            Reset every split ratio to 0.5")
	fmt.Fprintln(w, "  padding <inc|dec>   Adjust the workspace inset")
	fmt.Fprintln(w, "  gap <inc|dec>       Adjust the inter-window gap")
	fmt.Fprintln(w, "  offset              Toggle the workspace offset on and off")
	fmt.Fprintln(w, "  serialize [path]    Write the workspace tree to a file")
	fmt.Fprintln(w, "  deserialize [path]  Load a workspace tree from a file")
	fmt.Fprintln(w, "  snapshot <op> [name]  Named trees in the config dir: save load list delete")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Movement commands:")
	fmt.Fprintln(w, "  send-to-desktop <n|prev|next>   Send the focused window to a desktop")
	fmt.Fprintln(w, "  send-to-monitor <n|prev|next>   Send the focused window to a monitor")
	fmt.Fprintln(w, "  focus-monitor <n|prev|next>     Focus a monitor")
	fmt.Fprintln(w, "  focus-window <id>               Focus a window by id")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Queries:")
	fmt.Fprintln(w, "  query <what> [arg]  window desktop mode windows monitor monitor-count")
	fmt.Fprintln(w, "                      desktops-for-monitor monitor-for-desktop tree")
}

// runSwitch shows a window picker over the daemon's window list and focuses
// the chosen window.
func runSwitch(args []string) int {
	backend := ""
	if len(args) > 0 {
		backend = args[0]
	}
	picker, err := switcher.New(backend)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	client := ipc.NewClient()
	out, err := client.Send("query", "windows")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	entries := switcher.ParseWindowList(out)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "no windows to switch to")
		return 1
	}

	wid, err := picker.Pick("window", entries)
	if errors.Is(err, switcher.ErrCancelled) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if _, err := client.Send("focus-window", fmt.Sprintf("0x%x", wid)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runClientCommand(command string, args []string) int {
	client := ipc.NewClient()
	output, err := client.Send(command, args...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if output != "" {
		fmt.Print(output)
	}
	return 0
}

// serialEvents funnels X event callbacks through the IPC command worker so
// window events never interleave with socket commands.
type serialEvents struct {
	ipc  *ipc.Server
	ctrl *controller.Controller
}

func (e *serialEvents) WindowCreated(windowID uint32) {
	e.ipc.Exec(func() { e.ctrl.WindowCreated(windowID) })
}

func (e *serialEvents) WindowDestroyed(windowID uint32) {
	e.ipc.Exec(func() { e.ctrl.WindowDestroyed(windowID) })
}

func (e *serialEvents) WorkspaceActivated(workspaceID int) {
	e.ipc.Exec(func() { e.ctrl.WorkspaceActivated(workspaceID) })
}

func (e *serialEvents) WorkspaceDestroyed(workspaceID int) {
	e.ipc.Exec(func() { e.ctrl.WorkspaceDestroyed(workspaceID) })
}

func runDaemon() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (layout: %s, hotkeys: %d)", cfg.DefaultLayout, len(cfg.Hotkeys))

	// Connect to display server
	conn, err := x11.NewConnection()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	backend := x11.NewBackendFromConnection(conn)
	defer backend.Disconnect()

	hints := overlay.NewManager(backend.XUtil(), backend.RootWindow(), cfg.PreselectColor, cfg.PreselectWidth)
	defer hints.Cleanup()

	ctrl := controller.New(backend, cfg, hints, nil)

	// Start IPC server
	ipcServer, err := ipc.NewServer(ctrl)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	// Hotkeys dispatch through the IPC worker, never directly into the
	// controller.
	hotkeyHandler := hotkeys.NewHandler(backend, ipcServer)
	hotkeyHandler.RegisterAll(cfg.Hotkeys)

	// Watch window and desktop events
	watcher := x11.NewWatcher(conn, &serialEvents{ipc: ipcServer, ctrl: ctrl})
	if err := watcher.Start(); err != nil {
		log.Fatalf("Failed to watch window events: %v", err)
	}

	// Adopt the windows already mapped on the active workspace.
	if workspace, err := backend.ActiveWorkspace(); err == nil {
		ipcServer.Exec(func() { ctrl.WorkspaceActivated(workspace) })
	} else {
		log.Printf("Warning: failed to resolve active workspace: %v", err)
	}

	// Repair layout drift from missed destroy notifications.
	reconcileCtx, stopReconciler := context.WithCancel(context.Background())
	reconciler := daemon.NewReconciler(0, ipcServer, ctrl.Reconcile)
	go reconciler.Run(reconcileCtx)

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down planewm daemon...")
		stopReconciler()
		ipcServer.Stop()
		hints.Cleanup()
		backend.Disconnect()
		os.Exit(0)
	}()

	log.Println("planewm daemon started successfully")
	backend.EventLoop()
}
