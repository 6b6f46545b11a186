package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/planewm/planewm/internal/ipc"
)

const (
	ServerName    = "planewm"
	ServerVersion = "0.1.0"
)

// Server exposes the window controller's command surface as MCP tools.
// Every tool delegates to the running daemon over the IPC socket, so the
// MCP process itself holds no window state.
type Server struct {
	mcpServer *mcpsdk.Server
	client    *ipc.Client
}

// NewServer creates an MCP server backed by the daemon's IPC socket.
func NewServer() *Server {
	s := &Server{
		client: ipc.NewClient(),
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "wm_command",
		Description: "Run one window controller command on the daemon. Commands: focus, swap, warp, toggle, ratio, rotate, mirror, equalize, preselect, grid, padding, gap, offset, layout, serialize, deserialize, snapshot, send-to-desktop, send-to-monitor, focus-monitor, focus-window, close. Args carry the command operands, e.g. command \"focus\" with args [\"west\"].",
	}, s.handleCommand)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "wm_query",
		Description: "Run one query against the daemon and return its text output. Queries: window, desktop, mode, windows, monitor, monitor-count, desktops-for-monitor, monitor-for-desktop, tree. Optional arg selects a window attribute (id/owner/name/tag/float), a window id, or a monitor/desktop number.",
	}, s.handleQuery)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "focus_window",
		Description: "Focus a window by direction or cycle order. Targets: north, east, south, west, prev, next, biggest.",
	}, s.handleFocus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move the focused window within the tiling tree. Mode \"swap\" exchanges the focused window with the target; mode \"warp\" re-inserts it at the target leaf. Targets: north, east, south, west, prev, next, biggest.",
	}, s.handleMove)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_layout",
		Description: "Activate a layout mode on the focused workspace. Modes: bsp, monocle, float.",
	}, s.handleSetLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_window",
		Description: "Toggle a state on the focused window. Kinds: float, sticky, fullscreen (tree zoom to workspace), parent (tree zoom to parent), split (flip the parent split axis), native-fullscreen.",
	}, s.handleToggle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List the visible windows on the focused workspace, one per line as \"id, owner, name\".",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "workspace_tree",
		Description: "Return the focused workspace's tiling tree as an s-expression, or \"?\" when the workspace is not in bsp mode.",
	}, s.handleTree)
}
