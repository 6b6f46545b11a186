package mcp

// CommandInput is the input for the wm_command tool.
type CommandInput struct {
	Command string   `json:"command" jsonschema:"required,Controller command name (e.g. focus, swap, layout)"`
	Args    []string `json:"args,omitempty" jsonschema:"Command operands, passed verbatim to the daemon's dispatcher"`
}

// CommandOutput is the output for the wm_command tool.
type CommandOutput struct {
	Output string `json:"output,omitempty"`
}

// QueryInput is the input for the wm_query tool.
type QueryInput struct {
	What string `json:"what" jsonschema:"required,Query name: window, desktop, mode, windows, monitor, monitor-count, desktops-for-monitor, monitor-for-desktop, tree"`
	Arg  string `json:"arg,omitempty" jsonschema:"Optional query operand: a window attribute (id/owner/name/tag/float), a 0x-prefixed window id, or a 1-indexed monitor/desktop number"`
}

// QueryOutput is the output for the wm_query tool.
type QueryOutput struct {
	Output string `json:"output"`
}

// FocusInput is the input for the focus_window tool.
type FocusInput struct {
	Target string `json:"target" jsonschema:"required,Focus target: north, east, south, west, prev, next, biggest"`
}

// MoveInput is the input for the move_window tool.
type MoveInput struct {
	Mode   string `json:"mode" jsonschema:"required,Move mode: swap exchanges windows in place; warp re-inserts at the target leaf"`
	Target string `json:"target" jsonschema:"required,Move target: north, east, south, west, prev, next, biggest"`
}

// SetLayoutInput is the input for the set_layout tool.
type SetLayoutInput struct {
	Mode string `json:"mode" jsonschema:"required,Layout mode: bsp, monocle, float"`
}

// ToggleInput is the input for the toggle_window tool.
type ToggleInput struct {
	Kind string `json:"kind" jsonschema:"required,Toggle kind: float, sticky, fullscreen, parent, split, native-fullscreen"`
}

// StatusOutput reports success for commands that produce no query output.
type StatusOutput struct {
	Status string `json:"status"`
}

// WindowLine describes one visible window.
type WindowLine struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowLine `json:"windows"`
}

// TreeOutput is the output for the workspace_tree tool.
type TreeOutput struct {
	Tree string `json:"tree"`
}
