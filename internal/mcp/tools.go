package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleCommand(_ context.Context, _ *mcpsdk.CallToolRequest, args CommandInput) (*mcpsdk.CallToolResult, CommandOutput, error) {
	if strings.TrimSpace(args.Command) == "" {
		return nil, CommandOutput{}, fmt.Errorf("command is required")
	}
	out, err := s.client.Send(args.Command, args.Args...)
	if err != nil {
		return nil, CommandOutput{}, err
	}
	return nil, CommandOutput{Output: out}, nil
}

func (s *Server) handleQuery(_ context.Context, _ *mcpsdk.CallToolRequest, args QueryInput) (*mcpsdk.CallToolResult, QueryOutput, error) {
	if strings.TrimSpace(args.What) == "" {
		return nil, QueryOutput{}, fmt.Errorf("query name is required")
	}
	queryArgs := []string{args.What}
	if args.Arg != "" {
		queryArgs = append(queryArgs, args.Arg)
	}
	out, err := s.client.Send("query", queryArgs...)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, QueryOutput{Output: out}, nil
}

func (s *Server) handleFocus(_ context.Context, _ *mcpsdk.CallToolRequest, args FocusInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	return s.runStatusCommand("focus", args.Target)
}

func (s *Server) handleMove(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	switch args.Mode {
	case "swap", "warp":
	default:
		return nil, StatusOutput{}, fmt.Errorf("unknown move mode %q (want swap or warp)", args.Mode)
	}
	return s.runStatusCommand(args.Mode, args.Target)
}

func (s *Server) handleSetLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args SetLayoutInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	return s.runStatusCommand("layout", args.Mode)
}

func (s *Server) handleToggle(_ context.Context, _ *mcpsdk.CallToolRequest, args ToggleInput) (*mcpsdk.CallToolResult, StatusOutput, error) {
	return s.runStatusCommand("toggle", args.Kind)
}

func (s *Server) handleListWindows(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	out, err := s.client.Send("query", "windows")
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	return nil, ListWindowsOutput{Windows: parseWindowLines(out)}, nil
}

func (s *Server) handleTree(_ context.Context, _ *mcpsdk.CallToolRequest, _ struct{}) (*mcpsdk.CallToolResult, TreeOutput, error) {
	out, err := s.client.Send("query", "tree")
	if err != nil {
		return nil, TreeOutput{}, err
	}
	return nil, TreeOutput{Tree: strings.TrimSpace(out)}, nil
}

func (s *Server) runStatusCommand(command string, operand string) (*mcpsdk.CallToolResult, StatusOutput, error) {
	if strings.TrimSpace(operand) == "" {
		return nil, StatusOutput{}, fmt.Errorf("%s: operand is required", command)
	}
	if _, err := s.client.Send(command, operand); err != nil {
		return nil, StatusOutput{}, err
	}
	return nil, StatusOutput{Status: "ok"}, nil
}

// parseWindowLines splits the daemon's "id, owner, name" window listing.
// The name field may itself contain commas, so only the first two commas
// delimit fields.
func parseWindowLines(output string) []WindowLine {
	var windows []WindowLine
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, ", ", 3)
		w := WindowLine{ID: parts[0]}
		if len(parts) > 1 {
			w.Owner = parts[1]
		}
		if len(parts) > 2 {
			w.Name = parts[2]
		}
		windows = append(windows, w)
	}
	return windows
}
