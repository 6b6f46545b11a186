package switcher

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Chooser picks one window from a list.
type Chooser interface {
	Pick(prompt string, entries []Entry) (uint32, error)
}

// PromptPicker lists the windows on the controlling terminal and reads the
// selection as a number. It is the fallback when no graphical launcher is
// installed.
type PromptPicker struct {
	in    io.Reader
	out   io.Writer
	width func() int
}

// NewPromptPicker returns a terminal picker, or an error when stdin is not a
// terminal.
func NewPromptPicker() (*PromptPicker, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("switcher: stdin is not a terminal")
	}
	return &PromptPicker{
		in:  os.Stdin,
		out: os.Stderr,
		width: func() int {
			w, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || w <= 0 {
				return 80
			}
			return w
		},
	}, nil
}

// Pick shows a numbered window list and returns the chosen window's id. An
// empty line or "q" cancels.
func (p *PromptPicker) Pick(prompt string, entries []Entry) (uint32, error) {
	if len(entries) == 0 {
		return 0, fmt.Errorf("switcher: no windows to pick from")
	}
	width := p.width()
	for i, e := range entries {
		fmt.Fprintln(p.out, truncate(fmt.Sprintf("%2d  %s", i+1, e.label()), width))
	}
	fmt.Fprintf(p.out, "%s> ", prompt)

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && line == "" {
		return 0, ErrCancelled
	}
	line = strings.TrimSpace(line)
	if line == "" || line == "q" {
		return 0, ErrCancelled
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(entries) {
		return 0, fmt.Errorf("switcher: no window %q", line)
	}
	return entries[n-1].ID, nil
}

func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
