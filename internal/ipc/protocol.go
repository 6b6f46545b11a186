package ipc

import (
	"encoding/json"
	"fmt"
)

// Request is one controller command sent from client to daemon. Args carry
// the command operands verbatim; the daemon's dispatcher parses them.
type Request struct {
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// Response is the daemon's reply. Output holds query results as the
// newline-delimited text the query surface produced.
type Response struct {
	Status string `json:"status"` // "OK" or "ERROR"
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// NewOKResponse creates a successful response carrying query output.
func NewOKResponse(output string) *Response {
	return &Response{Status: "OK", Output: output}
}

// NewErrorResponse creates an error response with a message.
func NewErrorResponse(errMsg string) *Response {
	return &Response{Status: "ERROR", Error: errMsg}
}

// ParseRequest parses a request from JSON bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("request has no command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes.
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
