package mcp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	// ProtocolVersion is the MCP revision announced by initialize.
	ProtocolVersion = "2024-11-05"

	// ServerName and ServerVersion identify this server in serverInfo.
	ServerName    = "rapid-mcp-server-rust"
	ServerVersion = "0.1.0"

	// ErrorCode is used for every error response, whatever the cause.
	ErrorCode = mcp.INTERNAL_ERROR
)

// Request is a decoded JSON-RPC request line.
type Request struct {
	JSONRPC string
	// ID holds the raw id bytes so it can be echoed without changing its type.
	ID     json.RawMessage
	Method string
	// Params is nil when the member is absent or null.
	Params json.RawMessage
}

// Response is a JSON-RPC response envelope. Exactly one of Result and Error is set.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// RPCError is the error member of a response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// internalError builds the error value every handler failure is reported with.
func internalError(format string, args ...any) *RPCError {
	return &RPCError{Code: ErrorCode, Message: fmt.Sprintf(format, args...)}
}

// Tool is the descriptor returned by tools/list.
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// InputSchema is the JSON schema advertised for a tool's arguments.
type InputSchema struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Required   []string       `json:"required"`
}

// ListToolsResult is the result of tools/list.
type ListToolsResult struct {
	Tools []Tool `json:"tools"`
}

// CallToolResult is the result of tools/call. mcp.CallToolResult marshals
// itself with json.Marshal, which escapes HTML in prompt text.
type CallToolResult struct {
	Content []mcp.TextContent `json:"content"`
}

var (
	errMissingVersion = errors.New("missing jsonrpc member")
	errMissingMethod  = errors.New("missing method member")
	errMissingID      = errors.New("missing id member")
	errInvalidID      = errors.New("id must be a number, string or null")
)

// wireRequest uses pointers to tell absent members from empty ones.
type wireRequest struct {
	JSONRPC *string         `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  *string         `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// DecodeRequest parses one frame. Any error means the frame is not a request
// this server answers.
func DecodeRequest(line []byte) (*Request, error) {
	var wire wireRequest
	if err := json.Unmarshal(line, &wire); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	switch {
	case wire.JSONRPC == nil:
		return nil, errMissingVersion
	case wire.Method == nil:
		return nil, errMissingMethod
	case len(wire.ID) == 0:
		return nil, errMissingID
	}

	switch wire.ID[0] {
	case '{', '[', 't', 'f':
		return nil, errInvalidID
	}

	req := &Request{
		JSONRPC: *wire.JSONRPC,
		ID:      wire.ID,
		Method:  *wire.Method,
	}
	if len(wire.Params) > 0 && !bytes.Equal(wire.Params, []byte("null")) {
		req.Params = wire.Params
	}

	return req, nil
}

// newResult builds a success envelope.
func newResult(id json.RawMessage, result any) *Response {
	return &Response{JSONRPC: mcp.JSONRPC_VERSION, ID: id, Result: result}
}

// newError builds an error envelope.
func newError(id json.RawMessage, err *RPCError) *Response {
	return &Response{JSONRPC: mcp.JSONRPC_VERSION, ID: id, Error: err}
}
