package mcp

import (
	"encoding/json"

	"rapidmcp/internal/command"

	"github.com/mark3labs/mcp-go/mcp"
)

// handlerFunc answers one method. It returns either a result value or an error,
// never both.
type handlerFunc func(params json.RawMessage) (any, *RPCError)

// registerHandlers builds the method dispatch table.
func (s *Server) registerHandlers() {
	s.handlers = map[mcp.MCPMethod]handlerFunc{
		mcp.MethodInitialize: s.handleInitialize,
		mcp.MethodToolsList:  s.handleToolsList,
		mcp.MethodToolsCall:  s.handleToolsCall,
	}
}

func (s *Server) handleInitialize(_ json.RawMessage) (any, *RPCError) {
	result := mcp.InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities: mcp.ServerCapabilities{
			Tools: &struct {
				ListChanged bool `json:"listChanged,omitempty"`
			}{},
		},
		ServerInfo: mcp.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
	}
	return result, nil
}

func (s *Server) handleToolsList(_ json.RawMessage) (any, *RPCError) {
	commands := s.catalog.List()

	tools := make([]Tool, 0, len(commands))
	for _, cmd := range commands {
		tools = append(tools, toolFromCommand(cmd))
	}

	return ListToolsResult{Tools: tools}, nil
}

// toolFromCommand describes a command as an MCP tool. Declared parameters are
// not surfaced yet; the schema is an empty object.
func toolFromCommand(cmd *command.Command) Tool {
	return Tool{
		Name:        cmd.Name,
		Description: cmd.Description,
		InputSchema: InputSchema{
			Type:       "object",
			Properties: map[string]any{},
			Required:   []string{},
		},
	}
}

func (s *Server) handleToolsCall(params json.RawMessage) (any, *RPCError) {
	if params == nil {
		return nil, internalError("Missing params")
	}

	var call struct {
		Name json.RawMessage `json:"name"`
		// Arguments are accepted but not substituted into the prompt.
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(params, &call); err != nil {
		// params that are not an object carry no name either.
		return nil, internalError("Missing tool name")
	}

	var name string
	if len(call.Name) == 0 || json.Unmarshal(call.Name, &name) != nil || string(call.Name) == "null" {
		return nil, internalError("Missing tool name")
	}

	cmd, ok := s.catalog.Get(name)
	if !ok {
		return nil, internalError("Unknown tool: %s", name)
	}

	s.logger.Debug("Tool called", "name", name, "arguments", len(call.Arguments) > 0)

	return CallToolResult{Content: []mcp.TextContent{mcp.NewTextContent(cmd.Prompt)}}, nil
}
