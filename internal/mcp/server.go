package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"rapidmcp/internal/command"
	"rapidmcp/internal/logging"

	"github.com/mark3labs/mcp-go/mcp"
)

// Catalog is the read-only view of the commands the server exposes.
// *command.Registry satisfies it.
type Catalog interface {
	Get(name string) (*command.Command, bool)
	List() []*command.Command
}

// Server answers MCP requests from a command catalog.
type Server struct {
	catalog  Catalog
	logger   *logging.AppLogger
	handlers map[mcp.MCPMethod]handlerFunc
}

// NewServer creates a server backed by catalog.
func NewServer(catalog Catalog, logger *logging.AppLogger) *Server {
	s := &Server{
		catalog: catalog,
		logger:  logger,
	}
	s.registerHandlers()
	return s
}

// Serve runs the request loop until in is exhausted.
//
// Each non-blank line of in is decoded as a request and answered with exactly
// one line on out, flushed before the next line is read. Lines that do not
// decode are dropped. Serve returns nil at end of input and a wrapped error
// when reading or writing fails.
func (s *Server) Serve(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)

	for {
		line, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read request: %w", readErr)
		}

		if resp := s.handleLine(line); resp != nil {
			if err := writeResponse(writer, resp); err != nil {
				return err
			}
		}

		if readErr != nil {
			s.logger.Debug("Input closed, stopping server")
			return nil
		}
	}
}

// handleLine turns one raw input line into a response, or nil when the line
// is blank or not a valid request.
func (s *Server) handleLine(line []byte) *Response {
	line = bytes.TrimRight(line, "\r\n")
	if len(bytes.TrimSpace(line)) == 0 {
		return nil
	}

	req, err := DecodeRequest(line)
	if err != nil {
		s.logger.Debug("Dropping malformed request", "error", err)
		return nil
	}

	return s.Handle(req)
}

// Handle dispatches a decoded request to its method handler.
func (s *Server) Handle(req *Request) *Response {
	defer s.logger.LogPerformance(req.Method, time.Now())

	handler, ok := s.handlers[mcp.MCPMethod(req.Method)]
	if !ok {
		s.logger.Debug("Unknown method", "method", req.Method)
		return newError(req.ID, internalError("Unknown method: %s", req.Method))
	}

	result, rpcErr := handler(req.Params)
	if rpcErr != nil {
		s.logger.Debug("Request failed", "method", req.Method, "error", rpcErr.Message)
		return newError(req.ID, rpcErr)
	}

	return newResult(req.ID, result)
}

// writeResponse encodes resp as one line. HTML characters are left unescaped.
func writeResponse(w *bufio.Writer, resp *Response) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}

	return nil
}
