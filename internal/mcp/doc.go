// Package mcp implements the Model Context Protocol server for rapidmcp.
//
// The server exposes every command of a command.Registry as an MCP tool. It
// speaks JSON-RPC 2.0 over a line-delimited stream: one request object per
// input line, one response object per output line.
//
// # Methods
//
//   - initialize: returns the fixed protocol version, a tools capability and
//     the server identity.
//   - tools/list: returns one tool per command with a placeholder input
//     schema (an object with no properties).
//   - tools/call: returns the command's prompt template as a single text
//     content block. Arguments are accepted and ignored.
//
// Every handler failure and every unknown method is answered with error code
// -32603. Lines that cannot be decoded as a request, including frames without
// an "id" member, are dropped without a response.
//
// # Usage
//
// The server is started as a subprocess by an MCP host:
//
//	rapidmcp --commands-dir ./commands
//
// It reads requests from stdin and writes responses to stdout until stdin is
// closed. Diagnostics go to stderr.
//
// # Concurrency
//
// Requests are handled one at a time in arrival order and each response is
// flushed before the next line is read.
package mcp
