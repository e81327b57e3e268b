// Package mcp exposes xbgdump's capture pipeline as an MCP tool so MCP
// clients can grab the current desktop background without shelling out.
package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/xbgdump/internal/capture"
	"github.com/1broseidon/xbgdump/internal/config"
	"github.com/1broseidon/xbgdump/internal/encode"
	"github.com/1broseidon/xbgdump/internal/x11"
)

const (
	ServerName    = "xbgdump"
	ServerVersion = "0.1.0"
)

// Server is the MCP server wrapping the capture pipeline.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config

	// connect is swapped out in tests to avoid a live X server. The
	// returned func closes the connection.
	connect func() (capture.Source, func(), error)
}

// NewServer creates a new MCP server for background capture.
func NewServer(cfg *config.Config) *Server {
	s := &Server{config: cfg}
	s.connect = s.connectX11

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
		Name:        "capture_background",
		Description: "Capture the current X11 desktop background and return it as a base64-encoded PNG. On multi-monitor desktops, regions outside every monitor are transparent unless masking is disabled.",
	}, s.handleCaptureBackground)
}

func (s *Server) connectX11() (capture.Source, func(), error) {
	conn, err := x11.Connect()
	if err != nil {
		return nil, nil, err
	}
	return capture.NewX11Source(conn, s.config.Property), conn.Close, nil
}

func (s *Server) handleCaptureBackground(_ context.Context, _ *mcpsdk.CallToolRequest, args CaptureBackgroundInput) (*mcpsdk.CallToolResult, CaptureBackgroundOutput, error) {
	opts := capture.Options{
		Mask:                   s.config.Mask,
		KeepGoingWithoutLayout: s.config.IgnoreLayoutErrors,
	}
	if args.Mask != nil {
		opts.Mask = *args.Mask
	}
	maxWidth := s.config.MaxWidth
	if args.MaxWidth > 0 {
		maxWidth = args.MaxWidth
	}

	src, closeConn, err := s.connect()
	if err != nil {
		return nil, CaptureBackgroundOutput{}, fmt.Errorf("failed to connect to X11: %w", err)
	}
	defer closeConn()

	img, err := capture.Capture(src, opts)
	if err != nil {
		return nil, CaptureBackgroundOutput{}, err
	}

	var buf bytes.Buffer
	if err := encode.Encode(&buf, img, encode.Options{Format: encode.FormatPNG, MaxWidth: maxWidth}); err != nil {
		return nil, CaptureBackgroundOutput{}, fmt.Errorf("failed to encode image: %w", err)
	}

	return nil, CaptureBackgroundOutput{
		Width:      img.Width,
		Height:     img.Height,
		Format:     string(encode.FormatPNG),
		DataBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}
