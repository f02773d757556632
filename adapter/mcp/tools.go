package mcp

import (
	"errors"

	"github.com/felixgeelhaar/focusflow/adapter/cli"
	"github.com/felixgeelhaar/mcp-go"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	if err := registerTaskTools(srv, deps); err != nil {
		return err
	}
	if err := registerPriorityTools(srv, deps); err != nil {
		return err
	}
	if err := registerEnergyTools(srv, deps); err != nil {
		return err
	}

	return nil
}
