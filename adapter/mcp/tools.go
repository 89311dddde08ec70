package mcp

import (
	"context"
	"errors"
	"sync"

	"github.com/felixgeelhaar/mcp-go"

	"github.com/felixgeelhaar/taskdeck/adapter/cli"
	"github.com/felixgeelhaar/taskdeck/pkg/observability"
)

// ToolDependencies provides handlers and context for MCP tools.
type ToolDependencies struct {
	App *cli.App

	// Mu serializes every tool and resource call onto App. The HTTP
	// transport may run handlers concurrently while the task store is
	// single-threaded. Nil gets a lock private to the registration.
	Mu *sync.Mutex
}

type session struct {
	app *cli.App
	mu  *sync.Mutex
}

func newSession(deps ToolDependencies) *session {
	mu := deps.Mu
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &session{app: deps.App, mu: mu}
}

// begin takes the session lock and tags ctx with a request id so store
// logs can be traced back to one tool call.
func (s *session) begin(ctx context.Context) (context.Context, func()) {
	s.mu.Lock()
	return observability.NewRequestContext(ctx), s.mu.Unlock
}

// RegisterCLITools registers MCP tools that mirror CLI functionality.
func RegisterCLITools(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return errors.New("server is required")
	}
	if deps.App == nil {
		return errors.New("app is required")
	}

	s := newSession(deps)
	if err := registerCoreTools(srv, s); err != nil {
		return err
	}
	if err := registerTaskTools(srv, s); err != nil {
		return err
	}
	return nil
}
