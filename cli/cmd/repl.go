package cmd

import (
	"context"

	"github.com/ardnew/dice/cli/cmd/repl"
	"github.com/ardnew/dice/log"
)

// Repl starts the interactive prompt.
type Repl struct {
	History string `default:"${cache}/history.utf8" help:"History file" type:"path"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	return repl.Run(ctx, r.History, log.Default())
}
