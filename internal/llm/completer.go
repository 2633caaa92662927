// Package llm wraps the external text-completion service behind a small
// blocking interface.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by Complete when no credential was configured.
var ErrUnavailable = errors.New("completion service not configured")

// Completer is an opaque text-completion capability.
type Completer interface {
	// IsAvailable is true only when a credential was configured.
	IsAvailable() bool
	// Complete sends a single prompt and returns the raw model text.
	Complete(ctx context.Context, prompt string) (string, error)
}
