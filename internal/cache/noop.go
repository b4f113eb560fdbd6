package cache

import (
	"context"
	"time"
)

// Noop используется при запуске без Redis: Get всегда промахивается,
// Set и Invalidate ничего не делают.
type Noop struct{}

func (Noop) Get(_ context.Context, _ string, _ any) (bool, error)          { return false, nil }
func (Noop) Set(_ context.Context, _ string, _ any, _ time.Duration) error { return nil }
func (Noop) Invalidate(_ context.Context, _ string) error                  { return nil }
