package app

import (
	"context"

	"go.trai.ch/datagen/internal/core/ports"
)

// Components contains the initialized application components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	// Shutdown flushes telemetry. It may be nil.
	Shutdown func(context.Context) error
}
