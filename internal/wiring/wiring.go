// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/datagen/internal/adapters/cas"
	_ "go.trai.ch/datagen/internal/adapters/config"
	_ "go.trai.ch/datagen/internal/adapters/declared"
	_ "go.trai.ch/datagen/internal/adapters/fs"
	_ "go.trai.ch/datagen/internal/adapters/logger"
	_ "go.trai.ch/datagen/internal/adapters/telemetry"
	_ "go.trai.ch/datagen/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/datagen/internal/app"
	_ "go.trai.ch/datagen/internal/engine/hashcache"
	_ "go.trai.ch/datagen/internal/engine/pipeline"
)
