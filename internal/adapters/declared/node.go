package declared

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/datagen/internal/core/ports"
)

// NodeID is the unique identifier for the declared provider factory Graft node.
const NodeID graft.ID = "adapter.declared"

func init() {
	graft.Register(graft.Node[ports.ProviderFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProviderFactory, error) {
			return NewFactory(), nil
		},
	})
}
