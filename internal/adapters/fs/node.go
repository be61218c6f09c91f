package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/spin/internal/core/ports"
)

// HasherNodeID is the unique identifier for the content hasher Graft node.
const HasherNodeID graft.ID = "adapter.fs.hasher"

func init() {
	graft.Register(graft.Node[ports.ChangeDetector]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChangeDetector, error) {
			return NewHasher(), nil
		},
	})
}
