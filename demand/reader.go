package demand

import (
	"context"
)

// Reader lists the internal demand eligible to bid right now: active,
// budgeted sources with a positive ceiling price. Implementations return a
// consistent snapshot per call and are safe for concurrent use.
type Reader interface {
	ListActiveSources(ctx context.Context) ([]Source, error)
}
