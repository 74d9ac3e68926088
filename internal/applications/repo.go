package applications

import (
	"context"
	"encoding/json"
)

// Repo lists job applications for a profile. The aggregate is produced by a
// server-side SQL function and treated as an opaque JSON document here.
type Repo interface {
	// ListByAuthID returns the aggregate for the given auth identity, or nil
	// when the identity has no applications (or no profile at all).
	ListByAuthID(ctx context.Context, authID int64) (json.RawMessage, error)
}
