package cv

import "context"

// Repo defines persistence operations for CV documents.
type Repo interface {
	// GetDocument assembles the aggregate document for a profile.
	GetDocument(ctx context.Context, profileID int64) (Document, error)
	// Replace atomically swaps all five child-table extents for a profile with
	// the payload's content. On any failure nothing is changed.
	Replace(ctx context.Context, profileID int64, payload Payload) error
}
