package profiles

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "profile not found" }

// Repo defines persistence operations for profiles.
type Repo interface {
	Create(ctx context.Context, profile Profile) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	GetByID(ctx context.Context, id int64) (Profile, error)
	GetByAuthID(ctx context.Context, authID int64) (Profile, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
	Delete(ctx context.Context, id int64) error
}
