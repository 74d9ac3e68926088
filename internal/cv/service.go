package cv

import (
	"context"
	"errors"

	"github.com/UrielYanez/ms-users/internal/profiles"
)

// ProfileResolver maps an auth identity to the internal profile record.
type ProfileResolver interface {
	GetByAuthID(ctx context.Context, authID int64) (profiles.Profile, error)
}

// Service orchestrates CV reads, the synchronization write and PDF export.
type Service struct {
	Profiles ProfileResolver
	Repo     Repo
}

func NewService(resolver ProfileResolver, repo Repo) *Service {
	return &Service{Profiles: resolver, Repo: repo}
}

// Sync replaces the five CV sections for the profile behind authID with the
// payload's content, all or nothing. Resolution failure aborts before any
// write; the returned profile id is the internal one, not authID.
func (s *Service) Sync(ctx context.Context, authID int64, payload Payload) (int64, error) {
	profile, err := s.resolve(ctx, authID)
	if err != nil {
		return 0, err
	}
	if err := s.Repo.Replace(ctx, profile.ID, payload); err != nil {
		return 0, err
	}
	return profile.ID, nil
}

// GetDocument returns the aggregate CV for the profile behind authID.
func (s *Service) GetDocument(ctx context.Context, authID int64) (Document, error) {
	profile, err := s.resolve(ctx, authID)
	if err != nil {
		return Document{}, err
	}
	return s.Repo.GetDocument(ctx, profile.ID)
}

// ExportPDF renders the aggregate CV as a PDF. Rendering failures are server
// faults: the document originates server-side.
func (s *Service) ExportPDF(ctx context.Context, authID int64) ([]byte, error) {
	doc, err := s.GetDocument(ctx, authID)
	if err != nil {
		return nil, err
	}
	return RenderPDF(doc)
}

func (s *Service) resolve(ctx context.Context, authID int64) (profiles.Profile, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return profiles.Profile{}, ErrNotFound
		}
		return profiles.Profile{}, err
	}
	return profile, nil
}
