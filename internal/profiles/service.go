package profiles

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidInput = errors.New("invalid profile input")

// Service exposes profile operations over a Repo.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Create(ctx context.Context, profile Profile) (Profile, error) {
	if err := validate(profile); err != nil {
		return Profile{}, err
	}
	return s.Repo.Create(ctx, profile)
}

func (s *Service) List(ctx context.Context) ([]Profile, error) {
	return s.Repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Profile, error) {
	if id <= 0 {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, id)
}

// ResolveAuthID maps an auth identity to its profile. ErrNotFound here means the
// user has not created a profile yet, not a server fault.
func (s *Service) ResolveAuthID(ctx context.Context, authID int64) (Profile, error) {
	if authID <= 0 {
		return Profile{}, ErrInvalidInput
	}
	return s.Repo.GetByAuthID(ctx, authID)
}

func (s *Service) Update(ctx context.Context, profile Profile) (Profile, error) {
	if profile.ID <= 0 {
		return Profile{}, ErrInvalidInput
	}
	if err := validate(profile); err != nil {
		return Profile{}, err
	}
	return s.Repo.Update(ctx, profile)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.Repo.Delete(ctx, id)
}

func validate(profile Profile) error {
	if profile.AuthID <= 0 || profile.AreaID <= 0 || profile.Salario <= 0 {
		return ErrInvalidInput
	}
	if strings.TrimSpace(profile.CodigoPostal) == "" ||
		strings.TrimSpace(profile.Estado) == "" ||
		strings.TrimSpace(profile.Municipio) == "" ||
		strings.TrimSpace(profile.Colonia) == "" {
		return ErrInvalidInput
	}
	return nil
}
