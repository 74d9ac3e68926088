package cv

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo. When skill or language
// catalogs are seeded it enforces referential integrity the way the store's
// foreign keys would; with empty catalogs every reference is accepted.
type MemoryRepo struct {
	mu        sync.RWMutex
	data      map[int64]Payload // profile id -> stored sections
	skills    map[int64]struct{}
	languages map[int64]struct{}
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:      make(map[int64]Payload),
		skills:    make(map[int64]struct{}),
		languages: make(map[int64]struct{}),
	}
}

// SeedSkills registers valid skill catalog ids.
func (r *MemoryRepo) SeedSkills(ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.skills[id] = struct{}{}
	}
}

// SeedLanguages registers valid language catalog ids.
func (r *MemoryRepo) SeedLanguages(ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range ids {
		r.languages[id] = struct{}{}
	}
}

func (r *MemoryRepo) Replace(ctx context.Context, profileID int64, payload Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload = payload.normalized()

	r.mu.Lock()
	defer r.mu.Unlock()

	// Validate every reference before touching stored state so a failure
	// leaves the previous sections intact, like the transactional rollback.
	if len(r.skills) > 0 {
		for _, ref := range payload.Habilidades {
			if _, ok := r.skills[ref.SkillID]; !ok {
				return &ConstraintError{Table: tableHabilidades, Constraint: "usuarios_habilidades_id_habilidad_fkey", Detail: "unknown id_habilidad"}
			}
		}
	}
	if len(r.languages) > 0 {
		for _, ref := range payload.Idiomas {
			if _, ok := r.languages[ref.LanguageID]; !ok {
				return &ConstraintError{Table: tableIdiomas, Constraint: "usuarios_idiomas_id_idioma_fkey", Detail: "unknown id_idioma"}
			}
		}
	}

	r.data[profileID] = payload
	return nil
}

func (r *MemoryRepo) GetDocument(ctx context.Context, profileID int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.data[profileID].normalized()
	return Document{
		ProfileID:          profileID,
		ExperienciaLaboral: append([]WorkExperience{}, stored.ExperienciaLaboral...),
		Educacion:          append([]Education{}, stored.Educacion...),
		Cursos:             append([]Course{}, stored.Cursos...),
		Habilidades:        append([]SkillRef{}, stored.Habilidades...),
		Idiomas:            append([]LanguageRef{}, stored.Idiomas...),
	}, nil
}
