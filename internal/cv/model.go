package cv

// WorkExperience is one entry of the experiencia_laboral section.
type WorkExperience struct {
	Empresa     string `json:"empresa"`
	Cargo       string `json:"cargo"`
	Descripcion string `json:"descripcion"`
}

// Education is one entry of the educacion section. Dates are YYYY-MM-DD.
type Education struct {
	Universidad string `json:"universidad"`
	Carrera     string `json:"carrera"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
}

// Course is one entry of the cursos section. Curso holds an optional reference link.
type Course struct {
	NombreCurso string `json:"nombre_curso"`
	Descripcion string `json:"descripcion"`
	Curso       string `json:"curso"`
}

// SkillRef references a skill from the catalog by id.
type SkillRef struct {
	SkillID int64 `json:"id_habilidad"`
}

// LanguageRef references a language from the catalog by id.
type LanguageRef struct {
	LanguageID int64 `json:"id_idioma"`
}

// Payload is the full replacement CV submitted on a write. Absent sections
// default to empty, which clears that section.
type Payload struct {
	ExperienciaLaboral []WorkExperience `json:"experienciaLaboral"`
	Educacion          []Education      `json:"educacion"`
	Cursos             []Course         `json:"cursos"`
	Habilidades        []SkillRef       `json:"habilidades"`
	Idiomas            []LanguageRef    `json:"idiomas"`
}

// Document is the aggregate read model of all five CV sections for one profile.
// It is derived from the child tables and never mutated directly.
type Document struct {
	ProfileID          int64            `json:"id_usuario"`
	ExperienciaLaboral []WorkExperience `json:"experienciaLaboral"`
	Educacion          []Education      `json:"educacion"`
	Cursos             []Course         `json:"cursos"`
	Habilidades        []SkillRef       `json:"habilidades"`
	Idiomas            []LanguageRef    `json:"idiomas"`
}

// normalized returns a copy with nil sections replaced by empty slices so
// downstream code never branches on absent arrays.
func (p Payload) normalized() Payload {
	if p.ExperienciaLaboral == nil {
		p.ExperienciaLaboral = []WorkExperience{}
	}
	if p.Educacion == nil {
		p.Educacion = []Education{}
	}
	if p.Cursos == nil {
		p.Cursos = []Course{}
	}
	if p.Habilidades == nil {
		p.Habilidades = []SkillRef{}
	}
	if p.Idiomas == nil {
		p.Idiomas = []LanguageRef{}
	}
	return p
}
