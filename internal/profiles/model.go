package profiles

// Profile is the internal user profile, distinct from the auth identity that
// references it through AuthID.
type Profile struct {
	ID           int64   `json:"id"`
	AuthID       int64   `json:"id_userauth"`
	Salario      float64 `json:"salario"`
	AreaID       int64   `json:"id_area"`
	CodigoPostal string  `json:"codigo_postal"`
	Estado       string  `json:"estado"`
	Municipio    string  `json:"municipio"`
	Colonia      string  `json:"colonia"`
}
