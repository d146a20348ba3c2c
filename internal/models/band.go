package models

// Band is an allowlist/catalog entry. Identity is the name exactly as
// configured; uniqueness is enforced by the bands table, not here.
type Band struct {
	ID    int    `json:"id,omitempty" db:"id"`
	Name  string `json:"name" db:"name" validate:"required"`
	Genre string `json:"genre" db:"genre"`
}

// NewBand validates the required fields and returns the band.
func NewBand(name, genre string) (Band, error) {
	b := Band{Name: name, Genre: genre}
	if err := validate.Struct(b); err != nil {
		return Band{}, err
	}
	return b, nil
}
