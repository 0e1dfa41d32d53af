package domain

import (
	"fmt"
	"strings"
	"time"
)

// Model is the closed set of figure lines in the catalog.
type Model string

const (
	ModelMarvel Model = "MARVEL"
	ModelDisney Model = "DISNEY"
	ModelAnime  Model = "ANIME"
	ModelOther  Model = "OTROS"
)

// ParseModel converts a wire string into a Model.
func ParseModel(s string) (Model, error) {
	switch Model(strings.ToUpper(strings.TrimSpace(s))) {
	case ModelMarvel:
		return ModelMarvel, nil
	case ModelDisney:
		return ModelDisney, nil
	case ModelAnime:
		return ModelAnime, nil
	case ModelOther:
		return ModelOther, nil
	}
	return "", fmt.Errorf("%w: unknown model %q", ErrFunkoNotValid, s)
}

const releaseDateLayout = "2006-01-02"

// Date is a calendar date marshalled as "2006-01-02" on the wire.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(releaseDateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(releaseDateLayout, s)
	if err != nil {
		return fmt.Errorf("release date: %w", err)
	}
	d.Time = t
	return nil
}

// Funko is the catalog aggregate.
type Funko struct {
	ID          string    `json:"id" bson:"_id,omitempty" validate:"omitempty,uuid4"`
	Number      int64     `json:"number" bson:"number"`
	Name        string    `json:"name" bson:"name" validate:"required"`
	Model       Model     `json:"model" bson:"model" validate:"required,oneof=MARVEL DISNEY ANIME OTROS"`
	Price       float64   `json:"price" bson:"price" validate:"gte=0"`
	ReleaseDate Date      `json:"release_date" bson:"release_date"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ReleaseYear returns the calendar year of the release date.
func (f Funko) ReleaseYear() int {
	return f.ReleaseDate.Year()
}
