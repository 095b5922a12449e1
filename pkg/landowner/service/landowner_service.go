package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"landlink/entities"
	"landlink/pkg/formvalue"
	"landlink/pkg/session"
)

const View = "landowner"

// DeletePrompt is the confirmation a client must acknowledge before a delete.
const DeletePrompt = "Are you sure you want to delete this land listing?"

var (
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrNotFound             = errors.New("land listing not found")
	ErrInvalidID            = errors.New("invalid land id")
)

// ValidationError names the form field that failed.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Field + ": " + e.Msg }

type ContactForm struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// LandForm is the add-land form as text.
type LandForm struct {
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	Location          string         `json:"location"`
	Area              formvalue.Text `json:"area"`
	PricePerAcre      formvalue.Text `json:"price_per_acre"`
	SoilType          string         `json:"soil_type"`
	WaterAvailability string         `json:"water_availability"`
}

type Dashboard struct {
	Profile *entities.Profile `json:"profile"`
	Form    ContactForm       `json:"form"`
	Lands   []entities.Land   `json:"lands"`
	Editing bool              `json:"editing"`
}

type LandownerService interface {
	Dashboard(ctx context.Context, s *session.Session) (*Dashboard, error)
	ToggleEditing(s *session.Session) bool
	SaveProfile(ctx context.Context, s *session.Session, form ContactForm) (*Dashboard, error)
	ListLands(ctx context.Context, s *session.Session) ([]entities.Land, error)
	// AddLand inserts the listing and returns the refetched list.
	AddLand(ctx context.Context, s *session.Session, form LandForm) ([]entities.Land, error)
	// DeleteLand requires confirmed=true and returns the refetched list.
	DeleteLand(ctx context.Context, s *session.Session, id string, confirmed bool) ([]entities.Land, error)
	ExportLands(ctx context.Context, s *session.Session, w io.Writer) error
}

// ParseLandForm validates the required fields and converts the text form
// into a row owned by ownerID. Blank optional fields become nil.
func ParseLandForm(form LandForm, ownerID string) (*entities.Land, error) {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		return nil, &ValidationError{"title", "is required"}
	}
	location := strings.TrimSpace(form.Location)
	if location == "" {
		return nil, &ValidationError{"location", "is required"}
	}
	if form.Area.Blank() {
		return nil, &ValidationError{"area", "is required"}
	}
	area, err := parseNumber(form.Area)
	if err != nil {
		return nil, &ValidationError{"area", err.Error()}
	}
	l := &entities.Land{
		OwnerID:           ownerID,
		Title:             title,
		Description:       form.Description,
		Location:          location,
		Area:              area,
		SoilType:          optional(form.SoilType),
		WaterAvailability: optional(form.WaterAvailability),
		Status:            entities.LandStatusAvailable,
	}
	if !form.PricePerAcre.Blank() {
		p, err := parseNumber(form.PricePerAcre)
		if err != nil {
			return nil, &ValidationError{"price_per_acre", err.Error()}
		}
		l.PricePerAcre = &p
	}
	return l, nil
}

func parseNumber(t formvalue.Text) (float64, error) {
	v, err := t.Float()
	if err != nil {
		return 0, fmt.Errorf("%q %w", t.String(), err)
	}
	return v, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
