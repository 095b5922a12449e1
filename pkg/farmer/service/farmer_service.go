package service

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"landlink/entities"
	"landlink/pkg/formvalue"
	"landlink/pkg/session"
)

// View is the edit-mode key of the farmer dashboard on a session.
const View = "farmer"

// ProfileForm is the editable projection of Profile + FarmerProfile, kept as
// text the way the form holds it.
type ProfileForm struct {
	Phone           string         `json:"phone"`
	Address         string         `json:"address"`
	FarmSize        formvalue.Text `json:"farm_size"`
	CropTypes       string         `json:"crop_types"`
	ExperienceYears formvalue.Text `json:"experience_years"`
}

type Dashboard struct {
	Profile       *entities.Profile       `json:"profile"`
	FarmerProfile *entities.FarmerProfile `json:"farmer_profile"`
	Form          ProfileForm             `json:"form"`
	Lands         []entities.Land         `json:"lands"`
	Editing       bool                    `json:"editing"`
}

type FarmerService interface {
	Dashboard(ctx context.Context, s *session.Session) (*Dashboard, error)
	AvailableLands(ctx context.Context) ([]entities.Land, error)
	ToggleEditing(s *session.Session) bool
	// SaveProfile writes both profile rows. A *SaveError names the update(s)
	// that failed; the dashboard is still returned when it could be refetched.
	SaveProfile(ctx context.Context, s *session.Session, form ProfileForm) (*Dashboard, error)
}

// SaveError reports which of the two independent profile updates failed.
type SaveError struct {
	Profile       error
	FarmerProfile error
}

func (e *SaveError) Failed() []string {
	var out []string
	if e.Profile != nil {
		out = append(out, "profile")
	}
	if e.FarmerProfile != nil {
		out = append(out, "farmer_profile")
	}
	return out
}

func (e *SaveError) Error() string {
	return "save failed for " + strings.Join(e.Failed(), ", ") + ": " + errors.Join(e.Profile, e.FarmerProfile).Error()
}

func (e *SaveError) Unwrap() []error {
	var out []error
	for _, err := range []error{e.Profile, e.FarmerProfile} {
		if err != nil {
			out = append(out, err)
		}
	}
	return out
}

// ParseCropTypes splits comma-separated text into an ordered list, trimming
// entries and dropping empty ones.
func ParseCropTypes(text string) []string {
	out := []string{}
	for _, c := range strings.Split(text, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func FormatCropTypes(crops []string) string { return strings.Join(crops, ", ") }

// ParseFarmSize reads the number text starts with ("12 acres" is 12). It
// returns nil for blank, unparsable or zero input.
func ParseFarmSize(text formvalue.Text) *float64 {
	v, ok := text.LeadingFloat()
	if !ok || v == 0 {
		return nil
	}
	return &v
}

// ParseExperience returns the leading integer of text, or 0.
func ParseExperience(text formvalue.Text) int {
	n, _ := text.LeadingInt()
	return n
}

// FormOf projects the stored rows into form text. Missing rows give blanks.
func FormOf(p *entities.Profile, fp *entities.FarmerProfile) ProfileForm {
	var f ProfileForm
	if p != nil {
		f.Phone = p.Phone
		f.Address = p.Address
	}
	if fp != nil {
		if fp.FarmSize != nil {
			f.FarmSize = formvalue.Text(strconv.FormatFloat(*fp.FarmSize, 'f', -1, 64))
		}
		f.CropTypes = FormatCropTypes(fp.CropTypes)
		f.ExperienceYears = formvalue.Text(strconv.Itoa(fp.ExperienceYears))
	}
	return f
}
