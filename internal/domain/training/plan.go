package training

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var ErrNotFound = errors.New("training plan not found")

const DateLayout = "2006-01-02"

// ===============================
// Target
// ===============================

type TargetKind int

const (
	TargetAthlete TargetKind = iota + 1
	TargetTeam
)

// Target is the one athlete or one team a plan is scheduled for.
type Target struct {
	Kind TargetKind
	ID   uint
}

// TargetOf accepts exactly one of athleteID / teamID.
func TargetOf(athleteID, teamID *uint) (Target, error) {
	hasAthlete := athleteID != nil && *athleteID != 0
	hasTeam := teamID != nil && *teamID != 0

	switch {
	case hasAthlete && hasTeam:
		return Target{}, httperr.ErrValidation("ambiguous_target", "Set either athleteId or teamId, not both.")
	case hasAthlete:
		return Target{Kind: TargetAthlete, ID: *athleteID}, nil
	case hasTeam:
		return Target{Kind: TargetTeam, ID: *teamID}, nil
	default:
		return Target{}, httperr.ErrValidation("missing_target", "Either athleteId or teamId is required.")
	}
}

// Apply points the plan at the target and clears the other side.
func (t Target) Apply(plan *models.TrainingPlan) {
	id := t.ID
	switch t.Kind {
	case TargetAthlete:
		plan.AthleteID = &id
		plan.TeamID = nil
		plan.Team = nil
	case TargetTeam:
		plan.TeamID = &id
		plan.AthleteID = nil
		plan.Athlete = nil
	}
}

// ===============================
// Dates and times
// ===============================

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date", "Date must be YYYY-MM-DD.")
	}
	return d, nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseTimeOfDay parses "HH:MM" (or "HH:MM:SS"); empty means unset.
func ParseTimeOfDay(s string) (*datatypes.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	layout := "15:04"
	if strings.Count(s, ":") == 2 {
		layout = "15:04:05"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_time", "Time must be HH:MM.")
	}

	tod := datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0)
	return &tod, nil
}

func FormatTimeOfDay(t *datatypes.Time) *string {
	if t == nil {
		return nil
	}
	d := time.Duration(*t)
	s := fmt.Sprintf("%02d:%02d", int(d/time.Hour), int(d%time.Hour/time.Minute))
	return &s
}

// ValidateSchedule requires a name and start <= end when both are set.
func ValidateSchedule(name string, start, end *datatypes.Time) error {
	if strings.TrimSpace(name) == "" {
		return httperr.ErrValidation("invalid_name", "Name is required.")
	}
	if start != nil && end != nil && time.Duration(*start) > time.Duration(*end) {
		return httperr.ErrValidation("invalid_time_range", "Start time must not be after end time.")
	}
	return nil
}

// FilterFromQuery parses the from/to bounds shared by every listing.
func FilterFromQuery(from, to string) (Filter, error) {
	var f Filter
	var err error

	if f.From, err = ParseOptionalDate(from); err != nil {
		return Filter{}, err
	}
	if f.To, err = ParseOptionalDate(to); err != nil {
		return Filter{}, err
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return Filter{}, httperr.ErrValidation("invalid_range", "'to' must not be before 'from'.")
	}
	return f, nil
}
