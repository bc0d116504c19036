package account

import (
	"errors"

	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

var ErrNotFound = errors.New("account not found")

// ===============================
// Identity
// ===============================

// Identity is the caller resolved once at the authentication boundary and
// passed explicitly to every use case.
type Identity struct {
	AccountID uint
	Email     string
	Kind      models.AccountKind
	CoachID   uint
	AthleteID uint
}

func (i Identity) IsCoach() bool  { return i.Kind == models.AccountKindCoach }
func (i Identity) IsPlayer() bool { return i.Kind == models.AccountKindPlayer }

// RequireCoach returns the caller's coach id, or Forbidden for players.
func (i Identity) RequireCoach() (uint, error) {
	if !i.IsCoach() || i.CoachID == 0 {
		return 0, httperr.ErrForbidden("coach_only", "Only coaches can do this.")
	}
	return i.CoachID, nil
}

// RequirePlayer returns the caller's athlete id, or Forbidden for coaches.
func (i Identity) RequirePlayer() (uint, error) {
	if !i.IsPlayer() || i.AthleteID == 0 {
		return 0, httperr.ErrForbidden("player_only", "Only players can do this.")
	}
	return i.AthleteID, nil
}

// IdentityOf derives the identity of a stored account. An account whose
// kind and profile link disagree is rejected.
func IdentityOf(acc *models.Account) (Identity, error) {
	id := Identity{
		AccountID: acc.ID,
		Email:     acc.Email,
		Kind:      acc.Kind,
	}

	switch acc.Kind {
	case models.AccountKindCoach:
		if acc.CoachID == nil {
			return Identity{}, errInconsistent
		}
		id.CoachID = *acc.CoachID
	case models.AccountKindPlayer:
		if acc.AthleteID == nil {
			return Identity{}, errInconsistent
		}
		id.AthleteID = *acc.AthleteID
	default:
		return Identity{}, errInconsistent
	}

	return id, nil
}

var errInconsistent = httperr.ErrUnauthenticated("invalid_account", "Account is not linked to a profile.")

// ===============================
// Rules
// ===============================

const MinPasswordLength = 6

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return httperr.ErrValidation("weak_password", "Password must have at least 6 characters.")
	}
	return nil
}
