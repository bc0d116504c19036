package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

// Claims is the access token payload. coachId or athleteId is present
// depending on userType.
type Claims struct {
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
	UserType  string `json:"userType"`
	CoachID   *uint  `json:"coachId,omitempty"`
	AthleteID *uint  `json:"athleteId,omitempty"`
	jwt.RegisteredClaims
}

var errInvalidToken = httperr.ErrUnauthenticated("invalid_token", "Invalid or expired token.")

// Identity validates that the claims carry everything the caller's kind
// needs.
func (c *Claims) Identity() (account.Identity, error) {
	if c.UserID == 0 {
		return account.Identity{}, errInvalidToken
	}

	id := account.Identity{
		AccountID: c.UserID,
		Email:     c.Email,
		Kind:      models.AccountKind(c.UserType),
	}

	switch id.Kind {
	case models.AccountKindCoach:
		if c.CoachID == nil || *c.CoachID == 0 {
			return account.Identity{}, errInvalidToken
		}
		id.CoachID = *c.CoachID
	case models.AccountKindPlayer:
		if c.AthleteID == nil || *c.AthleteID == 0 {
			return account.Identity{}, errInvalidToken
		}
		id.AthleteID = *c.AthleteID
	default:
		return account.Identity{}, errInvalidToken
	}

	return id, nil
}

// ======================================================
// ISSUER
// ======================================================

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock is used by tests.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	return &Issuer{secret: i.secret, ttl: i.ttl, now: now}
}

func (i *Issuer) Issue(id account.Identity) (string, time.Time, error) {
	now := i.now()
	expiresAt := now.Add(i.ttl)

	claims := Claims{
		UserID:   id.AccountID,
		Email:    id.Email,
		UserType: string(id.Kind),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	switch id.Kind {
	case models.AccountKindCoach:
		coachID := id.CoachID
		claims.CoachID = &coachID
	case models.AccountKindPlayer:
		athleteID := id.AthleteID
		claims.AthleteID = &athleteID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies signature and expiry and returns the typed claims.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
