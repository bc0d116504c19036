package account

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	domain "github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	"github.com/BruksfildServices01/coach-crm/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RegisterCoachInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// ======================================================
// USE CASE
// ======================================================

// EmailDomainCheck resolves an email's domain; nil disables the check.
type EmailDomainCheck func(email string) bool

type RegisterCoach struct {
	repo        domain.Repository
	hasher      auth.PasswordHasher
	domainCheck EmailDomainCheck
}

func NewRegisterCoach(
	repo domain.Repository,
	hasher auth.PasswordHasher,
	domainCheck EmailDomainCheck,
) *RegisterCoach {
	return &RegisterCoach{
		repo:        repo,
		hasher:      hasher,
		domainCheck: domainCheck,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterCoach) Execute(
	ctx context.Context,
	in RegisterCoachInput,
) (*models.Account, *models.Coach, error) {

	firstName := strings.TrimSpace(in.FirstName)
	lastName := strings.TrimSpace(in.LastName)
	if firstName == "" || lastName == "" {
		return nil, nil, httperr.ErrValidation("invalid_name", "First and last name are required.")
	}

	email, err := checkEmail(in.Email, uc.domainCheck)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.ValidatePassword(in.Password); err != nil {
		return nil, nil, err
	}

	exists, err := uc.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, errEmailTaken
	}

	hash, salt, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	coach := &models.Coach{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
	}
	acc := &models.Account{
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		Kind:         models.AccountKindCoach,
	}

	if err := uc.repo.CreateCoachAccount(ctx, acc, coach); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, nil, errEmailTaken
		}
		return nil, nil, err
	}

	return acc, coach, nil
}

func checkEmail(raw string, domainCheck EmailDomainCheck) (string, error) {
	email := validators.NormalizeEmail(raw)
	if !validators.IsEmailSyntaxValid(email) {
		return "", httperr.ErrValidation("invalid_email", "Email is not valid.")
	}
	if domainCheck != nil && !domainCheck(email) {
		return "", httperr.ErrValidation("invalid_email_domain", "The email domain does not look valid.")
	}
	return email, nil
}
