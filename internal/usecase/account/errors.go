package account

import "github.com/BruksfildServices01/coach-crm/internal/httperr"

var (
	errInvalidCredentials = httperr.ErrUnauthenticated("invalid_credentials", "Invalid email or password.")
	errInvalidRefresh     = httperr.ErrUnauthenticated("invalid_refresh_token", "Refresh token is invalid or expired.")
	errMissingRefresh     = httperr.ErrUnauthenticated("missing_refresh_token", "Refresh token is missing.")
	errEmailTaken         = httperr.ErrConflict("email_taken", "This email is already registered.")
)
