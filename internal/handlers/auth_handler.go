package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	"github.com/BruksfildServices01/coach-crm/internal/models"
	ucAccount "github.com/BruksfildServices01/coach-crm/internal/usecase/account"
)

type AuthHandler struct {
	registerCoach  *ucAccount.RegisterCoach
	registerPlayer *ucAccount.RegisterPlayer
	login          *ucAccount.Login
	loginPlayer    *ucAccount.LoginPlayer
	refresh        *ucAccount.Refresh
	logout         *ucAccount.Logout
	changePassword *ucAccount.ChangePassword
	me             *ucAccount.GetMe

	cookieDomain string
}

func NewAuthHandler(
	registerCoach *ucAccount.RegisterCoach,
	registerPlayer *ucAccount.RegisterPlayer,
	login *ucAccount.Login,
	loginPlayer *ucAccount.LoginPlayer,
	refresh *ucAccount.Refresh,
	logout *ucAccount.Logout,
	changePassword *ucAccount.ChangePassword,
	me *ucAccount.GetMe,
	cookieDomain string,
) *AuthHandler {
	return &AuthHandler{
		registerCoach:  registerCoach,
		registerPlayer: registerPlayer,
		login:          login,
		loginPlayer:    loginPlayer,
		refresh:        refresh,
		logout:         logout,
		changePassword: changePassword,
		me:             me,
		cookieDomain:   cookieDomain,
	}
}

// --------- Cookie ---------

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    token,
		Path:     auth.RefreshCookiePath,
		Domain:   h.cookieDomain,
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.RefreshCookieName,
		Value:    "",
		Path:     auth.RefreshCookiePath,
		Domain:   h.cookieDomain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func refreshCookie(c *gin.Context) string {
	v, err := c.Cookie(auth.RefreshCookieName)
	if err != nil {
		return ""
	}
	return v
}

// --------- Registration ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterCoachRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, _, err := h.registerCoach.Execute(c.Request.Context(), ucAccount.RegisterCoachInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAccount(acc))
}

func (h *AuthHandler) RegisterPlayer(c *gin.Context) {
	var req dto.RegisterPlayerRequest
	if !bindJSON(c, &req) {
		return
	}

	acc, _, err := h.registerPlayer.Execute(c.Request.Context(), ucAccount.RegisterPlayerInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromAccount(acc))
}

// --------- Sessions ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.login.Execute(c.Request.Context(), models.AccountKindCoach, ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken, session.RefreshExpiresAt)
	c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     session.AccessToken,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *AuthHandler) LoginPlayer(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	session, err := h.loginPlayer.Execute(c.Request.Context(), ucAccount.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.setRefreshCookie(c, session.RefreshToken, session.RefreshExpiresAt)
	c.JSON(http.StatusOK, dto.PlayerLoginResponse{
		TokenResponse: dto.TokenResponse{
			Token:     session.AccessToken,
			ExpiresAt: session.ExpiresAt,
		},
		Profile: dto.PlayerSummary(session.Athlete, session.Teams),
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	token, expiresAt, err := h.refresh.Execute(c.Request.Context(), refreshCookie(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), refreshCookie(c)); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}

// --------- Account ---------

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.changePassword.Execute(c.Request.Context(), middleware.MustIdentity(c), ucAccount.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed."})
}

func (h *AuthHandler) Me(c *gin.Context) {
	acc, err := h.me.Execute(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromAccount(acc))
}
