package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/httpresp"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	ucCoach "github.com/BruksfildServices01/coach-crm/internal/usecase/coach"
	ucPlayer "github.com/BruksfildServices01/coach-crm/internal/usecase/player"
)

// ProfileHandler serves the caller's own coach or player profile.
type ProfileHandler struct {
	getCoach    *ucCoach.GetProfile
	updateCoach *ucCoach.UpdateProfile
	getPlayer   *ucPlayer.GetProfile
}

func NewProfileHandler(
	getCoach *ucCoach.GetProfile,
	updateCoach *ucCoach.UpdateProfile,
	getPlayer *ucPlayer.GetProfile,
) *ProfileHandler {
	return &ProfileHandler{
		getCoach:    getCoach,
		updateCoach: updateCoach,
		getPlayer:   getPlayer,
	}
}

func (h *ProfileHandler) GetCoach(c *gin.Context) {
	p, err := h.getCoach.Execute(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromCoach(p.Coach, p.HasUserAccount))
}

func (h *ProfileHandler) UpdateCoach(c *gin.Context) {
	var req dto.CoachProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.updateCoach.Execute(c.Request.Context(), middleware.MustIdentity(c), ucCoach.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromCoach(p.Coach, p.HasUserAccount))
}

func (h *ProfileHandler) GetPlayer(c *gin.Context) {
	p, err := h.getPlayer.Execute(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.PlayerProfile(p.Athlete, p.Age, p.Teams, p.HasUserAccount))
}
