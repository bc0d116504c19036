package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/httpresp"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	ucAthlete "github.com/BruksfildServices01/coach-crm/internal/usecase/athlete"
)

// ======================================================
// HANDLER
// ======================================================

type AthleteHandler struct {
	list   *ucAthlete.ListAthletes
	get    *ucAthlete.GetAthlete
	create *ucAthlete.CreateAthlete
	update *ucAthlete.UpdateAthlete
	delete *ucAthlete.DeleteAthlete
	assign *ucAthlete.AssignToTeam
	remove *ucAthlete.RemoveFromTeam
}

func NewAthleteHandler(
	list *ucAthlete.ListAthletes,
	get *ucAthlete.GetAthlete,
	create *ucAthlete.CreateAthlete,
	update *ucAthlete.UpdateAthlete,
	del *ucAthlete.DeleteAthlete,
	assign *ucAthlete.AssignToTeam,
	remove *ucAthlete.RemoveFromTeam,
) *AthleteHandler {
	return &AthleteHandler{
		list:   list,
		get:    get,
		create: create,
		update: update,
		delete: del,
		assign: assign,
		remove: remove,
	}
}

func profileInput(req dto.AthleteRequest) (ucAthlete.ProfileInput, error) {
	birth, err := training.ParseOptionalDate(req.BirthDate)
	if err != nil {
		return ucAthlete.ProfileInput{}, err
	}
	return ucAthlete.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		BirthDate: birth,
		Weight:    req.Weight,
		Height:    req.Height,
		Email:     req.Email,
	}, nil
}

// ======================================================
// READ
// ======================================================

func (h *AthleteHandler) List(c *gin.Context) {
	id := middleware.MustIdentity(c)

	teamID, ok := queryID(c, "teamId")
	if !ok {
		return
	}

	athletes, err := h.list.Execute(c.Request.Context(), id, teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.FromAthletes(athletes, id.CoachID))
}

func (h *AthleteHandler) Get(c *gin.Context) {
	id := middleware.MustIdentity(c)
	athleteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	a, err := h.get.Execute(c.Request.Context(), id, athleteID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAthlete(a, id.CoachID))
}

// ======================================================
// WRITE
// ======================================================

func (h *AthleteHandler) Create(c *gin.Context) {
	id := middleware.MustIdentity(c)

	var req dto.AthleteRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := profileInput(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	a, err := h.create.Execute(c.Request.Context(), id, ucAthlete.CreateInput{
		ProfileInput: in,
		TeamID:       req.TeamID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.FromAthlete(a, id.CoachID))
}

func (h *AthleteHandler) Update(c *gin.Context) {
	id := middleware.MustIdentity(c)
	athleteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AthleteRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := profileInput(req)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	a, err := h.update.Execute(c.Request.Context(), id, athleteID, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAthlete(a, id.CoachID))
}

func (h *AthleteHandler) Delete(c *gin.Context) {
	athleteID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.MustIdentity(c), athleteID); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ======================================================
// MEMBERSHIP
// ======================================================

func (h *AthleteHandler) AssignTeam(c *gin.Context) {
	id := middleware.MustIdentity(c)
	athleteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	teamID, ok := paramID(c, "teamId")
	if !ok {
		return
	}

	a, err := h.assign.Execute(c.Request.Context(), id, athleteID, teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAthlete(a, id.CoachID))
}

func (h *AthleteHandler) RemoveTeam(c *gin.Context) {
	id := middleware.MustIdentity(c)
	athleteID, ok := paramID(c, "id")
	if !ok {
		return
	}
	teamID, ok := paramID(c, "teamId")
	if !ok {
		return
	}

	a, err := h.remove.Execute(c.Request.Context(), id, athleteID, teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.FromAthlete(a, id.CoachID))
}
