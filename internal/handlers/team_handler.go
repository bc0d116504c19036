package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/httpresp"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	ucTeam "github.com/BruksfildServices01/coach-crm/internal/usecase/team"
)

type TeamHandler struct {
	list     *ucTeam.ListTeams
	myTeams  *ucTeam.MyTeams
	get      *ucTeam.GetTeam
	athletes *ucTeam.ListTeamAthletes
	create   *ucTeam.CreateTeam
	update   *ucTeam.UpdateTeam
	delete   *ucTeam.DeleteTeam
}

func NewTeamHandler(
	list *ucTeam.ListTeams,
	myTeams *ucTeam.MyTeams,
	get *ucTeam.GetTeam,
	athletes *ucTeam.ListTeamAthletes,
	create *ucTeam.CreateTeam,
	update *ucTeam.UpdateTeam,
	del *ucTeam.DeleteTeam,
) *TeamHandler {
	return &TeamHandler{
		list:     list,
		myTeams:  myTeams,
		get:      get,
		athletes: athletes,
		create:   create,
		update:   update,
		delete:   del,
	}
}

func (h *TeamHandler) List(c *gin.Context) {
	teams, err := h.list.Execute(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromTeamSummaries(teams))
}

func (h *TeamHandler) MyTeams(c *gin.Context) {
	teams, err := h.myTeams.Execute(c.Request.Context(), middleware.MustIdentity(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.TeamInfos(teams))
}

func (h *TeamHandler) Get(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	team, err := h.get.Execute(c.Request.Context(), middleware.MustIdentity(c), teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromTeamSummary(*team))
}

func (h *TeamHandler) Athletes(c *gin.Context) {
	id := middleware.MustIdentity(c)
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	athletes, err := h.athletes.Execute(c.Request.Context(), id, teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromAthletes(athletes, id.CoachID))
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req dto.TeamRequest
	if !bindJSON(c, &req) {
		return
	}

	team, err := h.create.Execute(c.Request.Context(), middleware.MustIdentity(c), req.Name)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.FromTeam(team, 0))
}

func (h *TeamHandler) Update(c *gin.Context) {
	id := middleware.MustIdentity(c)
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.TeamRequest
	if !bindJSON(c, &req) {
		return
	}

	if _, err := h.update.Execute(c.Request.Context(), id, teamID, req.Name); err != nil {
		httperr.Respond(c, err)
		return
	}

	team, err := h.get.Execute(c.Request.Context(), id, teamID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromTeamSummary(*team))
}

func (h *TeamHandler) Delete(c *gin.Context) {
	teamID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.MustIdentity(c), teamID); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
