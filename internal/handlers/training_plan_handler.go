package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/httpresp"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
	ucPlan "github.com/BruksfildServices01/coach-crm/internal/usecase/trainingplan"
)

type TrainingPlanHandler struct {
	list     *ucPlan.ListPlans
	upcoming *ucPlan.Upcoming
	get      *ucPlan.GetPlan
	create   *ucPlan.CreatePlan
	update   *ucPlan.UpdatePlan
	delete   *ucPlan.DeletePlan
}

func NewTrainingPlanHandler(
	list *ucPlan.ListPlans,
	upcoming *ucPlan.Upcoming,
	get *ucPlan.GetPlan,
	create *ucPlan.CreatePlan,
	update *ucPlan.UpdatePlan,
	del *ucPlan.DeletePlan,
) *TrainingPlanHandler {
	return &TrainingPlanHandler{
		list:     list,
		upcoming: upcoming,
		get:      get,
		create:   create,
		update:   update,
		delete:   del,
	}
}

func planInput(req dto.TrainingPlanRequest) ucPlan.PlanInput {
	return ucPlan.PlanInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AthleteID:   req.AthleteID,
		TeamID:      req.TeamID,
	}
}

// ======================================================
// READ
// ======================================================

func (h *TrainingPlanHandler) List(c *gin.Context) {
	f, err := training.FilterFromQuery(c.Query("from"), c.Query("to"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var ok bool
	if f.AthleteID, ok = queryID(c, "athleteId"); !ok {
		return
	}
	if f.TeamID, ok = queryID(c, "teamId"); !ok {
		return
	}

	plans, err := h.list.Execute(c.Request.Context(), middleware.MustIdentity(c), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromTrainingPlans(plans))
}

func (h *TrainingPlanHandler) Upcoming(c *gin.Context) {
	from, err := training.ParseOptionalDate(c.Query("from"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	plans, err := h.upcoming.Execute(c.Request.Context(), middleware.MustIdentity(c), from)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, dto.FromTrainingPlans(plans))
}

func (h *TrainingPlanHandler) Get(c *gin.Context) {
	planID, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := h.get.Execute(c.Request.Context(), middleware.MustIdentity(c), planID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromTrainingPlan(plan))
}

// ======================================================
// WRITE
// ======================================================

func (h *TrainingPlanHandler) Create(c *gin.Context) {
	var req dto.TrainingPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.create.Execute(c.Request.Context(), middleware.MustIdentity(c), planInput(req))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.Created(c, dto.FromTrainingPlan(plan))
}

func (h *TrainingPlanHandler) Update(c *gin.Context) {
	planID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.TrainingPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.update.Execute(c.Request.Context(), middleware.MustIdentity(c), planID, planInput(req))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.FromTrainingPlan(plan))
}

func (h *TrainingPlanHandler) Delete(c *gin.Context) {
	planID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.delete.Execute(c.Request.Context(), middleware.MustIdentity(c), planID); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
