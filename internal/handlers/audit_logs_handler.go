package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/domain/training"
	"github.com/BruksfildServices01/coach-crm/internal/dto"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/httpresp"
	"github.com/BruksfildServices01/coach-crm/internal/middleware"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
	// keeps (page-1)*limit far from overflowing
	maxAuditPage = 10000
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	audit *audit.Logger
}

func NewAuditLogsHandler(logger *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{audit: logger}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	coachID, err := middleware.MustIdentity(c).RequireCoach()
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	if page > maxAuditPage {
		httperr.Respond(c, httperr.ErrValidation("invalid_page", "Page must be at most "+strconv.Itoa(maxAuditPage)+"."))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	// --------------------------------------------------
	// Filters; "to" covers the whole day
	// --------------------------------------------------
	from, err := training.ParseOptionalDate(c.Query("from"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	to, err := training.ParseOptionalDate(c.Query("to"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if to != nil {
		end := to.Add(24 * time.Hour)
		to = &end
	}

	logs, total, err := h.audit.List(c.Request.Context(), audit.Query{
		CoachID: coachID,
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		From:    from,
		To:      to,
		Limit:   limit,
		Offset:  (page - 1) * limit,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.AuditLogPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Data:  dto.FromAuditLogs(logs),
	})
}
