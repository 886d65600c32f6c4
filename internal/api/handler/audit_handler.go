package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/admin-console/internal/core/ports"
)

const defaultAuditLimit = 50

// AuditHandler serves the dashboard action trail. The recorder is optional;
// when auditing is disabled the trail is simply empty.
type AuditHandler struct {
	audit ports.AuditRecorder
}

func NewAuditHandler(audit ports.AuditRecorder) *AuditHandler {
	return &AuditHandler{audit: audit}
}

type listAuditRequest struct {
	Limit int64 `query:"limit" validate:"omitempty,gte=1,lte=200"`
}

// List handles GET /v1/audit, newest first.
//
// @Summary      List recent audit entries
// @Tags         audit
// @Produce      json
// @Param        limit  query     integer  false  "Maximum entries to return (1-200, default 50)"
// @Success      200    {object}  auditListResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/audit [get]
func (h *AuditHandler) List(c echo.Context) error {
	var req listAuditRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.Limit == 0 {
		req.Limit = defaultAuditLimit
	}

	if h.audit == nil {
		return c.JSON(http.StatusOK, auditListResponse{Data: []ports.AuditEntry{}})
	}

	entries, err := h.audit.List(c.Request().Context(), req.Limit)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []ports.AuditEntry{}
	}
	return c.JSON(http.StatusOK, auditListResponse{Data: entries})
}
