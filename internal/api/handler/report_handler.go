package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ibs-platform/user-directory/internal/api/metrics"
	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// ReportHandler handles HTTP requests for the user report.
type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

type reportResponse struct {
	Data  []ports.ReportRow `json:"data"`
	Page  int               `json:"page"`
	Size  int               `json:"size"`
	Total int64             `json:"total"`
}

// Report assembles the paginated, sortable, date-filtered user report.
//
// @Summary      User report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        role       query     string  true   "Role name (case-insensitive)"
// @Param        startDate  query     string  false  "Inclusive creation-time lower bound (RFC 3339)"
// @Param        endDate    query     string  false  "Inclusive creation-time upper bound (RFC 3339)"
// @Param        page       query     int     false  "1-based page"   default(1)
// @Param        size       query     int     false  "rows per page"  default(25)
// @Param        sortField  query     string  false  "Field to sort by; blank = unordered"
// @Param        sortDir    query     string  false  "asc or desc"    default(asc)
// @Success      200        {object}  reportResponse
// @Failure      400        {object}  map[string]string
// @Router       /api/v1/users/report [get]
func (h *ReportHandler) Report(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "role is required")
	}

	startDate, err := optionalTime(c.QueryParam("startDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startDate must be an RFC 3339 timestamp")
	}
	endDate, err := optionalTime(c.QueryParam("endDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "endDate must be an RFC 3339 timestamp")
	}

	result, err := h.service.Report(c.Request().Context(), ports.ReportInput{
		Role:      role,
		StartDate: startDate,
		EndDate:   endDate,
		Page:      queryInt(c, "page", 1),
		Size:      queryInt(c, "size", 25),
		SortField: c.QueryParam("sortField"),
		SortDir:   c.QueryParam("sortDir"),
	})
	if err != nil {
		return err
	}

	metrics.ReportsGeneratedTotal.Inc()
	return c.JSON(http.StatusOK, reportResponse{
		Data:  result.Rows,
		Page:  result.Page,
		Size:  result.Size,
		Total: result.Total,
	})
}

func optionalTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
