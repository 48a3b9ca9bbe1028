package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ibs-platform/user-directory/internal/core/ports"
)

// PanelHandler handles HTTP requests for panelist reconciliation.
type PanelHandler struct {
	service ports.PanelService
}

func NewPanelHandler(service ports.PanelService) *PanelHandler {
	return &PanelHandler{service: service}
}

// Available returns the panelists assigned to slots overlapping the window.
//
// @Summary      Panelists available in a time window
// @Tags         panel
// @Produce      json
// @Security     BearerAuth
// @Param        startTime  query     string  true  "Window start (RFC 3339)"
// @Param        endTime    query     string  true  "Window end (RFC 3339)"
// @Success      200        {array}   userResponse
// @Failure      400        {object}  map[string]string
// @Failure      502        {object}  map[string]string
// @Router       /api/v1/users/panel/available [get]
func (h *PanelHandler) Available(c echo.Context) error {
	start, err := time.Parse(time.RFC3339, c.QueryParam("startTime"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "startTime must be an RFC 3339 timestamp")
	}
	end, err := time.Parse(time.RFC3339, c.QueryParam("endTime"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "endTime must be an RFC 3339 timestamp")
	}

	users, err := h.service.AvailablePanelists(c.Request().Context(), start, end)
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}

// Pending returns the panelists that appear in no assignment record.
//
// @Summary      Panelists with no assignment
// @Tags         panel
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/users/panel/pending [get]
func (h *PanelHandler) Pending(c echo.Context) error {
	users, err := h.service.PendingPanelists(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, resp)
}
