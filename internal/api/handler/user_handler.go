package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/admin-console/internal/core/ports"
)

// UserHandler exposes the user list and the delete intent.
type UserHandler struct {
	dashboard ports.DashboardService
}

func NewUserHandler(dashboard ports.DashboardService) *UserHandler {
	return &UserHandler{dashboard: dashboard}
}

// List handles GET /v1/users. When the search query parameter is present
// (even empty) it becomes the stored filter term; otherwise the previous
// term is reused.
//
// @Summary      List users, filtered by the current search term
// @Tags         users
// @Produce      json
// @Param        search  query     string  false  "Case-insensitive substring matched against name, email, and role"
// @Success      200     {object}  listUsersResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var search *string
	if c.QueryParams().Has("search") {
		term := c.QueryParam("search")
		search = &term
	}

	result := h.dashboard.ListUsers(c.Request().Context(), search)

	data := make([]userResponse, 0, len(result.Users))
	for _, u := range result.Users {
		data = append(data, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, listUsersResponse{
		Data:        data,
		Term:        result.Term,
		NeedsReload: result.NeedsReload,
	})
}

// Delete handles DELETE /v1/users/:id. The local removal is applied
// immediately; the upstream delete is fired behind the response.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  integer  true  "User id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Router       /v1/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	h.dashboard.DeleteUser(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}
