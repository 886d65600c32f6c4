package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/userdeck/admin-console/internal/core/domain"
	"github.com/userdeck/admin-console/internal/core/ports"
)

// FormHandler exposes the lifecycle of the single user form session.
type FormHandler struct {
	dashboard ports.DashboardService
}

func NewFormHandler(dashboard ports.DashboardService) *FormHandler {
	return &FormHandler{dashboard: dashboard}
}

// Open handles POST /v1/form. A body with user_id opens the edit form
// prefilled from that user; an empty body opens the create form.
//
// @Summary      Open the user form
// @Tags         form
// @Accept       json
// @Produce      json
// @Param        body  body      openFormRequest  false  "Edit target"
// @Success      200   {object}  formViewResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/form [post]
func (h *FormHandler) Open(c echo.Context) error {
	var req openFormRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.dashboard.OpenForm(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormViewResponse(view))
}

// Patch handles PUT /v1/form with partial draft edits. Editing a field
// clears that field's validation error.
//
// @Summary      Edit fields of the open draft
// @Tags         form
// @Accept       json
// @Produce      json
// @Param        body  body      patchDraftRequest  true  "Field edits"
// @Success      200   {object}  formViewResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/form [put]
func (h *FormHandler) Patch(c echo.Context) error {
	var req patchDraftRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.dashboard.PatchDraft(c.Request().Context(), domain.DraftPatch{
		Name:         req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Password:     req.Password,
		ShowPassword: req.ShowPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormViewResponse(view))
}

// UploadImage handles multipart POST /v1/form/image. Files over the size
// ceiling are rejected before any collaborator call; collaborator failures
// leave the draft's image unchanged and still return the current view.
//
// @Summary      Upload an avatar for the open draft
// @Tags         form
// @Accept       multipart/form-data
// @Produce      json
// @Param        image  formData  file  true  "Avatar image, at most 200KB"
// @Success      200    {object}  formViewResponse
// @Failure      409    {object}  errorResponse
// @Failure      413    {object}  errorResponse
// @Router       /v1/form/image [post]
func (h *FormHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "image file is required")
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read image file")
	}
	defer src.Close()

	view, err := h.dashboard.UploadAvatar(c.Request().Context(), fh.Filename, fh.Size, src)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFormViewResponse(view))
}

// Submit handles POST /v1/form/submit. Blocking validation errors keep the
// session open and come back as a 422 with the per-field messages; a valid
// draft is committed optimistically and the session closes.
//
// @Summary      Submit the open form
// @Tags         form
// @Produce      json
// @Success      200  {object}  userResponse  "Edit committed"
// @Success      201  {object}  userResponse  "Create committed"
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  submitRejectedResponse
// @Router       /v1/form/submit [post]
func (h *FormHandler) Submit(c echo.Context) error {
	result, err := h.dashboard.SubmitForm(c.Request().Context())
	if err != nil {
		return err
	}
	if !result.Committed {
		return c.JSON(http.StatusUnprocessableEntity, submitRejectedResponse{Errors: result.FieldErrors})
	}

	status := http.StatusCreated
	if result.WasEdit {
		status = http.StatusOK
	}
	return c.JSON(status, toUserResponse(result.User))
}

// Cancel handles DELETE /v1/form: the draft is discarded, values and
// errors both.
//
// @Summary      Cancel the open form
// @Tags         form
// @Success      204
// @Failure      409  {object}  errorResponse
// @Router       /v1/form [delete]
func (h *FormHandler) Cancel(c echo.Context) error {
	if err := h.dashboard.CancelForm(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
