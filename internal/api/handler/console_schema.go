package handler

import (
	"github.com/userdeck/admin-console/internal/core/domain"
	"github.com/userdeck/admin-console/internal/core/ports"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type openFormRequest struct {
	// UserID selects edit mode; absent means create mode.
	UserID *int64 `json:"user_id" validate:"omitempty,gt=0"`
}

type patchDraftRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	Password     *string `json:"password"`
	ShowPassword *bool   `json:"show_password"`
}

// --- Response types ---

// userResponse is the transport view of a committed user. The password is
// intentionally omitted from console responses even though the upstream
// contract carries it.
type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
		Image: u.Image,
	}
}

type listUsersResponse struct {
	Data        []userResponse `json:"data"`
	Term        string         `json:"term"`
	NeedsReload bool           `json:"needs_reload"`
}

// formViewResponse is the visible state of the single form session.
type formViewResponse struct {
	State  string             `json:"state"`
	Draft  domain.FormDraft   `json:"draft"`
	Errors domain.FieldErrors `json:"errors"`
}

func toFormViewResponse(v ports.FormView) formViewResponse {
	return formViewResponse{State: v.State, Draft: v.Draft, Errors: v.Errors}
}

// submitRejectedResponse carries the per-field validation messages when a
// submission is blocked.
type submitRejectedResponse struct {
	Errors domain.FieldErrors `json:"errors"`
}

type notificationsResponse struct {
	Data []ports.Notification `json:"data"`
}

type auditListResponse struct {
	Data []ports.AuditEntry `json:"data"`
}
