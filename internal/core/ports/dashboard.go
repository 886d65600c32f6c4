package ports

import (
	"context"
	"io"

	"github.com/userdeck/admin-console/internal/core/domain"
)

// ListResult is the display list plus session metadata.
type ListResult struct {
	Users []domain.User
	// Term is the filter term currently applied.
	Term string
	// NeedsReload is raised when an upstream sync has failed since the last
	// seed, meaning local state may have diverged from the backend.
	NeedsReload bool
}

// FormView is the externally visible form session state.
type FormView struct {
	State  string
	Draft  domain.FormDraft
	Errors domain.FieldErrors
}

// SubmitResult reports the outcome of a form submission. Either Committed
// is true and User holds the finalized record, or FieldErrors holds the
// blocking validation messages.
type SubmitResult struct {
	Committed   bool
	WasEdit     bool
	User        domain.User
	FieldErrors domain.FieldErrors
}

// DashboardService routes the console's user intents: list/search, delete,
// and the whole form lifecycle.
type DashboardService interface {
	LoadInitial(ctx context.Context) error
	ListUsers(ctx context.Context, search *string) ListResult
	DeleteUser(ctx context.Context, id int64)
	OpenForm(ctx context.Context, userID *int64) (FormView, error)
	PatchDraft(ctx context.Context, p domain.DraftPatch) (FormView, error)
	UploadAvatar(ctx context.Context, filename string, size int64, content io.Reader) (FormView, error)
	SubmitForm(ctx context.Context) (SubmitResult, error)
	CancelForm(ctx context.Context) error
}
