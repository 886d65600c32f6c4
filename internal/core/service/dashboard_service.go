package service

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/userdeck/admin-console/internal/api/metrics"
	"github.com/userdeck/admin-console/internal/core/domain"
	"github.com/userdeck/admin-console/internal/core/form"
	"github.com/userdeck/admin-console/internal/core/ports"
	"github.com/userdeck/admin-console/internal/core/roster"
)

// DashboardService owns the authoritative user list and the single form
// session, and routes every console intent. Local mutations are applied
// optimistically and serialized through one mutex; the matching upstream
// call is fired afterwards without blocking the caller, and its failure
// never rolls the local change back.
type DashboardService struct {
	mu          sync.Mutex
	roster      *roster.Roster
	form        *form.Controller
	term        string
	needsReload bool

	upstream ports.DirectoryClient
	uploader ports.Uploader
	notifier ports.Notifier
	audit    ports.AuditRecorder // optional
	log      zerolog.Logger
}

func NewDashboardService(
	upstream ports.DirectoryClient,
	uploader ports.Uploader,
	notifier ports.Notifier,
	audit ports.AuditRecorder,
	strictPassword bool,
	log zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		roster:   roster.New(),
		form:     form.NewController(strictPassword),
		upstream: upstream,
		uploader: uploader,
		notifier: notifier,
		audit:    audit,
		log:      log,
	}
}

// LoadInitial seeds the authoritative list from the upstream directory.
// On failure the list stays empty and no retry is attempted.
func (s *DashboardService) LoadInitial(ctx context.Context) error {
	users, err := s.upstream.FetchUsers(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch initial user list")
		return err
	}

	s.mu.Lock()
	s.roster.Seed(users)
	s.needsReload = false
	s.mu.Unlock()

	s.log.Info().Int("count", len(users)).Msg("user list seeded")
	return nil
}

// ListUsers returns the display list. A non-nil search stores the new
// filter term; the authoritative list is never mutated by filtering.
func (s *DashboardService) ListUsers(_ context.Context, search *string) ports.ListResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	if search != nil {
		s.term = *search
	}
	return ports.ListResult{
		Users:       s.roster.Search(s.term),
		Term:        s.term,
		NeedsReload: s.needsReload,
	}
}

// DeleteUser removes the user locally (no-op when absent) and fires the
// upstream delete regardless. The upstream is the source of truth for
// whether the id existed.
func (s *DashboardService) DeleteUser(ctx context.Context, id int64) {
	s.mu.Lock()
	removed := s.roster.Delete(id)
	s.mu.Unlock()

	metrics.UsersDeletedTotal.Inc()
	s.log.Info().Int64("user_id", id).Bool("removed", removed).Msg("user deleted locally")
	s.recordAudit(ctx, ports.AuditEntry{
		Action:  ports.AuditActionDelete,
		UserID:  id,
		Outcome: ports.AuditOutcomeLocal,
	})

	go s.syncUpstream(ports.AuditActionDelete, domain.User{ID: id},
		"User Deleted", "The user has been successfully deleted.",
		"An error occurred while deleting the user.")
}

// OpenForm opens the single form session: edit mode when userID is given
// (the target must exist in the authoritative list), create mode otherwise.
func (s *DashboardService) OpenForm(_ context.Context, userID *int64) (ports.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userID == nil {
		if err := s.form.OpenCreate(); err != nil {
			return ports.FormView{}, err
		}
		return s.formView(), nil
	}

	target, ok := s.roster.Find(*userID)
	if !ok {
		return ports.FormView{}, domain.ErrUserNotFound
	}
	if err := s.form.OpenEdit(target); err != nil {
		return ports.FormView{}, err
	}
	return s.formView(), nil
}

// PatchDraft applies partial edits to the open draft.
func (s *DashboardService) PatchDraft(_ context.Context, p domain.DraftPatch) (ports.FormView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.form.Patch(p); err != nil {
		return ports.FormView{}, err
	}
	return s.formView(), nil
}

// UploadAvatar guards the candidate file's size, forwards accepted files to
// the upload collaborator, and stores the returned reference on the draft.
// Collaborator failures leave the draft's image unchanged and surface no
// error to the caller; they are logged and pushed to the notification
// center instead. A session cancelled while the upload is in flight gets
// ErrFormClosed and the reference is dropped.
func (s *DashboardService) UploadAvatar(ctx context.Context, filename string, size int64, content io.Reader) (ports.FormView, error) {
	s.mu.Lock()
	open := s.form.State() != form.StateClosed
	s.mu.Unlock()
	if !open {
		return ports.FormView{}, domain.ErrFormClosed
	}

	if err := domain.CheckImageSize(size); err != nil {
		metrics.UploadsRejectedTotal.Inc()
		s.log.Warn().Str("filename", filename).Int64("size", size).Msg("avatar rejected: too large")
		s.notify(ports.Notification{
			Title:   "Image Size Exceeded",
			Message: domain.MsgImageTooLarge,
			Level:   ports.LevelError,
		})
		s.recordAudit(ctx, ports.AuditEntry{
			Action:  ports.AuditActionUpload,
			Outcome: ports.AuditOutcomeRejected,
			Detail:  filename,
		})
		return ports.FormView{}, err
	}

	ref, err := s.uploader.UploadImage(ctx, filename, content)
	if err != nil {
		// The draft keeps its previous image and the caller sees no error,
		// but the operator trail records the failure.
		s.log.Error().Err(err).Str("filename", filename).Msg("avatar upload failed")
		s.notify(ports.Notification{
			Title:   "Error",
			Message: "An error occurred while uploading the image.",
			Level:   ports.LevelError,
		})
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.formView(), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.form.SetImage(ref); err != nil {
		// The session can close while the upload is in flight. The uploaded
		// reference has no draft left to land on and is dropped.
		s.log.Warn().Str("filename", filename).Str("ref", ref).Msg("form closed during upload, reference dropped")
		return ports.FormView{}, err
	}
	return s.formView(), nil
}

// SubmitForm validates and, when valid, commits the draft: the roster is
// updated optimistically, the session closes, and the upstream create or
// update is fired asynchronously.
func (s *DashboardService) SubmitForm(ctx context.Context) (ports.SubmitResult, error) {
	s.mu.Lock()
	user, wasEdit, fieldErrs, err := s.form.Submit()
	if err != nil {
		s.mu.Unlock()
		return ports.SubmitResult{}, err
	}
	if len(fieldErrs) > 0 {
		s.mu.Unlock()
		return ports.SubmitResult{FieldErrors: fieldErrs}, nil
	}

	action := ports.AuditActionCreate
	if wasEdit {
		s.roster.Update(user)
		action = ports.AuditActionUpdate
	} else {
		s.roster.Create(user)
	}
	s.mu.Unlock()

	if wasEdit {
		metrics.UsersUpdatedTotal.Inc()
	} else {
		metrics.UsersCreatedTotal.Inc()
	}
	s.log.Info().Int64("user_id", user.ID).Str("action", action).Msg("user committed locally")
	s.recordAudit(ctx, ports.AuditEntry{
		Action:   action,
		UserID:   user.ID,
		UserName: user.Name,
		Outcome:  ports.AuditOutcomeLocal,
	})

	if wasEdit {
		go s.syncUpstream(action, user,
			"User Updated", "The user has been successfully updated.",
			"An error occurred while updating the user.")
	} else {
		go s.syncUpstream(action, user,
			"User Added", "The user has been successfully added.",
			"An error occurred while adding the user.")
	}

	return ports.SubmitResult{Committed: true, WasEdit: wasEdit, User: user}, nil
}

// CancelForm discards the open draft, values and errors both.
func (s *DashboardService) CancelForm(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.form.State() == form.StateClosed {
		return domain.ErrFormClosed
	}
	s.form.Cancel()
	return nil
}

// syncUpstream fires the matching collaborator call for an already-applied
// local mutation. It runs detached from the originating request: no
// cancellation, no retry, no rollback. A failure raises the needs-reload
// flag so the operator knows local state may have diverged.
func (s *DashboardService) syncUpstream(action string, user domain.User, okTitle, okMsg, failMsg string) {
	ctx := context.Background()

	var err error
	switch action {
	case ports.AuditActionCreate:
		err = s.upstream.CreateUser(ctx, user)
	case ports.AuditActionUpdate:
		err = s.upstream.UpdateUser(ctx, user)
	case ports.AuditActionDelete:
		err = s.upstream.DeleteUser(ctx, user.ID)
	}

	if err != nil {
		metrics.UpstreamSyncFailuresTotal.WithLabelValues(action).Inc()
		s.log.Error().Err(err).Str("action", action).Int64("user_id", user.ID).Msg("upstream sync failed")

		s.mu.Lock()
		s.needsReload = true
		s.mu.Unlock()

		s.notify(ports.Notification{Title: "Error", Message: failMsg, Level: ports.LevelError})
		s.recordAudit(ctx, ports.AuditEntry{
			Action:   action,
			UserID:   user.ID,
			UserName: user.Name,
			Outcome:  ports.AuditOutcomeSyncFailed,
			Detail:   err.Error(),
		})
		return
	}

	s.notify(ports.Notification{Title: okTitle, Message: okMsg, Level: ports.LevelSuccess})
	s.recordAudit(ctx, ports.AuditEntry{
		Action:   action,
		UserID:   user.ID,
		UserName: user.Name,
		Outcome:  ports.AuditOutcomeSynced,
	})
}

func (s *DashboardService) notify(n ports.Notification) {
	n.ID = uuid.NewString()
	n.CreatedAt = time.Now().UTC()
	if err := s.notifier.Push(context.Background(), n); err != nil {
		s.log.Warn().Err(err).Str("title", n.Title).Msg("failed to push notification")
	}
}

// recordAudit writes to the audit trail when one is configured. Audit
// failures never fail the action being recorded.
func (s *DashboardService) recordAudit(ctx context.Context, e ports.AuditEntry) {
	if s.audit == nil {
		return
	}
	e.Timestamp = time.Now().UTC()
	if err := s.audit.Record(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("action", e.Action).Msg("failed to record audit entry")
	}
}

// formView snapshots the session for transport. Caller must hold s.mu.
func (s *DashboardService) formView() ports.FormView {
	return ports.FormView{
		State:  s.form.State().String(),
		Draft:  s.form.Draft(),
		Errors: s.form.Errors(),
	}
}
