package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/userdeck/admin-console/internal/core/domain"
	"github.com/userdeck/admin-console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub collaborators
// ---------------------------------------------------------------------------

type stubDirectory struct {
	mu       sync.Mutex
	fetch    []domain.User
	fetchErr error

	createErr error
	updateErr error
	deleteErr error

	created []domain.User
	updated []domain.User
	deleted []int64
}

func (d *stubDirectory) FetchUsers(_ context.Context) ([]domain.User, error) {
	if d.fetchErr != nil {
		return nil, d.fetchErr
	}
	return append([]domain.User(nil), d.fetch...), nil
}

func (d *stubDirectory) CreateUser(_ context.Context, u domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.createErr != nil {
		return d.createErr
	}
	d.created = append(d.created, u)
	return nil
}

func (d *stubDirectory) UpdateUser(_ context.Context, u domain.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.updateErr != nil {
		return d.updateErr
	}
	d.updated = append(d.updated, u)
	return nil
}

func (d *stubDirectory) DeleteUser(_ context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.deleteErr != nil {
		return d.deleteErr
	}
	d.deleted = append(d.deleted, id)
	return nil
}

func (d *stubDirectory) createdUsers() []domain.User {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]domain.User(nil), d.created...)
}

func (d *stubDirectory) deletedIDs() []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]int64(nil), d.deleted...)
}

type stubUploader struct {
	mu    sync.Mutex
	ref   string
	err   error
	calls int

	// onUpload runs while the upload is in flight, before the result is
	// returned.
	onUpload func()
}

func (u *stubUploader) UploadImage(_ context.Context, _ string, content io.Reader) (string, error) {
	u.mu.Lock()
	u.calls++
	hook := u.onUpload
	ref, err := u.ref, u.err
	u.mu.Unlock()

	_, _ = io.Copy(io.Discard, content)
	if hook != nil {
		hook()
	}
	if err != nil {
		return "", err
	}
	return ref, nil
}

func (u *stubUploader) callCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

type stubNotifier struct {
	mu     sync.Mutex
	pushed []ports.Notification
}

func (n *stubNotifier) Push(_ context.Context, notification ports.Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, notification)
	return nil
}

func (n *stubNotifier) Recent(_ context.Context) ([]ports.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.Notification(nil), n.pushed...), nil
}

func (n *stubNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.pushed))
	for _, p := range n.pushed {
		out = append(out, p.Title)
	}
	return out
}

type stubAudit struct {
	mu      sync.Mutex
	entries []ports.AuditEntry
}

func (a *stubAudit) Record(_ context.Context, e ports.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func (a *stubAudit) List(_ context.Context, _ int64) ([]ports.AuditEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ports.AuditEntry(nil), a.entries...), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newService(dir *stubDirectory, up *stubUploader, n *stubNotifier, a *stubAudit) *DashboardService {
	// Avoid wrapping a typed nil in the interface, which would defeat the
	// service's nil check.
	var audit ports.AuditRecorder
	if a != nil {
		audit = a
	}
	return NewDashboardService(dir, up, n, audit, false, zerolog.Nop())
}

// waitFor polls cond until it holds or the deadline passes. The upstream
// sync runs in a detached goroutine, so assertions about it must wait.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func strPtr(s string) *string { return &s }

func fillValidDraft(t *testing.T, svc *DashboardService) {
	t.Helper()
	_, err := svc.PatchDraft(context.Background(), domain.DraftPatch{
		Name:     strPtr("Bo"),
		Email:    strPtr("bo@x.com"),
		Role:     strPtr("Viewer"),
		Password: strPtr("longenough"),
	})
	if err != nil {
		t.Fatalf("patch draft: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestLoadInitial_SeedsList(t *testing.T) {
	dir := &stubDirectory{fetch: []domain.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor},
	}}
	svc := newService(dir, &stubUploader{}, &stubNotifier{}, nil)

	if err := svc.LoadInitial(context.Background()); err != nil {
		t.Fatalf("load initial: %v", err)
	}

	result := svc.ListUsers(context.Background(), nil)
	if len(result.Users) != 1 || result.Users[0].Name != "Ann" {
		t.Fatalf("unexpected list: %+v", result.Users)
	}
}

func TestLoadInitial_FailureLeavesListEmpty(t *testing.T) {
	dir := &stubDirectory{fetchErr: errors.New("connection refused")}
	svc := newService(dir, &stubUploader{}, &stubNotifier{}, nil)

	if err := svc.LoadInitial(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if result := svc.ListUsers(context.Background(), nil); len(result.Users) != 0 {
		t.Fatalf("expected empty list, got %+v", result.Users)
	}
}

func TestListUsers_SearchTermIsSticky(t *testing.T) {
	dir := &stubDirectory{fetch: []domain.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor},
		{ID: 2, Name: "Bo", Email: "bo@x.com", Role: domain.RoleViewer},
	}}
	svc := newService(dir, &stubUploader{}, &stubNotifier{}, nil)
	_ = svc.LoadInitial(context.Background())

	result := svc.ListUsers(context.Background(), strPtr("ann"))
	if len(result.Users) != 1 || result.Term != "ann" {
		t.Fatalf("unexpected filtered list: %+v", result)
	}

	// No term supplied: previous term stays applied.
	result = svc.ListUsers(context.Background(), nil)
	if len(result.Users) != 1 || result.Term != "ann" {
		t.Fatalf("term should persist across reads: %+v", result)
	}

	// Explicit empty term resets the filter.
	result = svc.ListUsers(context.Background(), strPtr(""))
	if len(result.Users) != 2 {
		t.Fatalf("empty term should match everything: %+v", result)
	}
}

func TestCreateFlow_EndToEnd(t *testing.T) {
	dir := &stubDirectory{}
	notifier := &stubNotifier{}
	audit := &stubAudit{}
	svc := newService(dir, &stubUploader{}, notifier, audit)

	if _, err := svc.OpenForm(context.Background(), nil); err != nil {
		t.Fatalf("open form: %v", err)
	}
	fillValidDraft(t, svc)

	result, err := svc.SubmitForm(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !result.Committed || result.WasEdit {
		t.Fatalf("expected committed create, got %+v", result)
	}
	if result.User.ID == 0 {
		t.Fatalf("expected a minted id")
	}
	if result.User.Name != "Bo" || result.User.Email != "bo@x.com" || result.User.Role != domain.RoleViewer {
		t.Fatalf("unexpected committed user: %+v", result.User)
	}

	// Optimistic: the local list grows before the upstream call resolves.
	list := svc.ListUsers(context.Background(), strPtr(""))
	if len(list.Users) != 1 || list.Users[0].ID != result.User.ID {
		t.Fatalf("expected optimistic local entry, got %+v", list.Users)
	}

	waitFor(t, func() bool { return len(dir.createdUsers()) == 1 })
	if created := dir.createdUsers()[0]; created.ID != result.User.ID {
		t.Fatalf("upstream received wrong user: %+v", created)
	}

	waitFor(t, func() bool {
		for _, title := range notifier.titles() {
			if title == "User Added" {
				return true
			}
		}
		return false
	})
}

func TestSubmit_BlockedByValidation(t *testing.T) {
	dir := &stubDirectory{}
	svc := newService(dir, &stubUploader{}, &stubNotifier{}, nil)

	_, _ = svc.OpenForm(context.Background(), nil)
	result, err := svc.SubmitForm(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Committed {
		t.Fatalf("empty draft must not commit")
	}
	if result.FieldErrors[domain.FieldName] != domain.MsgNameRequired {
		t.Fatalf("expected name error, got %+v", result.FieldErrors)
	}
	if len(svc.ListUsers(context.Background(), nil).Users) != 0 {
		t.Fatalf("blocked submit must not touch the list")
	}

	time.Sleep(20 * time.Millisecond)
	if len(dir.createdUsers()) != 0 {
		t.Fatalf("blocked submit must not call upstream")
	}
}

func TestEditFlow_UpdatesInPlace(t *testing.T) {
	dir := &stubDirectory{fetch: []domain.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor, Password: "password1"},
		{ID: 2, Name: "Bo", Email: "bo@x.com", Role: domain.RoleViewer, Password: "password2"},
	}}
	svc := newService(dir, &stubUploader{}, &stubNotifier{}, nil)
	_ = svc.LoadInitial(context.Background())

	id := int64(1)
	view, err := svc.OpenForm(context.Background(), &id)
	if err != nil {
		t.Fatalf("open edit: %v", err)
	}
	if view.Draft.Name != "Ann" || view.Draft.Password != "password1" {
		t.Fatalf("draft not prefilled: %+v", view.Draft)
	}

	_, _ = svc.PatchDraft(context.Background(), domain.DraftPatch{Name: strPtr("Annie")})
	result, err := svc.SubmitForm(context.Background())
	if err != nil || !result.Committed || !result.WasEdit {
		t.Fatalf("unexpected submit outcome: %+v err=%v", result, err)
	}

	users := svc.ListUsers(context.Background(), nil).Users
	if users[0].Name != "Annie" || users[0].ID != 1 || users[1].Name != "Bo" {
		t.Fatalf("edit did not replace in place: %+v", users)
	}

	waitFor(t, func() bool {
		dir.mu.Lock()
		defer dir.mu.Unlock()
		return len(dir.updated) == 1
	})
}

func TestOpenForm_EditTargetMissing(t *testing.T) {
	svc := newService(&stubDirectory{}, &stubUploader{}, &stubNotifier{}, nil)

	id := int64(99)
	if _, err := svc.OpenForm(context.Background(), &id); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUser_OptimisticAndFiresUpstream(t *testing.T) {
	dir := &stubDirectory{fetch: []domain.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor},
	}}
	notifier := &stubNotifier{}
	svc := newService(dir, &stubUploader{}, notifier, nil)
	_ = svc.LoadInitial(context.Background())

	svc.DeleteUser(context.Background(), 1)

	if len(svc.ListUsers(context.Background(), nil).Users) != 0 {
		t.Fatalf("expected local delete to apply immediately")
	}

	waitFor(t, func() bool { return len(dir.deletedIDs()) == 1 })
	if dir.deletedIDs()[0] != 1 {
		t.Fatalf("upstream delete got wrong id")
	}
}

func TestSyncFailure_NoRollbackButFlagged(t *testing.T) {
	dir := &stubDirectory{createErr: errors.New("upstream down")}
	notifier := &stubNotifier{}
	audit := &stubAudit{}
	svc := newService(dir, &stubUploader{}, notifier, audit)

	_, _ = svc.OpenForm(context.Background(), nil)
	fillValidDraft(t, svc)
	result, err := svc.SubmitForm(context.Background())
	if err != nil || !result.Committed {
		t.Fatalf("submit should commit locally: %+v err=%v", result, err)
	}

	waitFor(t, func() bool {
		for _, title := range notifier.titles() {
			if title == "Error" {
				return true
			}
		}
		return false
	})

	// Local state survives; divergence is only flagged.
	list := svc.ListUsers(context.Background(), nil)
	if len(list.Users) != 1 {
		t.Fatalf("optimistic entry must not roll back: %+v", list.Users)
	}
	if !list.NeedsReload {
		t.Fatalf("expected needs_reload after a sync failure")
	}

	waitFor(t, func() bool {
		audit.mu.Lock()
		defer audit.mu.Unlock()
		for _, e := range audit.entries {
			if e.Outcome == ports.AuditOutcomeSyncFailed {
				return true
			}
		}
		return false
	})
}

func TestUploadAvatar_OversizeRejectedBeforeCollaborator(t *testing.T) {
	uploader := &stubUploader{ref: "http://img/x.png"}
	notifier := &stubNotifier{}
	svc := newService(&stubDirectory{}, uploader, notifier, nil)

	_, _ = svc.OpenForm(context.Background(), nil)

	oversize := int64(250 * 1024)
	_, err := svc.UploadAvatar(context.Background(), "big.png", oversize, strings.NewReader("x"))
	if !errors.Is(err, domain.ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
	if uploader.callCount() != 0 {
		t.Fatalf("size guard must reject before any collaborator call")
	}

	view, _ := svc.PatchDraft(context.Background(), domain.DraftPatch{})
	if view.Draft.Image != "" {
		t.Fatalf("rejected upload must leave the image unchanged")
	}

	waitFor(t, func() bool {
		for _, title := range notifier.titles() {
			if title == "Image Size Exceeded" {
				return true
			}
		}
		return false
	})
}

func TestUploadAvatar_Accepted(t *testing.T) {
	uploader := &stubUploader{ref: "http://img/avatar.png"}
	svc := newService(&stubDirectory{}, uploader, &stubNotifier{}, nil)

	_, _ = svc.OpenForm(context.Background(), nil)
	view, err := svc.UploadAvatar(context.Background(), "avatar.png", 1024, strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if view.Draft.Image != "http://img/avatar.png" {
		t.Fatalf("expected collaborator reference on draft, got %q", view.Draft.Image)
	}
}

func TestUploadAvatar_CollaboratorFailureIsSilent(t *testing.T) {
	uploader := &stubUploader{err: errors.New("upload service down")}
	notifier := &stubNotifier{}
	svc := newService(&stubDirectory{}, uploader, notifier, nil)

	_, _ = svc.OpenForm(context.Background(), nil)
	_, _ = svc.PatchDraft(context.Background(), domain.DraftPatch{})

	view, err := svc.UploadAvatar(context.Background(), "avatar.png", 1024, strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("collaborator failure must not surface: %v", err)
	}
	if view.Draft.Image != "" {
		t.Fatalf("failed upload must leave the image unchanged")
	}
	titles := notifier.titles()
	if len(titles) != 1 || titles[0] != "Error" {
		t.Fatalf("expected an operator-visible error notification, got %v", titles)
	}
}

func TestUploadAvatar_CancelDuringUploadDropsReference(t *testing.T) {
	uploader := &stubUploader{ref: "http://img/late.png"}
	svc := newService(&stubDirectory{}, uploader, &stubNotifier{}, nil)

	_, _ = svc.OpenForm(context.Background(), nil)
	uploader.onUpload = func() { _ = svc.CancelForm(context.Background()) }

	_, err := svc.UploadAvatar(context.Background(), "late.png", 1024, strings.NewReader("bytes"))
	if !errors.Is(err, domain.ErrFormClosed) {
		t.Fatalf("expected ErrFormClosed when the session closes mid-upload, got %v", err)
	}

	view, err := svc.OpenForm(context.Background(), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if view.Draft.Image != "" {
		t.Fatalf("dropped reference must not leak into the next session, got %q", view.Draft.Image)
	}
}

func TestUploadAvatar_RequiresOpenForm(t *testing.T) {
	svc := newService(&stubDirectory{}, &stubUploader{}, &stubNotifier{}, nil)
	_, err := svc.UploadAvatar(context.Background(), "a.png", 10, strings.NewReader("x"))
	if !errors.Is(err, domain.ErrFormClosed) {
		t.Fatalf("expected ErrFormClosed, got %v", err)
	}
}

func TestCancelForm(t *testing.T) {
	svc := newService(&stubDirectory{}, &stubUploader{}, &stubNotifier{}, nil)

	if err := svc.CancelForm(context.Background()); !errors.Is(err, domain.ErrFormClosed) {
		t.Fatalf("expected ErrFormClosed, got %v", err)
	}

	_, _ = svc.OpenForm(context.Background(), nil)
	if err := svc.CancelForm(context.Background()); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A new session can open afterwards.
	if _, err := svc.OpenForm(context.Background(), nil); err != nil {
		t.Fatalf("reopen after cancel: %v", err)
	}
}
