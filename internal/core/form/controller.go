// Package form owns the transient state of the user form: one session at a
// time, an explicit Closed / CreateOpen / EditOpen state machine, and the
// draft plus its per-field errors for the lifetime of that session.
package form

import (
	"time"

	"github.com/userdeck/admin-console/internal/core/domain"
)

// State is the form session state.
type State int

const (
	StateClosed State = iota
	StateCreateOpen
	StateEditOpen
)

func (s State) String() string {
	switch s {
	case StateCreateOpen:
		return "create_open"
	case StateEditOpen:
		return "edit_open"
	default:
		return "closed"
	}
}

// Controller is the form state machine. Not safe for concurrent use; the
// dashboard service serializes all access.
type Controller struct {
	state          State
	target         domain.User // edit target, zero in create mode
	draft          domain.FormDraft
	errors         domain.FieldErrors
	strictPassword bool

	// now mints ids for newly created users; overridable in tests.
	now func() time.Time
}

func NewController(strictPassword bool) *Controller {
	return &Controller{
		errors:         domain.FieldErrors{},
		strictPassword: strictPassword,
		now:            time.Now,
	}
}

func (c *Controller) State() State               { return c.state }
func (c *Controller) Draft() domain.FormDraft    { return c.draft }
func (c *Controller) Errors() domain.FieldErrors { return cloneErrors(c.errors) }

// OpenCreate transitions Closed -> CreateOpen with an empty draft.
func (c *Controller) OpenCreate() error {
	if c.state != StateClosed {
		return domain.ErrFormAlreadyOpen
	}
	c.state = StateCreateOpen
	c.draft = domain.FormDraft{}
	c.errors = domain.FieldErrors{}
	return nil
}

// OpenEdit transitions Closed -> EditOpen with the draft prefilled from u,
// existing password and image included.
func (c *Controller) OpenEdit(u domain.User) error {
	if c.state != StateClosed {
		return domain.ErrFormAlreadyOpen
	}
	c.state = StateEditOpen
	c.target = u
	c.draft = domain.FormDraft{
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		Password: u.Password,
		Image:    u.Image,
	}
	c.errors = domain.FieldErrors{}
	return nil
}

// Patch applies partial field edits to the open draft. Editing a field
// clears that field's error so stale messages never outlive a correction.
func (c *Controller) Patch(p domain.DraftPatch) error {
	if c.state == StateClosed {
		return domain.ErrFormClosed
	}
	if p.Name != nil {
		c.draft.Name = *p.Name
		delete(c.errors, domain.FieldName)
	}
	if p.Email != nil {
		c.draft.Email = *p.Email
		delete(c.errors, domain.FieldEmail)
	}
	if p.Role != nil {
		c.draft.Role = *p.Role
		delete(c.errors, domain.FieldRole)
	}
	if p.Password != nil {
		c.draft.Password = *p.Password
		delete(c.errors, domain.FieldPassword)
	}
	if p.ShowPassword != nil {
		c.draft.ShowPassword = *p.ShowPassword
	}
	return nil
}

// SetImage stores the uploaded avatar reference on the open draft.
func (c *Controller) SetImage(ref string) error {
	if c.state == StateClosed {
		return domain.ErrFormClosed
	}
	c.draft.Image = ref
	return nil
}

// Cancel discards the session: values and errors are both cleared.
func (c *Controller) Cancel() {
	c.reset()
}

// Submit validates the draft. Blocking errors keep the session open and are
// returned for inline display. A valid draft yields the finalized User (the
// edit target's id, or a freshly minted one in create mode) together with
// true for wasEdit when the session was an edit, and closes the session.
func (c *Controller) Submit() (user domain.User, wasEdit bool, errs domain.FieldErrors, err error) {
	if c.state == StateClosed {
		return domain.User{}, false, nil, domain.ErrFormClosed
	}

	fieldErrs, ok := domain.ValidateDraft(c.draft, c.strictPassword)
	if !ok {
		c.errors = fieldErrs
		return domain.User{}, false, cloneErrors(fieldErrs), nil
	}

	role, _ := domain.ParseRole(c.draft.Role)
	user = domain.User{
		Name:     c.draft.Name,
		Email:    c.draft.Email,
		Role:     role,
		Password: c.draft.Password,
		Image:    c.draft.Image,
	}
	if c.state == StateEditOpen {
		user.ID = c.target.ID
		wasEdit = true
	} else {
		user.ID = c.now().UnixMilli()
	}

	c.reset()
	return user, wasEdit, nil, nil
}

func (c *Controller) reset() {
	c.state = StateClosed
	c.target = domain.User{}
	c.draft = domain.FormDraft{}
	c.errors = domain.FieldErrors{}
}

func cloneErrors(in domain.FieldErrors) domain.FieldErrors {
	out := make(domain.FieldErrors, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
