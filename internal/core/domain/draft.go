package domain

import (
	"regexp"
	"strings"
)

// Draft field names, also used as keys in FieldErrors.
const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldRole     = "role"
	FieldPassword = "password"
)

// Validation messages shown next to the offending field.
const (
	MsgNameRequired     = "Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Invalid email format"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must have a minimum length of 8 characters."
	MsgRoleRequired     = "Role is required"
	MsgImageTooLarge    = "Please upload an image of size up to 200KB."
)

// MaxImageBytes is the upload ceiling for avatar images.
const MaxImageBytes = 200 * 1024

const minPasswordLen = 8

// emailShape is a loose address-shape check (local@domain.tld), not full RFC
// validation.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// FormDraft is the transient, uncommitted state of one open form session.
// Role is free text here; it only becomes a Role once validation passes.
type FormDraft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Password     string `json:"password"`
	Image        string `json:"image,omitempty"`
	ShowPassword bool   `json:"show_password"`
}

// DraftPatch carries partial draft edits; nil means "leave unchanged".
type DraftPatch struct {
	Name         *string
	Email        *string
	Role         *string
	Password     *string
	ShowPassword *bool
}

// FieldErrors maps a draft field name to its validation message. An absent
// key means the field is valid.
type FieldErrors map[string]string

// ValidateDraft checks every field independently and reports the error map
// plus whether submission may proceed. All rules run even after a failure so
// the caller sees every broken field at once.
//
// A too-short password produces an error message but does not block
// submission unless strictPassword is set. The lenient default keeps the
// length rule advisory, matching what the upstream directory accepts.
func ValidateDraft(d FormDraft, strictPassword bool) (FieldErrors, bool) {
	errs := FieldErrors{}
	ok := true

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = MsgNameRequired
		ok = false
	}

	if d.Email == "" {
		errs[FieldEmail] = MsgEmailRequired
		ok = false
	} else if !emailShape.MatchString(d.Email) {
		errs[FieldEmail] = MsgEmailInvalid
		ok = false
	}

	if d.Password == "" {
		errs[FieldPassword] = MsgPasswordRequired
		ok = false
	} else if len(d.Password) < minPasswordLen {
		errs[FieldPassword] = MsgPasswordTooShort
		if strictPassword {
			ok = false
		}
	}

	if _, valid := ParseRole(d.Role); !valid {
		errs[FieldRole] = MsgRoleRequired
		ok = false
	}

	return errs, ok
}

// CheckImageSize guards a candidate avatar before any upload collaborator
// call. Files above MaxImageBytes are rejected with ErrImageTooLarge.
func CheckImageSize(sizeBytes int64) error {
	if sizeBytes > MaxImageBytes {
		return ErrImageTooLarge
	}
	return nil
}
