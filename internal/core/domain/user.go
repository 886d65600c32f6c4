package domain

import "errors"

// Role is the closed set of roles a user can hold. Values outside the
// enumeration never survive draft validation.
type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleEditor        Role = "Editor"
	RoleViewer        Role = "Viewer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrFormAlreadyOpen = errors.New("a form session is already open")
var ErrFormClosed = errors.New("no form session is open")
var ErrImageTooLarge = errors.New("image exceeds the upload size limit")

// ParseRole maps free text from the wire onto the role enumeration.
// The zero Role and false are returned for anything outside it.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdministrator, RoleEditor, RoleViewer:
		return Role(s), true
	}
	return "", false
}

// User is one managed account in the directory. Instances only enter the
// authoritative list through draft validation, so a committed User always
// carries a non-empty name, a shape-valid email, and an enumerated role.
//
// The password travels in plain form; the upstream directory owns hashing.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password"`
	Image    string `json:"image,omitempty"`
}
