// Package roster holds the authoritative in-memory user list for one
// console session and the pure reconciliation operations over it.
//
// The roster itself is not safe for concurrent use; the dashboard service
// serializes all access.
package roster

import (
	"strings"

	"github.com/userdeck/admin-console/internal/core/domain"
)

type Roster struct {
	users []domain.User
}

func New() *Roster {
	return &Roster{}
}

// Seed replaces the whole list with the upstream snapshot. Used once at
// startup and again after an explicit reload.
func (r *Roster) Seed(users []domain.User) {
	r.users = append(r.users[:0:0], users...)
}

// Create appends u. Ids are unique by construction (time-minted or assigned
// upstream), so no duplicate check is performed.
func (r *Roster) Create(u domain.User) {
	r.users = append(r.users, u)
}

// Update replaces the entry whose id matches u.ID, preserving position.
// A miss is a no-op and reported as false.
func (r *Roster) Update(u domain.User) bool {
	for i := range r.users {
		if r.users[i].ID == u.ID {
			r.users[i] = u
			return true
		}
	}
	return false
}

// Delete removes the entry with the given id, preserving the order of the
// rest. A miss is a no-op and reported as false.
func (r *Roster) Delete(id int64) bool {
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the entry with the given id, or false.
func (r *Roster) Find(id int64) (domain.User, bool) {
	for i := range r.users {
		if r.users[i].ID == id {
			return r.users[i], true
		}
	}
	return domain.User{}, false
}

// Search returns a fresh slice of the entries whose name, email, or role
// contains term, case-insensitively. The empty term matches everything.
// Order is preserved and the authoritative list is never mutated.
func (r *Roster) Search(term string) []domain.User {
	needle := strings.ToLower(term)
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if needle == "" ||
			strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(string(u.Role)), needle) {
			out = append(out, u)
		}
	}
	return out
}

// All returns a copy of the authoritative list.
func (r *Roster) All() []domain.User {
	return append([]domain.User(nil), r.users...)
}

func (r *Roster) Len() int {
	return len(r.users)
}
