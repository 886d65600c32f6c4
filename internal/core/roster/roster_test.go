package roster

import (
	"reflect"
	"testing"

	"github.com/userdeck/admin-console/internal/core/domain"
)

func seeded() *Roster {
	r := New()
	r.Seed([]domain.User{
		{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor, Password: "password1"},
		{ID: 2, Name: "Bo", Email: "bo@x.com", Role: domain.RoleViewer, Password: "password2"},
		{ID: 3, Name: "Carol", Email: "carol@y.org", Role: domain.RoleAdministrator, Password: "password3"},
	})
	return r
}

func TestSearch_EmptyTermReturnsAll(t *testing.T) {
	r := seeded()
	got := r.Search("")
	if !reflect.DeepEqual(got, r.All()) {
		t.Fatalf("empty term should return the full list in order, got %+v", got)
	}
}

func TestSearch_CaseInsensitive(t *testing.T) {
	r := New()
	r.Seed([]domain.User{{ID: 1, Name: "Ann", Email: "a@x.com", Role: domain.RoleEditor}})

	got := r.Search("ANN")
	if len(got) != 1 || got[0].Name != "Ann" {
		t.Fatalf("expected the Ann record, got %+v", got)
	}
}

func TestSearch_MatchesNameEmailOrRole(t *testing.T) {
	r := seeded()

	if got := r.Search("y.org"); len(got) != 1 || got[0].ID != 3 {
		t.Fatalf("email match failed: %+v", got)
	}
	if got := r.Search("viewer"); len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("role match failed: %+v", got)
	}
	if got := r.Search("nobody"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSearch_DoesNotMutateList(t *testing.T) {
	r := seeded()
	before := r.All()
	_ = r.Search("ann")
	if !reflect.DeepEqual(before, r.All()) {
		t.Fatalf("search mutated the authoritative list")
	}
}

func TestUpdate_ReplacesOnlyMatchingEntry(t *testing.T) {
	r := seeded()
	before := r.All()

	replaced := r.Update(domain.User{ID: 2, Name: "Bob", Email: "bob@x.com", Role: domain.RoleEditor, Password: "password2"})
	if !replaced {
		t.Fatalf("expected update to hit")
	}

	after := r.All()
	if len(after) != len(before) {
		t.Fatalf("update changed list length")
	}
	if after[1].Name != "Bob" || after[1].ID != 2 {
		t.Fatalf("entry 2 not replaced in place: %+v", after[1])
	}
	if !reflect.DeepEqual(after[0], before[0]) || !reflect.DeepEqual(after[2], before[2]) {
		t.Fatalf("update touched other entries")
	}
}

func TestUpdate_AbsentIdIsNoOp(t *testing.T) {
	r := seeded()
	before := r.All()

	if r.Update(domain.User{ID: 99, Name: "Ghost"}) {
		t.Fatalf("expected update miss")
	}
	if !reflect.DeepEqual(before, r.All()) {
		t.Fatalf("no-op update changed the list")
	}
}

func TestDelete(t *testing.T) {
	r := seeded()

	if !r.Delete(2) {
		t.Fatalf("expected delete to hit")
	}
	after := r.All()
	if len(after) != 2 || after[0].ID != 1 || after[1].ID != 3 {
		t.Fatalf("delete broke ordering: %+v", after)
	}
}

func TestDelete_AbsentIdIsNoOp(t *testing.T) {
	r := seeded()
	before := r.All()

	if r.Delete(99) {
		t.Fatalf("expected delete miss")
	}
	if !reflect.DeepEqual(before, r.All()) {
		t.Fatalf("no-op delete changed the list")
	}
}

func TestCreate_Appends(t *testing.T) {
	r := seeded()
	r.Create(domain.User{ID: 4, Name: "Dan", Email: "dan@x.com", Role: domain.RoleViewer})

	if r.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", r.Len())
	}
	if got := r.All()[3]; got.ID != 4 {
		t.Fatalf("expected new entry appended last, got %+v", got)
	}
}

func TestSeed_ReplacesAndCopies(t *testing.T) {
	r := seeded()
	src := []domain.User{{ID: 10, Name: "Eve", Email: "eve@x.com", Role: domain.RoleEditor}}
	r.Seed(src)

	src[0].Name = "mutated"
	if got := r.All(); len(got) != 1 || got[0].Name != "Eve" {
		t.Fatalf("seed should copy the input slice, got %+v", got)
	}
}
