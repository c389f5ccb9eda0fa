package store

import (
	"errors"
	"iter"
	"slices"
	"testing"

	"github.com/aniladanir/campaign-manager/internal/domain"
)

func names(seq iter.Seq[domain.Contact]) []string {
	var out []string
	for c := range seq {
		out = append(out, c.Name)
	}
	return out
}

func TestContactAddManyKeepsArrivalOrder(t *testing.T) {
	s := NewContactStore(nil, testOptions("contact")...)
	if _, err := s.AddMany([]domain.Contact{{ID: "a", Name: "Ann"}, {Name: "Bob"}}); err != nil {
		t.Fatalf("add contacts: %v", err)
	}
	added, err := s.AddMany([]domain.Contact{{Name: "Cid"}})
	if err != nil {
		t.Fatalf("add contacts: %v", err)
	}
	if added[0].ID != "contact-2" {
		t.Fatalf("expected generated id contact-2, got %q", added[0].ID)
	}
	if added[0].Variables == nil {
		t.Fatalf("expected non-nil variables")
	}

	if got, want := names(s.All()), []string{"Ann", "Bob", "Cid"}; !slices.Equal(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if s.Len() != 3 {
		t.Fatalf("expected 3 contacts, got %d", s.Len())
	}
}

func TestContactSearch(t *testing.T) {
	s := NewContactStore(nil)
	_, _ = s.AddMany([]domain.Contact{
		{PhoneNumber: "+15550001", Name: "Ann Lee"},
		{PhoneNumber: "+15550002", Name: "bob"},
		{PhoneNumber: "+4470000", Name: "Lee Kim"},
	})

	tests := []struct {
		term string
		want []string
	}{
		{term: "lee", want: []string{"Ann Lee", "Lee Kim"}},
		{term: "BOB", want: []string{"bob"}},
		{term: "5550", want: []string{"Ann Lee", "bob"}},
		{term: "+44", want: []string{"Lee Kim"}},
		{term: "", want: []string{"Ann Lee", "bob", "Lee Kim"}},
		{term: "zzz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			if got := names(s.Search(tt.term)); !slices.Equal(got, tt.want) {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestContactFilterIsLazyAndRestartable(t *testing.T) {
	s := NewContactStore(nil)
	_, _ = s.AddMany([]domain.Contact{{Name: "a"}})

	view := s.Filter(func(c domain.Contact) bool { return true })
	if got := names(view); !slices.Equal(got, []string{"a"}) {
		t.Fatalf("expected [a], got %q", got)
	}

	_, _ = s.AddMany([]domain.Contact{{Name: "b"}})
	if got := names(view); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("expected view to see later additions, got %q", got)
	}

	for range view {
		break
	}
}

func TestContactClear(t *testing.T) {
	repo := newFakeRepo()
	s := NewContactStore(repo)
	_, _ = s.AddMany([]domain.Contact{{Name: "a"}, {Name: "b"}})
	if len(repo.contacts) != 2 {
		t.Fatalf("expected 2 persisted contacts, got %d", len(repo.contacts))
	}

	repo.fail = true
	if err := s.Clear(); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected contacts kept after failed clear, got %d", s.Len())
	}
	if _, err := s.AddMany([]domain.Contact{{Name: "c"}}); !errors.Is(err, errRepoDown) {
		t.Fatalf("expected repository error, got %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected failed add to be a no-op, got %d", s.Len())
	}

	repo.fail = false
	if err := s.Clear(); err != nil {
		t.Fatalf("clear contacts: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d", s.Len())
	}
}

func TestContactCopiesAreIsolated(t *testing.T) {
	s := NewContactStore(nil)
	in := []domain.Contact{{Name: "a", Variables: map[string]string{"k": "v"}}}
	_, _ = s.AddMany(in)
	in[0].Variables["k"] = "changed"

	for c := range s.All() {
		if c.Variables["k"] != "v" {
			t.Fatalf("expected stored value v, got %q", c.Variables["k"])
		}
		c.Variables["k"] = "changed again"
	}
	for c := range s.All() {
		if c.Variables["k"] != "v" {
			t.Fatalf("expected stored value v, got %q", c.Variables["k"])
		}
	}
}
