package repository

import (
	"testing"

	"github.com/aniladanir/campaign-manager/internal/domain"
)

func TestContactRepository(t *testing.T) {
	r := NewContactRepository(openTestDB(t))

	if err := r.SaveContacts([]domain.Contact{
		{ID: "c-1", PhoneNumber: "111", Name: "Lee", Variables: map[string]string{"discount": "10%", "city": "Oslo"}, VariableOrder: []string{"discount", "city"}, Position: 1},
		{ID: "c-2", PhoneNumber: "222", Variables: map[string]string{}, Position: 2},
	}); err != nil {
		t.Fatalf("save contacts: %v", err)
	}
	if err := r.SaveContacts([]domain.Contact{{ID: "c-3", PhoneNumber: "333", Position: 3}}); err != nil {
		t.Fatalf("save contacts: %v", err)
	}

	got, err := r.GetContacts()
	if err != nil {
		t.Fatalf("get contacts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(got))
	}
	if got[0].ID != "c-1" || got[0].Variables["discount"] != "10%" {
		t.Fatalf("expected c-1 with discount, got %+v", got[0])
	}
	if order := got[0].VariableOrder; len(order) != 2 || order[0] != "discount" || order[1] != "city" {
		t.Fatalf("expected variable order to persist, got %v", order)
	}
	if got[2].ID != "c-3" {
		t.Fatalf("expected import order, got %+v", got)
	}

	if err := r.DeleteAllContacts(); err != nil {
		t.Fatalf("delete contacts: %v", err)
	}
	got, _ = r.GetContacts()
	if len(got) != 0 {
		t.Fatalf("expected no contacts, got %d", len(got))
	}
}
