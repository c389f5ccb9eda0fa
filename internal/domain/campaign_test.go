package domain

import (
	"errors"
	"math"
	"testing"
)

func TestNextStatus(t *testing.T) {
	tests := []struct {
		from    CampaignStatus
		trigger Trigger
		want    CampaignStatus
		ok      bool
	}{
		{StatusRunning, TriggerToggle, StatusPaused, true},
		{StatusPaused, TriggerToggle, StatusRunning, true},
		{StatusDraft, TriggerToggle, "", false},
		{StatusScheduled, TriggerToggle, "", false},
		{StatusCompleted, TriggerToggle, "", false},
		{StatusDraft, TriggerLaunch, StatusRunning, true},
		{StatusScheduled, TriggerLaunch, StatusRunning, true},
		{StatusPaused, TriggerLaunch, "", false},
		{StatusRunning, TriggerComplete, StatusCompleted, true},
		{StatusCompleted, TriggerComplete, "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.trigger)+"/"+string(tt.from), func(t *testing.T) {
			got, ok := NextStatus(tt.from, tt.trigger)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("expected (%q, %v), got (%q, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestProgressCheck(t *testing.T) {
	tests := []struct {
		name  string
		p     Progress
		valid bool
	}{
		{name: "zero", p: Progress{}, valid: true},
		{name: "partial", p: Progress{TotalContacts: 2, SentCount: 1, SuccessCount: 1}, valid: true},
		{name: "done", p: Progress{TotalContacts: 2, SentCount: 2, SuccessCount: 1, FailedCount: 1}, valid: true},
		{name: "in flight", p: Progress{TotalContacts: 5, SentCount: 3, SuccessCount: 1}, valid: true},
		{name: "sent over total", p: Progress{TotalContacts: 2, SentCount: 3}},
		{name: "outcomes over sent", p: Progress{TotalContacts: 4, SentCount: 2, SuccessCount: 2, FailedCount: 1}},
		{name: "negative", p: Progress{TotalContacts: 1, SentCount: -1}},
		{name: "outcomes overflow", p: Progress{TotalContacts: 2, SentCount: 1, SuccessCount: math.MaxInt, FailedCount: math.MaxInt}},
		{name: "failed overflow", p: Progress{TotalContacts: 2, SentCount: 1, SuccessCount: 1, FailedCount: math.MaxInt}},
		{name: "large but consistent", p: Progress{TotalContacts: math.MaxInt, SentCount: math.MaxInt, SuccessCount: math.MaxInt - 1, FailedCount: 1}, valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Check()
			if tt.valid && err != nil {
				t.Fatalf("expected valid progress, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatalf("expected progress %+v to be rejected", tt.p)
			}
		})
	}
}

func TestErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		err  error
		want error
	}{
		{&ValidationError{Field: "name", Reason: "is required"}, ErrValidation},
		{&NotFoundError{Entity: "template", ID: "t1"}, ErrNotFound},
		{&InvalidTransitionError{ID: "c1", From: StatusDraft}, ErrInvalidTransition},
		{&InvariantViolationError{ID: "c1", Reason: "x"}, ErrInvariantViolation},
		{&ConflictError{Entity: "template", ID: "t1", Reason: "in use"}, ErrConflict},
	}

	for _, tt := range tests {
		if !errors.Is(tt.err, tt.want) {
			t.Errorf("expected %v to match %v", tt.err, tt.want)
		}
		if errors.Is(tt.err, ErrConflict) && tt.want != ErrConflict {
			t.Errorf("expected %v not to match ErrConflict", tt.err)
		}
	}
}

func TestContactBindings(t *testing.T) {
	c := Contact{PhoneNumber: "111", Name: "Lee", Variables: map[string]string{"discount": "10%", "name": "Mr. Lee"}}
	b := c.Bindings()
	if b["phoneNumber"] != "111" {
		t.Fatalf("expected phoneNumber 111, got %q", b["phoneNumber"])
	}
	if b["name"] != "Mr. Lee" {
		t.Fatalf("expected imported name to win, got %q", b["name"])
	}
	if b["discount"] != "10%" {
		t.Fatalf("expected discount 10%%, got %q", b["discount"])
	}
}

func TestStatsSuccessRate(t *testing.T) {
	if got := (CampaignStats{}).SuccessRate(); got != 0 {
		t.Fatalf("expected 0 for no sends, got %v", got)
	}
	s := CampaignStats{SentCount: 4, SuccessCount: 3}
	if got := s.SuccessRate(); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
}

func TestContactVariableKeys(t *testing.T) {
	tests := []struct {
		name    string
		contact Contact
		want    []string
	}{
		{name: "import order", contact: Contact{Variables: map[string]string{"b": "1", "a": "2"}, VariableOrder: []string{"b", "a"}}, want: []string{"b", "a"}},
		{name: "no order sorts", contact: Contact{Variables: map[string]string{"b": "1", "a": "2"}}, want: []string{"a", "b"}},
		{name: "unordered keys follow", contact: Contact{Variables: map[string]string{"z": "1", "c": "2", "a": "3"}, VariableOrder: []string{"z", "gone"}}, want: []string{"z", "a", "c"}},
		{name: "empty", contact: Contact{}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.contact.VariableKeys()
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("expected %v, got %v", tt.want, got)
				}
			}
		})
	}
}
