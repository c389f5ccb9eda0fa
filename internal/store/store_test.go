package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/aniladanir/campaign-manager/internal/domain"
)

var errRepoDown = errors.New("repository unavailable")

var fixedTime = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func testOptions(prefix string) []Option {
	n := 0
	return []Option{
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("%s-%d", prefix, n)
		}),
		WithClock(func() time.Time { return fixedTime }),
	}
}

// fakeRepo records writes and fails them while fail is set.
type fakeRepo struct {
	fail      bool
	templates map[string]domain.Template
	contacts  []domain.Contact
	campaigns map[string]domain.Campaign
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		templates: map[string]domain.Template{},
		campaigns: map[string]domain.Campaign{},
	}
}

func (r *fakeRepo) SaveTemplate(t *domain.Template) error {
	if r.fail {
		return errRepoDown
	}
	r.templates[t.ID] = *t
	return nil
}

func (r *fakeRepo) DeleteTemplate(id string) error {
	if r.fail {
		return errRepoDown
	}
	delete(r.templates, id)
	return nil
}

func (r *fakeRepo) SaveContacts(contacts []domain.Contact) error {
	if r.fail {
		return errRepoDown
	}
	r.contacts = append(r.contacts, contacts...)
	return nil
}

func (r *fakeRepo) DeleteAllContacts() error {
	if r.fail {
		return errRepoDown
	}
	r.contacts = nil
	return nil
}

func (r *fakeRepo) SaveCampaign(c *domain.Campaign) error {
	if r.fail {
		return errRepoDown
	}
	r.campaigns[c.ID] = *c
	return nil
}
