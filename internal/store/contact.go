package store

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/aniladanir/campaign-manager/internal/domain"
)

type ContactRepository interface {
	SaveContacts(contacts []domain.Contact) error
	DeleteAllContacts() error
}

// ContactStore keeps imported contacts in arrival order. Contacts are never
// edited individually; the collection only grows or is cleared.
type ContactStore struct {
	mu       sync.RWMutex
	contacts []domain.Contact
	seq      int64
	repo     ContactRepository
	opts     options
}

func NewContactStore(repo ContactRepository, opts ...Option) *ContactStore {
	return &ContactStore{
		repo: repo,
		opts: buildOptions(opts),
	}
}

func (s *ContactStore) Restore(contacts []domain.Contact) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range contacts {
		s.contacts = append(s.contacts, cloneContact(c))
		s.seq = max(s.seq, c.Position)
	}
}

// AddMany appends contacts, assigning ids to those without one.
func (s *ContactStore) AddMany(contacts []domain.Contact) ([]domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	added := make([]domain.Contact, 0, len(contacts))
	for i, c := range contacts {
		c = cloneContact(c)
		if c.ID == "" {
			c.ID = s.opts.newID()
		}
		if c.Variables == nil {
			c.Variables = map[string]string{}
		}
		c.Position = s.seq + int64(i) + 1
		c.CreatedAt = now
		added = append(added, c)
	}

	if s.repo != nil && len(added) > 0 {
		if err := s.repo.SaveContacts(added); err != nil {
			return nil, err
		}
	}
	s.seq += int64(len(added))
	for _, c := range added {
		s.contacts = append(s.contacts, cloneContact(c))
	}

	return added, nil
}

func (s *ContactStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if err := s.repo.DeleteAllContacts(); err != nil {
			return err
		}
	}
	s.contacts = nil
	return nil
}

func (s *ContactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contacts)
}

// Filter yields the contacts matching keep in arrival order. The view is
// restartable: every pass reads the store as it is when the pass starts.
// A nil keep yields every contact.
func (s *ContactStore) Filter(keep func(domain.Contact) bool) iter.Seq[domain.Contact] {
	return func(yield func(domain.Contact) bool) {
		s.mu.RLock()
		snapshot := s.contacts
		s.mu.RUnlock()

		for _, c := range snapshot {
			if keep != nil && !keep(c) {
				continue
			}
			if !yield(cloneContact(c)) {
				return
			}
		}
	}
}

func (s *ContactStore) All() iter.Seq[domain.Contact] {
	return s.Filter(nil)
}

// Search matches term against name and phone number, ignoring case.
func (s *ContactStore) Search(term string) iter.Seq[domain.Contact] {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return s.All()
	}
	return s.Filter(func(c domain.Contact) bool {
		return strings.Contains(strings.ToLower(c.Name), term) ||
			strings.Contains(strings.ToLower(c.PhoneNumber), term)
	})
}

func cloneContact(c domain.Contact) domain.Contact {
	c.Variables = maps.Clone(c.Variables)
	c.VariableOrder = slices.Clone(c.VariableOrder)
	return c
}
