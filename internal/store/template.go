package store

import (
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/aniladanir/campaign-manager/internal/variable"
)

type TemplateRepository interface {
	SaveTemplate(t *domain.Template) error
	DeleteTemplate(id string) error
}

type TemplateStore struct {
	mu    sync.RWMutex
	items map[string]*domain.Template
	order []string
	seq   int64
	repo  TemplateRepository
	opts  options
}

// NewTemplateStore creates an empty store. repo may be nil.
func NewTemplateStore(repo TemplateRepository, opts ...Option) *TemplateStore {
	return &TemplateStore{
		items: make(map[string]*domain.Template),
		repo:  repo,
		opts:  buildOptions(opts),
	}
}

// Restore loads previously persisted templates, keeping their ids and order.
func (s *TemplateStore) Restore(templates []domain.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range templates {
		t := cloneTemplate(t)
		if _, ok := s.items[t.ID]; !ok {
			s.order = append(s.order, t.ID)
		}
		s.items[t.ID] = &t
		s.seq = max(s.seq, t.Position)
	}
}

// Create validates fields and inserts a new template with a fresh id.
func (s *TemplateStore) Create(fields domain.TemplateFields) (domain.Template, error) {
	fields, err := normalizeTemplateFields(fields)
	if err != nil {
		return domain.Template{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.opts.now()
	t := domain.Template{
		ID:        s.opts.newID(),
		Position:  s.seq + 1,
		CreatedAt: now,
	}
	applyTemplateFields(&t, fields, now)

	if s.repo != nil {
		if err := s.repo.SaveTemplate(&t); err != nil {
			return domain.Template{}, err
		}
	}
	s.seq++
	s.items[t.ID] = &t
	s.order = append(s.order, t.ID)

	return cloneTemplate(t), nil
}

// Update replaces the editable fields of an existing template in place and
// recomputes its variables.
func (s *TemplateStore) Update(id string, fields domain.TemplateFields) (domain.Template, error) {
	fields, err := normalizeTemplateFields(fields)
	if err != nil {
		return domain.Template{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[id]
	if !ok {
		return domain.Template{}, &domain.NotFoundError{Entity: "template", ID: id}
	}

	t := cloneTemplate(*current)
	applyTemplateFields(&t, fields, s.opts.now())

	if s.repo != nil {
		if err := s.repo.SaveTemplate(&t); err != nil {
			return domain.Template{}, err
		}
	}
	s.items[id] = &t

	return cloneTemplate(t), nil
}

// Delete removes the template. Deleting an unknown id is a no-op.
func (s *TemplateStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return nil
	}
	if s.repo != nil {
		if err := s.repo.DeleteTemplate(id); err != nil {
			return err
		}
	}
	delete(s.items, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })

	return nil
}

func (s *TemplateStore) Get(id string) (domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.items[id]
	if !ok {
		return domain.Template{}, &domain.NotFoundError{Entity: "template", ID: id}
	}
	return cloneTemplate(*t), nil
}

func (s *TemplateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// List yields templates in insertion order. Each call starts a new pass.
func (s *TemplateStore) List() iter.Seq[domain.Template] {
	return func(yield func(domain.Template) bool) {
		s.mu.RLock()
		ids := slices.Clone(s.order)
		s.mu.RUnlock()

		for _, id := range ids {
			t, err := s.Get(id)
			if err != nil {
				// deleted since the pass started
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// TemplateVariables derives the variable set of a template from its text
// header, body and footer, in that order.
func TemplateVariables(header *domain.TemplateHeader, body, footer string) []string {
	headerText := ""
	if header != nil && header.Type == domain.HeaderText {
		headerText = header.Content
	}
	return variable.ExtractAll(headerText, body, footer)
}

func applyTemplateFields(t *domain.Template, f domain.TemplateFields, now time.Time) {
	t.Name = f.Name
	t.Category = f.Category
	t.Header = f.Header
	t.Body = f.Body
	t.Footer = f.Footer
	t.Buttons = f.Buttons
	t.Variables = TemplateVariables(f.Header, f.Body, f.Footer)
	t.UpdatedAt = now
}

func normalizeTemplateFields(f domain.TemplateFields) (domain.TemplateFields, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return f, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if strings.TrimSpace(f.Body) == "" {
		return f, &domain.ValidationError{Field: "body", Reason: "is required"}
	}
	if f.Category == "" {
		f.Category = domain.CategoryMarketing
	}
	if !f.Category.IsValid() {
		return f, &domain.ValidationError{Field: "category", Reason: "must be one of marketing, transactional, authentication, utility"}
	}
	if f.Header != nil {
		header := *f.Header
		if header.Type != domain.HeaderText && header.Type != domain.HeaderMedia {
			return f, &domain.ValidationError{Field: "header.type", Reason: "must be text or media"}
		}
		f.Header = &header
	}
	buttons := make([]domain.Button, 0, len(f.Buttons))
	for _, b := range f.Buttons {
		if !b.Kind.IsValid() {
			return f, &domain.ValidationError{Field: "buttons.kind", Reason: "must be quick_reply, url or phone_number"}
		}
		if strings.TrimSpace(b.Label) == "" {
			return f, &domain.ValidationError{Field: "buttons.label", Reason: "is required"}
		}
		buttons = append(buttons, b)
	}
	f.Buttons = buttons
	return f, nil
}

func cloneTemplate(t domain.Template) domain.Template {
	if t.Header != nil {
		header := *t.Header
		t.Header = &header
	}
	t.Buttons = slices.Clone(t.Buttons)
	t.Variables = slices.Clone(t.Variables)
	return t
}
