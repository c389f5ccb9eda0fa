package store

import (
	"cmp"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/aniladanir/campaign-manager/internal/domain"
)

type CampaignRepository interface {
	SaveCampaign(c *domain.Campaign) error
}

// TemplateResolver looks templates up by id. Campaigns only keep the id.
type TemplateResolver interface {
	Get(id string) (domain.Template, error)
}

// Observer is notified with the new state after every committed change.
// It runs while the campaign is locked, so changes to one campaign arrive in
// commit order; it must not block or write to the same campaign.
type Observer func(domain.Campaign)

// campaignEntry serializes writes to one campaign. position never changes.
type campaignEntry struct {
	mu       sync.Mutex
	position int64
	campaign domain.Campaign
}

// CampaignLedger owns campaigns and keeps their delivery counters
// consistent. Writes to one campaign are serialized by that campaign's lock;
// writes to different campaigns proceed independently.
type CampaignLedger struct {
	mu      sync.RWMutex
	entries map[string]*campaignEntry
	order   []string
	seq     int64

	templates TemplateResolver
	repo      CampaignRepository
	opts      options

	obsMu     sync.RWMutex
	observers []Observer
}

func NewCampaignLedger(templates TemplateResolver, repo CampaignRepository, opts ...Option) *CampaignLedger {
	return &CampaignLedger{
		entries:   make(map[string]*campaignEntry),
		templates: templates,
		repo:      repo,
		opts:      buildOptions(opts),
	}
}

func (l *CampaignLedger) Restore(campaigns []domain.Campaign) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, c := range campaigns {
		if _, ok := l.entries[c.ID]; !ok {
			l.order = append(l.order, c.ID)
		}
		l.entries[c.ID] = &campaignEntry{position: c.Position, campaign: cloneCampaign(c)}
		l.seq = max(l.seq, c.Position)
	}
}

func (l *CampaignLedger) Observe(fn Observer) {
	l.obsMu.Lock()
	defer l.obsMu.Unlock()
	l.observers = append(l.observers, fn)
}

func (l *CampaignLedger) notify(c domain.Campaign) {
	l.obsMu.RLock()
	observers := slices.Clone(l.observers)
	l.obsMu.RUnlock()

	for _, fn := range observers {
		fn(cloneCampaign(c))
	}
}

// Create validates fields, resolves the template name and inserts a campaign
// in draft, or scheduled when a schedule date is given.
func (l *CampaignLedger) Create(fields domain.CampaignFields) (domain.Campaign, error) {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.TemplateID = strings.TrimSpace(fields.TemplateID)
	if fields.Name == "" {
		return domain.Campaign{}, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if fields.TemplateID == "" {
		return domain.Campaign{}, &domain.ValidationError{Field: "template_id", Reason: "is required"}
	}

	tmpl, err := l.templates.Get(fields.TemplateID)
	if err != nil {
		return domain.Campaign{}, err
	}

	status := domain.StatusDraft
	if fields.ScheduledDate != nil {
		status = domain.StatusScheduled
	}

	// reserve a position; the repository write happens without the ledger lock
	l.mu.Lock()
	l.seq++
	position := l.seq
	l.mu.Unlock()

	now := l.opts.now()
	c := domain.Campaign{
		ID:            l.opts.newID(),
		Name:          fields.Name,
		TemplateID:    tmpl.ID,
		TemplateName:  tmpl.Name,
		Status:        status,
		ScheduledDate: fields.ScheduledDate,
		Position:      position,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if l.repo != nil {
		if err := l.repo.SaveCampaign(&c); err != nil {
			return domain.Campaign{}, err
		}
	}

	entry := &campaignEntry{position: position, campaign: c}
	entry.mu.Lock()
	defer entry.mu.Unlock()

	l.mu.Lock()
	l.entries[c.ID] = entry
	l.insertOrdered(c.ID, position)
	l.mu.Unlock()

	l.notify(c)
	return cloneCampaign(c), nil
}

// insertOrdered keeps order sorted by position when concurrent creates
// finish out of order. l.mu must be held.
func (l *CampaignLedger) insertOrdered(id string, position int64) {
	i, _ := slices.BinarySearchFunc(l.order, position, func(other string, target int64) int {
		return cmp.Compare(l.entries[other].position, target)
	})
	l.order = slices.Insert(l.order, i, id)
}

// Toggle flips a running campaign to paused and a paused one to running.
// Any other status yields an InvalidTransitionError and no change.
func (l *CampaignLedger) Toggle(id string) (domain.Campaign, error) {
	return l.transition(id, domain.TriggerToggle, nil)
}

// Launch moves a draft or scheduled campaign to running with the given
// population size.
func (l *CampaignLedger) Launch(id string, totalContacts int) (domain.Campaign, error) {
	return l.transition(id, domain.TriggerLaunch, func(c *domain.Campaign) error {
		p := c.Progress()
		p.TotalContacts = totalContacts
		if err := p.Check(); err != nil {
			return &domain.InvariantViolationError{ID: c.ID, Reason: err.Error()}
		}
		c.SetProgress(p)
		return nil
	})
}

// Complete marks a running campaign as completed.
func (l *CampaignLedger) Complete(id string) (domain.Campaign, error) {
	return l.transition(id, domain.TriggerComplete, nil)
}

func (l *CampaignLedger) transition(id string, trigger domain.Trigger, apply func(*domain.Campaign) error) (domain.Campaign, error) {
	return l.mutate(id, func(c *domain.Campaign) error {
		next, ok := domain.NextStatus(c.Status, trigger)
		if !ok {
			return &domain.InvalidTransitionError{ID: c.ID, From: c.Status}
		}
		if apply != nil {
			if err := apply(c); err != nil {
				return err
			}
		}
		c.Status = next
		return nil
	})
}

// ApplyProgress writes absolute counter values. A write that would break
// sent <= total or success+failed <= sent is rejected and nothing changes.
func (l *CampaignLedger) ApplyProgress(id string, p domain.Progress) (domain.Campaign, error) {
	return l.mutate(id, func(c *domain.Campaign) error {
		if err := p.Check(); err != nil {
			return &domain.InvariantViolationError{ID: c.ID, Reason: err.Error()}
		}
		c.SetProgress(p)
		return nil
	})
}

// RecordDelivery counts one sent message and its outcome.
func (l *CampaignLedger) RecordDelivery(id string, success bool) (domain.Campaign, error) {
	return l.mutate(id, func(c *domain.Campaign) error {
		p := c.Progress()
		p.SentCount++
		if success {
			p.SuccessCount++
		} else {
			p.FailedCount++
		}
		if err := p.Check(); err != nil {
			return &domain.InvariantViolationError{ID: c.ID, Reason: err.Error()}
		}
		c.SetProgress(p)
		return nil
	})
}

// mutate runs fn on a copy of the campaign under its lock and commits the
// copy only if fn and the repository write both succeed.
func (l *CampaignLedger) mutate(id string, fn func(*domain.Campaign) error) (domain.Campaign, error) {
	l.mu.RLock()
	entry, ok := l.entries[id]
	l.mu.RUnlock()
	if !ok {
		return domain.Campaign{}, &domain.NotFoundError{Entity: "campaign", ID: id}
	}

	entry.mu.Lock()
	c := cloneCampaign(entry.campaign)
	if err := fn(&c); err != nil {
		entry.mu.Unlock()
		return domain.Campaign{}, err
	}
	c.UpdatedAt = l.opts.now()
	if l.repo != nil {
		if err := l.repo.SaveCampaign(&c); err != nil {
			entry.mu.Unlock()
			return domain.Campaign{}, err
		}
	}
	entry.campaign = c
	l.notify(c)
	entry.mu.Unlock()

	return cloneCampaign(c), nil
}

func (l *CampaignLedger) Get(id string) (domain.Campaign, error) {
	l.mu.RLock()
	entry, ok := l.entries[id]
	l.mu.RUnlock()
	if !ok {
		return domain.Campaign{}, &domain.NotFoundError{Entity: "campaign", ID: id}
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return cloneCampaign(entry.campaign), nil
}

// List yields campaigns in creation order, reading each one as it is reached.
func (l *CampaignLedger) List() iter.Seq[domain.Campaign] {
	return func(yield func(domain.Campaign) bool) {
		l.mu.RLock()
		ids := slices.Clone(l.order)
		l.mu.RUnlock()

		for _, id := range ids {
			c, err := l.Get(id)
			if err != nil {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Stats aggregates the ledger on every call.
func (l *CampaignLedger) Stats() domain.CampaignStats {
	stats := domain.CampaignStats{ByStatus: make(map[domain.CampaignStatus]int, len(domain.Statuses))}
	for _, s := range domain.Statuses {
		stats.ByStatus[s] = 0
	}
	for c := range l.List() {
		stats.Total++
		stats.ByStatus[c.Status]++
		stats.TotalContacts += c.TotalContacts
		stats.SentCount += c.SentCount
		stats.SuccessCount += c.SuccessCount
		stats.FailedCount += c.FailedCount
	}
	return stats
}

// References reports whether any campaign points at the template.
func (l *CampaignLedger) References(templateID string) bool {
	for c := range l.List() {
		if c.TemplateID == templateID {
			return true
		}
	}
	return false
}

func cloneCampaign(c domain.Campaign) domain.Campaign {
	if c.ScheduledDate != nil {
		d := *c.ScheduledDate
		c.ScheduledDate = &d
	}
	return c
}
