package service

import (
	"log/slog"
	"sync"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/aniladanir/campaign-manager/internal/store"
	"github.com/aniladanir/campaign-manager/internal/tabular"
	"github.com/aniladanir/campaign-manager/internal/variable"
)

// SampleBindings fill template previews when no values are supplied.
var SampleBindings = map[string]string{
	"name":    "John Doe",
	"company": "Acme Corp",
	"product": "Premium Package",
	"amount":  "$99.99",
	"date":    "2024-01-15",
}

const mediaHeaderPreview = "Media Header"

// Preview is a template rendered with a set of bindings.
type Preview struct {
	Header  string   `json:"header,omitempty"`
	Body    string   `json:"body"`
	Footer  string   `json:"footer,omitempty"`
	Buttons []string `json:"buttons"`
}

// Dashboard summarizes all stores.
type Dashboard struct {
	Contacts    int                  `json:"contacts"`
	Templates   int                  `json:"templates"`
	Campaigns   domain.CampaignStats `json:"campaigns"`
	SuccessRate float64              `json:"success_rate"`
}

// Catalog applies the policies that span more than one store: a template
// can not be deleted while a campaign refers to it, campaigns are launched
// against the current contact population, and contacts move through the
// tabular codec.
type Catalog struct {
	Templates *store.TemplateStore
	Contacts  *store.ContactStore
	Campaigns *store.CampaignLedger

	// mtx orders template deletion against campaign creation
	mtx    sync.Mutex
	logger *slog.Logger
}

func NewCatalog(templates *store.TemplateStore, contacts *store.ContactStore, campaigns *store.CampaignLedger, logger *slog.Logger) *Catalog {
	return &Catalog{
		Templates: templates,
		Contacts:  contacts,
		Campaigns: campaigns,
		logger:    logger,
	}
}

// DeleteTemplate removes a template unless a campaign still refers to it.
// Unknown ids are a no-op.
func (c *Catalog) DeleteTemplate(id string) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	if c.Campaigns.References(id) {
		return &domain.ConflictError{Entity: "template", ID: id, Reason: "is used by a campaign"}
	}
	if err := c.Templates.Delete(id); err != nil {
		return err
	}
	c.logger.Info("template deleted", slog.String("templateId", id))
	return nil
}

func (c *Catalog) CreateCampaign(fields domain.CampaignFields) (domain.Campaign, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	campaign, err := c.Campaigns.Create(fields)
	if err != nil {
		return domain.Campaign{}, err
	}
	c.logger.Info("campaign created",
		slog.String("campaignId", campaign.ID),
		slog.String("templateId", campaign.TemplateID),
		slog.String("status", string(campaign.Status)))
	return campaign, nil
}

// LaunchCampaign starts a draft or scheduled campaign against the contacts
// currently in the store.
func (c *Catalog) LaunchCampaign(id string) (domain.Campaign, error) {
	campaign, err := c.Campaigns.Launch(id, c.Contacts.Len())
	if err != nil {
		return domain.Campaign{}, err
	}
	c.logger.Info("campaign launched",
		slog.String("campaignId", campaign.ID),
		slog.Int("totalContacts", campaign.TotalContacts))
	return campaign, nil
}

// ImportContacts decodes raw tabular text and appends the contacts.
func (c *Catalog) ImportContacts(raw string) ([]domain.Contact, error) {
	contacts, err := c.Contacts.AddMany(tabular.Decode(raw))
	if err != nil {
		return nil, err
	}
	c.logger.Info("contacts imported", slog.Int("count", len(contacts)))
	return contacts, nil
}

// ExportContacts encodes every stored contact.
func (c *Catalog) ExportContacts() (string, error) {
	var contacts []domain.Contact
	for contact := range c.Contacts.All() {
		contacts = append(contacts, contact)
	}
	if len(contacts) == 0 {
		return "", &domain.ValidationError{Reason: "no contacts to export"}
	}
	return tabular.Encode(contacts), nil
}

// PreviewTemplate renders a stored template. Nil bindings select
// SampleBindings.
func (c *Catalog) PreviewTemplate(id string, bindings map[string]string) (Preview, error) {
	tmpl, err := c.Templates.Get(id)
	if err != nil {
		return Preview{}, err
	}
	return RenderPreview(tmpl, bindings), nil
}

func RenderPreview(tmpl domain.Template, bindings map[string]string) Preview {
	if bindings == nil {
		bindings = SampleBindings
	}

	p := Preview{
		Body:    variable.Render(tmpl.Body, bindings),
		Footer:  variable.Render(tmpl.Footer, bindings),
		Buttons: make([]string, 0, len(tmpl.Buttons)),
	}
	if tmpl.Header != nil {
		if tmpl.Header.Type == domain.HeaderText {
			p.Header = variable.Render(tmpl.Header.Content, bindings)
		} else {
			p.Header = mediaHeaderPreview
		}
	}
	for _, b := range tmpl.Buttons {
		p.Buttons = append(p.Buttons, b.Label)
	}
	return p
}

func (c *Catalog) Dashboard() Dashboard {
	stats := c.Campaigns.Stats()
	return Dashboard{
		Contacts:    c.Contacts.Len(),
		Templates:   c.Templates.Len(),
		Campaigns:   stats,
		SuccessRate: stats.SuccessRate(),
	}
}
