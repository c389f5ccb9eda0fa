package service

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/aniladanir/campaign-manager/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCatalog() *Catalog {
	templates := store.NewTemplateStore(nil)
	contacts := store.NewContactStore(nil)
	campaigns := store.NewCampaignLedger(templates, nil)
	return NewCatalog(templates, contacts, campaigns, discardLogger())
}

func TestEndToEndCampaignFlow(t *testing.T) {
	c := newTestCatalog()

	tmpl, err := c.Templates.Create(domain.TemplateFields{Name: "Promo", Body: "Hello {{name}}, enjoy {{discount}} off!"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	if len(tmpl.Variables) != 2 || tmpl.Variables[0] != "name" || tmpl.Variables[1] != "discount" {
		t.Fatalf("expected [name discount], got %q", tmpl.Variables)
	}

	contacts, err := c.ImportContacts("phone,name,discount\n111,Lee,10%\n222,,\n")
	if err != nil {
		t.Fatalf("import contacts: %v", err)
	}
	if len(contacts) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(contacts))
	}
	if contacts[0].PhoneNumber != "111" || contacts[0].Name != "Lee" || contacts[0].Variables["discount"] != "10%" {
		t.Fatalf("unexpected first contact %+v", contacts[0])
	}
	if contacts[1].PhoneNumber != "222" || contacts[1].Name != "" || len(contacts[1].Variables) != 0 {
		t.Fatalf("unexpected second contact %+v", contacts[1])
	}

	campaign, err := c.CreateCampaign(domain.CampaignFields{Name: "Promo Run", TemplateID: tmpl.ID})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	if campaign.Status != domain.StatusDraft || campaign.Progress() != (domain.Progress{}) {
		t.Fatalf("expected fresh draft, got %+v", campaign)
	}

	if _, err := c.Campaigns.ApplyProgress(campaign.ID, domain.Progress{SentCount: 1, SuccessCount: 1, TotalContacts: 2}); err != nil {
		t.Fatalf("expected progress to be accepted, got %v", err)
	}
	_, err = c.Campaigns.ApplyProgress(campaign.ID, domain.Progress{SentCount: 3, SuccessCount: 1, TotalContacts: 2})
	if !errors.Is(err, domain.ErrInvariantViolation) {
		t.Fatalf("expected ErrInvariantViolation, got %v", err)
	}
}

func TestDeleteTemplateInUse(t *testing.T) {
	c := newTestCatalog()
	used, _ := c.Templates.Create(domain.TemplateFields{Name: "used", Body: "b"})
	free, _ := c.Templates.Create(domain.TemplateFields{Name: "free", Body: "b"})
	if _, err := c.CreateCampaign(domain.CampaignFields{Name: "c", TemplateID: used.ID}); err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	if err := c.DeleteTemplate(used.ID); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := c.Templates.Get(used.ID); err != nil {
		t.Fatalf("expected referenced template to remain, got %v", err)
	}
	if err := c.DeleteTemplate(free.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	if err := c.DeleteTemplate("unknown"); err != nil {
		t.Fatalf("expected unknown delete to be a no-op, got %v", err)
	}
}

func TestLaunchCampaignUsesPopulation(t *testing.T) {
	c := newTestCatalog()
	tmpl, _ := c.Templates.Create(domain.TemplateFields{Name: "t", Body: "b"})
	_, _ = c.ImportContacts("phone,name\n1,a\n2,b\n3,c\n")
	campaign, _ := c.CreateCampaign(domain.CampaignFields{Name: "c", TemplateID: tmpl.ID})

	launched, err := c.LaunchCampaign(campaign.ID)
	if err != nil {
		t.Fatalf("launch campaign: %v", err)
	}
	if launched.Status != domain.StatusRunning || launched.TotalContacts != 3 {
		t.Fatalf("expected running with 3 contacts, got %+v", launched)
	}
}

func TestExportContacts(t *testing.T) {
	c := newTestCatalog()
	if _, err := c.ExportContacts(); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty export, got %v", err)
	}

	_, _ = c.ImportContacts("phone,name,plan\n555,Ann,\n")
	got, err := c.ExportContacts()
	if err != nil {
		t.Fatalf("export contacts: %v", err)
	}
	if got != "Phone Number,Name\n555,Ann\n" {
		t.Fatalf("unexpected export %q", got)
	}
}

func TestRenderPreview(t *testing.T) {
	tmpl := domain.Template{
		Header:  &domain.TemplateHeader{Type: domain.HeaderText, Content: "Hi {{name}}"},
		Body:    "{{product}} for {{amount}}, code {{code}}",
		Footer:  "{{company}}",
		Buttons: []domain.Button{{Kind: domain.ButtonQuickReply, Label: "Yes"}},
	}

	p := RenderPreview(tmpl, nil)
	if p.Header != "Hi John Doe" {
		t.Fatalf("unexpected header %q", p.Header)
	}
	if p.Body != "Premium Package for $99.99, code {{code}}" {
		t.Fatalf("unexpected body %q", p.Body)
	}
	if p.Footer != "Acme Corp" {
		t.Fatalf("unexpected footer %q", p.Footer)
	}
	if len(p.Buttons) != 1 || p.Buttons[0] != "Yes" {
		t.Fatalf("unexpected buttons %q", p.Buttons)
	}

	tmpl.Header = &domain.TemplateHeader{Type: domain.HeaderMedia, Content: "https://cdn/x.png"}
	p = RenderPreview(tmpl, map[string]string{"code": "X1"})
	if p.Header != "Media Header" {
		t.Fatalf("expected media placeholder, got %q", p.Header)
	}
	if p.Body != "{{product}} for {{amount}}, code X1" {
		t.Fatalf("unexpected body %q", p.Body)
	}
}

func TestDashboard(t *testing.T) {
	c := newTestCatalog()
	tmpl, _ := c.Templates.Create(domain.TemplateFields{Name: "t", Body: "b"})
	_, _ = c.ImportContacts("phone,name\n1,a\n2,b\n")
	campaign, _ := c.CreateCampaign(domain.CampaignFields{Name: "c", TemplateID: tmpl.ID})
	_, _ = c.LaunchCampaign(campaign.ID)
	_, _ = c.Campaigns.RecordDelivery(campaign.ID, true)
	_, _ = c.Campaigns.RecordDelivery(campaign.ID, false)

	d := c.Dashboard()
	if d.Contacts != 2 || d.Templates != 1 || d.Campaigns.Total != 1 {
		t.Fatalf("unexpected dashboard %+v", d)
	}
	if d.SuccessRate != 50 {
		t.Fatalf("expected success rate 50, got %v", d.SuccessRate)
	}
}
