package domain

import (
	"fmt"
	"time"
)

type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusScheduled CampaignStatus = "scheduled"
	StatusRunning   CampaignStatus = "running"
	StatusCompleted CampaignStatus = "completed"
	StatusPaused    CampaignStatus = "paused"
)

// Statuses lists every campaign status in display order.
var Statuses = []CampaignStatus{StatusDraft, StatusScheduled, StatusRunning, StatusPaused, StatusCompleted}

// Trigger names an operation that may move a campaign between statuses.
type Trigger string

const (
	// TriggerToggle is the operator pause/resume switch.
	TriggerToggle Trigger = "toggle"
	// TriggerLaunch and TriggerComplete are driven by the dispatcher.
	TriggerLaunch   Trigger = "launch"
	TriggerComplete Trigger = "complete"
)

var transitions = map[Trigger]map[CampaignStatus]CampaignStatus{
	TriggerToggle: {
		StatusRunning: StatusPaused,
		StatusPaused:  StatusRunning,
	},
	TriggerLaunch: {
		StatusDraft:     StatusRunning,
		StatusScheduled: StatusRunning,
	},
	TriggerComplete: {
		StatusRunning: StatusCompleted,
	},
}

// NextStatus looks up the status reached from `from` by `trigger`.
func NextStatus(from CampaignStatus, trigger Trigger) (CampaignStatus, bool) {
	to, ok := transitions[trigger][from]
	return to, ok
}

type Campaign struct {
	ID            string         `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	TemplateID    string         `gorm:"type:varchar(64);index;not null" json:"template_id"`
	TemplateName  string         `gorm:"type:varchar(255)" json:"template_name"`
	Status        CampaignStatus `gorm:"type:varchar(16);not null" json:"status"`
	TotalContacts int            `gorm:"not null" json:"total_contacts"`
	SentCount     int            `gorm:"not null" json:"sent_count"`
	SuccessCount  int            `gorm:"not null" json:"success_count"`
	FailedCount   int            `gorm:"not null" json:"failed_count"`
	ScheduledDate *time.Time     `json:"scheduled_date,omitempty"`
	Position      int64          `gorm:"index" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Pending is the number of contacts not yet sent to.
func (c *Campaign) Pending() int {
	return c.TotalContacts - c.SentCount
}

// Progress is an absolute write of the delivery counters.
type Progress struct {
	TotalContacts int `json:"total_contacts"`
	SentCount     int `json:"sent_count"`
	SuccessCount  int `json:"success_count"`
	FailedCount   int `json:"failed_count"`
}

// Check reports why p cannot be held by a campaign, or nil.
func (p Progress) Check() error {
	switch {
	case p.TotalContacts < 0 || p.SentCount < 0 || p.SuccessCount < 0 || p.FailedCount < 0:
		return fmt.Errorf("counters must be non-negative")
	case p.SentCount > p.TotalContacts:
		return fmt.Errorf("sent count %d exceeds total contacts %d", p.SentCount, p.TotalContacts)
	case p.SuccessCount > p.SentCount || p.FailedCount > p.SentCount-p.SuccessCount:
		return fmt.Errorf("success %d + failed %d exceeds sent count %d", p.SuccessCount, p.FailedCount, p.SentCount)
	}
	return nil
}

func (c *Campaign) Progress() Progress {
	return Progress{
		TotalContacts: c.TotalContacts,
		SentCount:     c.SentCount,
		SuccessCount:  c.SuccessCount,
		FailedCount:   c.FailedCount,
	}
}

func (c *Campaign) SetProgress(p Progress) {
	c.TotalContacts = p.TotalContacts
	c.SentCount = p.SentCount
	c.SuccessCount = p.SuccessCount
	c.FailedCount = p.FailedCount
}

type CampaignFields struct {
	Name          string     `json:"name"`
	TemplateID    string     `json:"template_id"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

// CampaignStats aggregates the ledger at the time it is computed.
type CampaignStats struct {
	Total         int                    `json:"total"`
	ByStatus      map[CampaignStatus]int `json:"by_status"`
	TotalContacts int                    `json:"total_contacts"`
	SentCount     int                    `json:"sent_count"`
	SuccessCount  int                    `json:"success_count"`
	FailedCount   int                    `json:"failed_count"`
}

// SuccessRate is the share of sent messages that succeeded, in percent.
func (s CampaignStats) SuccessRate() float64 {
	if s.SentCount == 0 {
		return 0
	}
	return float64(s.SuccessCount) * 100 / float64(s.SentCount)
}
