package handler

import (
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

type campaignRequest struct {
	Name          string `json:"name"`
	TemplateID    string `json:"template_id"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}

// fields converts the request, accepting either a calendar date or RFC 3339.
func (r campaignRequest) fields() (domain.CampaignFields, error) {
	f := domain.CampaignFields{Name: r.Name, TemplateID: r.TemplateID}
	if r.ScheduledDate == "" {
		return f, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, r.ScheduledDate); err == nil {
			t = t.UTC()
			f.ScheduledDate = &t
			return f, nil
		}
	}
	return f, &domain.ValidationError{Field: "scheduled_date", Reason: fmt.Sprintf("unrecognized date %q", r.ScheduledDate)}
}

// ListCampaigns godoc
// @Summary List campaigns
// @Tags Campaigns
// @Success 200 {array} domain.Campaign
// @Router /campaigns [get]
func (h *Handler) listCampaigns(c *gin.Context) {
	campaigns := slices.Collect(h.catalog.Campaigns.List())
	if campaigns == nil {
		campaigns = []domain.Campaign{}
	}
	c.JSON(http.StatusOK, campaigns)
}

// CreateCampaign godoc
// @Summary Create a campaign
// @Description Campaigns with a scheduled date start as scheduled, others as draft
// @Tags Campaigns
// @Param campaign body campaignRequest true "campaign"
// @Success 201 {object} domain.Campaign
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /campaigns [post]
func (h *Handler) createCampaign(c *gin.Context) {
	var req campaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}
	fields, err := req.fields()
	if err != nil {
		h.writeError(c, err)
		return
	}
	campaign, err := h.catalog.CreateCampaign(fields)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, campaign)
}

// GetCampaign godoc
// @Summary Get a campaign
// @Tags Campaigns
// @Param id path string true "campaign id"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} errorResponse
// @Router /campaigns/{id} [get]
func (h *Handler) getCampaign(c *gin.Context) {
	campaign, err := h.catalog.Campaigns.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// ToggleCampaign godoc
// @Summary Pause or resume a campaign
// @Tags Campaigns
// @Param id path string true "campaign id"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /campaigns/{id}/toggle [post]
func (h *Handler) toggleCampaign(c *gin.Context) {
	campaign, err := h.catalog.Campaigns.Toggle(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// LaunchCampaign godoc
// @Summary Launch a draft or scheduled campaign
// @Description The current contact count becomes the campaign's population
// @Tags Campaigns
// @Param id path string true "campaign id"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /campaigns/{id}/launch [post]
func (h *Handler) launchCampaign(c *gin.Context) {
	campaign, err := h.catalog.LaunchCampaign(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}

// ApplyProgress godoc
// @Summary Overwrite delivery counters
// @Tags Campaigns
// @Param id path string true "campaign id"
// @Param progress body domain.Progress true "counters"
// @Success 200 {object} domain.Campaign
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /campaigns/{id}/progress [post]
func (h *Handler) applyProgress(c *gin.Context) {
	var p domain.Progress
	if err := c.ShouldBindJSON(&p); err != nil {
		abortBadRequest(c, err)
		return
	}
	campaign, err := h.catalog.Campaigns.ApplyProgress(c.Param("id"), p)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, campaign)
}
