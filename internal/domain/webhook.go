package domain

// WebhookMessage is the payload posted to the delivery webhook.
type WebhookMessage struct {
	To         string `json:"to"`
	Content    string `json:"content"`
	CampaignID string `json:"campaignId"`
}

type WebhookResponse struct {
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
}
