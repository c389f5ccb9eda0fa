package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// ReceiptTTL bounds how long a delivery receipt stays retrievable.
const ReceiptTTL = 24 * time.Hour

type Cache interface {
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}

// Receipt records one message accepted by the webhook.
type Receipt struct {
	MessageID  string    `json:"messageId"`
	CampaignID string    `json:"campaignId"`
	To         string    `json:"to"`
	SentAt     time.Time `json:"sentAt"`
}

func ReceiptKey(messageID string) string {
	return "sent_msg:" + messageID
}

// SaveReceipt stores r under its message id for ReceiptTTL.
func SaveReceipt(ctx context.Context, c Cache, r Receipt) error {
	val, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return c.Set(ctx, ReceiptKey(r.MessageID), string(val), ReceiptTTL)
}

// LoadReceipt fetches a receipt. Unknown ids yield an error wrapping ErrMiss.
func LoadReceipt(ctx context.Context, c Cache, messageID string) (Receipt, error) {
	val, err := c.Get(ctx, ReceiptKey(messageID))
	if err != nil {
		return Receipt{}, err
	}
	if val == "" {
		return Receipt{}, fmt.Errorf("receipt %s: %w", messageID, ErrMiss)
	}
	var r Receipt
	if err := json.Unmarshal([]byte(val), &r); err != nil {
		return Receipt{}, fmt.Errorf("decode receipt %s: %w", messageID, err)
	}
	return r, nil
}
