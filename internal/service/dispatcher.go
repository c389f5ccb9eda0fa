package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/aniladanir/campaign-manager/internal/cache"
	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/aniladanir/campaign-manager/internal/variable"
	"github.com/aniladanir/retry"
	"github.com/google/uuid"
)

// Dispatcher delivers running campaigns to a webhook and reports every
// outcome to the campaign ledger.
type Dispatcher interface {
	Start()
	Stop()
	IsRunning() bool
}

// DeliveryObserver receives one call per delivery attempt chain.
type DeliveryObserver interface {
	ObserveDelivery(success bool, elapsed time.Duration)
}

// DispatcherConfig configures delivery. A nil MaxRetry selects
// defaultMaxRetry; a bounded value keeps one failing contact from holding
// up every campaign.
type DispatcherConfig struct {
	WebhookURL   string
	MaxRetry     *int
	BatchSize    int
	SendInterval time.Duration
}

const defaultMaxRetry = 3

// campaignQueue is the contact population a running campaign delivers to,
// captured when the dispatcher first sees the campaign running. requeued
// holds contacts whose send was interrupted by Stop; they go out first.
type campaignQueue struct {
	contacts []domain.Contact
	next     int
	requeued []domain.Contact
}

type deliveryOutcome int

const (
	outcomeDelivered deliveryOutcome = iota
	outcomeFailed
	// outcomeAborted means the dispatcher stopped before the webhook gave a
	// final answer; nothing is recorded for the message.
	outcomeAborted
)

type dispatcher struct {
	catalog      *Catalog
	cache        cache.Cache
	observer     DeliveryObserver
	webhookURL   string
	isRunning    bool
	cancel       context.CancelFunc
	done         chan struct{}
	mtx          sync.Mutex
	retrier      *retry.Retrier
	httpClient   *http.Client
	logger       *slog.Logger
	msgBatchSize int
	sendInterval time.Duration
	now          func() time.Time

	queueMtx sync.Mutex
	queues   map[string]*campaignQueue
}

// NewDispatcher creates a stopped dispatcher. rCache and observer may be nil.
func NewDispatcher(catalog *Catalog, rCache cache.Cache, observer DeliveryObserver, logger *slog.Logger, cfg DispatcherConfig) (Dispatcher, error) {
	d, err := newDispatcher(catalog, rCache, observer, logger, cfg)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func newDispatcher(catalog *Catalog, rCache cache.Cache, observer DeliveryObserver, logger *slog.Logger, cfg DispatcherConfig) (*dispatcher, error) {
	if cfg.WebhookURL == "" {
		return nil, errors.New("webhook url is required")
	}
	if cfg.BatchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", cfg.BatchSize)
	}
	if cfg.SendInterval <= 0 {
		return nil, fmt.Errorf("send interval must be positive, got %s", cfg.SendInterval)
	}

	// initialize retrier
	maxRetry := defaultMaxRetry
	if cfg.MaxRetry != nil {
		maxRetry = *cfg.MaxRetry
	}
	if maxRetry <= 0 {
		return nil, fmt.Errorf("max retry must be positive, got %d", maxRetry)
	}
	retrier, err := retry.New(retry.WithMaxAttemps(maxRetry))
	if err != nil {
		return nil, fmt.Errorf("encountered error when initializing retrier: %w", err)
	}

	return &dispatcher{
		catalog:    catalog,
		cache:      rCache,
		observer:   observer,
		webhookURL: cfg.WebhookURL,
		retrier:    retrier,
		logger:     logger,
		httpClient: &http.Client{
			Timeout: time.Second * 5,
		},
		msgBatchSize: cfg.BatchSize,
		sendInterval: cfg.SendInterval,
		now:          func() time.Time { return time.Now().UTC() },
		queues:       make(map[string]*campaignQueue),
	}, nil
}

// Start runs the dispatch scheduler in the background. Calling Start on a
// running dispatcher does nothing.
func (s *dispatcher) Start() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.isRunning {
		return
	}
	s.isRunning = true

	processCtx, processCtxCancel := context.WithCancel(context.Background())
	s.cancel = processCtxCancel
	s.done = make(chan struct{})

	// run scheduler
	go s.run(processCtx, time.NewTicker(s.sendInterval), s.done)
	s.logger.Info("dispatcher started", slog.Duration("interval", s.sendInterval), slog.Int("batchSize", s.msgBatchSize))
}

func (s *dispatcher) run(ctx context.Context, t *time.Ticker, done chan<- struct{}) {
	defer close(done)
	defer t.Stop()

	// initial run
	s.processBatch(ctx)

	for {
		select {
		case <-t.C:
			s.processBatch(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Stop cancels the batch in progress and waits for the scheduler to exit.
// Messages without a final webhook answer are requeued, not counted.
func (s *dispatcher) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.isRunning {
		return
	}

	s.cancel()
	<-s.done
	s.isRunning = false
	s.logger.Info("dispatcher stopped")
}

func (s *dispatcher) IsRunning() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.isRunning
}

func (s *dispatcher) processBatch(ctx context.Context) {
	s.launchDue()

	for c := range s.catalog.Campaigns.List() {
		if ctx.Err() != nil {
			return
		}
		if c.Status != domain.StatusRunning {
			continue
		}
		s.dispatchCampaign(ctx, c)
	}
}

// launchDue starts scheduled campaigns whose date has passed.
func (s *dispatcher) launchDue() {
	now := s.now()
	for c := range s.catalog.Campaigns.List() {
		if c.Status != domain.StatusScheduled || c.ScheduledDate == nil || c.ScheduledDate.After(now) {
			continue
		}
		if _, err := s.catalog.LaunchCampaign(c.ID); err != nil {
			s.logger.Error("failed to launch scheduled campaign", slog.String("campaignId", c.ID), "error", err.Error())
		}
	}
}

func (s *dispatcher) dispatchCampaign(ctx context.Context, c domain.Campaign) {
	campaignLogger := s.logger.With(slog.String("campaignId", c.ID))

	if c.Pending() <= 0 {
		s.complete(campaignLogger, c.ID)
		return
	}

	tmpl, err := s.catalog.Templates.Get(c.TemplateID)
	if err != nil {
		campaignLogger.Error("campaign template unavailable", "error", err.Error())
		return
	}

	batch, missing := s.takeBatch(c)
	for range missing {
		if _, err := s.catalog.Campaigns.RecordDelivery(c.ID, false); err != nil {
			campaignLogger.Error("failed to record missing contact", "error", err.Error())
		}
	}
	if missing > 0 {
		campaignLogger.Warn("contacts no longer available, counted as failed", slog.Int("count", missing))
	}

	var (
		wg        = new(sync.WaitGroup)
		abortedMu sync.Mutex
		aborted   []domain.Contact
	)
	for _, contact := range batch {
		wg.Go(func() {
			content := variable.Render(tmpl.Body, contact.Bindings())
			outcome := s.sendMessage(ctx, campaignLogger, c.ID, contact, content)
			if outcome == outcomeAborted {
				abortedMu.Lock()
				aborted = append(aborted, contact)
				abortedMu.Unlock()
				return
			}
			if _, err := s.catalog.Campaigns.RecordDelivery(c.ID, outcome == outcomeDelivered); err != nil {
				campaignLogger.Error("failed to record delivery", slog.String("contactId", contact.ID), "error", err.Error())
			}
		})
	}
	wg.Wait()

	if len(aborted) > 0 {
		s.requeue(c.ID, aborted)
		campaignLogger.Info("interrupted sends requeued", slog.Int("count", len(aborted)))
		return
	}

	latest, err := s.catalog.Campaigns.Get(c.ID)
	if err == nil && latest.Status == domain.StatusRunning && latest.Pending() <= 0 {
		s.complete(campaignLogger, c.ID)
	}
}

// takeBatch returns the next contacts to send to and how many pending
// sends have no contact left in the captured population.
func (s *dispatcher) takeBatch(c domain.Campaign) ([]domain.Contact, int) {
	s.queueMtx.Lock()
	defer s.queueMtx.Unlock()

	q, ok := s.queues[c.ID]
	if !ok {
		q = &campaignQueue{
			contacts: slices.Collect(s.catalog.Contacts.All()),
			next:     c.SentCount,
		}
		s.queues[c.ID] = q
	}

	size := min(s.msgBatchSize, c.Pending())
	n := min(size, len(q.requeued))
	batch := slices.Clone(q.requeued[:n])
	q.requeued = q.requeued[n:]

	rest := size - n
	start := min(q.next, len(q.contacts))
	end := min(start+rest, len(q.contacts))
	batch = append(batch, q.contacts[start:end]...)
	q.next += rest

	return batch, size - len(batch)
}

// requeue puts interrupted contacts in front of the campaign's queue.
func (s *dispatcher) requeue(id string, contacts []domain.Contact) {
	s.queueMtx.Lock()
	defer s.queueMtx.Unlock()

	if q, ok := s.queues[id]; ok {
		q.requeued = append(slices.Clone(contacts), q.requeued...)
	}
}

func (s *dispatcher) complete(logger *slog.Logger, id string) {
	s.queueMtx.Lock()
	delete(s.queues, id)
	s.queueMtx.Unlock()

	c, err := s.catalog.Campaigns.Complete(id)
	if err != nil {
		logger.Error("failed to complete campaign", "error", err.Error())
		return
	}
	logger.Info("campaign completed",
		slog.Int("successCount", c.SuccessCount),
		slog.Int("failedCount", c.FailedCount))
}

// sendMessage posts one rendered message and reports the webhook's final
// answer, or outcomeAborted when ctx ended first.
func (s *dispatcher) sendMessage(ctx context.Context, logger *slog.Logger, campaignID string, contact domain.Contact, content string) deliveryOutcome {
	// create a logger with contact id
	msgLogger := logger.With(slog.String("contactId", contact.ID))
	started := time.Now()
	delivered, rejected := false, false

	retryFunc := func(attempt int) (terminate bool) {
		retryLogger := msgLogger.With(slog.Int("attempt", attempt))

		resp, err := s.doMsgRequest(ctx, domain.WebhookMessage{
			To:         contact.PhoneNumber,
			Content:    content,
			CampaignID: campaignID,
		})
		if err != nil {
			retryLogger.Warn("webhook request failed", "error", err.Error())
			return false
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusAccepted {
			// request was successful
			delivered = true
			retryLogger.Info("message accepted by webhook", "requestId", resp.Header.Get("X-Request-ID"))

			// save response
			if err = s.saveResponse(ctx, campaignID, contact.PhoneNumber, resp.Body); err != nil {
				retryLogger.Error("failed to store delivery receipt", "error", err.Error())
			}
		} else if resp.StatusCode >= http.StatusInternalServerError {
			// 5XX status code indicates server error, try retry
			retryLogger.Warn("webhook unavailable",
				"requestId", resp.Header.Get("X-Request-ID"),
				"statusCode", resp.StatusCode)
			return false
		} else {
			// 4XX or any other status is final, no need to retry
			rejected = true
			retryLogger.Error("webhook rejected message",
				"requestId", resp.Header.Get("X-Request-ID"),
				"statusCode", resp.StatusCode)
		}

		return true
	}

	retrySuccess := <-s.retrier.Retry(ctx, retryFunc, true)
	if !delivered && !rejected && ctx.Err() != nil {
		msgLogger.Info("send interrupted before a final answer")
		return outcomeAborted
	}
	if !retrySuccess {
		// retrying failed
		msgLogger.Error("giving up on message after retries")
		delivered = false
	}

	if s.observer != nil {
		s.observer.ObserveDelivery(delivered, time.Since(started))
	}
	if delivered {
		return outcomeDelivered
	}
	return outcomeFailed
}

func (s *dispatcher) doMsgRequest(ctx context.Context, msg domain.WebhookMessage) (*http.Response, error) {
	jsonPayload, _ := json.Marshal(msg)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Add("X-Request-ID", uuid.NewString())

	return s.httpClient.Do(req)
}

func (s *dispatcher) saveResponse(ctx context.Context, campaignID, to string, body io.Reader) error {
	if s.cache == nil {
		return nil
	}

	var result domain.WebhookResponse
	if err := json.NewDecoder(body).Decode(&result); err != nil {
		return err
	}
	if result.MessageID == "" {
		return nil
	}
	return cache.SaveReceipt(ctx, s.cache, cache.Receipt{
		MessageID:  result.MessageID,
		CampaignID: campaignID,
		To:         to,
		SentAt:     s.now(),
	})
}
