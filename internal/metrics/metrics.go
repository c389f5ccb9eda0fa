// Package metrics exposes campaign aggregates and dispatcher delivery
// outcomes to prometheus.
package metrics

import (
	"time"

	"github.com/aniladanir/campaign-manager/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is read on every scrape; nothing is cached between scrapes.
type StatsSource interface {
	Stats() domain.CampaignStats
}

type ledgerCollector struct {
	source    StatsSource
	campaigns *prometheus.Desc
	messages  *prometheus.Desc
	contacts  *prometheus.Desc
}

func newLedgerCollector(source StatsSource) *ledgerCollector {
	return &ledgerCollector{
		source: source,
		campaigns: prometheus.NewDesc("campaign_manager_campaigns",
			"Number of campaigns by status.", []string{"status"}, nil),
		messages: prometheus.NewDesc("campaign_manager_campaign_messages",
			"Messages counted by campaigns, by outcome.", []string{"outcome"}, nil),
		contacts: prometheus.NewDesc("campaign_manager_campaign_contacts",
			"Sum of campaign populations.", nil, nil),
	}
}

func (c *ledgerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.campaigns
	ch <- c.messages
	ch <- c.contacts
}

func (c *ledgerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	for _, status := range domain.Statuses {
		ch <- prometheus.MustNewConstMetric(c.campaigns, prometheus.GaugeValue, float64(stats.ByStatus[status]), string(status))
	}
	ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(stats.SentCount), "sent")
	ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(stats.SuccessCount), "success")
	ch <- prometheus.MustNewConstMetric(c.messages, prometheus.GaugeValue, float64(stats.FailedCount), "failed")
	ch <- prometheus.MustNewConstMetric(c.contacts, prometheus.GaugeValue, float64(stats.TotalContacts))
}

// Metrics owns a registry with the ledger collector and the dispatcher
// delivery instruments.
type Metrics struct {
	Registry   *prometheus.Registry
	deliveries *prometheus.CounterVec
	latency    prometheus.Histogram
}

func New(source StatsSource) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campaign_manager_deliveries_total",
			Help: "Webhook deliveries attempted by the dispatcher, by outcome.",
		}, []string{"outcome"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "campaign_manager_delivery_seconds",
			Help:    "Time spent delivering one message, retries included.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.Registry.MustRegister(newLedgerCollector(source), m.deliveries, m.latency)
	return m
}

// ObserveDelivery implements service.DeliveryObserver.
func (m *Metrics) ObserveDelivery(success bool, elapsed time.Duration) {
	outcome := "failed"
	if success {
		outcome = "success"
	}
	m.deliveries.WithLabelValues(outcome).Inc()
	m.latency.Observe(elapsed.Seconds())
}
