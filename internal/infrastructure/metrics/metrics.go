package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type VaultMetrics struct {
	ledgerReads     *prometheus.CounterVec
	aggregation     *prometheus.HistogramVec
	hiddenRecords   prometheus.Counter
	vaultInfoLookup *prometheus.CounterVec
}

var (
	vaultOnce     sync.Once
	vaultRegistry *VaultMetrics
)

// Vault returns the process-wide metric set, registering it on first use.
func Vault() *VaultMetrics {
	vaultOnce.Do(func() {
		vaultRegistry = &VaultMetrics{
			ledgerReads: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "stablevault_ledger_reads_total",
				Help: "Ledger reads by method and outcome.",
			}, []string{"method", "outcome"}),
			aggregation: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "stablevault_history_aggregation_seconds",
				Help:    "Latency of borrow history aggregation.",
				Buckets: prometheus.DefBuckets,
			}, []string{"scope"}),
			hiddenRecords: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "stablevault_records_in_liquidation_hidden_total",
				Help: "Records suppressed from history because they sit past the liquidation grace window.",
			}),
			vaultInfoLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
				Name: "stablevault_vault_info_lookups_total",
				Help: "Vault info lookups by cache result.",
			}, []string{"result"}),
		}
		prometheus.MustRegister(
			vaultRegistry.ledgerReads,
			vaultRegistry.aggregation,
			vaultRegistry.hiddenRecords,
			vaultRegistry.vaultInfoLookup,
		)
	})
	return vaultRegistry
}

func (m *VaultMetrics) ObserveLedgerRead(method string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ledgerReads.WithLabelValues(method, outcome).Inc()
}

func (m *VaultMetrics) ObserveAggregation(scope string, started time.Time) {
	if m == nil {
		return
	}
	m.aggregation.WithLabelValues(scope).Observe(time.Since(started).Seconds())
}

func (m *VaultMetrics) AddHidden(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.hiddenRecords.Add(float64(n))
}

func (m *VaultMetrics) ObserveVaultInfo(result string) {
	if m == nil {
		return
	}
	m.vaultInfoLookup.WithLabelValues(result).Inc()
}

func (m *VaultMetrics) LedgerReadsVec() *prometheus.CounterVec { return m.ledgerReads }
func (m *VaultMetrics) HiddenRecords() prometheus.Counter { return m.hiddenRecords }
func (m *VaultMetrics) VaultInfoVec() *prometheus.CounterVec { return m.vaultInfoLookup }
