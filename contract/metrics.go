package contract

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"medfund_ledger/contract/ledger"
)

type engineMetrics struct {
	ops          *prometheus.CounterVec
	donatedBase  prometheus.Counter
	feesBase     prometheus.Counter
	refundedBase prometheus.Counter
	stakedBase   prometheus.Gauge
	rewardsPaid  prometheus.Counter
}

func newEngineMetrics(registry prometheus.Registerer) *engineMetrics {
	if registry == nil {
		return nil
	}
	factory := promauto.With(registry)
	return &engineMetrics{
		ops: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "medfund_operations_total",
			Help: "ledger operations by name and result code",
		}, []string{"op", "result"}),
		donatedBase: factory.NewCounter(prometheus.CounterOpts{
			Name: "medfund_donated_base_total",
			Help: "gross donations in smallest base units",
		}),
		feesBase: factory.NewCounter(prometheus.CounterOpts{
			Name: "medfund_fees_base_total",
			Help: "platform fees collected in smallest base units",
		}),
		refundedBase: factory.NewCounter(prometheus.CounterOpts{
			Name: "medfund_refunded_base_total",
			Help: "net amounts refunded in smallest base units",
		}),
		stakedBase: factory.NewGauge(prometheus.GaugeOpts{
			Name: "medfund_staked_base",
			Help: "amount currently staked across all pools",
		}),
		rewardsPaid: factory.NewCounter(prometheus.CounterOpts{
			Name: "medfund_staking_rewards_paid_total",
			Help: "staking rewards paid on unstake",
		}),
	}
}

// observe counts one finished operation, failures labelled by their ledger code.
func (m *engineMetrics) observe(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "internal"
		if code, ok := ledger.CodeOf(err); ok {
			result = code.String()
		}
	}
	m.ops.WithLabelValues(op, result).Inc()
}

// record folds committed events into the amount counters.
func (m *engineMetrics) record(events []ledger.Event) {
	if m == nil {
		return
	}
	for _, ev := range events {
		switch ev.Kind {
		case "dn":
			m.donatedBase.Add(float64(ev.Amount))
		case "rd":
			m.refundedBase.Add(float64(ev.Amount))
		}
	}
}

func (m *engineMetrics) setStaked(total uint64) {
	if m == nil {
		return
	}
	m.stakedBase.Set(float64(total))
}

func (m *engineMetrics) addFees(fee uint64) {
	if m == nil {
		return
	}
	m.feesBase.Add(float64(fee))
}

func (m *engineMetrics) addRewardPaid(reward uint64) {
	if m == nil {
		return
	}
	m.rewardsPaid.Add(float64(reward))
}
