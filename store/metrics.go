package store

import "github.com/prometheus/client_golang/prometheus"

const storeMetricNamePrefix = "medfund_store_"

type storeMetrics struct {
	commits      prometheus.Counter
	commitErrors prometheus.Counter
	keysWritten  prometheus.Counter
	keysDeleted  prometheus.Counter
}

func (b *BadgerStore) registerMetrics() {
	m := &storeMetrics{
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: storeMetricNamePrefix + "commits_total",
			Help: "Total number of committed operation batches",
		}),
		commitErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: storeMetricNamePrefix + "commit_errors_total",
			Help: "Total number of failed commits",
		}),
		keysWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: storeMetricNamePrefix + "keys_written_total",
			Help: "Total number of keys set",
		}),
		keysDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: storeMetricNamePrefix + "keys_deleted_total",
			Help: "Total number of keys deleted",
		}),
	}
	b.promRegistry.MustRegister(m.commits, m.commitErrors, m.keysWritten, m.keysDeleted)
	b.metrics = m
}
