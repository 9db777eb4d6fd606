package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecordRun("pim-csv", "success", 3*time.Second)
	m.RecordRun("pim-csv", "partial", time.Second)
	m.RecordGenerator(nil)
	m.RecordGenerator(errors.New("boom"))
	m.RecordGenerator(errors.New("boom"))
	m.RecordPurge(OutcomeDeleted, 4)
	m.RecordPurge(OutcomeRetained, 0)
	m.ResolverOpened()
	m.ResolverOpened()
	m.ResolverClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.runsTotal.WithLabelValues("pim-csv", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.generatorCalls.WithLabelValues("error")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.purgeEntries.WithLabelValues(OutcomeDeleted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.openResolvers))
	assert.Greater(t, testutil.ToFloat64(m.lastSuccess.WithLabelValues("pim-csv")), 0.0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.purgeEntries))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordRun("pim-csv", "success", time.Second)
		m.RecordGenerator(nil)
		m.RecordPurge(OutcomeDeleted, 1)
		m.ResolverOpened()
		m.ResolverClosed()
	})
}
