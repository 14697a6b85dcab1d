package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewWithRegistry(reg)

	m.BookingsTotal.WithLabelValues("confirmed").Inc()
	m.BookingsTotal.WithLabelValues("sold_out").Add(2)
	m.SeatsRestoredTotal.Add(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("confirmed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("sold_out")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.SeatsRestoredTotal))
}

func TestNewWithRegistry_DoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotNil(t, NewWithRegistry(reg))

	assert.Panics(t, func() { NewWithRegistry(reg) })
}
