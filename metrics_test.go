package ics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	b := NewBuilder(Settings{}, WithMetrics(m))
	_, err = b.BuildInvite(Invite{Meeting: testMeeting()})
	require.NoError(t, err)
	_, err = b.BuildCancellation(Cancellation{Meeting: testMeeting(), UID: "abc@x", Sequence: 1})
	require.NoError(t, err)
	_, err = b.BuildCancellation(Cancellation{Meeting: testMeeting(), UID: "abc@x"})
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsBuilt.WithLabelValues("REQUEST")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsBuilt.WithLabelValues("CANCEL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.validationFailures.WithLabelValues("sequence")))
	// the blank required attendee of testMeeting, once per document
	assert.Equal(t, 2.0, testutil.ToFloat64(m.attendeesSkipped))
}

func TestNewMetricsReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewMetrics(reg)
	require.NoError(t, err)
	second, err := NewMetrics(reg)
	require.NoError(t, err)

	first.attendeeSkipped()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.attendeesSkipped))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.documentBuilt(MethodRequest)
		m.validationFailed(ErrValidation)
		m.attendeeSkipped()
	})

	unregistered, err := NewMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, unregistered)
}
