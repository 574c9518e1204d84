package ics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what a Builder produces.  A nil *Metrics records nothing.
type Metrics struct {
	documentsBuilt     *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
	attendeesSkipped   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.  Collectors
// that are already registered, for example by a second Builder in the same
// process, are reused.  A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		documentsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ics_documents_built_total",
			Help: "Calendar documents assembled, by METHOD.",
		}, []string{"method"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ics_validation_failures_total",
			Help: "Build calls rejected by validation, by offending field.",
		}, []string{"field"}),
		attendeesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ics_attendees_skipped_total",
			Help: "Attendees dropped because their email was blank.",
		}),
	}
	if reg == nil {
		return m, nil
	}
	var err error
	if m.documentsBuilt, err = register(reg, m.documentsBuilt); err != nil {
		return nil, err
	}
	if m.validationFailures, err = register(reg, m.validationFailures); err != nil {
		return nil, err
	}
	if m.attendeesSkipped, err = register(reg, m.attendeesSkipped); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("register ics metrics: %w", err)
	}
	return c, nil
}

func (m *Metrics) documentBuilt(method Method) {
	if m == nil {
		return
	}
	m.documentsBuilt.WithLabelValues(string(method)).Inc()
}

func (m *Metrics) validationFailed(err error) {
	if m == nil {
		return
	}
	field := "unknown"
	var ve *ValidationError
	if errors.As(err, &ve) {
		field = ve.Field
	}
	m.validationFailures.WithLabelValues(field).Inc()
}

func (m *Metrics) attendeeSkipped() {
	if m == nil {
		return
	}
	m.attendeesSkipped.Inc()
}
