// Package metrics builds a per-run Prometheus snapshot: gauges for slots
// filled/unfilled per (shift, legal) phase, counters for TTC cycles
// resolved, and a gauge for aggregate postal-code distance before and
// after optimisation. The registry is written to a text-exposition file at
// the end of a run (the node-exporter "textfile collector" convention)
// rather than served over HTTP, since this is a single-shot batch job with
// no long-lived process to scrape.
package metrics

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Snapshot owns one run's metric registry.
type Snapshot struct {
	registry *prometheus.Registry

	slotsFilled   *prometheus.GaugeVec
	slotsUnfilled *prometheus.GaugeVec

	ttcSelfCycles     prometheus.Counter
	ttcNonTrivial     prometheus.Counter
	ttcPhasesResolved prometheus.Counter

	distanceBefore prometheus.Gauge
	distanceAfter  prometheus.Gauge
}

// NewSnapshot constructs and registers the run's metric set.
func NewSnapshot() *Snapshot {
	registry := prometheus.NewRegistry()

	s := &Snapshot{
		registry: registry,
		slotsFilled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "voteobserver_slots_filled",
			Help: "Precinct shift slots filled, by shift and legal requirement.",
		}, []string{"shift", "legal"}),
		slotsUnfilled: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "voteobserver_slots_unfilled",
			Help: "Precinct shift slots left with the empty sentinel, by shift and legal requirement.",
		}, []string{"shift", "legal"}),
		ttcSelfCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteobserver_ttc_self_cycles_total",
			Help: "Observers matched to their own endowment across all TTC phases.",
		}),
		ttcNonTrivial: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteobserver_ttc_nontrivial_cycles_total",
			Help: "Non-trivial cycles resolved across all TTC phases.",
		}),
		ttcPhasesResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "voteobserver_ttc_phases_resolved_total",
			Help: "TTC phases that had a non-empty subset to resolve.",
		}),
		distanceBefore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voteobserver_total_distance_before_ttc",
			Help: "Sum of postal-code distance between observer and endowed precinct, before TTC.",
		}),
		distanceAfter: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "voteobserver_total_distance_after_ttc",
			Help: "Sum of postal-code distance between observer and assigned precinct, after TTC.",
		}),
	}

	registry.MustRegister(
		s.slotsFilled, s.slotsUnfilled,
		s.ttcSelfCycles, s.ttcNonTrivial, s.ttcPhasesResolved,
		s.distanceBefore, s.distanceAfter,
	)

	return s
}

// ObserveSlot records one greedy phase's fill outcome for a single cell.
func (s *Snapshot) ObserveSlot(shift string, legal bool, filled bool) {
	legalLabel := legalLabel(legal)
	if filled {
		s.slotsFilled.WithLabelValues(shift, legalLabel).Inc()
	} else {
		s.slotsUnfilled.WithLabelValues(shift, legalLabel).Inc()
	}
}

// ObserveTTC folds one TTC phase's resolution counts into the run totals.
func (s *Snapshot) ObserveTTC(selfCycles, nonTrivialCycles int) {
	s.ttcSelfCycles.Add(float64(selfCycles))
	s.ttcNonTrivial.Add(float64(nonTrivialCycles))
	s.ttcPhasesResolved.Inc()
}

// SetDistance records the aggregate observer-to-precinct postal-code
// distance before and after the TTC pass.
func (s *Snapshot) SetDistance(before, after int) {
	s.distanceBefore.Set(float64(before))
	s.distanceAfter.Set(float64(after))
}

// WriteTo writes the registry as a Prometheus text-exposition snapshot at
// path, creating or truncating the file.
func (s *Snapshot) WriteTo(path string) error {
	families, err := s.registry.Gather()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := expfmt.NewEncoder(f, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func legalLabel(legal bool) string {
	if legal {
		return "true"
	}
	return "false"
}
