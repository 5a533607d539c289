package metrics

import "testing"

func TestRegistry_Gather(t *testing.T) {
	Conversions.WithLabelValues("to_lenient", ResultOK).Inc()
	Saves.WithLabelValues(ResultError).Inc()
	Tracked.Set(2)

	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}

	found := make(map[string]float64)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				found[mf.GetName()] += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				found[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}

	if found["lenient_conversions_total"] < 1 {
		t.Errorf("expected conversions to be counted, got %v", found)
	}
	if found["lenient_saves_total"] < 1 {
		t.Errorf("expected saves to be counted, got %v", found)
	}
	if found["lenient_tracked_documents"] != 2 {
		t.Errorf("expected tracked gauge 2, got %v", found["lenient_tracked_documents"])
	}
}
