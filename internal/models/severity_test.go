package models

import "testing"

func TestSeverityPartition(t *testing.T) {
	cases := []struct {
		hours float64
		want  Severity
	}{
		{0, SeverityLow},
		{2.5, SeverityLow},
		{4, SeverityLow}, // граница low включительно
		{4.01, SeverityMedium},
		{6.25, SeverityMedium},
		{8, SeverityMedium}, // граница medium включительно
		{8.01, SeverityHigh},
		{160, SeverityHigh},
	}

	for _, tc := range cases {
		if got := SeverityFor(tc.hours); got != tc.want {
			t.Errorf("SeverityFor(%v) = %s, want %s", tc.hours, got, tc.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	if s, ok := ParseSeverity("medium"); !ok || s != SeverityMedium {
		t.Errorf("ParseSeverity(medium) = %s, %v", s, ok)
	}
	if s, ok := ParseSeverity(""); !ok || s != "" {
		t.Errorf("ParseSeverity(empty) = %s, %v", s, ok)
	}
	if _, ok := ParseSeverity("critical"); ok {
		t.Error("ParseSeverity(critical) should fail")
	}
}

func TestAbsenceLogPredictionError(t *testing.T) {
	entry := AbsenceLog{PredictedHours: 6.25}

	if _, ok := entry.PredictionError(); ok {
		t.Error("PredictionError should report no data before reconciliation")
	}

	actual := 7.0
	entry.ActualHours = &actual
	diff, ok := entry.PredictionError()
	if !ok {
		t.Fatal("PredictionError should report data after reconciliation")
	}
	if diff != 0.75 {
		t.Errorf("diff = %v, want 0.75", diff)
	}
}
