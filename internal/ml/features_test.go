package ml

import (
	"errors"
	"testing"
	"time"

	"absenteeism-bot/internal/models"
)

func completeEmployee() *models.Employee {
	return &models.Employee{
		ID:                    7,
		FullName:              "Employee 7",
		HourlyRate:            30,
		TransportationExpense: 289,
		DistanceToWork:        36,
		ServiceTime:           13,
		Age:                   33,
		WorkloadAvgDay:        239.554,
		HitTarget:             97,
		Education:             1,
		BodyMassIndex:         22,
	}
}

func TestBuildFeatureVectorFieldSet(t *testing.T) {
	emp := completeEmployee()
	at := time.Date(2026, time.August, 24, 10, 0, 0, 0, time.UTC) // понедельник

	fv, err := BuildFeatureVector(emp, 5, at)
	if err != nil {
		t.Fatalf("BuildFeatureVector failed: %v", err)
	}

	if fv.ReasonCode != 5 {
		t.Errorf("ReasonCode = %d, want 5", fv.ReasonCode)
	}
	if fv.Month != 8 {
		t.Errorf("Month = %d, want 8", fv.Month)
	}
	if fv.Weekday != 2 {
		t.Errorf("Weekday = %d, want 2 (Monday per training convention)", fv.Weekday)
	}
	if fv.Season != 3 {
		t.Errorf("Season = %d, want 3", fv.Season)
	}
	if fv.TransportationExpense != 289 || fv.DistanceToWork != 36 || fv.ServiceTime != 13 {
		t.Errorf("static features mismatch: %+v", fv)
	}
	if fv.Age != 33 || fv.WorkloadAvgDay != 239.554 || fv.HitTarget != 97 || fv.BodyMassIndex != 22 {
		t.Errorf("static features mismatch: %+v", fv)
	}

	if got := len(fv.Values()); got != NumFeatures {
		t.Errorf("len(Values()) = %d, want %d", got, NumFeatures)
	}
}

func TestBuildFeatureVectorWeekdayConvention(t *testing.T) {
	emp := completeEmployee()

	// Понедельник=2 ... Воскресенье=8
	cases := []struct {
		day  int
		want int
	}{
		{24, 2}, // Пн
		{26, 4}, // Ср
		{29, 7}, // Сб
		{30, 8}, // Вс
	}

	for _, tc := range cases {
		at := time.Date(2026, time.August, tc.day, 12, 0, 0, 0, time.UTC)
		fv, err := BuildFeatureVector(emp, 0, at)
		if err != nil {
			t.Fatalf("BuildFeatureVector failed: %v", err)
		}
		if fv.Weekday != tc.want {
			t.Errorf("day %d: Weekday = %d, want %d", tc.day, fv.Weekday, tc.want)
		}
	}
}

func TestSeasonForEveryMonth(t *testing.T) {
	wantBySeason := map[int]int{
		1: 1, 2: 1, 12: 1, // зима
		3: 2, 4: 2, 5: 2, // весна
		6: 3, 7: 3, 8: 3, // лето
		9: 4, 10: 4, 11: 4, // осень
	}

	emp := completeEmployee()
	for month := 1; month <= 12; month++ {
		at := time.Date(2026, time.Month(month), 15, 0, 0, 0, 0, time.UTC)
		fv, err := BuildFeatureVector(emp, 0, at)
		if err != nil {
			t.Fatalf("month %d: BuildFeatureVector failed: %v", month, err)
		}
		if fv.Season != wantBySeason[month] {
			t.Errorf("month %d: Season = %d, want %d", month, fv.Season, wantBySeason[month])
		}
	}
}

func TestBuildFeatureVectorMissingFeature(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.Employee)
		field  string
	}{
		{"transport", func(e *models.Employee) { e.TransportationExpense = 0 }, "transportation_expense"},
		{"distance", func(e *models.Employee) { e.DistanceToWork = 0 }, "distance_to_work"},
		{"workload", func(e *models.Employee) { e.WorkloadAvgDay = 0 }, "workload_avg_day"},
		{"bmi", func(e *models.Employee) { e.BodyMassIndex = 0 }, "body_mass_index"},
	}

	for _, tc := range cases {
		emp := completeEmployee()
		tc.mutate(emp)

		_, err := BuildFeatureVector(emp, 1, time.Now())
		var missing *MissingFeatureError
		if !errors.As(err, &missing) {
			t.Errorf("%s: expected MissingFeatureError, got %v", tc.name, err)
			continue
		}
		if missing.Field != tc.field {
			t.Errorf("%s: Field = %q, want %q", tc.name, missing.Field, tc.field)
		}
	}
}

func TestEducationExcludedFromSchema(t *testing.T) {
	// Образование хранится в карточке, но в схему модели не входит:
	// пустое значение не должно мешать сборке признаков
	emp := completeEmployee()
	emp.Education = 0

	if _, err := BuildFeatureVector(emp, 1, time.Now()); err != nil {
		t.Fatalf("BuildFeatureVector failed: %v", err)
	}
}
