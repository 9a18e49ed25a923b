package service

import (
	"math"
	"testing"
	"time"

	"absenteeism-bot/internal/models"
)

func (env *testEnv) reportService() *ReportService {
	return NewReportService(env.logRepo, env.employeeRepo, env.reasonRepo)
}

func (env *testEnv) logEntry(t *testing.T, employeeID, reasonCode int, hours float64) *models.AbsenceLog {
	t.Helper()
	entry := &models.AbsenceLog{
		EmployeeID:     employeeID,
		ReasonCode:     reasonCode,
		DateLogged:     time.Now(),
		PredictedHours: hours,
		Status:         models.StatusAbsent,
	}
	if err := env.logRepo.Create(entry); err != nil {
		t.Fatalf("create entry failed: %v", err)
	}
	return entry
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSalaryReportSingleEmployeeScenario(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	env.logEntry(t, 7, 5, 6.25)

	report, err := env.reportService().GetSalaryReport(SalaryFilter{})
	if err != nil {
		t.Fatalf("GetSalaryReport failed: %v", err)
	}

	if len(report.Rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(report.Rows))
	}

	row := report.Rows[0]
	if !almostEqual(row.TotalAbsentHours, 6.25) {
		t.Errorf("total absent = %v, want 6.25", row.TotalAbsentHours)
	}
	if !almostEqual(row.ExpectedWorkHours, 153.75) {
		t.Errorf("expected work = %v, want 153.75", row.ExpectedWorkHours)
	}
	if !almostEqual(row.AbsenceCost, 187.50) {
		t.Errorf("absence cost = %v, want 187.50", row.AbsenceCost)
	}
	if !almostEqual(row.ExpectedCompensation, 4612.50) {
		t.Errorf("compensation = %v, want 4612.50", row.ExpectedCompensation)
	}
	if row.Severity != models.SeverityMedium {
		t.Errorf("severity = %s, want medium", row.Severity)
	}
}

func TestSalaryReportExpectedWorkNeverNegative(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	env.logEntry(t, 7, 5, 200) // больше месячного фонда

	report, err := env.reportService().GetSalaryReport(SalaryFilter{})
	if err != nil {
		t.Fatalf("GetSalaryReport failed: %v", err)
	}

	row := report.Rows[0]
	if row.ExpectedWorkHours != 0 {
		t.Errorf("expected work = %v, want 0", row.ExpectedWorkHours)
	}
	if row.ExpectedCompensation != 0 {
		t.Errorf("compensation = %v, want 0", row.ExpectedCompensation)
	}
}

func TestSalaryReportFilters(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	second := &models.Employee{
		ID: 11, FullName: "Иванов Петр", HourlyRate: 45,
		TransportationExpense: 179, DistanceToWork: 51, ServiceTime: 18,
		Age: 38, WorkloadAvgDay: 239.55, HitTarget: 97, Education: 2, BodyMassIndex: 31,
	}
	if err := env.employeeRepo.Create(second); err != nil {
		t.Fatalf("create employee failed: %v", err)
	}

	env.logEntry(t, 7, 5, 6.25)   // medium
	env.logEntry(t, 11, 23, 2.0)  // low

	svc := env.reportService()

	// Числовой поиск — точное совпадение ID
	report, err := svc.GetSalaryReport(SalaryFilter{Search: "7"})
	if err != nil {
		t.Fatalf("GetSalaryReport failed: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].EmployeeID != 7 {
		t.Errorf("numeric search: rows = %+v", report.Rows)
	}

	// Текстовый поиск — подстрока имени без учета регистра
	report, err = svc.GetSalaryReport(SalaryFilter{Search: "иванов"})
	if err != nil {
		t.Fatalf("GetSalaryReport failed: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].EmployeeID != 11 {
		t.Errorf("name search: rows = %+v", report.Rows)
	}

	// Фильтр по категории
	report, err = svc.GetSalaryReport(SalaryFilter{Severity: models.SeverityMedium})
	if err != nil {
		t.Fatalf("GetSalaryReport failed: %v", err)
	}
	if len(report.Rows) != 1 || report.Rows[0].EmployeeID != 7 {
		t.Errorf("severity filter: rows = %+v", report.Rows)
	}

	// Итоги по выборке считаются по подмножеству, общие — по всем
	if !almostEqual(report.FilteredAbsentHours, 6.25) {
		t.Errorf("filtered hours = %v, want 6.25", report.FilteredAbsentHours)
	}
	if !almostEqual(report.OverallAbsentHours, 8.25) {
		t.Errorf("overall hours = %v, want 8.25", report.OverallAbsentHours)
	}
	wantOverallCost := 6.25*30 + 2.0*45
	if !almostEqual(report.OverallAbsenceCost, wantOverallCost) {
		t.Errorf("overall cost = %v, want %v", report.OverallAbsenceCost, wantOverallCost)
	}
}

func TestDashboardKpis(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	env.logEntry(t, 7, 5, 6.25)
	env.logEntry(t, 7, 23, 1.75)

	kpis, err := env.reportService().GetDashboardKpis()
	if err != nil {
		t.Fatalf("GetDashboardKpis failed: %v", err)
	}

	if kpis.EmployeeCount != 1 {
		t.Errorf("employee count = %d, want 1", kpis.EmployeeCount)
	}
	if !almostEqual(kpis.MonthPredictedHrs, 8.0) {
		t.Errorf("month hours = %v, want 8.0", kpis.MonthPredictedHrs)
	}

	wantRate := 8.0 / 160.0 * 100
	if !almostEqual(kpis.AbsenteeismRate, wantRate) {
		t.Errorf("rate = %v, want %v", kpis.AbsenteeismRate, wantRate)
	}

	if !almostEqual(kpis.CompensationImpact, 8.0*30) {
		t.Errorf("impact = %v, want 240", kpis.CompensationImpact)
	}

	if kpis.TopReason == nil || kpis.TopReason.ReasonCode != 5 {
		t.Fatalf("top reason = %+v, want code 5", kpis.TopReason)
	}
	if kpis.Recommendation != "Программа поддержки" {
		t.Errorf("recommendation = %q, want catalog value", kpis.Recommendation)
	}
}

func TestDashboardKpisEmptyState(t *testing.T) {
	env := newTestEnv(t)
	// Ни сотрудников, ни записей

	kpis, err := env.reportService().GetDashboardKpis()
	if err != nil {
		t.Fatalf("GetDashboardKpis failed: %v", err)
	}

	if kpis.AbsenteeismRate != 0 {
		t.Errorf("rate = %v, want 0 with no employees", kpis.AbsenteeismRate)
	}
	if kpis.TopReason != nil {
		t.Errorf("top reason = %+v, want nil", kpis.TopReason)
	}
	if kpis.Recommendation != DefaultRecommendation {
		t.Errorf("recommendation = %q, want default", kpis.Recommendation)
	}
}

func TestDashboardRecommendationFallback(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	// У причины 23 нет рекомендации в справочнике
	env.logEntry(t, 7, 23, 3.0)

	kpis, err := env.reportService().GetDashboardKpis()
	if err != nil {
		t.Fatalf("GetDashboardKpis failed: %v", err)
	}

	if kpis.TopReason == nil || kpis.TopReason.ReasonCode != 23 {
		t.Fatalf("top reason = %+v, want code 23", kpis.TopReason)
	}
	if kpis.Recommendation != DefaultRecommendation {
		t.Errorf("recommendation = %q, want default fallback", kpis.Recommendation)
	}
}

func TestModelAccuracy(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	first := env.logEntry(t, 7, 5, 6.25)
	second := env.logEntry(t, 7, 23, 2.0)
	env.logEntry(t, 7, 5, 4.0) // не сверена, в оценку не входит

	if _, err := env.logRepo.Reconcile(first.ID, 7.0); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if _, err := env.logRepo.Reconcile(second.ID, 4.5); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}

	accuracy, err := env.reportService().GetModelAccuracy()
	if err != nil {
		t.Fatalf("GetModelAccuracy failed: %v", err)
	}

	if accuracy.ReconciledCount != 2 {
		t.Errorf("reconciled = %d, want 2", accuracy.ReconciledCount)
	}

	// |6.25-7.0|=0.75 в допуске, |2.0-4.5|=2.5 вне допуска
	wantMAE := (0.75 + 2.5) / 2
	if !almostEqual(accuracy.MeanAbsoluteError, wantMAE) {
		t.Errorf("MAE = %v, want %v", accuracy.MeanAbsoluteError, wantMAE)
	}
	if accuracy.WithinTolerance != 50 {
		t.Errorf("within tolerance = %d%%, want 50%%", accuracy.WithinTolerance)
	}
}

func TestModelAccuracyNotApplicable(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	env.logEntry(t, 7, 5, 6.25) // сверенных записей нет

	accuracy, err := env.reportService().GetModelAccuracy()
	if err != nil {
		t.Fatalf("GetModelAccuracy failed: %v", err)
	}

	if accuracy.Applicable() {
		t.Error("accuracy should not be applicable without reconciled entries")
	}
	if accuracy.MeanAbsoluteError != -1 || accuracy.WithinTolerance != -1 {
		t.Errorf("sentinels = (%v, %d), want (-1, -1)", accuracy.MeanAbsoluteError, accuracy.WithinTolerance)
	}
}

func TestGetEmployeeSalaryRow(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t)

	env.logEntry(t, 7, 5, 6.25)

	row, err := env.reportService().GetEmployeeSalaryRow(7)
	if err != nil {
		t.Fatalf("GetEmployeeSalaryRow failed: %v", err)
	}
	if !almostEqual(row.TotalAbsentHours, 6.25) || !almostEqual(row.ExpectedCompensation, 4612.50) {
		t.Errorf("row = %+v", row)
	}

	if _, err := env.reportService().GetEmployeeSalaryRow(404); err == nil {
		t.Error("expected error for unknown employee")
	}
}
