package repository

import (
	"path/filepath"
	"testing"
	"time"

	"absenteeism-bot/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tracker-test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db failed: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newTestRepos(t *testing.T) (*GormAbsenceReasonRepository, *GormEmployeeRepository, *GormAbsenceLogRepository) {
	t.Helper()
	db := newTestDB(t)

	reasonRepo, err := NewGormAbsenceReasonRepository(db)
	if err != nil {
		t.Fatalf("reason repo failed: %v", err)
	}
	employeeRepo, err := NewGormEmployeeRepository(db)
	if err != nil {
		t.Fatalf("employee repo failed: %v", err)
	}
	logRepo, err := NewGormAbsenceLogRepository(db)
	if err != nil {
		t.Fatalf("log repo failed: %v", err)
	}

	return reasonRepo, employeeRepo, logRepo
}

func seedBasicData(t *testing.T, reasonRepo *GormAbsenceReasonRepository, employeeRepo *GormEmployeeRepository) {
	t.Helper()

	_, err := reasonRepo.Seed([]models.AbsenceReason{
		{Code: 5, Description: "Mental and behavioural disorders"},
		{Code: 23, Description: "Medical consultation", Recommendation: "Телемедицина"},
		{Code: 28, Description: "Dental consultation"},
	})
	if err != nil {
		t.Fatalf("seed reasons failed: %v", err)
	}

	employees := []*models.Employee{
		{ID: 7, FullName: "Employee 7", HourlyRate: 30, TransportationExpense: 289, DistanceToWork: 36, ServiceTime: 13, Age: 33, WorkloadAvgDay: 239.55, HitTarget: 97, Education: 1, BodyMassIndex: 22},
		{ID: 11, FullName: "Employee 11", HourlyRate: 45, TransportationExpense: 179, DistanceToWork: 51, ServiceTime: 18, Age: 38, WorkloadAvgDay: 239.55, HitTarget: 97, Education: 2, BodyMassIndex: 31},
	}
	for _, emp := range employees {
		if err := employeeRepo.Create(emp); err != nil {
			t.Fatalf("create employee %d failed: %v", emp.ID, err)
		}
	}
}

func TestSeedIsIdempotentAndImmutable(t *testing.T) {
	reasonRepo, _, _ := newTestRepos(t)

	created, err := reasonRepo.Seed([]models.AbsenceReason{{Code: 1, Description: "Original"}})
	if err != nil || created != 1 {
		t.Fatalf("first seed: created=%d err=%v", created, err)
	}

	// Повторный посев с другим описанием не перезаписывает справочник
	created, err = reasonRepo.Seed([]models.AbsenceReason{{Code: 1, Description: "Changed"}})
	if err != nil || created != 0 {
		t.Fatalf("second seed: created=%d err=%v", created, err)
	}

	reason, err := reasonRepo.GetByCode(1)
	if err != nil || reason == nil {
		t.Fatalf("GetByCode failed: %v", err)
	}
	if reason.Description != "Original" {
		t.Errorf("description = %q, want Original", reason.Description)
	}
}

func TestReconcileFlow(t *testing.T) {
	reasonRepo, employeeRepo, logRepo := newTestRepos(t)
	seedBasicData(t, reasonRepo, employeeRepo)

	entry := &models.AbsenceLog{
		EmployeeID:     7,
		ReasonCode:     5,
		DateLogged:     time.Now(),
		PredictedHours: 6.25,
		Status:         models.StatusAbsent,
	}
	if err := logRepo.Create(entry); err != nil {
		t.Fatalf("create entry failed: %v", err)
	}

	reconciled, err := logRepo.Reconcile(entry.ID, 7.0)
	if err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if reconciled.Status != models.StatusReturned {
		t.Errorf("status = %s, want RETURNED", reconciled.Status)
	}
	if reconciled.ActualHours == nil || *reconciled.ActualHours != 7.0 {
		t.Errorf("actual hours = %v, want 7.0", reconciled.ActualHours)
	}
	if reconciled.PredictedHours != 6.25 {
		t.Errorf("predicted hours changed: %v", reconciled.PredictedHours)
	}

	// Повторная сверка с тем же значением оставляет то же состояние
	again, err := logRepo.Reconcile(entry.ID, 7.0)
	if err != nil {
		t.Fatalf("second reconcile failed: %v", err)
	}
	if again.Status != models.StatusReturned || *again.ActualHours != 7.0 {
		t.Errorf("state changed after repeated reconcile: %+v", again)
	}
}

func TestReconcileUnknownEntry(t *testing.T) {
	reasonRepo, employeeRepo, logRepo := newTestRepos(t)
	seedBasicData(t, reasonRepo, employeeRepo)

	entry, err := logRepo.Reconcile(9999, 5.0)
	if err != nil {
		t.Fatalf("reconcile returned error: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected nil entry for unknown id, got %+v", entry)
	}

	// Журнал не изменился
	reconciled, err := logRepo.GetReconciled()
	if err != nil {
		t.Fatalf("GetReconciled failed: %v", err)
	}
	if len(reconciled) != 0 {
		t.Errorf("ledger changed: %d reconciled entries", len(reconciled))
	}
}

func TestReasonTotalsSortedAndFiltered(t *testing.T) {
	reasonRepo, employeeRepo, logRepo := newTestRepos(t)
	seedBasicData(t, reasonRepo, employeeRepo)

	now := time.Now()
	entries := []*models.AbsenceLog{
		{EmployeeID: 7, ReasonCode: 5, DateLogged: now, PredictedHours: 2.5, Status: models.StatusAbsent},
		{EmployeeID: 11, ReasonCode: 5, DateLogged: now, PredictedHours: 4.0, Status: models.StatusAbsent},
		{EmployeeID: 7, ReasonCode: 23, DateLogged: now, PredictedHours: 1.0, Status: models.StatusAbsent},
		{EmployeeID: 11, ReasonCode: 28, DateLogged: now, PredictedHours: 0.0, Status: models.StatusAbsent},
	}
	for _, e := range entries {
		if err := logRepo.Create(e); err != nil {
			t.Fatalf("create entry failed: %v", err)
		}
	}

	totals, err := logRepo.ReasonTotals()
	if err != nil {
		t.Fatalf("ReasonTotals failed: %v", err)
	}

	if len(totals) != 2 {
		t.Fatalf("len(totals) = %d, want 2 (zero-sum group excluded)", len(totals))
	}

	if totals[0].ReasonCode != 5 || totals[0].TotalHours != 6.5 {
		t.Errorf("top reason = %+v, want code 5 with 6.5h", totals[0])
	}

	for i := 1; i < len(totals); i++ {
		if totals[i].TotalHours >= totals[i-1].TotalHours {
			t.Errorf("totals not strictly descending at %d: %+v", i, totals)
		}
	}
}

func TestSumPredictedForEmployeeByMonth(t *testing.T) {
	reasonRepo, employeeRepo, logRepo := newTestRepos(t)
	seedBasicData(t, reasonRepo, employeeRepo)

	now := time.Now()
	lastMonth := now.AddDate(0, -1, 0)

	entries := []*models.AbsenceLog{
		{EmployeeID: 7, ReasonCode: 5, DateLogged: now, PredictedHours: 6.25, Status: models.StatusAbsent},
		{EmployeeID: 7, ReasonCode: 23, DateLogged: lastMonth, PredictedHours: 3.0, Status: models.StatusAbsent},
		{EmployeeID: 11, ReasonCode: 5, DateLogged: now, PredictedHours: 2.0, Status: models.StatusAbsent},
	}
	for _, e := range entries {
		if err := logRepo.Create(e); err != nil {
			t.Fatalf("create entry failed: %v", err)
		}
	}

	total, err := logRepo.SumPredictedForEmployee(7, now.Year(), now.Month())
	if err != nil {
		t.Fatalf("SumPredictedForEmployee failed: %v", err)
	}
	if total != 6.25 {
		t.Errorf("total = %v, want 6.25 (last month excluded)", total)
	}

	// Сотрудник без записей дает ноль, а не ошибку
	total, err = logRepo.SumPredictedForEmployee(404, now.Year(), now.Month())
	if err != nil || total != 0 {
		t.Errorf("empty sum = %v, err = %v, want 0, nil", total, err)
	}
}

func TestGetByMonthPreloadsAssociations(t *testing.T) {
	reasonRepo, employeeRepo, logRepo := newTestRepos(t)
	seedBasicData(t, reasonRepo, employeeRepo)

	now := time.Now()
	entry := &models.AbsenceLog{EmployeeID: 7, ReasonCode: 5, DateLogged: now, PredictedHours: 6.25, Status: models.StatusAbsent}
	if err := logRepo.Create(entry); err != nil {
		t.Fatalf("create entry failed: %v", err)
	}

	entries, err := logRepo.GetByMonth(now.Year(), now.Month())
	if err != nil {
		t.Fatalf("GetByMonth failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Employee.FullName != "Employee 7" {
		t.Errorf("employee not preloaded: %+v", entries[0].Employee)
	}
	if entries[0].Reason.Description == "" {
		t.Errorf("reason not preloaded: %+v", entries[0].Reason)
	}
}
