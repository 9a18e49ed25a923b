package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// StandardMonthHours — полный рабочий месяц, знаменатель для
// коэффициента абсентеизма и зарплатных проекций
const StandardMonthHours = 160.0

// accuracyToleranceHours — допуск, в пределах которого прогноз считается точным
const accuracyToleranceHours = 1.0

// DefaultRecommendation возвращается, когда журнал пуст и главную
// причину отсутствий определить нельзя
const DefaultRecommendation = "Данных пока недостаточно. Продолжайте вести журнал отсутствий."

// DashboardKpis — показатели за текущий календарный месяц
type DashboardKpis struct {
	Year               int
	Month              time.Month
	EmployeeCount      int
	MonthPredictedHrs  float64
	AbsenteeismRate    float64 // проценты от фонда employee_count * 160 ч
	CompensationImpact float64
	Histogram          []repository.ReasonTotal
	TopReason          *repository.ReasonTotal
	Recommendation     string
}

// ModelAccuracy — точность модели по сверенным записям.
// При отсутствии сверенных записей MAE и процент равны -1.
type ModelAccuracy struct {
	ReconciledCount   int
	MeanAbsoluteError float64
	WithinTolerance   int // округленный процент прогнозов с ошибкой <= 1 ч
}

// Applicable проверяет, есть ли данные для оценки точности
func (a ModelAccuracy) Applicable() bool {
	return a.ReconciledCount > 0
}

// SalaryFilter — фильтр зарплатного отчета. Search интерпретируется как
// точный ID, если разбирается в число, иначе как подстрока имени.
type SalaryFilter struct {
	Search   string
	Severity models.Severity
}

// PayrollRow — строка зарплатной проекции по одному сотруднику
type PayrollRow struct {
	EmployeeID           int
	FullName             string
	HourlyRate           float64
	TotalAbsentHours     float64
	ExpectedWorkHours    float64
	AbsenceCost          float64
	ExpectedCompensation float64
	Severity             models.Severity
}

// SalaryReport — зарплатный отчет: строки по отфильтрованному набору,
// итоги по нему и общие итоги по всем сотрудникам для шапки.
type SalaryReport struct {
	Year  int
	Month time.Month
	Rows  []PayrollRow

	FilteredAbsentHours  float64
	FilteredAbsenceCost  float64
	FilteredCompensation float64

	OverallAbsentHours  float64
	OverallAbsenceCost  float64
	OverallCompensation float64
}

// ReportService — отчеты по журналу отсутствий. Каждый отчет — чистая
// свертка журнала на момент вызова, без кэширования.
type ReportService struct {
	logRepo      repository.AbsenceLogRepository
	employeeRepo repository.EmployeeRepository
	reasonRepo   repository.AbsenceReasonRepository
	logger       *logrus.Logger
	now          func() time.Time
}

func NewReportService(
	logRepo repository.AbsenceLogRepository,
	employeeRepo repository.EmployeeRepository,
	reasonRepo repository.AbsenceReasonRepository,
) *ReportService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &ReportService{
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		reasonRepo:   reasonRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// ReasonHistogram возвращает причины отсутствий с суммой прогнозных часов,
// по убыванию. Группы с нулевой суммой отброшены на уровне запроса.
func (s *ReportService) ReasonHistogram() ([]repository.ReasonTotal, error) {
	return s.logRepo.ReasonTotals()
}

// GetDashboardKpis собирает показатели за текущий месяц
func (s *ReportService) GetDashboardKpis() (*DashboardKpis, error) {
	now := s.now()
	year, month := now.Year(), now.Month()

	entries, err := s.logRepo.GetByMonth(year, month)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}

	employeeCount, err := s.employeeRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета сотрудников: %w", err)
	}

	var totalHours, impact float64
	for _, entry := range entries {
		totalHours += entry.PredictedHours

		// Запись без присоединенного сотрудника не валит отчет целиком
		if entry.Employee.ID == 0 {
			s.logger.WithField("entry_id", entry.ID).
				Warn("Skipping unjoinable ledger entry in compensation impact")
			continue
		}
		impact += entry.PredictedHours * entry.Employee.HourlyRate
	}

	// При нуле сотрудников коэффициент равен нулю, деления нет
	rate := 0.0
	if employeeCount > 0 {
		rate = totalHours / (float64(employeeCount) * StandardMonthHours) * 100
	}

	histogram, err := s.logRepo.ReasonTotals()
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации причин: %w", err)
	}

	kpis := &DashboardKpis{
		Year:               year,
		Month:              month,
		EmployeeCount:      employeeCount,
		MonthPredictedHrs:  totalHours,
		AbsenteeismRate:    rate,
		CompensationImpact: impact,
		Histogram:          histogram,
		Recommendation:     DefaultRecommendation,
	}

	if len(histogram) > 0 {
		kpis.TopReason = &histogram[0]
		kpis.Recommendation = s.recommendationFor(histogram[0].ReasonCode)
	}

	return kpis, nil
}

// recommendationFor возвращает рекомендацию из справочника для главной
// причины. При отсутствии рекомендации или ошибке поиска — дефолтная строка.
func (s *ReportService) recommendationFor(reasonCode int) string {
	reason, err := s.reasonRepo.GetByCode(reasonCode)
	if err != nil {
		s.logger.WithError(err).WithField("reason_code", reasonCode).
			Warn("Failed to resolve recommendation for top reason")
		return DefaultRecommendation
	}
	if reason == nil || !reason.HasRecommendation() {
		return DefaultRecommendation
	}
	return reason.Recommendation
}

// GetModelAccuracy оценивает модель по сверенным записям: средняя
// абсолютная ошибка и доля прогнозов с ошибкой не больше часа
func (s *ReportService) GetModelAccuracy() (*ModelAccuracy, error) {
	entries, err := s.logRepo.GetReconciled()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сверенных записей: %w", err)
	}

	accuracy := &ModelAccuracy{
		MeanAbsoluteError: -1,
		WithinTolerance:   -1,
	}

	var sumError float64
	withinTolerance := 0

	for _, entry := range entries {
		diff, ok := entry.PredictionError()
		if !ok {
			continue
		}
		accuracy.ReconciledCount++
		sumError += diff
		if diff <= accuracyToleranceHours {
			withinTolerance++
		}
	}

	if accuracy.ReconciledCount > 0 {
		accuracy.MeanAbsoluteError = sumError / float64(accuracy.ReconciledCount)
		accuracy.WithinTolerance = int(math.Round(float64(withinTolerance) / float64(accuracy.ReconciledCount) * 100))
	}

	return accuracy, nil
}

// GetSalaryReport строит зарплатную проекцию за текущий месяц.
// Общие итоги всегда считаются по всем сотрудникам, итоги фильтра —
// только по отобранному подмножеству.
func (s *ReportService) GetSalaryReport(filter SalaryFilter) (*SalaryReport, error) {
	now := s.now()
	year, month := now.Year(), now.Month()

	employees, err := s.employeeRepo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения сотрудников: %w", err)
	}

	report := &SalaryReport{Year: year, Month: month}

	for _, emp := range employees {
		absentHours, err := s.logRepo.SumPredictedForEmployee(emp.ID, year, month)
		if err != nil {
			// Одна проблемная строка уменьшает полноту отчета, но не валит его
			s.logger.WithError(err).WithField("employee_id", emp.ID).
				Warn("Skipping employee in salary report")
			continue
		}

		row := buildPayrollRow(emp, absentHours)

		report.OverallAbsentHours += row.TotalAbsentHours
		report.OverallAbsenceCost += row.AbsenceCost
		report.OverallCompensation += row.ExpectedCompensation

		if !matchesFilter(row, filter) {
			continue
		}

		report.Rows = append(report.Rows, row)
		report.FilteredAbsentHours += row.TotalAbsentHours
		report.FilteredAbsenceCost += row.AbsenceCost
		report.FilteredCompensation += row.ExpectedCompensation
	}

	return report, nil
}

// GetEmployeeSalaryRow строит зарплатную строку одного сотрудника (/mysalary)
func (s *ReportService) GetEmployeeSalaryRow(employeeID int) (*PayrollRow, error) {
	emp, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	now := s.now()
	absentHours, err := s.logRepo.SumPredictedForEmployee(emp.ID, now.Year(), now.Month())
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации часов: %w", err)
	}

	row := buildPayrollRow(emp, absentHours)
	return &row, nil
}

func buildPayrollRow(emp *models.Employee, absentHours float64) PayrollRow {
	expectedWork := math.Max(0, StandardMonthHours-absentHours)

	return PayrollRow{
		EmployeeID:           emp.ID,
		FullName:             emp.FullName,
		HourlyRate:           emp.HourlyRate,
		TotalAbsentHours:     absentHours,
		ExpectedWorkHours:    expectedWork,
		AbsenceCost:          absentHours * emp.HourlyRate,
		ExpectedCompensation: expectedWork * emp.HourlyRate,
		Severity:             models.SeverityFor(absentHours),
	}
}

func matchesFilter(row PayrollRow, filter SalaryFilter) bool {
	if filter.Search != "" {
		if id, err := strconv.Atoi(filter.Search); err == nil {
			if row.EmployeeID != id {
				return false
			}
		} else if !strings.Contains(strings.ToLower(row.FullName), strings.ToLower(filter.Search)) {
			return false
		}
	}

	if filter.Severity != "" && row.Severity != filter.Severity {
		return false
	}

	return true
}
