package service

import (
	"fmt"
	"strings"
	"time"

	"absenteeism-bot/internal/ml"
	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// AbsenceService — конвейер прогнозирования: поиск сотрудника и причины,
// сборка признаков, вызов модели, запись в журнал. Ошибка прогноза
// блокирует запись в журнал.
type AbsenceService struct {
	logRepo      repository.AbsenceLogRepository
	employeeRepo repository.EmployeeRepository
	reasonRepo   repository.AbsenceReasonRepository
	predictor    ml.Predictor
	logger       *logrus.Logger
	now          func() time.Time
}

func NewAbsenceService(
	logRepo repository.AbsenceLogRepository,
	employeeRepo repository.EmployeeRepository,
	reasonRepo repository.AbsenceReasonRepository,
	predictor ml.Predictor,
) *AbsenceService {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	return &AbsenceService{
		logRepo:      logRepo,
		employeeRepo: employeeRepo,
		reasonRepo:   reasonRepo,
		predictor:    predictor,
		logger:       logger,
		now:          time.Now,
	}
}

// PredictAbsence прогнозирует длительность отсутствия и создает запись
// в журнале со статусом ABSENT
func (s *AbsenceService) PredictAbsence(employeeID, reasonCode int) (*models.AbsenceLog, error) {
	s.logger.WithFields(logrus.Fields{
		"employee_id": employeeID,
		"reason_code": reasonCode,
	}).Info("Predicting absence duration")

	employee, err := s.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	reason, err := s.reasonRepo.GetByCode(reasonCode)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска причины: %w", err)
	}
	if reason == nil {
		return nil, ErrReasonNotFound
	}

	loggedAt := s.now()

	features, err := ml.BuildFeatureVector(employee, reason.Code, loggedAt)
	if err != nil {
		return nil, err
	}

	predictedHours, err := s.predictor.Predict(features)
	if err != nil {
		s.logger.WithError(err).WithField("employee_id", employeeID).
			Error("Prediction failed, no ledger entry created")
		return nil, err
	}

	entry := &models.AbsenceLog{
		EmployeeID:     employee.ID,
		ReasonCode:     reason.Code,
		DateLogged:     loggedAt,
		PredictedHours: predictedHours,
		Status:         models.StatusAbsent,
	}

	if err := s.logRepo.Create(entry); err != nil {
		return nil, fmt.Errorf("ошибка записи в журнал: %w", err)
	}

	entry.Employee = *employee
	entry.Reason = *reason

	s.logger.WithFields(logrus.Fields{
		"entry_id":        entry.ID,
		"employee_id":     employee.ID,
		"predicted_hours": predictedHours,
	}).Info("Absence logged with prediction")

	return entry, nil
}

// ReconcileAbsence записывает фактические часы отсутствия
// и переводит запись в статус RETURNED
func (s *AbsenceService) ReconcileAbsence(entryID uint, actualHours float64) (*models.AbsenceLog, error) {
	if actualHours < 0 {
		return nil, fmt.Errorf("фактические часы не могут быть отрицательными")
	}

	entry, err := s.logRepo.Reconcile(entryID, actualHours)
	if err != nil {
		return nil, fmt.Errorf("ошибка сверки записи: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}

	s.logger.WithFields(logrus.Fields{
		"entry_id":     entryID,
		"actual_hours": actualHours,
	}).Info("Absence reconciled")

	return entry, nil
}

// CurrentAbsences возвращает записи со статусом ABSENT
func (s *AbsenceService) CurrentAbsences() ([]models.AbsenceLog, error) {
	return s.logRepo.GetByStatus(models.StatusAbsent)
}

// GetEntry возвращает запись журнала по идентификатору
func (s *AbsenceService) GetEntry(entryID uint) (*models.AbsenceLog, error) {
	entry, err := s.logRepo.GetByID(entryID)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска записи: %w", err)
	}
	if entry == nil {
		return nil, ErrEntryNotFound
	}
	return entry, nil
}

// ListReasons возвращает справочник причин отсутствия
func (s *AbsenceService) ListReasons() ([]models.AbsenceReason, error) {
	return s.reasonRepo.GetAll()
}

// FormatPredictionResult форматирует результат прогноза для отправки в чат
func (s *AbsenceService) FormatPredictionResult(entry *models.AbsenceLog) string {
	return fmt.Sprintf(
		`✅ Отсутствие зарегистрировано

👤 Сотрудник: %s
📋 Причина: %s
🔮 Прогноз отсутствия: %.2f ч
🆔 Номер записи: %d

Когда сотрудник вернется, используйте /return %d <фактические часы>`,
		entry.Employee.FullName,
		entry.Reason.Description,
		entry.PredictedHours,
		entry.ID,
		entry.ID,
	)
}

// FormatReconcileResult форматирует результат сверки
func (s *AbsenceService) FormatReconcileResult(entry *models.AbsenceLog) string {
	result := fmt.Sprintf(
		`✅ Возвращение зарегистрировано

🆔 Запись: %d
🔮 Прогноз: %.2f ч
⏱ Фактически: %.2f ч`,
		entry.ID,
		entry.PredictedHours,
		*entry.ActualHours,
	)

	if diff, ok := entry.PredictionError(); ok {
		result += fmt.Sprintf("\n📐 Ошибка прогноза: %.2f ч", diff)
	}

	return result
}

// FormatCurrentAbsences форматирует список отсутствующих сотрудников
func (s *AbsenceService) FormatCurrentAbsences(entries []models.AbsenceLog) string {
	if len(entries) == 0 {
		return "📭 Сейчас все сотрудники на месте"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("🚷 Отсутствуют сейчас (%d):\n\n", len(entries)))

	for _, entry := range entries {
		result.WriteString(fmt.Sprintf(
			"🆔 %d | %s\n   📋 %s\n   📅 %s | 🔮 %.2f ч\n\n",
			entry.ID,
			entry.Employee.FullName,
			entry.Reason.Description,
			entry.DateLogged.Format("02.01.2006"),
			entry.PredictedHours,
		))
	}

	return strings.TrimRight(result.String(), "\n")
}

// FormatReasonList форматирует справочник причин
func (s *AbsenceService) FormatReasonList(reasons []models.AbsenceReason) string {
	if len(reasons) == 0 {
		return "📭 Справочник причин пуст"
	}

	var result strings.Builder
	result.WriteString("📋 Причины отсутствия:\n\n")

	for _, reason := range reasons {
		result.WriteString(fmt.Sprintf("%d — %s\n", reason.Code, reason.Description))
	}

	return strings.TrimRight(result.String(), "\n")
}
