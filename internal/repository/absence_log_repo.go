package repository

import (
	"errors"
	"time"

	"absenteeism-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReasonTotal — строка гистограммы: причина и сумма прогнозных часов
type ReasonTotal struct {
	ReasonCode  int     `json:"reason_code"`
	Description string  `json:"description"`
	TotalHours  float64 `json:"total_hours"`
}

type AbsenceLogRepository interface {
	Create(entry *models.AbsenceLog) error
	GetByID(id uint) (*models.AbsenceLog, error)
	Reconcile(id uint, actualHours float64) (*models.AbsenceLog, error)
	GetByStatus(status string) ([]models.AbsenceLog, error)
	GetByMonth(year int, month time.Month) ([]models.AbsenceLog, error)
	GetReconciled() ([]models.AbsenceLog, error)
	SumPredictedForEmployee(employeeID, year int, month time.Month) (float64, error)
	ReasonTotals() ([]ReasonTotal, error)
}

type GormAbsenceLogRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAbsenceLogRepository(db *gorm.DB) (*GormAbsenceLogRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.AbsenceLog{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate absence_logs table")
		return nil, err
	}

	return &GormAbsenceLogRepository{db: db, logger: logger}, nil
}

// Create добавляет запись в журнал. Уникальность не проверяется:
// несколько открытых отсутствий одного сотрудника допустимы.
func (r *GormAbsenceLogRepository) Create(entry *models.AbsenceLog) error {
	if !entry.IsValid() {
		r.logger.WithFields(logrus.Fields{
			"employee_id": entry.EmployeeID,
			"reason_code": entry.ReasonCode,
		}).Warn("Invalid absence log entry")
		return errors.New("некорректные данные записи об отсутствии")
	}

	result := r.db.Create(entry)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create absence log entry")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"id":              entry.ID,
		"employee_id":     entry.EmployeeID,
		"reason_code":     entry.ReasonCode,
		"predicted_hours": entry.PredictedHours,
	}).Debug("Absence log entry created")

	return nil
}

func (r *GormAbsenceLogRepository) GetByID(id uint) (*models.AbsenceLog, error) {
	var entry models.AbsenceLog
	result := r.db.Preload("Employee").Preload("Reason").First(&entry, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// Reconcile записывает фактические часы и переводит запись в RETURNED.
// Выполняется одной транзакцией. Возвращает nil, nil если записи нет.
func (r *GormAbsenceLogRepository) Reconcile(id uint, actualHours float64) (*models.AbsenceLog, error) {
	var entry models.AbsenceLog

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, id).Error; err != nil {
			return err
		}

		entry.ActualHours = &actualHours
		entry.Status = models.StatusReturned

		return tx.Save(&entry).Error
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Absence log entry not found for reconcile")
		return nil, nil
	}

	if err != nil {
		r.logger.WithError(err).Error("Failed to reconcile absence log entry")
		return nil, err
	}

	r.logger.WithFields(logrus.Fields{
		"id":           entry.ID,
		"actual_hours": actualHours,
	}).Debug("Absence log entry reconciled")

	return &entry, nil
}

func (r *GormAbsenceLogRepository) GetByStatus(status string) ([]models.AbsenceLog, error) {
	var entries []models.AbsenceLog
	result := r.db.Preload("Employee").Preload("Reason").
		Where("status = ?", status).
		Order("date_logged DESC").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (r *GormAbsenceLogRepository) GetByMonth(year int, month time.Month) ([]models.AbsenceLog, error) {
	start, end := monthBounds(year, month)

	var entries []models.AbsenceLog
	result := r.db.Preload("Employee").Preload("Reason").
		Where("date_logged >= ? AND date_logged < ?", start, end).
		Order("date_logged DESC").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// GetReconciled возвращает записи с заполненными фактическими часами
func (r *GormAbsenceLogRepository) GetReconciled() ([]models.AbsenceLog, error) {
	var entries []models.AbsenceLog
	result := r.db.
		Where("status = ? AND actual_hours IS NOT NULL", models.StatusReturned).
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (r *GormAbsenceLogRepository) SumPredictedForEmployee(employeeID, year int, month time.Month) (float64, error) {
	start, end := monthBounds(year, month)

	var total *float64
	result := r.db.Model(&models.AbsenceLog{}).
		Select("SUM(predicted_hours)").
		Where("employee_id = ? AND date_logged >= ? AND date_logged < ?", employeeID, start, end).
		Scan(&total)

	if result.Error != nil {
		return 0, result.Error
	}

	if total == nil {
		return 0, nil
	}

	return *total, nil
}

// ReasonTotals группирует журнал по причинам: сумма прогнозных часов,
// нулевые и отрицательные группы отбрасываются, сортировка по убыванию.
func (r *GormAbsenceLogRepository) ReasonTotals() ([]ReasonTotal, error) {
	var totals []ReasonTotal
	result := r.db.Model(&models.AbsenceLog{}).
		Select("absence_logs.reason_code AS reason_code, absence_reasons.description AS description, SUM(absence_logs.predicted_hours) AS total_hours").
		Joins("JOIN absence_reasons ON absence_reasons.code = absence_logs.reason_code").
		Group("absence_logs.reason_code, absence_reasons.description").
		Having("SUM(absence_logs.predicted_hours) > 0").
		Order("total_hours DESC").
		Scan(&totals)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to aggregate reason totals")
		return nil, result.Error
	}

	return totals, nil
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0)
}
