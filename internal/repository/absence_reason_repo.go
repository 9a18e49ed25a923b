package repository

import (
	"errors"

	"absenteeism-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AbsenceReasonRepository interface {
	Seed(reasons []models.AbsenceReason) (int, error)
	GetByCode(code int) (*models.AbsenceReason, error)
	GetAll() ([]models.AbsenceReason, error)
	Exists(code int) (bool, error)
}

type GormAbsenceReasonRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormAbsenceReasonRepository(db *gorm.DB) (*GormAbsenceReasonRepository, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	// Автомиграция
	if err := db.AutoMigrate(&models.AbsenceReason{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate absence_reasons table")
		return nil, err
	}

	return &GormAbsenceReasonRepository{db: db, logger: logger}, nil
}

// Seed наполняет справочник причин. Существующие коды не перезаписываются:
// справочник неизменяемый после первичной загрузки.
func (r *GormAbsenceReasonRepository) Seed(reasons []models.AbsenceReason) (int, error) {
	created := 0

	for i := range reasons {
		reason := reasons[i]
		if !reason.IsValid() {
			return created, errors.New("некорректная причина отсутствия в справочнике")
		}

		exists, err := r.Exists(reason.Code)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		if err := r.db.Create(&reason).Error; err != nil {
			r.logger.WithError(err).WithField("code", reason.Code).
				Error("Failed to seed absence reason")
			return created, err
		}
		created++
	}

	r.logger.WithFields(logrus.Fields{
		"total":   len(reasons),
		"created": created,
	}).Info("Absence reason catalog seeded")

	return created, nil
}

func (r *GormAbsenceReasonRepository) GetByCode(code int) (*models.AbsenceReason, error) {
	var reason models.AbsenceReason
	result := r.db.First(&reason, "code = ?", code)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &reason, nil
}

func (r *GormAbsenceReasonRepository) GetAll() ([]models.AbsenceReason, error) {
	var reasons []models.AbsenceReason
	result := r.db.Order("code ASC").Find(&reasons)

	if result.Error != nil {
		return nil, result.Error
	}

	return reasons, nil
}

func (r *GormAbsenceReasonRepository) Exists(code int) (bool, error) {
	var count int64
	result := r.db.Model(&models.AbsenceReason{}).Where("code = ?", code).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
