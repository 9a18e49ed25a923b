package models

import (
	"math"
	"time"
)

type AbsenceLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	EmployeeID int       `gorm:"not null;index" json:"employee_id"`
	ReasonCode int       `gorm:"not null;index" json:"reason_code"`
	DateLogged time.Time `gorm:"type:date;not null;index" json:"date_logged"`

	// Прогноз модели, не меняется после создания записи
	PredictedHours float64 `gorm:"not null" json:"predicted_hours"`

	// Фактические часы, заполняются при возвращении сотрудника
	ActualHours *float64 `json:"actual_hours"`

	Status string `gorm:"type:varchar(10);not null;default:'ABSENT';index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Employee Employee      `gorm:"foreignKey:EmployeeID" json:"employee"`
	Reason   AbsenceReason `gorm:"foreignKey:ReasonCode" json:"reason"`
}

// TableName задает имя таблицы в БД
func (AbsenceLog) TableName() string {
	return "absence_logs"
}

// Статусы записей об отсутствии
const (
	StatusAbsent   = "ABSENT"   // Сотрудник отсутствует
	StatusReturned = "RETURNED" // Сотрудник вернулся на работу
)

// IsReturned проверяет, вернулся ли сотрудник
func (l *AbsenceLog) IsReturned() bool {
	return l.Status == StatusReturned
}

// IsReconciled проверяет, сверена ли запись с фактическими часами
func (l *AbsenceLog) IsReconciled() bool {
	return l.ActualHours != nil && l.Status == StatusReturned
}

// PredictionError возвращает абсолютную ошибку прогноза.
// Второй результат false, если фактические часы еще не записаны.
func (l *AbsenceLog) PredictionError() (float64, bool) {
	if l.ActualHours == nil {
		return 0, false
	}
	return math.Abs(l.PredictedHours - *l.ActualHours), true
}

// IsValid проверяет валидность данных
func (l *AbsenceLog) IsValid() bool {
	if l.EmployeeID <= 0 {
		return false
	}
	if l.ReasonCode < MinReasonCode || l.ReasonCode > MaxReasonCode {
		return false
	}
	if l.DateLogged.IsZero() {
		return false
	}
	if l.PredictedHours < 0 {
		return false
	}
	if l.ActualHours != nil && *l.ActualHours < 0 {
		return false
	}
	if l.Status != StatusAbsent && l.Status != StatusReturned {
		return false
	}
	return true
}
