package models

import (
	"time"
)

type Employee struct {
	// ID сотрудника из кадровой системы, не автоинкремент
	ID         int     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FullName   string  `gorm:"not null" json:"full_name"`
	HourlyRate float64 `gorm:"not null;default:30" json:"hourly_rate"`

	// Статические признаки для модели прогнозирования
	TransportationExpense int     `json:"transportation_expense"`
	DistanceToWork        int     `json:"distance_to_work"`
	ServiceTime           int     `json:"service_time"`
	Age                   int     `json:"age"`
	WorkloadAvgDay        float64 `json:"workload_avg_day"`
	HitTarget             int     `json:"hit_target"`
	Education             int     `gorm:"check:education >= 1 AND education <= 4" json:"education"` // 1:школа, 2:бакалавр, 3:магистр, 4:доктор
	BodyMassIndex         float64 `json:"body_mass_index"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName задает имя таблицы в БД
func (Employee) TableName() string {
	return "employees"
}

// MissingFeature возвращает имя первого незаполненного признака модели.
// Education не входит в схему признаков и здесь не проверяется.
func (e *Employee) MissingFeature() string {
	if e.TransportationExpense <= 0 {
		return "transportation_expense"
	}
	if e.DistanceToWork <= 0 {
		return "distance_to_work"
	}
	if e.ServiceTime <= 0 {
		return "service_time"
	}
	if e.Age <= 0 {
		return "age"
	}
	if e.WorkloadAvgDay <= 0 {
		return "workload_avg_day"
	}
	if e.HitTarget <= 0 {
		return "hit_target"
	}
	if e.BodyMassIndex <= 0 {
		return "body_mass_index"
	}
	return ""
}

// IsValid проверяет валидность данных
func (e *Employee) IsValid() bool {
	if e.ID <= 0 {
		return false
	}
	if e.FullName == "" {
		return false
	}
	if e.HourlyRate < 0 {
		return false
	}
	if e.Education != 0 && (e.Education < 1 || e.Education > 4) {
		return false
	}
	return true
}
