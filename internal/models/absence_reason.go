package models

type AbsenceReason struct {
	// Код причины из датасета (0-28)
	Code           int    `gorm:"primaryKey;autoIncrement:false" json:"code" yaml:"code"`
	Description    string `gorm:"not null" json:"description" yaml:"description"`
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
}

// TableName задает имя таблицы в БД
func (AbsenceReason) TableName() string {
	return "absence_reasons"
}

const (
	MinReasonCode = 0
	MaxReasonCode = 28
)

// IsValid проверяет валидность данных
func (r *AbsenceReason) IsValid() bool {
	if r.Code < MinReasonCode || r.Code > MaxReasonCode {
		return false
	}
	if r.Description == "" {
		return false
	}
	return true
}

// HasRecommendation проверяет, задана ли рекомендация для причины
func (r *AbsenceReason) HasRecommendation() bool {
	return r.Recommendation != ""
}
