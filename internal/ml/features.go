package ml

import (
	"fmt"
	"time"

	"absenteeism-bot/internal/models"
)

// FeatureVector — входная запись модели прогнозирования.
// Порядок полей фиксирован схемой обученной модели, education в схему не входит.
type FeatureVector struct {
	ReasonCode            int
	Month                 int // 1-12
	Weekday               int // ISO-день недели + 1: Пн=2 ... Вс=8
	Season                int // (month%12 + 3) / 3
	TransportationExpense int
	DistanceToWork        int
	ServiceTime           int
	Age                   int
	WorkloadAvgDay        float64
	HitTarget             int
	BodyMassIndex         float64
}

// Values возвращает признаки в порядке схемы модели
func (fv FeatureVector) Values() []float64 {
	return []float64{
		float64(fv.ReasonCode),
		float64(fv.Month),
		float64(fv.Weekday),
		float64(fv.Season),
		float64(fv.TransportationExpense),
		float64(fv.DistanceToWork),
		float64(fv.ServiceTime),
		float64(fv.Age),
		fv.WorkloadAvgDay,
		float64(fv.HitTarget),
		fv.BodyMassIndex,
	}
}

// NumFeatures — размер схемы признаков
const NumFeatures = 11

type MissingFeatureError struct {
	Field string
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("отсутствует обязательный признак сотрудника: %s", e.Field)
}

// BuildFeatureVector собирает запись для модели из данных сотрудника,
// кода причины и опорной даты. Чистая функция без побочных эффектов.
func BuildFeatureVector(emp *models.Employee, reasonCode int, at time.Time) (FeatureVector, error) {
	if field := emp.MissingFeature(); field != "" {
		return FeatureVector{}, &MissingFeatureError{Field: field}
	}

	month := int(at.Month())

	return FeatureVector{
		ReasonCode:            reasonCode,
		Month:                 month,
		Weekday:               isoWeekday(at) + 1, // конвенция обучающей выборки: Пн=2
		Season:                seasonOf(month),
		TransportationExpense: emp.TransportationExpense,
		DistanceToWork:        emp.DistanceToWork,
		ServiceTime:           emp.ServiceTime,
		Age:                   emp.Age,
		WorkloadAvgDay:        emp.WorkloadAvgDay,
		HitTarget:             emp.HitTarget,
		BodyMassIndex:         emp.BodyMassIndex,
	}, nil
}

// isoWeekday возвращает день недели по ISO-8601: Пн=1 ... Вс=7
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// seasonOf вычисляет сезон так же, как при обучении модели
func seasonOf(month int) int {
	return (month%12 + 3) / 3
}
