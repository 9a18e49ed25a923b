package models

type Severity string

// Категории месячных часов отсутствия: low [0;4], medium (4;8], high (8;∞)
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SeverityFor классифицирует суммарные часы отсутствия за месяц
func SeverityFor(totalAbsentHours float64) Severity {
	switch {
	case totalAbsentHours <= 4:
		return SeverityLow
	case totalAbsentHours <= 8:
		return SeverityMedium
	default:
		return SeverityHigh
	}
}

// ParseSeverity разбирает категорию из пользовательского ввода.
// Пустая строка означает отсутствие фильтра.
func ParseSeverity(s string) (Severity, bool) {
	switch Severity(s) {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return Severity(s), true
	case "":
		return "", true
	default:
		return "", false
	}
}
