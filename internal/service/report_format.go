package service

import (
	"fmt"
	"strings"
	"time"

	"absenteeism-bot/internal/models"
)

var monthNames = [...]string{
	"", "январь", "февраль", "март", "апрель", "май", "июнь",
	"июль", "август", "сентябрь", "октябрь", "ноябрь", "декабрь",
}

func monthName(m time.Month) string {
	return monthNames[int(m)]
}

// FormatDashboard форматирует сводку показателей для отправки в чат
func (s *ReportService) FormatDashboard(kpis *DashboardKpis) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("📊 Сводка за %s %d\n\n", monthName(kpis.Month), kpis.Year))
	result.WriteString(fmt.Sprintf("👥 Сотрудников: %d\n", kpis.EmployeeCount))
	result.WriteString(fmt.Sprintf("🕐 Прогнозных часов отсутствия: %.2f ч\n", kpis.MonthPredictedHrs))
	result.WriteString(fmt.Sprintf("📉 Коэффициент абсентеизма: %.2f%%\n", kpis.AbsenteeismRate))
	result.WriteString(fmt.Sprintf("💸 Оценка потерь: %.2f ₽\n", kpis.CompensationImpact))

	if kpis.TopReason != nil {
		result.WriteString(fmt.Sprintf("\n🥇 Главная причина: %s (%.2f ч)\n",
			kpis.TopReason.Description, kpis.TopReason.TotalHours))
	}
	result.WriteString(fmt.Sprintf("💡 Рекомендация: %s\n", kpis.Recommendation))

	if len(kpis.Histogram) > 0 {
		result.WriteString("\n📋 Причины по суммарным часам:\n")
		for _, item := range kpis.Histogram {
			result.WriteString(fmt.Sprintf("   %s — %.2f ч\n", item.Description, item.TotalHours))
		}
	}

	return strings.TrimRight(result.String(), "\n")
}

// FormatAccuracy форматирует отчет о точности модели
func (s *ReportService) FormatAccuracy(accuracy *ModelAccuracy) string {
	if !accuracy.Applicable() {
		return "📭 Сверенных записей пока нет, точность модели оценить нельзя."
	}

	return fmt.Sprintf(
		`🎯 Точность модели

🧾 Сверено записей: %d
📐 Средняя абсолютная ошибка: %.2f ч
✅ Прогнозов с ошибкой до %.0f ч: %d%%`,
		accuracy.ReconciledCount,
		accuracy.MeanAbsoluteError,
		accuracyToleranceHours,
		accuracy.WithinTolerance,
	)
}

// FormatSalaryReport форматирует зарплатный отчет
func (s *ReportService) FormatSalaryReport(report *SalaryReport, filter SalaryFilter) string {
	var result strings.Builder

	result.WriteString(fmt.Sprintf("💰 Зарплатный отчет за %s %d\n", monthName(report.Month), report.Year))
	result.WriteString(fmt.Sprintf("🏢 Итого по компании: отсутствия %.2f ч, потери %.2f ₽, фонд %.2f ₽\n\n",
		report.OverallAbsentHours, report.OverallAbsenceCost, report.OverallCompensation))

	if filter.Search != "" || filter.Severity != "" {
		result.WriteString("🔎 Фильтр:")
		if filter.Search != "" {
			result.WriteString(fmt.Sprintf(" поиск «%s»", filter.Search))
		}
		if filter.Severity != "" {
			result.WriteString(fmt.Sprintf(" категория %s", severityLabel(filter.Severity)))
		}
		result.WriteString("\n\n")
	}

	if len(report.Rows) == 0 {
		result.WriteString("📭 Нет сотрудников, подходящих под фильтр")
		return result.String()
	}

	for _, row := range report.Rows {
		result.WriteString(fmt.Sprintf(
			"%s %s (ID %d)\n   🚷 Отсутствия: %.2f ч | 🕐 К работе: %.2f ч\n   💸 Потери: %.2f ₽ | 💵 К выплате: %.2f ₽\n\n",
			severityEmoji(row.Severity),
			row.FullName,
			row.EmployeeID,
			row.TotalAbsentHours,
			row.ExpectedWorkHours,
			row.AbsenceCost,
			row.ExpectedCompensation,
		))
	}

	result.WriteString(fmt.Sprintf("Σ По выборке: отсутствия %.2f ч, потери %.2f ₽, к выплате %.2f ₽",
		report.FilteredAbsentHours, report.FilteredAbsenceCost, report.FilteredCompensation))

	return result.String()
}

// FormatPayrollRow форматирует зарплатную строку одного сотрудника
func (s *ReportService) FormatPayrollRow(row *PayrollRow) string {
	return fmt.Sprintf(
		`💰 Ваша зарплатная проекция на текущий месяц

👤 %s (ID %d)
🚷 Часы отсутствия: %.2f ч (%s)
🕐 Ожидаемые рабочие часы: %.2f ч
💸 Потери из-за отсутствий: %.2f ₽
💵 Ожидаемая выплата: %.2f ₽`,
		row.FullName,
		row.EmployeeID,
		row.TotalAbsentHours,
		severityLabel(row.Severity),
		row.ExpectedWorkHours,
		row.AbsenceCost,
		row.ExpectedCompensation,
	)
}

func severityLabel(severity models.Severity) string {
	switch severity {
	case models.SeverityLow:
		return "низкая"
	case models.SeverityMedium:
		return "средняя"
	case models.SeverityHigh:
		return "высокая"
	default:
		return string(severity)
	}
}

func severityEmoji(severity models.Severity) string {
	switch severity {
	case models.SeverityLow:
		return "🟢"
	case models.SeverityMedium:
		return "🟡"
	case models.SeverityHigh:
		return "🔴"
	default:
		return "⚪"
	}
}
