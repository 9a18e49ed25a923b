package handler

import (
	"errors"
	"strings"

	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showDashboard показывает сводку за текущий месяц (админы)
func (h *Handler) showDashboard(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	kpis, err := h.reportService.GetDashboardKpis()
	if err != nil {
		h.reply(chatID, "❌ Ошибка построения сводки: "+err.Error())
		return
	}

	h.reply(chatID, h.reportService.FormatDashboard(kpis))
}

// showSalaryReport показывает зарплатный отчет с фильтрами (админы).
// Формат: /salaries [поиск] [low|medium|high]
func (h *Handler) showSalaryReport(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	filter, ok := parseSalaryFilter(args)
	if !ok {
		h.reply(chatID, "❌ Формат: /salaries [поиск] [low|medium|high]")
		return
	}

	report, err := h.reportService.GetSalaryReport(filter)
	if err != nil {
		h.reply(chatID, "❌ Ошибка построения отчета: "+err.Error())
		return
	}

	h.reply(chatID, h.reportService.FormatSalaryReport(report, filter))
}

// parseSalaryFilter разбирает аргументы /salaries: последний токен может
// быть категорией серьезности, остальное — строка поиска
func parseSalaryFilter(args string) (service.SalaryFilter, bool) {
	var filter service.SalaryFilter

	parts := strings.Fields(args)
	if len(parts) == 0 {
		return filter, true
	}

	last := parts[len(parts)-1]
	if severity, ok := models.ParseSeverity(last); ok && severity != "" {
		filter.Severity = severity
		parts = parts[:len(parts)-1]
	}

	filter.Search = strings.Join(parts, " ")
	return filter, true
}

// showOwnSalary показывает зарплатную проекцию привязанного сотрудника
func (h *Handler) showOwnSalary(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.userService.GetUser(chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения профиля: "+err.Error())
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Сначала зарегистрируйтесь: /register")
		return
	}
	if !user.HasEmployee() {
		h.reply(chatID, "❌ Ваш аккаунт не привязан к сотруднику. Обратитесь к администратору.")
		return
	}

	row, err := h.reportService.GetEmployeeSalaryRow(*user.EmployeeID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			h.reply(chatID, "❌ Привязанный сотрудник не найден. Обратитесь к администратору.")
			return
		}
		h.reply(chatID, "❌ Ошибка расчета: "+err.Error())
		return
	}

	h.reply(chatID, h.reportService.FormatPayrollRow(row))
}

// showModelAccuracy показывает точность модели по сверенным записям (админы)
func (h *Handler) showModelAccuracy(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	accuracy, err := h.reportService.GetModelAccuracy()
	if err != nil {
		h.reply(chatID, "❌ Ошибка оценки точности: "+err.Error())
		return
	}

	h.reply(chatID, h.reportService.FormatAccuracy(accuracy))
}
