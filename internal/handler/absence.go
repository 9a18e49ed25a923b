package handler

import (
	"errors"
	"strconv"
	"strings"

	"absenteeism-bot/internal/ml"
	"absenteeism-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showReasons показывает справочник причин отсутствия
func (h *Handler) showReasons(message *tgbotapi.Message) {
	reasons, err := h.absenceService.ListReasons()
	if err != nil {
		h.reply(message.Chat.ID, "❌ Ошибка получения справочника: "+err.Error())
		return
	}

	h.reply(message.Chat.ID, h.absenceService.FormatReasonList(reasons))
}

// logAbsence записывает отсутствие сотрудника с прогнозом (админы)
func (h *Handler) logAbsence(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "❌ Формат: /absent <employee_id> <код причины>\nСправочник причин: /reasons")
		return
	}

	employeeID, err := strconv.Atoi(parts[0])
	if err != nil {
		h.reply(chatID, "❌ Некорректный ID сотрудника: "+parts[0])
		return
	}

	reasonCode, err := strconv.Atoi(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Некорректный код причины: "+parts[1])
		return
	}

	h.predictAndReply(chatID, employeeID, reasonCode)
}

// logOwnAbsence записывает отсутствие привязанного сотрудника
func (h *Handler) logOwnAbsence(message *tgbotapi.Message, args string) {
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

	reasonCode, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		h.reply(chatID, "❌ Формат: /myabsence <код причины>\nСправочник причин: /reasons")
		return
	}

	h.predictAndReply(chatID, *user.EmployeeID, reasonCode)
}

func (h *Handler) predictAndReply(chatID int64, employeeID, reasonCode int) {
	entry, err := h.absenceService.PredictAbsence(employeeID, reasonCode)
	if err != nil {
		h.reply(chatID, formatPredictionError(err))
		return
	}

	h.reply(chatID, h.absenceService.FormatPredictionResult(entry))
}

func formatPredictionError(err error) string {
	var missing *ml.MissingFeatureError

	switch {
	case errors.Is(err, service.ErrEmployeeNotFound):
		return "❌ Сотрудник не найден. Список: /employees"
	case errors.Is(err, service.ErrReasonNotFound):
		return "❌ Причина не найдена. Справочник: /reasons"
	case errors.Is(err, ml.ErrModelUnavailable):
		return "❌ Модель прогнозирования недоступна. Отсутствие не записано, обратитесь к администратору."
	case errors.As(err, &missing):
		return "❌ В карточке сотрудника не заполнен признак «" + missing.Field + "». Отсутствие не записано."
	default:
		return "❌ Ошибка прогноза: " + err.Error()
	}
}

// reconcileAbsence отмечает возвращение сотрудника с фактическими часами
func (h *Handler) reconcileAbsence(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "❌ Формат: /return <номер записи> <фактические часы>")
		return
	}

	entryID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		h.reply(chatID, "❌ Некорректный номер записи: "+parts[0])
		return
	}

	actualHours, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		h.reply(chatID, "❌ Некорректные часы: "+parts[1])
		return
	}

	entry, err := h.absenceService.ReconcileAbsence(uint(entryID), actualHours)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			h.reply(chatID, "❌ Запись не найдена. Текущие отсутствия: /current")
			return
		}
		h.reply(chatID, "❌ Ошибка сверки: "+err.Error())
		return
	}

	h.reply(chatID, h.absenceService.FormatReconcileResult(entry))
}

// showCurrentAbsences показывает отсутствующих сейчас сотрудников
func (h *Handler) showCurrentAbsences(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	entries, err := h.absenceService.CurrentAbsences()
	if err != nil {
		h.reply(chatID, "❌ Ошибка чтения журнала: "+err.Error())
		return
	}

	h.reply(chatID, h.absenceService.FormatCurrentAbsences(entries))
}
