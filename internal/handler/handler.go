package handler

import (
	"absenteeism-bot/internal/config"
	"absenteeism-bot/internal/service"
	"absenteeism-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client          *telegram.Client
	userService     *service.BotUserService
	employeeService *service.EmployeeService
	absenceService  *service.AbsenceService
	reportService   *service.ReportService
	userStates      map[int64]string
	config          *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	userService *service.BotUserService,
	employeeService *service.EmployeeService,
	absenceService *service.AbsenceService,
	reportService *service.ReportService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:          client,
		userService:     userService,
		employeeService: employeeService,
		absenceService:  absenceService,
		reportService:   reportService,
		userStates:      make(map[int64]string),
		config:          cfg,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logrus.Infof("[%s] %s", message.From.UserName, message.Text)

	chatID := message.Chat.ID

	// Проверяем, находится ли пользователь в процессе регистрации
	if state, exists := h.userStates[chatID]; exists {
		h.handleRegisterState(message, state)
		return
	}

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	msg := tgbotapi.NewMessage(chatID, "ℹ️ Я понимаю только команды. Используйте /help для списка команд.")
	h.client.Bot.Send(msg)
}

// isAdmin проверяет права и сам отвечает отказом, если их нет
func (h *Handler) isAdmin(chatID int64) bool {
	isAdmin, err := h.userService.IsAdmin(chatID)
	if err != nil {
		msg := tgbotapi.NewMessage(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		h.client.Bot.Send(msg)
		return false
	}

	if !isAdmin {
		msg := tgbotapi.NewMessage(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		h.client.Bot.Send(msg)
		return false
	}

	return true
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	h.client.Bot.Send(msg)
}
