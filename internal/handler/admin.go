package handler

import (
	"fmt"
	"strconv"
	"strings"

	"absenteeism-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// showAllUsers показывает все аккаунты бота (админы)
func (h *Handler) showAllUsers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	allUsers, err := h.userService.FormatAllUsers()
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения списка пользователей: "+err.Error())
		return
	}

	h.reply(chatID, allUsers)
}

// promoteToAdmin назначает пользователя администратором
func (h *Handler) promoteToAdmin(message *tgbotapi.Message, args string) {
	h.changeRole(message, args, models.Role(models.RoleAdmin), "👑 Пользователь назначен администратором")
}

// demoteToEmployee снимает права администратора
func (h *Handler) demoteToEmployee(message *tgbotapi.Message, args string) {
	h.changeRole(message, args, models.Role(models.RoleEmployee), "👤 Права администратора сняты")
}

func (h *Handler) changeRole(message *tgbotapi.Message, args string, role models.Role, successText string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	targetChatID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Формат: /"+message.Command()+" <chat_id>")
		return
	}

	if err := h.userService.UpdateRole(chatID, targetChatID, role); err != nil {
		h.reply(chatID, "❌ Ошибка изменения роли: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("%s (chat %d)", successText, targetChatID))
}
