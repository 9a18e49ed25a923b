package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// startRegistration начинает процесс регистрации аккаунта
func (h *Handler) startRegistration(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.userService.GetUser(chatID)
	if err == nil && user != nil {
		h.reply(chatID, "❌ Вы уже зарегистрированы!\nИспользуйте /myprofile чтобы посмотреть профиль.")
		return
	}

	h.userStates[chatID] = "awaiting_first_name"

	text := `👤 Регистрация

Шаг 1 из 2:
✏️ Пожалуйста, отправьте ваше имя:`

	h.reply(chatID, text)
}

// handleRegisterState обрабатывает шаги регистрации
func (h *Handler) handleRegisterState(message *tgbotapi.Message, state string) {
	chatID := message.Chat.ID
	text := message.Text

	if state == "awaiting_first_name" {
		// Сохраняем имя и запрашиваем фамилию
		h.userStates[chatID] = "awaiting_last_name:" + text

		h.reply(chatID, fmt.Sprintf(
			`Шаг 2 из 2:
✅ Имя сохранено: %s
✏️ Теперь отправьте вашу фамилию (если нет фамилии, отправьте "-"):`,
			text))
		return
	}

	if strings.HasPrefix(state, "awaiting_last_name:") {
		firstName := strings.TrimPrefix(state, "awaiting_last_name:")
		lastName := text

		if lastName == "-" {
			lastName = ""
		}

		username := ""
		if message.From.UserName != "" {
			username = message.From.UserName
		}

		user, err := h.userService.RegisterUser(chatID, username, firstName, lastName)
		if err != nil {
			delete(h.userStates, chatID)
			h.reply(chatID, "❌ Ошибка регистрации: "+err.Error())
			return
		}

		delete(h.userStates, chatID)

		h.reply(chatID, fmt.Sprintf(`🎉 Регистрация завершена!

%s

Посмотреть профиль: /myprofile`, h.userService.FormatUserInfo(user)))
		return
	}

	// Неизвестное состояние — сбрасываем
	delete(h.userStates, chatID)
	h.reply(chatID, "❌ Что-то пошло не так, начните заново: /register")
}

// showProfile показывает профиль аккаунта
func (h *Handler) showProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.userService.GetUser(chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения профиля: "+err.Error())
		return
	}
	if user == nil {
		h.reply(chatID, "❌ Вы еще не зарегистрированы. Используйте /register")
		return
	}

	h.reply(chatID, h.userService.FormatUserInfo(user))
}

// showAllEmployees показывает список сотрудников (админы)
func (h *Handler) showAllEmployees(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	employees, err := h.employeeService.ListEmployees()
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения сотрудников: "+err.Error())
		return
	}

	h.reply(chatID, h.employeeService.FormatEmployeeList(employees))
}

// showEmployee показывает карточку сотрудника (админы)
func (h *Handler) showEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	id, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil {
		h.reply(chatID, "❌ Формат: /employee <id>")
		return
	}

	employee, err := h.employeeService.GetEmployee(id)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			h.reply(chatID, "❌ Сотрудник не найден. Список: /employees")
			return
		}
		h.reply(chatID, "❌ Ошибка: "+err.Error())
		return
	}

	h.reply(chatID, h.employeeService.FormatEmployeeInfo(employee))
}

// addEmployee добавляет сотрудника (админы).
// Формат: id;имя;ставка;транспорт;расстояние;стаж;возраст;нагрузка;цели;образование;имт
func (h *Handler) addEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	employee, err := parseEmployeeArgs(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /addemployee id;имя;ставка;транспорт;расстояние;стаж;возраст;нагрузка;цели;образование;имт")
		return
	}

	if err := h.employeeService.CreateEmployee(employee); err != nil {
		h.reply(chatID, "❌ Ошибка добавления сотрудника: "+err.Error())
		return
	}

	h.reply(chatID, "✅ Сотрудник добавлен!\n\n"+h.employeeService.FormatEmployeeInfo(employee))
}

// updateEmployee обновляет профиль сотрудника (админы)
func (h *Handler) updateEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	employee, err := parseEmployeeArgs(args)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nФормат: /updateemployee id;имя;ставка;транспорт;расстояние;стаж;возраст;нагрузка;цели;образование;имт")
		return
	}

	if err := h.employeeService.UpdateEmployee(employee); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			h.reply(chatID, "❌ Сотрудник не найден. Список: /employees")
			return
		}
		h.reply(chatID, "❌ Ошибка обновления: "+err.Error())
		return
	}

	h.reply(chatID, "✅ Профиль обновлен!\n\n"+h.employeeService.FormatEmployeeInfo(employee))
}

// parseEmployeeArgs разбирает строку с данными сотрудника через «;»
func parseEmployeeArgs(args string) (*models.Employee, error) {
	parts := strings.Split(strings.TrimSpace(args), ";")
	if len(parts) != 11 {
		return nil, fmt.Errorf("ожидается 11 полей через «;», получено %d", len(parts))
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return nil, fmt.Errorf("некорректный ID: %s", parts[0])
	}

	rate, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("некорректная ставка: %s", parts[2])
	}

	intFields := make([]int, 0, 6)
	for _, idx := range []int{3, 4, 5, 6, 8, 9} {
		v, err := strconv.Atoi(parts[idx])
		if err != nil {
			return nil, fmt.Errorf("некорректное число: %s", parts[idx])
		}
		intFields = append(intFields, v)
	}

	workload, err := strconv.ParseFloat(parts[7], 64)
	if err != nil {
		return nil, fmt.Errorf("некорректная нагрузка: %s", parts[7])
	}

	bmi, err := strconv.ParseFloat(parts[10], 64)
	if err != nil {
		return nil, fmt.Errorf("некорректный ИМТ: %s", parts[10])
	}

	return &models.Employee{
		ID:                    id,
		FullName:              parts[1],
		HourlyRate:            rate,
		TransportationExpense: intFields[0],
		DistanceToWork:        intFields[1],
		ServiceTime:           intFields[2],
		Age:                   intFields[3],
		WorkloadAvgDay:        workload,
		HitTarget:             intFields[4],
		Education:             intFields[5],
		BodyMassIndex:         bmi,
	}, nil
}

// linkEmployee привязывает аккаунт бота к сотруднику (админы)
func (h *Handler) linkEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.isAdmin(chatID) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "❌ Формат: /linkemployee <chat_id> <employee_id>")
		return
	}

	targetChatID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Некорректный chat_id: "+parts[0])
		return
	}

	employeeID, err := strconv.Atoi(parts[1])
	if err != nil {
		h.reply(chatID, "❌ Некорректный ID сотрудника: "+parts[1])
		return
	}

	// Проверяем, что сотрудник существует
	if _, err := h.employeeService.GetEmployee(employeeID); err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			h.reply(chatID, "❌ Сотрудник не найден. Список: /employees")
			return
		}
		h.reply(chatID, "❌ Ошибка: "+err.Error())
		return
	}

	if err := h.userService.LinkEmployee(targetChatID, employeeID); err != nil {
		h.reply(chatID, "❌ Ошибка привязки: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Аккаунт %d привязан к сотруднику %d", targetChatID, employeeID))
}
