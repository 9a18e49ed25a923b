package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message)

	// Аккаунты бота
	case "register":
		h.startRegistration(message)
	case "myprofile":
		h.showProfile(message)

	// Сотрудники (админы)
	case "employees":
		h.showAllEmployees(message)
	case "employee":
		h.showEmployee(message, args)
	case "addemployee":
		h.addEmployee(message, args)
	case "updateemployee":
		h.updateEmployee(message, args)
	case "linkemployee":
		h.linkEmployee(message, args)

	// Журнал отсутствий
	case "reasons":
		h.showReasons(message)
	case "absent":
		h.logAbsence(message, args)
	case "myabsence":
		h.logOwnAbsence(message, args)
	case "return":
		h.reconcileAbsence(message, args)
	case "current":
		h.showCurrentAbsences(message)

	// Отчеты
	case "dashboard":
		h.showDashboard(message)
	case "salaries":
		h.showSalaryReport(message, args)
	case "mysalary":
		h.showOwnSalary(message)
	case "accuracy":
		h.showModelAccuracy(message)

	// Администрирование
	case "users":
		h.showAllUsers(message)
	case "promote":
		h.promoteToAdmin(message, args)
	case "demote":
		h.demoteToEmployee(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	text := `👋 Привет! Я бот учета отсутствий сотрудников.

Я записываю отсутствия, прогнозирую их длительность обученной моделью и считаю зарплатные показатели.

Начните с /register, затем смотрите /help.`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📖 Команды:

👤 Аккаунт:
/register — регистрация в боте
/myprofile — ваш профиль

🚷 Отсутствия:
/reasons — справочник причин отсутствия
/myabsence <код причины> — сообщить о своем отсутствии
/mysalary — ваша зарплатная проекция на месяц

Администраторам: /helpadmin`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message) {
	text := `👑 Команды администратора:

👥 Сотрудники:
/employees — список сотрудников
/employee <id> — карточка сотрудника
/addemployee id;имя;ставка;транспорт;расстояние;стаж;возраст;нагрузка;цели;образование;имт
/updateemployee id;имя;ставка;транспорт;расстояние;стаж;возраст;нагрузка;цели;образование;имт
/linkemployee <chat_id> <employee_id> — привязать аккаунт к сотруднику

🚷 Журнал:
/absent <employee_id> <код причины> — записать отсутствие с прогнозом
/return <номер записи> <фактические часы> — отметить возвращение
/current — кто отсутствует сейчас

📊 Отчеты:
/dashboard — сводка за текущий месяц
/salaries [поиск] [low|medium|high] — зарплатный отчет
/accuracy — точность модели

⚙️ Пользователи:
/users — все аккаунты
/promote <chat_id> — назначить администратором
/demote <chat_id> — снять права администратора`

	h.reply(message.Chat.ID, text)
}
