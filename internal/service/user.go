package service

import (
	"fmt"
	"strings"

	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/repository"
)

type BotUserService struct {
	repo repository.BotUserRepository
}

func NewBotUserService(repo repository.BotUserRepository) *BotUserService {
	return &BotUserService{repo: repo}
}

// RegisterUser создает аккаунт бота с ролью employee по умолчанию
func (s *BotUserService) RegisterUser(chatID int64, username, firstName, lastName string) (*models.BotUser, error) {
	if firstName == "" {
		return nil, fmt.Errorf("имя не может быть пустым")
	}

	user := &models.BotUser{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.RoleEmployee,
	}

	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("ошибка регистрации: %w", err)
	}

	return user, nil
}

// GetUser возвращает аккаунт по chatID (nil, если не зарегистрирован)
func (s *BotUserService) GetUser(chatID int64) (*models.BotUser, error) {
	return s.repo.GetByChatID(chatID)
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *BotUserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки прав: %w", err)
	}

	return user != nil && user.IsAdmin(), nil
}

// InitializeAdmin создает или повышает базового администратора из конфига
func (s *BotUserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil
	}

	user, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if user == nil {
		admin := &models.BotUser{
			ChatID:    adminChatID,
			FirstName: "Admin",
			Role:      models.RoleAdmin,
		}
		return s.repo.Create(admin)
	}

	if user.IsAdmin() {
		return nil
	}

	return s.repo.UpdateRole(adminChatID, models.Role(models.RoleAdmin))
}

// UpdateRole меняет роль пользователя. Право менять роли есть только у админов.
func (s *BotUserService) UpdateRole(adminChatID, targetChatID int64, role models.Role) error {
	admin, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return fmt.Errorf("ошибка проверки админа: %w", err)
	}

	if admin == nil || !admin.IsAdmin() {
		return fmt.Errorf("доступ запрещен: только администраторы могут менять роли")
	}

	target, err := s.repo.GetByChatID(targetChatID)
	if err != nil {
		return fmt.Errorf("ошибка поиска пользователя: %w", err)
	}

	if target == nil {
		return fmt.Errorf("пользователь не найден")
	}

	return s.repo.UpdateRole(targetChatID, role)
}

// LinkEmployee привязывает аккаунт бота к сотруднику
func (s *BotUserService) LinkEmployee(chatID int64, employeeID int) error {
	if err := s.repo.LinkEmployee(chatID, employeeID); err != nil {
		return fmt.Errorf("ошибка привязки сотрудника: %w", err)
	}

	return nil
}

// GetAdmins возвращает всех администраторов
func (s *BotUserService) GetAdmins() ([]*models.BotUser, error) {
	return s.repo.GetAdmins()
}

// FormatUserInfo форматирует информацию об аккаунте
func (s *BotUserService) FormatUserInfo(user *models.BotUser) string {
	var lines []string

	lines = append(lines, "👤 Ваш профиль:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID чата: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}

	lines = append(lines, fmt.Sprintf("👨‍💼 Имя: %s", user.FirstName))

	if user.LastName != "" {
		lines = append(lines, fmt.Sprintf("👨‍💼 Фамилия: %s", user.LastName))
	}

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Роль: %s", roleEmoji, user.Role))

	if user.HasEmployee() {
		lines = append(lines, fmt.Sprintf("🔗 Привязан к сотруднику: %d", *user.EmployeeID))
	}

	return strings.Join(lines, "\n")
}

// FormatAllUsers форматирует список аккаунтов для администратора
func (s *BotUserService) FormatAllUsers() (string, error) {
	users, err := s.repo.GetAll()
	if err != nil {
		return "", fmt.Errorf("ошибка получения пользователей: %w", err)
	}

	if len(users) == 0 {
		return "📭 Зарегистрированных пользователей нет", nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("👥 Пользователи бота (%d):\n\n", len(users)))

	for _, user := range users {
		roleEmoji := "👤"
		if user.IsAdmin() {
			roleEmoji = "👑"
		}

		line := fmt.Sprintf("%s %s %s (chat %d)", roleEmoji, user.FirstName, user.LastName, user.ChatID)
		if user.HasEmployee() {
			line += fmt.Sprintf(" → сотрудник %d", *user.EmployeeID)
		}
		result.WriteString(line + "\n")
	}

	return strings.TrimRight(result.String(), "\n"), nil
}
