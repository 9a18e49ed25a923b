package repository

import (
	"errors"

	"absenteeism-bot/internal/models"

	"gorm.io/gorm"
)

type BotUserRepository interface {
	Create(user *models.BotUser) error
	Update(user *models.BotUser) error
	GetByChatID(chatID int64) (*models.BotUser, error)
	Exists(chatID int64) (bool, error)
	GetAll() ([]*models.BotUser, error)
	UpdateRole(chatID int64, role models.Role) error
	GetAdmins() ([]*models.BotUser, error)
	LinkEmployee(chatID int64, employeeID int) error
}

type GormBotUserRepository struct {
	db *gorm.DB
}

func NewGormBotUserRepository(db *gorm.DB) (*GormBotUserRepository, error) {
	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.BotUser{}); err != nil {
		return nil, err
	}

	return &GormBotUserRepository{db: db}, nil
}

func (r *GormBotUserRepository) Create(user *models.BotUser) error {
	// Проверяем, существует ли уже пользователь
	var existingUser models.BotUser
	result := r.db.Where("chat_id = ?", user.ChatID).First(&existingUser)
	if result.Error == nil {
		return errors.New("пользователь уже существует")
	}

	result = r.db.Create(user)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *GormBotUserRepository) Update(user *models.BotUser) error {
	var existingUser models.BotUser
	result := r.db.Where("chat_id = ?", user.ChatID).First(&existingUser)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return errors.New("пользователь не найден")
	}

	result = r.db.Save(user)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *GormBotUserRepository) GetByChatID(chatID int64) (*models.BotUser, error) {
	var user models.BotUser
	result := r.db.Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormBotUserRepository) Exists(chatID int64) (bool, error) {
	var count int64
	result := r.db.Model(&models.BotUser{}).Where("chat_id = ?", chatID).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormBotUserRepository) GetAll() ([]*models.BotUser, error) {
	var users []*models.BotUser
	result := r.db.Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *GormBotUserRepository) UpdateRole(chatID int64, role models.Role) error {
	result := r.db.Model(&models.BotUser{}).
		Where("chat_id = ?", chatID).
		Update("role", role)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("пользователь не найден")
	}

	return nil
}

func (r *GormBotUserRepository) GetAdmins() ([]*models.BotUser, error) {
	var admins []*models.BotUser
	result := r.db.Where("role = ?", models.RoleAdmin).Find(&admins)

	if result.Error != nil {
		return nil, result.Error
	}

	return admins, nil
}

func (r *GormBotUserRepository) LinkEmployee(chatID int64, employeeID int) error {
	result := r.db.Model(&models.BotUser{}).
		Where("chat_id = ?", chatID).
		Update("employee_id", employeeID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("пользователь не найден")
	}

	return nil
}
