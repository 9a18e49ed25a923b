package repository

import (
	"errors"

	"absenteeism-bot/internal/models"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(employee *models.Employee) error
	Upsert(employee *models.Employee) error
	Update(employee *models.Employee) error
	GetByID(id int) (*models.Employee, error)
	GetAll() ([]*models.Employee, error)
	Exists(id int) (bool, error)
	Count() (int, error)
}

type GormEmployeeRepository struct {
	db *gorm.DB
}

func NewGormEmployeeRepository(db *gorm.DB) (*GormEmployeeRepository, error) {
	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.Employee{}); err != nil {
		return nil, err
	}

	return &GormEmployeeRepository{db: db}, nil
}

func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	if !employee.IsValid() {
		return errors.New("некорректные данные сотрудника")
	}

	// Проверяем, существует ли уже сотрудник
	exists, err := r.Exists(employee.ID)
	if err != nil {
		return err
	}
	if exists {
		return errors.New("сотрудник уже существует")
	}

	return r.db.Create(employee).Error
}

// Upsert создает сотрудника или обновляет существующего (импорт датасета)
func (r *GormEmployeeRepository) Upsert(employee *models.Employee) error {
	if !employee.IsValid() {
		return errors.New("некорректные данные сотрудника")
	}

	exists, err := r.Exists(employee.ID)
	if err != nil {
		return err
	}

	if exists {
		return r.db.Save(employee).Error
	}

	return r.db.Create(employee).Error
}

func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	if !employee.IsValid() {
		return errors.New("некорректные данные сотрудника")
	}

	exists, err := r.Exists(employee.ID)
	if err != nil {
		return err
	}
	if !exists {
		return errors.New("сотрудник не найден")
	}

	// Обновление профиля выполняется одной транзакцией
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Save(employee).Error
	})
}

func (r *GormEmployeeRepository) GetByID(id int) (*models.Employee, error) {
	var employee models.Employee
	result := r.db.First(&employee, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &employee, nil
}

func (r *GormEmployeeRepository) GetAll() ([]*models.Employee, error) {
	var employees []*models.Employee
	result := r.db.Order("id ASC").Find(&employees)

	if result.Error != nil {
		return nil, result.Error
	}

	return employees, nil
}

func (r *GormEmployeeRepository) Exists(id int) (bool, error) {
	var count int64
	result := r.db.Model(&models.Employee{}).Where("id = ?", id).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormEmployeeRepository) Count() (int, error) {
	var count int64
	result := r.db.Model(&models.Employee{}).Count(&count)

	if result.Error != nil {
		return 0, result.Error
	}

	return int(count), nil
}
