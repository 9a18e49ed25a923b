package service

import (
	"fmt"
	"strings"

	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/repository"
)

type EmployeeService struct {
	repo repository.EmployeeRepository
}

func NewEmployeeService(repo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{repo: repo}
}

// CreateEmployee добавляет нового сотрудника
func (s *EmployeeService) CreateEmployee(employee *models.Employee) error {
	if !employee.IsValid() {
		return fmt.Errorf("некорректные данные сотрудника")
	}

	if err := s.repo.Create(employee); err != nil {
		return fmt.Errorf("ошибка создания сотрудника: %w", err)
	}

	return nil
}

// UpdateEmployee обновляет профиль сотрудника
func (s *EmployeeService) UpdateEmployee(employee *models.Employee) error {
	existing, err := s.repo.GetByID(employee.ID)
	if err != nil {
		return fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if existing == nil {
		return ErrEmployeeNotFound
	}

	if err := s.repo.Update(employee); err != nil {
		return fmt.Errorf("ошибка обновления сотрудника: %w", err)
	}

	return nil
}

// GetEmployee возвращает сотрудника по идентификатору
func (s *EmployeeService) GetEmployee(id int) (*models.Employee, error) {
	employee, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	return employee, nil
}

// ListEmployees возвращает всех сотрудников
func (s *EmployeeService) ListEmployees() ([]*models.Employee, error) {
	return s.repo.GetAll()
}

// FormatEmployeeInfo форматирует карточку сотрудника
func (s *EmployeeService) FormatEmployeeInfo(employee *models.Employee) string {
	var lines []string

	lines = append(lines, "👤 Карточка сотрудника:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID: %d", employee.ID))
	lines = append(lines, fmt.Sprintf("📛 Имя: %s", employee.FullName))
	lines = append(lines, fmt.Sprintf("💵 Ставка: %.2f ₽/ч", employee.HourlyRate))
	lines = append(lines, "")
	lines = append(lines, "📈 Признаки модели:")
	lines = append(lines, fmt.Sprintf("   🚌 Транспортные расходы: %d", employee.TransportationExpense))
	lines = append(lines, fmt.Sprintf("   📍 Расстояние до работы: %d км", employee.DistanceToWork))
	lines = append(lines, fmt.Sprintf("   🗓 Стаж: %d лет", employee.ServiceTime))
	lines = append(lines, fmt.Sprintf("   🎂 Возраст: %d", employee.Age))
	lines = append(lines, fmt.Sprintf("   ⚙️ Средняя дневная нагрузка: %.1f", employee.WorkloadAvgDay))
	lines = append(lines, fmt.Sprintf("   🎯 Достижение целей: %d", employee.HitTarget))
	lines = append(lines, fmt.Sprintf("   🎓 Образование: %d", employee.Education))
	lines = append(lines, fmt.Sprintf("   ⚖️ Индекс массы тела: %.1f", employee.BodyMassIndex))

	if missing := employee.MissingFeature(); missing != "" {
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("⚠️ Не заполнен признак: %s — прогнозы недоступны", missing))
	}

	return strings.Join(lines, "\n")
}

// FormatEmployeeList форматирует краткий список сотрудников
func (s *EmployeeService) FormatEmployeeList(employees []*models.Employee) string {
	if len(employees) == 0 {
		return "📭 Сотрудники пока не добавлены"
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("👥 Сотрудники (%d):\n\n", len(employees)))

	for _, emp := range employees {
		result.WriteString(fmt.Sprintf("🆔 %d — %s (%.2f ₽/ч)\n", emp.ID, emp.FullName, emp.HourlyRate))
	}

	return strings.TrimRight(result.String(), "\n")
}
