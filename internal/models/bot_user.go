package models

type Role string

const (
	RoleEmployee string = "employee"
	RoleAdmin    string = "admin"
)

type BotUser struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	ChatID    int64  `gorm:"uniqueIndex;not null" json:"chat_id"`
	Username  string `json:"username"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `gorm:"default:'employee'" json:"role"`

	// Привязка аккаунта к сотруднику (для /myabsence и /mysalary)
	EmployeeID *int `gorm:"index" json:"employee_id"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *BotUser) IsAdmin() bool {
	return u.Role == "admin"
}

// SetRole устанавливает роль
func (u *BotUser) SetRole(role Role) {
	u.Role = string(role)
}

// HasEmployee проверяет, привязан ли аккаунт к сотруднику
func (u *BotUser) HasEmployee() bool {
	return u.EmployeeID != nil
}

// TableName задает имя таблицы в БД
func (BotUser) TableName() string {
	return "bot_users"
}
