package service

import "errors"

// Ошибки валидации идентификаторов. Сравниваются через errors.Is,
// не повторяются автоматически.
var (
	ErrEmployeeNotFound = errors.New("сотрудник не найден")
	ErrReasonNotFound   = errors.New("причина отсутствия не найдена")
	ErrEntryNotFound    = errors.New("запись об отсутствии не найдена")
)
