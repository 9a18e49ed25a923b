package config

import (
	"fmt"
	"os"

	"absenteeism-bot/internal/models"

	"gopkg.in/yaml.v3"
)

type reasonCatalogFile struct {
	Reasons []models.AbsenceReason `yaml:"reasons"`
}

// LoadReasonCatalog загружает справочник причин отсутствия из YAML-файла
func LoadReasonCatalog(path string) ([]models.AbsenceReason, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения справочника причин: %w", err)
	}

	var file reasonCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("ошибка разбора справочника причин: %w", err)
	}

	if len(file.Reasons) == 0 {
		return nil, fmt.Errorf("справочник причин пуст: %s", path)
	}

	for i := range file.Reasons {
		if !file.Reasons[i].IsValid() {
			return nil, fmt.Errorf("некорректная причина в справочнике: код %d", file.Reasons[i].Code)
		}
	}

	return file.Reasons, nil
}
