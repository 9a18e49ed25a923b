package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"absenteeism-bot/internal/config"
	"absenteeism-bot/internal/models"
	"absenteeism-bot/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Колонки датасета Absenteeism_at_work.csv, нужные для импорта.
// У "Work load Average/day " в исходнике пробел в конце, это не опечатка.
var datasetColumns = map[string]string{
	"ID":                              "id",
	"Transportation expense":          "transportation_expense",
	"Distance from Residence to Work": "distance_to_work",
	"Service time":                    "service_time",
	"Age":                             "age",
	"Work load Average/day ":          "workload_avg_day",
	"Hit target":                      "hit_target",
	"Education":                       "education",
	"Body mass index":                 "body_mass_index",
}

const defaultHourlyRate = 40.0

func main() {
	csvPath := flag.String("csv", "Absenteeism_at_work.csv", "путь к датасету (разделитель «;»)")
	flag.Parse()

	cfg := config.GetBotConfig()

	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	reasonRepo, err := repository.NewGormAbsenceReasonRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create absence reason repository")
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	// Шаг 1: справочник причин из YAML
	catalog, err := config.LoadReasonCatalog(cfg.ReasonsPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load reason catalog")
	}

	created, err := reasonRepo.Seed(catalog)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to seed reason catalog")
	}
	logrus.Infof("Reason catalog: %d new reasons", created)

	// Шаг 2: сотрудники из датасета
	employees, err := readEmployees(*csvPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to read dataset")
	}
	logrus.Infof("Dataset: %d unique employees", len(employees))

	imported := 0
	for _, emp := range employees {
		if err := employeeRepo.Upsert(emp); err != nil {
			logrus.WithError(err).WithField("employee_id", emp.ID).
				Error("Failed to import employee")
			continue
		}
		imported++
	}

	logrus.Infof("Import complete: %d employees", imported)
}

// readEmployees читает датасет и собирает уникальных сотрудников.
// При повторах ID остается последняя строка, как при подготовке выборки.
func readEmployees(path string) ([]*models.Employee, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = ';'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("датасет пуст: %s", path)
	}

	// Индексы нужных колонок по заголовку
	index := make(map[string]int)
	for i, name := range records[0] {
		if field, ok := datasetColumns[name]; ok {
			index[field] = i
		}
	}

	for field := range map[string]bool{
		"id": true, "transportation_expense": true, "distance_to_work": true,
		"service_time": true, "age": true, "workload_avg_day": true,
		"hit_target": true, "education": true, "body_mass_index": true,
	} {
		if _, ok := index[field]; !ok {
			return nil, fmt.Errorf("в датасете нет колонки для поля %s", field)
		}
	}

	byID := make(map[int]*models.Employee)
	order := make([]int, 0)

	for rowNum, row := range records[1:] {
		emp, err := parseEmployeeRow(row, index)
		if err != nil {
			logrus.WithError(err).Warnf("Skipping dataset row %d", rowNum+2)
			continue
		}

		if _, seen := byID[emp.ID]; !seen {
			order = append(order, emp.ID)
		}
		byID[emp.ID] = emp
	}

	employees := make([]*models.Employee, 0, len(byID))
	for _, id := range order {
		employees = append(employees, byID[id])
	}

	return employees, nil
}

func parseEmployeeRow(row []string, index map[string]int) (*models.Employee, error) {
	intAt := func(field string) (int, error) {
		return strconv.Atoi(strings.TrimSpace(row[index[field]]))
	}
	floatAt := func(field string) (float64, error) {
		return strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(row[index[field]], ",", ".")), 64)
	}

	id, err := intAt("id")
	if err != nil {
		return nil, fmt.Errorf("некорректный ID: %w", err)
	}

	transport, err := intAt("transportation_expense")
	if err != nil {
		return nil, err
	}
	distance, err := intAt("distance_to_work")
	if err != nil {
		return nil, err
	}
	serviceTime, err := intAt("service_time")
	if err != nil {
		return nil, err
	}
	age, err := intAt("age")
	if err != nil {
		return nil, err
	}
	workload, err := floatAt("workload_avg_day")
	if err != nil {
		return nil, err
	}
	hitTarget, err := intAt("hit_target")
	if err != nil {
		return nil, err
	}
	education, err := intAt("education")
	if err != nil {
		return nil, err
	}
	bmi, err := floatAt("body_mass_index")
	if err != nil {
		return nil, err
	}

	return &models.Employee{
		ID:                    id,
		FullName:              fmt.Sprintf("Employee %d", id),
		HourlyRate:            defaultHourlyRate,
		TransportationExpense: transport,
		DistanceToWork:        distance,
		ServiceTime:           serviceTime,
		Age:                   age,
		WorkloadAvgDay:        workload,
		HitTarget:             hitTarget,
		Education:             education,
		BodyMassIndex:         bmi,
	}, nil
}
