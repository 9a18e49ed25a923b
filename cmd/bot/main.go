package main

import (
	"os"
	"os/signal"
	"syscall"

	"absenteeism-bot/internal/config"
	"absenteeism-bot/internal/handler"
	"absenteeism-bot/internal/ml"
	"absenteeism-bot/internal/repository"
	"absenteeism-bot/internal/service"
	"absenteeism-bot/pkg/telegram"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	logrus.Info("Initializing config...")
	cfg := config.GetBotConfig()
	logrus.Info("Config initialized...")

	// Инициализируем SQLite базу данных
	db, err := gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true, // SQLite ограничения
	})
	if err != nil {
		logrus.Fatal("Failed to connect to database:", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		logrus.Fatal("Failed to get database instance:", err)
	}

	// Включаем поддержку внешних ключей (требуется для SQLite)
	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON")
	if err != nil {
		logrus.Infof("Warning: Failed to enable foreign keys: %v", err)
	}

	reasonRepo, err := repository.NewGormAbsenceReasonRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create absence reason repository")
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create employee repository")
	}

	logRepo, err := repository.NewGormAbsenceLogRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create absence log repository")
	}

	userRepo, err := repository.NewGormBotUserRepository(db)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to create bot user repository")
	}

	// Наполняем справочник причин, существующие коды не трогаем
	catalog, err := config.LoadReasonCatalog(cfg.ReasonsPath)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load reason catalog")
	}
	if _, err := reasonRepo.Seed(catalog); err != nil {
		logrus.WithError(err).Fatal("Failed to seed reason catalog")
	}

	// Загружаем модель прогнозирования. Если артефакта нет,
	// бот работает без прогнозов до перезапуска с валидным файлом.
	predictor := ml.NewAdapter(cfg.ModelPath)
	if !predictor.Available() {
		logrus.Warn("Prediction model unavailable, /absent commands will be rejected")
	}

	// Создаем сервисы
	userService := service.NewBotUserService(userRepo)
	employeeService := service.NewEmployeeService(employeeRepo)
	absenceService := service.NewAbsenceService(logRepo, employeeRepo, reasonRepo, predictor)
	reportService := service.NewReportService(logRepo, employeeRepo, reasonRepo)

	// Инициализируем администратора из конфига
	if err := userService.InitializeAdmin(cfg.BaseAdminChatID); err != nil {
		logrus.Infof("Warning: Failed to initialize admin: %v", err)
	} else if cfg.BaseAdminChatID != 0 {
		logrus.Infof("Admin initialized with chat ID: %d", cfg.BaseAdminChatID)
	}

	// Создаем клиент Telegram
	client, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		logrus.Fatal("Failed to create Telegram client:", err)
	}

	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(
		client,
		userService,
		employeeService,
		absenceService,
		reportService,
		cfg,
	)

	// Планировщик ежедневной сводки администраторам
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SummarySchedule, botHandler.SendDailySummary); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule daily summary")
	}
	scheduler.Start()

	// Настраиваем канал обновлений
	updates := client.Bot.GetUpdatesChan(client.UpdateConfig)

	// Обработка сигналов для graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go botHandler.HandleUpdates(updates)

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	scheduler.Stop()

	// Закрываем соединение с БД
	if err := sqlDB.Close(); err != nil {
		logrus.Infof("Error closing database: %v", err)
	}

	logrus.Info("Bot stopped gracefully")
}
