package handler

import (
	"github.com/sirupsen/logrus"
)

// SendDailySummary отправляет сводку за текущий месяц всем администраторам.
// Вызывается планировщиком по расписанию из конфига.
func (h *Handler) SendDailySummary() {
	admins, err := h.userService.GetAdmins()
	if err != nil {
		logrus.WithError(err).Error("Failed to get admins for daily summary")
		return
	}

	if len(admins) == 0 {
		logrus.Info("No admins registered, daily summary skipped")
		return
	}

	kpis, err := h.reportService.GetDashboardKpis()
	if err != nil {
		logrus.WithError(err).Error("Failed to build daily summary")
		return
	}

	text := "🔔 Ежедневная сводка\n\n" + h.reportService.FormatDashboard(kpis)

	for _, admin := range admins {
		h.reply(admin.ChatID, text)
	}

	logrus.WithField("admins", len(admins)).Info("Daily summary sent")
}
