package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

var titleCaser = cases.Title(language.English)

// NotificationService pushes transit alerts to a configured Telegram chat.
type NotificationService struct {
	bot    *bot.Bot
	chatID string
	logger *logrus.Logger
}

// NewNotificationService creates the notification service. With an empty
// token the service stays inert and only logs.
func NewNotificationService(botToken, chatID string, logger *logrus.Logger) *NotificationService {
	if logger == nil {
		logger = logrus.New()
	}

	var telegramBot *bot.Bot
	if botToken != "" {
		var err error
		telegramBot, err = bot.New(botToken)
		if err != nil {
			logger.WithError(err).Warn("Failed to initialize Telegram bot, notifications disabled")
			telegramBot = nil
		}
	}

	return &NotificationService{
		bot:    telegramBot,
		chatID: chatID,
		logger: logger,
	}
}

// Enabled reports whether alerts can actually be delivered.
func (ns *NotificationService) Enabled() bool {
	return ns.bot != nil && ns.chatID != ""
}

// NotifyTransitAlerts formats and sends one message covering the alert-worthy
// transits of a graha.
func (ns *NotificationService) NotifyTransitAlerts(ctx context.Context, graha astro.Graha, alerts []astro.TransitEvaluation) error {
	if len(alerts) == 0 {
		return nil
	}

	message := FormatTransitAlerts(graha, alerts)

	if !ns.Enabled() {
		ns.logger.WithField("graha", graha.String()).Debug("Telegram disabled, skipping transit alert")
		return nil
	}

	_, err := ns.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    ns.chatID,
		Text:      message,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("failed to send transit alert: %w", err)
	}

	ns.logger.WithFields(logrus.Fields{
		"graha":  graha.String(),
		"alerts": len(alerts),
	}).Info("Sent transit alert")
	return nil
}

// FormatTransitAlerts renders the alert message body.
func FormatTransitAlerts(graha astro.Graha, alerts []astro.TransitEvaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Transit outlook: %s*\n\n", titleCaser.String(graha.String()))

	for _, eval := range alerts {
		marker := "⚠️"
		if eval.CombinedResult == astro.CombinedHighlyFavorable {
			marker = "✨"
		}
		fmt.Fprintf(&b, "%s %s in %s — %s\n", marker,
			titleCaser.String(graha.String()), eval.SignName,
			strings.ReplaceAll(eval.CombinedResult, "_", " "))
		fmt.Fprintf(&b, "   bindus: %d/8 grid, %d/56 aggregate (score %s)\n",
			eval.BAVBindus, eval.SAVBindus, eval.CombinedScore.String())
	}

	return b.String()
}
