package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/camreview/threads-affiliate/config"
	"github.com/camreview/threads-affiliate/logger"
)

// NotificationService reports pipeline milestones to the operator.
type NotificationService struct {
	config *config.Config
}

func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		config: cfg,
	}
}

// NotifyPublished announces a successfully republished post.
func (ns *NotificationService) NotifyPublished(postID uint, content string) {
	if !ns.config.Notifications.Enabled {
		return
	}

	message := fmt.Sprintf("Post %d republished: %s", postID, truncate(content, 80))

	if ns.config.Notifications.SystemNotify {
		ns.sendSystemNotification("Threads Affiliate", message)
	}

	if ns.config.Notifications.DiscordWebhook != "" {
		ns.sendDiscordNotification(message)
	}
}

// NotifyConversionFailed announces a link that could not be converted so the
// operator can retry it by hand.
func (ns *NotificationService) NotifyConversionFailed(postID uint, originalLink string) {
	if !ns.config.Notifications.Enabled {
		return
	}

	message := fmt.Sprintf("Post %d: conversion failed for %s", postID, originalLink)

	if ns.config.Notifications.SystemNotify {
		ns.sendSystemNotification("Threads Affiliate", message)
	}
}

func (ns *NotificationService) sendSystemNotification(title, message string) {
	if err := beeep.Notify(title, message, ""); err != nil {
		logger.Logger.Printf("Failed to send system notification: %v", err)
	}
}

func (ns *NotificationService) sendDiscordNotification(message string) {
	type discordEmbed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Color       int    `json:"color"`
		Timestamp   string `json:"timestamp"`
	}
	type discordWebhookPayload struct {
		Embeds []discordEmbed `json:"embeds"`
	}

	payload := discordWebhookPayload{
		Embeds: []discordEmbed{{
			Title:       "Threads Affiliate",
			Description: message,
			Color:       3066993, // Green
			Timestamp:   time.Now().Format(time.RFC3339),
		}},
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Printf("Failed to marshal Discord payload: %v", err)
		return
	}

	resp, err := http.Post(ns.config.Notifications.DiscordWebhook, "application/json", bytes.NewBuffer(jsonPayload))
	if err != nil {
		logger.Logger.Printf("Failed to send Discord notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		logger.Logger.Printf("Discord webhook returned status: %d", resp.StatusCode)
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
