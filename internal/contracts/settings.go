package contracts

import "Paydue/internal/domain/settings"

type SettingsUpdateRequest struct {
	NotificationsEnabled      *bool `json:"notifications_enabled" binding:"omitempty"`
	DefaultReminderDaysBefore *int  `json:"default_reminder_days_before" binding:"omitempty,gte=0,lte=60"`
}

type SettingsResponse struct {
	Settings *settings.Settings `json:"settings"`
}

type SettingsUpdateResponse struct {
	Message  string             `json:"message"`
	Settings *settings.Settings `json:"settings"`
}
