package constants

import "time"

const (
	AppName            = "sidekick"
	Version            = "v0.3.0"
	DefaultConfigPath  = "~/.config/sidekick/config.yaml"
	DefaultKeyringUser = "backend-token"
	KeyringDatabaseKey = "database-connection"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultHabitStartTime is assumed when a habit has no start time set
	DefaultHabitStartTime = "09:00"

	// Reminder cadences
	DefaultCheckInterval   = 60 * time.Second
	DefaultBackendPollSec  = 120
	DefaultDismissAfter    = 5 * time.Second
	DefaultSummaryTime     = "08:00"
	HistoryRetentionDays   = 14
	HistoryDefaultPageSize = 50

	// Weather gate defaults
	DefaultWeatherProviderURL = "https://api.open-meteo.com/v1/forecast"
	DefaultWeatherCacheTTL    = 30 * time.Minute

	// Hot-sun alert requires both a clear sky and a high temperature
	HotSunTemperatureC  = 28.0
	HotSunMaxCloudCover = 30.0
	AssumedRainfallMM   = 2.0 // reported when the provider flags rain without an amount
	WeatherFetchTimeout = 10 * time.Second
	BackendFetchTimeout = 30 * time.Second

	// Notify constants (tray helper webhook)
	NotifierLockfileName   = "sidekick-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "dev.sidekick.tray"
	TrayProcessPrefix      = "sidekick-tray"
)
