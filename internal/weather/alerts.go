package weather

import (
	"fmt"

	"sidekick/internal/constants"
	"sidekick/internal/models"
)

// Severity orders alerts for display: a warning suggests rescheduling, an
// alert means the activity should not happen.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityAlert   Severity = "alert"
)

// Alert is a human-readable weather objection to an activity.
type Alert struct {
	Severity Severity
	Title    string
	Message  string
}

// AlertsFor evaluates a snapshot against a habit's weather preferences and
// returns zero or more alerts. It is a pure function; an error-flagged
// snapshot yields no alerts because the conditions are unknown.
func AlertsFor(snapshot Snapshot, prefs models.WeatherPreferences) []Alert {
	if snapshot.Err {
		return nil
	}

	var alerts []Alert

	if prefs.AvoidRain && snapshot.Raining {
		rainAmount := snapshot.RainMM
		if rainAmount <= 0 {
			rainAmount = constants.AssumedRainfallMM
		}
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Title:    "🌧️ Rainy Weather Alert",
			Message:  fmt.Sprintf("Boss, it's raining (%gmm). You're allergic to rain, so maybe reschedule your activity today.", rainAmount),
		})
	}

	// Hot sun needs both a clear sky and a high temperature
	if prefs.AvoidHotSun && snapshot.CloudCover < constants.HotSunMaxCloudCover && snapshot.Temperature > constants.HotSunTemperatureC {
		alerts = append(alerts, Alert{
			Severity: SeverityWarning,
			Title:    "☀️ Hot Sun Alert",
			Message:  fmt.Sprintf("Boss, it's %g°C and sunny. Too hot for outdoor activities. Stay hydrated or reschedule.", snapshot.Temperature),
		})
	}

	if prefs.AvoidSnow && snapshot.Snowing {
		alerts = append(alerts, Alert{
			Severity: SeverityAlert,
			Title:    "❄️ Snowing Alert",
			Message:  "Boss, it's snowing. That activity isn't happening today. Stay safe inside.",
		})
	}

	return alerts
}

// Kind maps an alert severity to the notification kind used when it is
// emitted into the sink. Warnings surface as plain info notifications;
// only the alert severity escalates.
func (a Alert) Kind() models.NotificationKind {
	if a.Severity == SeverityAlert {
		return models.KindAlert
	}
	return models.KindInfo
}
