package weather

import (
	"strings"
	"testing"

	"sidekick/internal/models"
)

func TestAlertsFor(t *testing.T) {
	rainy := Snapshot{Temperature: 12, CloudCover: 90, Raining: true, RainMM: 4}
	sunny := Snapshot{Temperature: 31, CloudCover: 10}
	snowy := Snapshot{Temperature: -2, CloudCover: 100, Snowing: true}

	tests := []struct {
		name      string
		snapshot  Snapshot
		prefs     models.WeatherPreferences
		wantCount int
		wantTitle string
	}{
		{
			name:      "rain alert when avoiding rain",
			snapshot:  rainy,
			prefs:     models.WeatherPreferences{AvoidRain: true},
			wantCount: 1,
			wantTitle: "Rainy",
		},
		{
			name:      "no rain alert without preference",
			snapshot:  rainy,
			prefs:     models.WeatherPreferences{AvoidHotSun: true, AvoidSnow: true},
			wantCount: 0,
		},
		{
			name:      "hot sun alert needs clear sky and heat",
			snapshot:  sunny,
			prefs:     models.WeatherPreferences{AvoidHotSun: true},
			wantCount: 1,
			wantTitle: "Hot Sun",
		},
		{
			name:      "hot but overcast is fine",
			snapshot:  Snapshot{Temperature: 31, CloudCover: 80},
			prefs:     models.WeatherPreferences{AvoidHotSun: true},
			wantCount: 0,
		},
		{
			name:      "clear but cool is fine",
			snapshot:  Snapshot{Temperature: 20, CloudCover: 5},
			prefs:     models.WeatherPreferences{AvoidHotSun: true},
			wantCount: 0,
		},
		{
			name:      "snow alert",
			snapshot:  snowy,
			prefs:     models.WeatherPreferences{AvoidSnow: true},
			wantCount: 1,
			wantTitle: "Snowing",
		},
		{
			name:      "multiple alerts stack",
			snapshot:  Snapshot{Temperature: 1, CloudCover: 100, Raining: true, Snowing: true},
			prefs:     models.WeatherPreferences{AvoidRain: true, AvoidSnow: true},
			wantCount: 2,
		},
		{
			name:      "error snapshot yields no alerts",
			snapshot:  Snapshot{Err: true},
			prefs:     models.WeatherPreferences{AvoidRain: true, AvoidHotSun: true, AvoidSnow: true},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := AlertsFor(tt.snapshot, tt.prefs)
			if len(alerts) != tt.wantCount {
				t.Fatalf("AlertsFor() returned %d alerts, want %d", len(alerts), tt.wantCount)
			}
			if tt.wantTitle != "" && !strings.Contains(alerts[0].Title, tt.wantTitle) {
				t.Errorf("alert title %q does not contain %q", alerts[0].Title, tt.wantTitle)
			}
		})
	}
}

func TestAlertsFor_RainAmountFallback(t *testing.T) {
	// Showers can flag rain with a zero rain amount; the message still
	// reports a nonzero figure.
	snapshot := Snapshot{Raining: true, RainMM: 0}
	alerts := AlertsFor(snapshot, models.WeatherPreferences{AvoidRain: true})
	if len(alerts) != 1 {
		t.Fatalf("expected 1 alert, got %d", len(alerts))
	}
	if !strings.Contains(alerts[0].Message, "2mm") {
		t.Errorf("message %q missing fallback rain amount", alerts[0].Message)
	}
}

func TestAlert_Kind(t *testing.T) {
	if (Alert{Severity: SeverityAlert}).Kind() != models.KindAlert {
		t.Error("alert severity should map to alert kind")
	}
	if (Alert{Severity: SeverityWarning}).Kind() != models.KindInfo {
		t.Error("warning severity should map to info kind")
	}
}
