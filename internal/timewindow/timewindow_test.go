package timewindow

import (
	"testing"
	"time"
)

var target = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(hhmmss string) time.Time {
	t, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		panic(err)
	}
	return time.Date(2026, 3, 2, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func TestClassifier_DefaultBands(t *testing.T) {
	c := New(DefaultBands())

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{"15 minutes before", at("08:45:00"), Upcoming},
		{"upcoming band is one minute wide", at("08:46:00"), None},
		{"just before upcoming band", at("08:44:59"), None},
		{"upcoming band end is exclusive", at("08:45:59"), Upcoming},
		{"one minute before", at("08:59:00"), None},
		{"exactly on time", at("09:00:00"), DueNow},
		{"due band end is exclusive", at("09:00:59"), DueNow},
		{"one minute late", at("09:01:00"), None},
		{"five and a half minutes late", at("09:05:30"), OverdueSoon},
		{"six minutes late", at("09:06:00"), None},
		{"thirty minutes late", at("09:30:00"), OverdueLate},
		{"thirty one minutes late", at("09:31:00"), None},
		{"hours late", at("12:00:00"), None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.now, target); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.now.Format("15:04:05"), got, tt.want)
			}
		})
	}
}

func TestClassifier_RoutineBands(t *testing.T) {
	c := New(RoutineBands())

	tests := []struct {
		name string
		now  time.Time
		want Window
	}{
		{"five minutes before", at("08:55:00"), Upcoming},
		{"fifteen minutes before is outside", at("08:45:00"), None},
		{"exactly on time", at("09:00:00"), DueNow},
		{"five and a half minutes late", at("09:05:30"), OverdueSoon},
		{"overdue band is wide", at("09:15:00"), OverdueSoon},
		{"twenty minutes late", at("09:20:00"), OverdueLate},
		{"twenty four minutes late", at("09:24:00"), OverdueLate},
		{"twenty five minutes late", at("09:25:00"), None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.now, target); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.now.Format("15:04:05"), got, tt.want)
			}
		})
	}
}

func TestClassify_Pure(t *testing.T) {
	c := New(DefaultBands())
	now := at("08:45:30")

	first := c.Classify(now, target)
	second := c.Classify(now, target)
	if first != second {
		t.Errorf("Classify not pure: %v then %v", first, second)
	}
}

func TestClassify_ZeroClassifier(t *testing.T) {
	var c Classifier
	if got := c.Classify(at("09:00:00"), target); got != None {
		t.Errorf("zero classifier Classify() = %v, want None", got)
	}
}
