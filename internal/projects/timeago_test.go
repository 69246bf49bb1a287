package projects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimeAgo(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"zero", 0, "Just now"},
		{"seconds", 59 * time.Second, "Just now"},
		{"future", -5 * time.Minute, "Just now"},
		{"one minute", time.Minute, "1m ago"},
		{"minutes floor", 59*time.Minute + 59*time.Second, "59m ago"},
		{"one hour", time.Hour, "1h ago"},
		{"hours floor", 23*time.Hour + 59*time.Minute, "23h ago"},
		{"one day", 24 * time.Hour, "1d ago"},
		{"many days", 400 * 24 * time.Hour, "400d ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimeAgo(now, now.Add(-tt.age)))
		})
	}
}

func TestProjectLabel(t *testing.T) {
	now := time.Now()
	p := Project{Name: "quest", Language: "C#", LastModified: now.Add(-3 * time.Hour)}
	assert.Equal(t, "quest | C# | 3h ago", p.Label(now))
}
