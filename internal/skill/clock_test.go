package skill

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clockAt(hour, minute int) *Clock {
	return &Clock{Now: func() time.Time {
		return time.Date(2025, time.January, 2, hour, minute, 0, 0, time.UTC)
	}}
}

func TestClock_Time(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "The current time is 09:07 AM", clockAt(9, 7).Time(ctx, nil).Text)
	assert.Equal(t, "The current time is 11:30 PM", clockAt(23, 30).Time(ctx, nil).Text)
	assert.Equal(t, "The current time is 12:00 AM", clockAt(0, 0).Time(ctx, nil).Text)
}

func TestClock_Date(t *testing.T) {
	assert.Equal(t, "Today is January 02, 2025", clockAt(9, 0).Date(context.Background(), nil).Text)
}

func TestClock_Greeting(t *testing.T) {
	tests := map[int]string{
		0:  "Good Evening Sir!",
		1:  "Good Morning Sir!",
		11: "Good Morning Sir!",
		12: "Good Afternoon Sir!",
		17: "Good Afternoon Sir!",
		18: "Good Evening Sir!",
		23: "Good Evening Sir!",
	}
	for hour, want := range tests {
		assert.Equal(t, want, clockAt(hour, 0).Greeting(), "hour %d", hour)
	}
}
