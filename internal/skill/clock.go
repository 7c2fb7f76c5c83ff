package skill

import (
	"context"
	"time"
)

const (
	timeLayout = "03:04 PM"
	dateLayout = "January 02, 2006"
)

type Clock struct {
	Now func() time.Time
}

func NewClock() *Clock {
	return &Clock{Now: time.Now}
}

func (c *Clock) Time(context.Context, Args) Result {
	return OK("The current time is %s", c.Now().Format(timeLayout))
}

func (c *Clock) Date(context.Context, Args) Result {
	return OK("Today is %s", c.Now().Format(dateLayout))
}

func (c *Clock) Greeting() string {
	hour := c.Now().Hour()
	switch {
	case hour >= 1 && hour < 12:
		return "Good Morning Sir!"
	case hour >= 12 && hour < 18:
		return "Good Afternoon Sir!"
	default:
		return "Good Evening Sir!"
	}
}
