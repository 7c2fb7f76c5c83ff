package desktop

import (
	"github.com/go-vgo/robotgo"
)

// Keyboard types into whichever window has focus.
type Keyboard struct{}

func (Keyboard) Type(text string) {
	robotgo.TypeStr(text)
}

func (Keyboard) Tap(key string) {
	robotgo.KeyTap(key)
}
