package appstate

import (
	"fmt"
	"time"
)

// prompt is a pending confirmation answered from the keyboard.
type prompt struct {
	title     string
	message   string
	onConfirm func()
}

func (p *prompt) String() string {
	return fmt.Sprintf("%s %s (y/n)", p.title, p.message)
}

// taskEvent carries deferred editor work back onto the event loop.
type taskEvent struct{ fn func() }

// windowScheduler runs editor callbacks on the event loop after a delay.
type windowScheduler struct {
	post func(taskEvent)
}

func (s windowScheduler) Schedule(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() { s.post(taskEvent{fn: fn}) })
}
