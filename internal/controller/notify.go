package controller

type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// Notification is a user visible message emitted when an action completes
type Notification struct {
	Level   Level
	Title   string
	Message string
}

type Notifier interface {
	Notify(Notification)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) {
	f(n)
}

var discard = NotifierFunc(func(Notification) {})
