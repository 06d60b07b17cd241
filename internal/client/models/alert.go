package models

// AlertKind classifies an alert for presentation.
type AlertKind string

const (
	AlertSuccess AlertKind = "success"
	AlertError   AlertKind = "error"
)

// Alert is a transient user-facing notice. The zero value means "no alert".
type Alert struct {
	Text string
	Kind AlertKind
}

// Empty reports whether the alert carries no message.
func (a Alert) Empty() bool {
	return a.Text == ""
}
