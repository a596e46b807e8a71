package automation

// Keystrokes sends synthetic key combinations to the focused application.
type Keystrokes interface {
	Send(c Combo) error
}
