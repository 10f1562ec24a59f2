package potmanager

// Participant is anyone who put chips into the pot during a hand
type Participant interface {
	// ID must be unique within a hand
	ID() string
	// Contributed is the total amount put into the pot this hand
	Contributed() int
	// Folded returns true if the participant gave up their claim on the pot
	Folded() bool
}
