package ics

// Defaults used when a Settings field is left empty.
const (
	DefaultProductID           = "-//PowerDash HR//Interview Scheduler//EN"
	DefaultUIDDomain           = "powerdashhr.com"
	DefaultReminderTrigger     = "-PT15M"
	DefaultReminderDescription = "Interview Reminder"
	DefaultLineLength          = 75
)

// Settings holds the deployment specific constants embedded in every
// document.  The zero value is usable: empty fields take the defaults above.
type Settings struct {
	// ProductID is written as PRODID.
	ProductID string
	// UIDDomain is the "@domain" suffix of generated UIDs.
	UIDDomain string
	// ReminderTrigger is the VALARM TRIGGER duration of invites.
	ReminderTrigger string
	// ReminderDescription is the text a client shows when the alarm fires.
	ReminderDescription string
	// LineLength is the fold limit in octets.  Negative disables folding.
	LineLength int
}

// DefaultSettings returns Settings with every field populated.
func DefaultSettings() Settings {
	return Settings{}.withDefaults()
}

func (s Settings) withDefaults() Settings {
	if s.ProductID == "" {
		s.ProductID = DefaultProductID
	}
	if s.UIDDomain == "" {
		s.UIDDomain = DefaultUIDDomain
	}
	if s.ReminderTrigger == "" {
		s.ReminderTrigger = DefaultReminderTrigger
	}
	if s.ReminderDescription == "" {
		s.ReminderDescription = DefaultReminderDescription
	}
	if s.LineLength == 0 {
		s.LineLength = DefaultLineLength
	}
	return s
}
