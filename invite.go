package ics

import (
	"bytes"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Participant is an email address with an optional display name.  A blank
// name is replaced by the email.
type Participant struct {
	Email string
	Name  string
}

// Meeting is the part of a document shared by invites and cancellations.
type Meeting struct {
	Organizer   Participant
	Required    []Participant
	Optional    []Participant
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	Location    string
	JoinURL     string
}

// Invite is a METHOD:REQUEST document.  UID wins over UIDSeed; with neither
// set a random UID is generated.  A positive Sequence marks the invite as an
// update of an earlier one with the same UID.
type Invite struct {
	Meeting
	UID      string
	UIDSeed  string
	Sequence int
}

// Cancellation is a METHOD:CANCEL document.  UID must be the UID of the
// invite being cancelled and Sequence must be higher than that invite's.
type Cancellation struct {
	Meeting
	UID      string
	Sequence int
}

// Builder assembles invite and cancellation documents.  It holds no mutable
// state and may be shared between goroutines.
type Builder struct {
	settings Settings
	now      func() time.Time
	logger   *slog.Logger
	metrics  *Metrics
}

type BuilderOption func(*Builder)

// WithClock replaces time.Now as the source of DTSTAMP.
func WithClock(now func() time.Time) BuilderOption {
	return func(b *Builder) {
		b.now = now
	}
}

func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

func WithMetrics(m *Metrics) BuilderOption {
	return func(b *Builder) {
		b.metrics = m
	}
}

func NewBuilder(settings Settings, opts ...BuilderOption) *Builder {
	b := &Builder{
		settings: settings.withDefaults(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Settings returns the effective settings, defaults filled in.
func (b *Builder) Settings() Settings {
	return b.settings
}

// UIDFor derives a stable UID in the builder's domain from identifying fields.
func (b *Builder) UIDFor(fields ...string) (string, error) {
	return StableUIDFromFields(b.settings.UIDDomain, fields...)
}

// MeetingUID derives a stable UID from the summary, organizer email and start
// of m, so that the same interview slot always maps to one calendar entry.
func (b *Builder) MeetingUID(m Meeting) (string, error) {
	return b.UIDFor(m.Summary, m.Organizer.Email, FormatInstant(m.Start))
}

// BuildInvite returns the UTF-8, CRLF terminated METHOD:REQUEST document for
// inv.  On a *ValidationError no bytes are returned.
func (b *Builder) BuildInvite(inv Invite) ([]byte, error) {
	if err := validateMeeting(inv.Meeting); err != nil {
		return nil, b.fail(err)
	}
	if inv.Sequence < 0 {
		return nil, b.fail(validationError("sequence", "must not be negative"))
	}
	uid := stripControl(inv.UID)
	if uid == "" && inv.UIDSeed != "" {
		var err error
		if uid, err = StableUID(inv.UIDSeed, b.settings.UIDDomain); err != nil {
			return nil, b.fail(err)
		}
	}
	if uid == "" {
		uid = RandomUID(b.settings.UIDDomain)
	}
	return b.encode(b.assemble(MethodRequest, inv.Meeting, uid, inv.Sequence))
}

// BuildCancellation returns the METHOD:CANCEL document for c.  There is no
// UID fallback: a cancellation with an unknown UID would show up as a new,
// already cancelled event instead of removing the original.
func (b *Builder) BuildCancellation(c Cancellation) ([]byte, error) {
	uid := stripControl(c.UID)
	if uid == "" {
		return nil, b.fail(validationError("uid", "a cancellation must reference the uid of the original invite"))
	}
	if c.Sequence < 1 {
		return nil, b.fail(validationError("sequence", "must be greater than the sequence of the cancelled invite"))
	}
	if err := validateMeeting(c.Meeting); err != nil {
		return nil, b.fail(err)
	}
	return b.encode(b.assemble(MethodCancel, c.Meeting, uid, c.Sequence))
}

func validateMeeting(m Meeting) error {
	switch {
	case strings.TrimSpace(m.Organizer.Email) == "":
		return validationError("organizer_email", "organizer email is required")
	case strings.TrimSpace(m.Summary) == "":
		return validationError("summary", "summary is required")
	case m.Start.IsZero():
		return validationError("start", "start time is required")
	case m.End.IsZero():
		return validationError("end", "end time is required")
	case !m.End.After(m.Start):
		return validationError("end", "end time must be after start time")
	}
	return nil
}

func (b *Builder) fail(err error) error {
	b.metrics.validationFailed(err)
	b.logger.Debug("calendar document rejected", "error", err)
	return err
}

func (b *Builder) assemble(method Method, m Meeting, uid string, sequence int) *Calendar {
	cal := NewCalendarFor(b.settings.ProductID)
	cal.SetMethod(method)

	event := cal.AddEvent(uid)
	if method == MethodCancel || sequence > 0 {
		event.SetSequence(sequence)
	}
	event.SetDtStampTime(b.now())
	event.SetStartAt(m.Start)
	event.SetEndAt(m.End)
	event.SetSummary(normalizeText(m.Summary))

	joinURL := stripControl(m.JoinURL)
	description := normalizeText(m.Description)
	if joinURL != "" {
		link := "Join link: " + EscapeText(joinURL)
		if description == "" {
			description = link
		} else {
			description += `\n\n` + link
		}
	}
	event.SetDescription(description)
	event.SetLocation(normalizeText(m.Location))

	switch method {
	case MethodCancel:
		event.SetStatus(ObjectStatusCancelled)
	default:
		event.SetStatus(ObjectStatusConfirmed)
		event.SetTimeTransparency(TransparencyOpaque)
	}

	organizer := stripControl(m.Organizer.Email)
	event.SetOrganizer(organizer, WithCN(displayName(m.Organizer.Name, organizer)))

	attendees := 0
	for _, group := range []struct {
		role   ParticipationRole
		people []Participant
	}{
		{ParticipationRoleReqParticipant, m.Required},
		{ParticipationRoleOptParticipant, m.Optional},
	} {
		for _, p := range group.people {
			email := stripControl(p.Email)
			if email == "" {
				b.metrics.attendeeSkipped()
				b.logger.Debug("skipping attendee without email", "uid", uid, "name", p.Name, "role", group.role)
				continue
			}
			params := []PropertyParameter{WithCN(displayName(p.Name, email)), group.role}
			if method == MethodRequest {
				params = append(params, ParticipationStatusNeedsAction, WithRSVP(true))
			}
			event.AddAttendee(email, params...)
			attendees++
		}
	}

	if joinURL != "" {
		event.SetURL(joinURL)
	}

	if method == MethodRequest {
		alarm := event.AddAlarm()
		alarm.SetTrigger(b.settings.ReminderTrigger)
		alarm.SetAction(ActionDisplay)
		alarm.SetDescription(EscapeText(b.settings.ReminderDescription))
	}

	b.logger.Debug("calendar document assembled",
		"method", method, "uid", uid, "sequence", sequence, "attendees", attendees)
	return cal
}

func (b *Builder) encode(cal *Calendar) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := cal.SerializeTo(buf, &SerializationConfiguration{
		MaxLength: b.settings.LineLength,
		NewLine:   string(WithNewLineWindows),
	}); err != nil {
		return nil, err
	}
	b.metrics.documentBuilt(cal.Method())
	return buf.Bytes(), nil
}

// normalizeText composes s and escapes it as TEXT.  Control characters other
// than tab and line breaks have no TEXT representation and are dropped.
func normalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, s)
	return EscapeText(norm.NFC.String(s))
}

func displayName(name, email string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return email
	}
	return norm.NFC.String(name)
}

// stripControl trims u and drops control characters.  URI and CAL-ADDRESS
// values are written verbatim, so a stray CR or LF would break the line.
func stripControl(u string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(u))
}
