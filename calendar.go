package ics

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// ComponentType enumerates the component names defined in RFC 5545 section 3.6
// that an interview document can contain.
type ComponentType string

const (
	// ComponentVCalendar is the VCALENDAR container component.
	ComponentVCalendar ComponentType = "VCALENDAR"
	// ComponentVEvent represents a VEVENT component.
	ComponentVEvent ComponentType = "VEVENT"
	// ComponentVAlarm represents a VALARM subcomponent.
	ComponentVAlarm ComponentType = "VALARM"
)

// ComponentProperty enumerates the iCalendar property names used inside
// VEVENT and VALARM components.  Each constant is the textual property name
// defined in RFC 5545 section 3.8.
//
// Example (VEVENT):
//
//	cal := NewCalendarFor("-//Example Corp//Scheduler//EN")
//	e := cal.AddEvent("5f0c6a1e@example.com")
//	e.SetProperty(ComponentPropertySummary, "Onsite interview")
//	e.SetProperty(ComponentPropertyDtStart, "20240601T120000Z")
type ComponentProperty Property

const (
	// ComponentPropertyUniqueId maps to the UID property (RFC 5545 section 3.8.4.7).
	// Invites, updates and cancellations of one meeting share the same UID.
	ComponentPropertyUniqueId = ComponentProperty(PropertyUid)
	// ComponentPropertySequence maps to SEQUENCE (section 3.8.7.4).
	// Clients apply a document only when its SEQUENCE is higher than the one
	// they already hold for the UID.
	ComponentPropertySequence = ComponentProperty(PropertySequence)
	// ComponentPropertyDtstamp maps to the DTSTAMP property (section 3.8.7.2).
	ComponentPropertyDtstamp = ComponentProperty(PropertyDtstamp)
	// ComponentPropertyDtStart maps to DTSTART (section 3.8.2.4).
	ComponentPropertyDtStart = ComponentProperty(PropertyDtstart)
	// ComponentPropertyDtEnd maps to DTEND (section 3.8.2.2).
	ComponentPropertyDtEnd = ComponentProperty(PropertyDtend)
	// ComponentPropertySummary maps to SUMMARY (section 3.8.1.12).
	ComponentPropertySummary = ComponentProperty(PropertySummary) // TEXT
	// ComponentPropertyDescription maps to DESCRIPTION (section 3.8.1.5).
	ComponentPropertyDescription = ComponentProperty(PropertyDescription) // TEXT
	// ComponentPropertyLocation maps to LOCATION (section 3.8.1.7).
	ComponentPropertyLocation = ComponentProperty(PropertyLocation) // TEXT
	// ComponentPropertyStatus maps to STATUS (section 3.8.1.11).
	ComponentPropertyStatus = ComponentProperty(PropertyStatus)
	// ComponentPropertyTransp maps to TRANSP (section 3.8.2.7).
	ComponentPropertyTransp = ComponentProperty(PropertyTransp)
	// ComponentPropertyOrganizer maps to the ORGANIZER property (section 3.8.4.3).
	// The value is a CAL-ADDRESS, "mailto:" followed by an email address.
	ComponentPropertyOrganizer = ComponentProperty(PropertyOrganizer)
	// ComponentPropertyAttendee maps to the ATTENDEE property (section 3.8.4.1).
	ComponentPropertyAttendee = ComponentProperty(PropertyAttendee)
	// ComponentPropertyUrl maps to URL (section 3.8.4.6).
	ComponentPropertyUrl = ComponentProperty(PropertyUrl)
	// ComponentPropertyAction maps to the ACTION property (section 3.8.6.1).
	ComponentPropertyAction = ComponentProperty(PropertyAction)
	// ComponentPropertyTrigger maps to TRIGGER (section 3.8.6.3).
	ComponentPropertyTrigger = ComponentProperty(PropertyTrigger)
)

type Property string

// Property enumerates the iCalendar property names written by this package
// (RFC 5545 sections 3.7 and 3.8).
const (
	PropertyCalscale    Property = "CALSCALE"
	PropertyMethod      Property = "METHOD"
	PropertyProductId   Property = "PRODID"
	PropertyVersion     Property = "VERSION"
	PropertyUid         Property = "UID"
	PropertySequence    Property = "SEQUENCE"
	PropertyDtstamp     Property = "DTSTAMP"
	PropertyDtstart     Property = "DTSTART"
	PropertyDtend       Property = "DTEND"
	PropertySummary     Property = "SUMMARY"     // TEXT
	PropertyDescription Property = "DESCRIPTION" // TEXT
	PropertyLocation    Property = "LOCATION"    // TEXT
	PropertyStatus      Property = "STATUS"
	PropertyTransp      Property = "TRANSP"
	PropertyOrganizer   Property = "ORGANIZER"
	PropertyAttendee    Property = "ATTENDEE"
	PropertyUrl         Property = "URL"
	PropertyAction      Property = "ACTION"
	PropertyTrigger     Property = "TRIGGER"
)

type Parameter string

const (
	// ParameterCn provides a common name (section 3.2.2).
	ParameterCn Parameter = "CN"
	// ParameterRole indicates participant role (section 3.2.16).
	ParameterRole Parameter = "ROLE"
	// ParameterParticipationStatus holds participation status (section 3.2.12).
	ParameterParticipationStatus Parameter = "PARTSTAT"
	// ParameterRsvp indicates whether a response is requested (section 3.2.17).
	ParameterRsvp Parameter = "RSVP"
)

type ParticipationStatus string

// ParticipationStatus enumerates the PARTSTAT parameter values from RFC 5545
// section 3.2.12 that a scheduling request uses.
const (
	// ParticipationStatusNeedsAction indicates a pending reply.
	ParticipationStatusNeedsAction ParticipationStatus = "NEEDS-ACTION"
	// ParticipationStatusAccepted indicates acceptance.
	ParticipationStatusAccepted ParticipationStatus = "ACCEPTED"
	// ParticipationStatusDeclined indicates the invitation was declined.
	ParticipationStatusDeclined ParticipationStatus = "DECLINED"
	// ParticipationStatusTentative indicates a tentative reply.
	ParticipationStatusTentative ParticipationStatus = "TENTATIVE"
)

func (ps ParticipationStatus) KeyValue() (string, []string) {
	return string(ParameterParticipationStatus), []string{string(ps)}
}

type ObjectStatus string

// ObjectStatus enumerates STATUS values for VEVENT (RFC 5545 section 3.8.1.11).
const (
	ObjectStatusTentative ObjectStatus = "TENTATIVE"
	ObjectStatusConfirmed ObjectStatus = "CONFIRMED"
	ObjectStatusCancelled ObjectStatus = "CANCELLED"
)

type ParticipationRole string

// ParticipationRole enumerates the ROLE parameter values for participants
// (RFC 5545 section 3.2.16).
const (
	// ParticipationRoleChair designates the chair of the meeting.
	ParticipationRoleChair ParticipationRole = "CHAIR"
	// ParticipationRoleReqParticipant indicates a required participant.
	ParticipationRoleReqParticipant ParticipationRole = "REQ-PARTICIPANT"
	// ParticipationRoleOptParticipant indicates an optional participant.
	ParticipationRoleOptParticipant ParticipationRole = "OPT-PARTICIPANT"
	// ParticipationRoleNonParticipant indicates a non-participant observer.
	ParticipationRoleNonParticipant ParticipationRole = "NON-PARTICIPANT"
)

func (pr ParticipationRole) KeyValue() (string, []string) {
	return string(ParameterRole), []string{string(pr)}
}

type Action string

// Action enumerates VALARM ACTION property values (RFC 5545 section 3.8.6.1).
const (
	ActionAudio   Action = "AUDIO"
	ActionDisplay Action = "DISPLAY"
	ActionEmail   Action = "EMAIL"
)

type Method string

// Method enumerates METHOD property values used with scheduling messages
// (RFC 5546 section 1.4).
const (
	// MethodPublish publishes a calendar without expecting replies.
	MethodPublish Method = "PUBLISH"
	// MethodRequest invites attendees or updates an existing invitation.
	MethodRequest Method = "REQUEST"
	// MethodCancel cancels a previously scheduled event.
	MethodCancel Method = "CANCEL"
)

// ContentType returns the MIME type a mail attachment carrying a document
// with this method should declare.
func (m Method) ContentType() string {
	return "text/calendar; method=" + string(m) + "; charset=UTF-8"
}

type CalendarProperty struct {
	BaseProperty
}

// Calendar represents a VCALENDAR object.  RFC 5545 section 3.6 says:
// "A 'VCALENDAR' object MUST include the 'PRODID' and 'VERSION' properties".
// NewCalendarFor creates a calendar populated with those fields.
type Calendar struct {
	Components         []Component
	CalendarProperties []CalendarProperty
}

// NewCalendarFor constructs a Calendar whose PRODID is productId.  VERSION is
// set to "2.0" (section 3.7.4) and CALSCALE to GREGORIAN (section 3.7.1).
// Properties serialize in the order they were first set.
func NewCalendarFor(productId string) *Calendar {
	c := &Calendar{
		Components:         []Component{},
		CalendarProperties: []CalendarProperty{},
	}
	c.SetProductId(productId)
	c.SetVersion("2.0")
	c.SetCalscale("GREGORIAN")
	return c
}

func (cal *Calendar) Serialize(ops ...any) string {
	b := &strings.Builder{}
	// We are intentionally ignoring the return value. _ used to communicate this to lint.
	_ = cal.SerializeTo(b, ops...)
	return b.String()
}

type WithLineLength int
type WithNewLine string

const (
	// WithNewLineUnix uses LF line endings.  Only useful for diffing output.
	WithNewLineUnix WithNewLine = "\n"
	// WithNewLineWindows uses CRLF line endings as required by RFC 5545 section 3.1.
	WithNewLineWindows WithNewLine = "\r\n"
)

func (cal *Calendar) SerializeTo(w io.Writer, ops ...any) error {
	serializeConfig, err := parseSerializeOps(ops)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "BEGIN:"+string(ComponentVCalendar)+serializeConfig.NewLine); err != nil {
		return err
	}
	for _, p := range cal.CalendarProperties {
		if err := p.serialize(w, serializeConfig); err != nil {
			return err
		}
	}
	for _, c := range cal.Components {
		if err := c.SerializeTo(w, serializeConfig); err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "END:"+string(ComponentVCalendar)+serializeConfig.NewLine)
	return err
}

// SerializationConfiguration controls how calendars and components are written
// out.  MaxLength is the 75 octet fold limit from RFC 5545 section 3.1; zero or
// negative disables folding.  NewLine selects the line termination sequence.
type SerializationConfiguration struct {
	MaxLength int
	NewLine   string
}

// parseSerializeOps interprets the optional arguments provided to Serialize or
// SerializeTo.  It accepts WithLineLength, WithNewLine or a
// *SerializationConfiguration.  Unsupported types return an error.
func parseSerializeOps(ops []any) (*SerializationConfiguration, error) {
	serializeConfig := defaultSerializationOptions()
	for opi, op := range ops {
		switch op := op.(type) {
		case WithLineLength:
			serializeConfig.MaxLength = int(op)
		case WithNewLine:
			serializeConfig.NewLine = string(op)
		case *SerializationConfiguration:
			return op, nil
		case error:
			return nil, op
		default:
			return nil, fmt.Errorf("unknown op %d of type %s", opi, reflect.TypeOf(op))
		}
	}
	return serializeConfig, nil
}

func defaultSerializationOptions() *SerializationConfiguration {
	return &SerializationConfiguration{
		MaxLength: 75,
		NewLine:   string(WithNewLineWindows),
	}
}

func (cal *Calendar) SetMethod(method Method, params ...PropertyParameter) {
	cal.setProperty(PropertyMethod, string(method), params...)
}

func (cal *Calendar) SetVersion(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyVersion, s, params...)
}

func (cal *Calendar) SetProductId(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyProductId, s, params...)
}

func (cal *Calendar) SetCalscale(s string, params ...PropertyParameter) {
	cal.setProperty(PropertyCalscale, s, params...)
}

// Method returns the METHOD property, or "" when none was set.
func (cal *Calendar) Method() Method {
	for i := range cal.CalendarProperties {
		if cal.CalendarProperties[i].IANAToken == string(PropertyMethod) {
			return Method(cal.CalendarProperties[i].Value)
		}
	}
	return ""
}

func (cal *Calendar) setProperty(property Property, value string, params ...PropertyParameter) {
	for i := range cal.CalendarProperties {
		if cal.CalendarProperties[i].IANAToken == string(property) {
			cal.CalendarProperties[i].Value = value
			cal.CalendarProperties[i].Parameters = toKeyValues(params)
			return
		}
	}
	cal.CalendarProperties = append(cal.CalendarProperties, CalendarProperty{
		BaseProperty{
			IANAToken:  string(property),
			Value:      value,
			Parameters: toKeyValues(params),
		},
	})
}

func (cal *Calendar) AddEvent(id string) *VEvent {
	e := NewEvent(id)
	cal.Components = append(cal.Components, e)
	return e
}

func (cal *Calendar) Events() (r []*VEvent) {
	r = []*VEvent{}
	for i := range cal.Components {
		switch event := cal.Components[i].(type) {
		case *VEvent:
			r = append(r, event)
		}
	}
	return
}
