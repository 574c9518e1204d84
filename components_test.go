package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var unixConfig = &SerializationConfiguration{MaxLength: 75, NewLine: string(WithNewLineUnix)}

func TestSetStartEnd(t *testing.T) {
	date, _ := time.Parse(time.RFC822, time.RFC822)
	cet := time.FixedZone("CET", 60*60)

	testCases := []struct {
		name   string
		start  time.Time
		end    time.Time
		output string
	}{
		{
			name:  "utc",
			start: date,
			end:   date.Add(2 * time.Hour),
			output: `BEGIN:VEVENT
UID:test-times
DTSTART:20060102T150400Z
DTEND:20060102T170400Z
END:VEVENT
`,
		},
		{
			name:  "offset zone is converted",
			start: time.Date(2024, 3, 1, 9, 30, 0, 0, cet),
			end:   time.Date(2024, 3, 1, 10, 0, 59, 999999999, cet),
			output: `BEGIN:VEVENT
UID:test-times
DTSTART:20240301T083000Z
DTEND:20240301T090059Z
END:VEVENT
`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEvent("test-times")
			e.SetStartAt(tc.start)
			e.SetEndAt(tc.end)
			assert.Equal(t, tc.output, e.Serialize(unixConfig))
		})
	}
}

func TestSetPropertyKeepsPosition(t *testing.T) {
	e := NewEvent("test-order")
	e.SetSummary("first")
	e.SetLocation("here")
	e.SetSummary("second")

	assert.Equal(t, `BEGIN:VEVENT
UID:test-order
SUMMARY:second
LOCATION:here
END:VEVENT
`, e.Serialize(unixConfig))
}

func TestAttendees(t *testing.T) {
	e := NewEvent("test-attendees")
	e.SetOrganizer("org@example.com", WithCN("Org"))
	e.AddAttendee("one@example.com", WithCN("One"), ParticipationRoleReqParticipant, ParticipationStatusNeedsAction, WithRSVP(true))
	e.AddAttendee("mailto:two@example.com", ParticipationRoleOptParticipant)

	attendees := e.Attendees()
	require.Len(t, attendees, 2)
	assert.Equal(t, "one@example.com", attendees[0].Email())
	assert.Equal(t, ParticipationRoleReqParticipant, attendees[0].Role())
	assert.Equal(t, ParticipationStatusNeedsAction, attendees[0].ParticipationStatus())
	assert.Equal(t, "two@example.com", attendees[1].Email())
	assert.Equal(t, ParticipationRoleOptParticipant, attendees[1].Role())
	assert.Equal(t, ParticipationStatus(""), attendees[1].ParticipationStatus())

	cn, ok := e.GetProperty(ComponentPropertyOrganizer).Parameter(ParameterCn)
	assert.True(t, ok)
	assert.Equal(t, "Org", cn)
	assert.Equal(t, "test-attendees", e.Id())

	text := e.Serialize(&SerializationConfiguration{MaxLength: -1, NewLine: string(WithNewLineUnix)})
	assert.Contains(t, text, "ORGANIZER;CN=Org:mailto:org@example.com\n")
	assert.Contains(t, text, "ATTENDEE;CN=One;ROLE=REQ-PARTICIPANT;PARTSTAT=NEEDS-ACTION;RSVP=TRUE:mailto:one@example.com\n")
	assert.Contains(t, text, "ATTENDEE;ROLE=OPT-PARTICIPANT:mailto:two@example.com\n")
}

func TestAlarm(t *testing.T) {
	e := NewEvent("test-alarm")
	a := e.AddAlarm()
	a.SetTrigger("-PT15M")
	a.SetAction(ActionDisplay)
	a.SetDescription("Reminder")

	require.Len(t, e.Alarms(), 1)
	assert.Equal(t, `BEGIN:VEVENT
UID:test-alarm
BEGIN:VALARM
TRIGGER:-PT15M
ACTION:DISPLAY
DESCRIPTION:Reminder
END:VALARM
END:VEVENT
`, e.Serialize(unixConfig))
}

func TestGetProperties(t *testing.T) {
	e := NewEvent("test-props")
	e.AddAttendee("a@example.com")
	e.AddAttendee("b@example.com")
	e.SetTimeTransparency(TransparencyOpaque)

	assert.Len(t, e.GetProperties(ComponentPropertyAttendee), 2)
	assert.True(t, e.HasProperty(ComponentPropertyTransp))
	assert.False(t, e.HasProperty(ComponentPropertyUrl))
	assert.Nil(t, e.GetProperty(ComponentPropertyUrl))
	assert.True(t, strings.HasSuffix(e.GetProperty(ComponentPropertyAttendee).Value, "a@example.com"))
}
