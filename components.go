package ics

import (
	"io"
	"strconv"
	"strings"
	"time"
)

// Component To determine what this is please use a type switch or typecast to each of:
// - *VEvent
// - *VAlarm
type Component interface {
	SubComponents() []Component
	SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error
}

var (
	_ Component = (*VEvent)(nil)
	_ Component = (*VAlarm)(nil)
)

type IANAProperty struct {
	BaseProperty
}

type ComponentBase struct {
	Properties []IANAProperty
	Components []Component
}

func (cb *ComponentBase) SubComponents() []Component {
	return cb.Components
}

func (cb *ComponentBase) serializeThis(writer io.Writer, componentType ComponentType, serialConfig *SerializationConfiguration) error {
	if _, err := io.WriteString(writer, "BEGIN:"+string(componentType)+serialConfig.NewLine); err != nil {
		return err
	}
	for _, p := range cb.Properties {
		if err := p.serialize(writer, serialConfig); err != nil {
			return err
		}
	}
	for _, c := range cb.Components {
		if err := c.SerializeTo(writer, serialConfig); err != nil {
			return err
		}
	}
	_, err := io.WriteString(writer, "END:"+string(componentType)+serialConfig.NewLine)
	return err
}

func NewComponent(uniqueId string) ComponentBase {
	return ComponentBase{
		Properties: []IANAProperty{
			{BaseProperty{IANAToken: string(ComponentPropertyUniqueId), Value: uniqueId}},
		},
	}
}

// GetProperty returns the first match for the particular property you're after.
func (cb *ComponentBase) GetProperty(componentProperty ComponentProperty) *IANAProperty {
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			return &cb.Properties[i]
		}
	}
	return nil
}

// GetProperties returns all matches for the particular property you're after.
func (cb *ComponentBase) GetProperties(componentProperty ComponentProperty) []*IANAProperty {
	var result []*IANAProperty
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(componentProperty) {
			result = append(result, &cb.Properties[i])
		}
	}
	return result
}

// HasProperty returns true if a component property is in the component.
func (cb *ComponentBase) HasProperty(componentProperty ComponentProperty) bool {
	return cb.GetProperty(componentProperty) != nil
}

// SetProperty replaces the first match for the particular property you're
// setting, otherwise appends it.  A replaced property keeps its position.
func (cb *ComponentBase) SetProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(property) {
			cb.Properties[i].Value = value
			cb.Properties[i].Parameters = toKeyValues(params)
			return
		}
	}
	cb.AddProperty(property, value, params...)
}

// AddProperty appends a property
func (cb *ComponentBase) AddProperty(property ComponentProperty, value string, params ...PropertyParameter) {
	cb.Properties = append(cb.Properties, IANAProperty{
		BaseProperty{
			IANAToken:  string(property),
			Value:      value,
			Parameters: toKeyValues(params),
		},
	})
}

const (
	icalTimestampFormatUtc = "20060102T150405Z"
)

// FormatInstant renders t as an RFC 5545 UTC DATE-TIME (form #2 of section
// 3.3.5).  Times in other locations are converted first and sub-second
// precision is truncated.
func FormatInstant(t time.Time) string {
	return t.UTC().Format(icalTimestampFormatUtc)
}

func (cb *ComponentBase) SetDtStampTime(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtstamp, FormatInstant(t), params...)
}

func (cb *ComponentBase) SetSequence(seq int, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertySequence, strconv.Itoa(seq), params...)
}

func (cb *ComponentBase) SetStartAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtStart, FormatInstant(t), params...)
}

func (cb *ComponentBase) SetEndAt(t time.Time, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDtEnd, FormatInstant(t), params...)
}

// SetSummary, SetDescription and SetLocation take TEXT that is already
// escaped with EscapeText.

func (cb *ComponentBase) SetSummary(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertySummary, s, params...)
}

func (cb *ComponentBase) SetDescription(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyDescription, s, params...)
}

func (cb *ComponentBase) SetLocation(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyLocation, s, params...)
}

func (cb *ComponentBase) SetStatus(s ObjectStatus, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyStatus, string(s), params...)
}

func (cb *ComponentBase) SetURL(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyUrl, s, params...)
}

func (cb *ComponentBase) SetOrganizer(s string, params ...PropertyParameter) {
	cb.SetProperty(ComponentPropertyOrganizer, mailto(s), params...)
}

func (cb *ComponentBase) AddAttendee(s string, params ...PropertyParameter) {
	cb.AddProperty(ComponentPropertyAttendee, mailto(s), params...)
}

func mailto(s string) string {
	if !strings.HasPrefix(s, "mailto:") {
		s = "mailto:" + s
	}
	return s
}

type Attendee struct {
	IANAProperty
}

func (p *Attendee) Email() string {
	return strings.TrimPrefix(p.Value, "mailto:")
}

func (p *Attendee) Role() ParticipationRole {
	v, _ := p.Parameter(ParameterRole)
	return ParticipationRole(v)
}

func (p *Attendee) ParticipationStatus() ParticipationStatus {
	v, _ := p.Parameter(ParameterParticipationStatus)
	return ParticipationStatus(v)
}

func (cb *ComponentBase) Attendees() []*Attendee {
	var r []*Attendee
	for i := range cb.Properties {
		if cb.Properties[i].IANAToken == string(ComponentPropertyAttendee) {
			r = append(r, &Attendee{cb.Properties[i]})
		}
	}
	return r
}

func (cb *ComponentBase) Id() string {
	p := cb.GetProperty(ComponentPropertyUniqueId)
	if p != nil {
		return p.Value
	}
	return ""
}

type VEvent struct {
	ComponentBase
}

func (event *VEvent) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return event.ComponentBase.serializeThis(w, ComponentVEvent, serialConfig)
}

func (event *VEvent) Serialize(serialConfig *SerializationConfiguration) string {
	b := &strings.Builder{}
	_ = event.ComponentBase.serializeThis(b, ComponentVEvent, serialConfig)
	return b.String()
}

func NewEvent(uniqueId string) *VEvent {
	return &VEvent{
		NewComponent(uniqueId),
	}
}

func (event *VEvent) AddAlarm() *VAlarm {
	a := &VAlarm{}
	event.Components = append(event.Components, a)
	return a
}

func (event *VEvent) Alarms() []*VAlarm {
	var r []*VAlarm
	for i := range event.Components {
		switch alarm := event.Components[i].(type) {
		case *VAlarm:
			r = append(r, alarm)
		}
	}
	return r
}

type TimeTransparency string

const (
	TransparencyOpaque      TimeTransparency = "OPAQUE" // default
	TransparencyTransparent TimeTransparency = "TRANSPARENT"
)

func (event *VEvent) SetTimeTransparency(v TimeTransparency, params ...PropertyParameter) {
	event.SetProperty(ComponentPropertyTransp, string(v), params...)
}

type VAlarm struct {
	ComponentBase
}

func (c *VAlarm) SerializeTo(w io.Writer, serialConfig *SerializationConfiguration) error {
	return c.ComponentBase.serializeThis(w, ComponentVAlarm, serialConfig)
}

func (c *VAlarm) SetAction(a Action, params ...PropertyParameter) {
	c.SetProperty(ComponentPropertyAction, string(a), params...)
}

func (c *VAlarm) SetTrigger(s string, params ...PropertyParameter) {
	c.SetProperty(ComponentPropertyTrigger, s, params...)
}
