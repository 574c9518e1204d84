package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	ics "github.com/powerdashhr/interview-ics"
)

type participant struct {
	Email string `toml:"email"`
	Name  string `toml:"name"`
}

// request is the TOML description of one interview.
type request struct {
	Organizer   participant   `toml:"organizer"`
	Required    []participant `toml:"required"`
	Optional    []participant `toml:"optional"`
	Summary     string        `toml:"summary"`
	Description string        `toml:"description"`
	Location    string        `toml:"location"`
	JoinURL     string        `toml:"join_url"`
	Start       string        `toml:"start"`
	End         string        `toml:"end"`
	UID         string        `toml:"uid"`
	UIDSeed     string        `toml:"uid_seed"`
	Sequence    int           `toml:"sequence"`
}

func loadRequest(path string) (*request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}
	var r request
	md, err := toml.Decode(string(data), &r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("request file %s has unknown keys %v", path, undecoded)
	}
	return &r, nil
}

// timeParser accepts RFC 3339 timestamps and English phrases such as
// "tomorrow at 10am", resolved against now.
type timeParser struct {
	w   *when.Parser
	now func() time.Time
}

func newTimeParser(now func() time.Time) *timeParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &timeParser{w: w, now: now}
}

var errUnrecognisedTime = errors.New("unrecognised time")

// Parse returns the zero time for blank input; the builder reports the
// missing field.
func (p *timeParser) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	r, err := p.w.Parse(s, p.now())
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, errUnrecognisedTime)
	}
	return r.Time, nil
}

func (r *request) meeting(p *timeParser) (ics.Meeting, error) {
	start, err := p.Parse(r.Start)
	if err != nil {
		return ics.Meeting{}, err
	}
	end, err := p.Parse(r.End)
	if err != nil {
		return ics.Meeting{}, err
	}
	return ics.Meeting{
		Organizer:   ics.Participant(r.Organizer),
		Required:    participants(r.Required),
		Optional:    participants(r.Optional),
		Summary:     r.Summary,
		Description: r.Description,
		Location:    r.Location,
		JoinURL:     r.JoinURL,
		Start:       start,
		End:         end,
	}, nil
}

func participants(in []participant) []ics.Participant {
	out := make([]ics.Participant, 0, len(in))
	for _, p := range in {
		out = append(out, ics.Participant(p))
	}
	return out
}
