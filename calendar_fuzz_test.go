//go:build go1.18
// +build go1.18

package ics

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func FuzzEscapeText(f *testing.F) {
	for _, s := range []string{"", "a;b,c", `x\y`, "one\r\ntwo", "Doe, Jane"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		escaped := EscapeText(s)
		if strings.ContainsAny(escaped, "\r\n") {
			t.Errorf("escaped text %q contains a line break", escaped)
		}
		if want := strings.NewReplacer("\r\n", "\n", "\r", "\n").Replace(s); UnescapeText(escaped) != want {
			t.Errorf("round trip of %q gave %q", s, UnescapeText(escaped))
		}
	})
}

func FuzzBuildInvite(f *testing.F) {
	f.Add("Interview", "Round 1", "Room 4", "B", "https://meet.example.com/abc")
	f.Add("Panel; final", "line\r\nbreak", "", "Doe, \"Jane\"", "")
	b := NewBuilder(Settings{}, WithClock(fixedClock))
	f.Fuzz(func(t *testing.T, summary, description, location, name, url string) {
		m := testMeeting()
		m.Summary = summary
		m.Description = description
		m.Location = location
		m.Required = []Participant{{Email: "b@x.com", Name: name}}
		m.JoinURL = url
		out, err := b.BuildInvite(Invite{Meeting: m, UID: "fuzz@x"})
		if err != nil {
			return
		}
		if !strings.HasSuffix(string(out), "END:VCALENDAR\r\n") {
			t.Fatalf("document not terminated: %q", out)
		}
		for _, line := range strings.Split(strings.TrimSuffix(string(out), "\r\n"), "\r\n") {
			if strings.ContainsAny(line, "\r\n") {
				t.Fatalf("stray line break in %q", line)
			}
			if len(line) > 75 {
				t.Fatalf("line longer than 75 octets: %q", line)
			}
			if utf8.ValidString(summary+description+location+name+url) && !utf8.ValidString(line) {
				t.Fatalf("fold split a rune: %q", line)
			}
		}
	})
}
