package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ics "github.com/powerdashhr/interview-ics"
)

const requestTOML = `
summary = "Interview"
description = "Round 1"
location = "Room 4"
join_url = "https://meet.example.com/abc"
start = "2024-01-01T10:00:00Z"
end = "2024-01-01T11:00:00Z"
uid_seed = "interview-42"

[organizer]
email = "a@x.com"
name = "A"

[[required]]
email = "b@x.com"
name = "B"

[[optional]]
email = "c@x.com"
`

func base() time.Time {
	return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRequest(t *testing.T) {
	r, err := loadRequest(writeFile(t, "req.toml", requestTOML))
	require.NoError(t, err)

	m, err := r.meeting(newTimeParser(base))
	require.NoError(t, err)
	assert.Equal(t, ics.Meeting{
		Organizer:   ics.Participant{Email: "a@x.com", Name: "A"},
		Required:    []ics.Participant{{Email: "b@x.com", Name: "B"}},
		Optional:    []ics.Participant{{Email: "c@x.com"}},
		Summary:     "Interview",
		Description: "Round 1",
		Location:    "Room 4",
		JoinURL:     "https://meet.example.com/abc",
		Start:       time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
	}, m)
	assert.Equal(t, "interview-42", r.UIDSeed)
}

func TestLoadRequest_Errors(t *testing.T) {
	_, err := loadRequest(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, err = loadRequest(writeFile(t, "bad.toml", "summary = "))
	assert.Error(t, err)

	_, err = loadRequest(writeFile(t, "unknown.toml", "summary = \"x\"\ntimezone = \"UTC\"\n"))
	assert.ErrorContains(t, err, "unknown keys")
}

func TestTimeParser(t *testing.T) {
	p := newTimeParser(base)

	got, err := p.Parse("2024-03-01T10:00:00+01:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)))

	got, err = p.Parse("  ")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	got, err = p.Parse("tomorrow")
	require.NoError(t, err)
	y, m, d := got.Date()
	assert.Equal(t, []int{2024, 1, 2}, []int{y, int(m), d})

	_, err = p.Parse("zzzz")
	assert.ErrorIs(t, err, errUnrecognisedTime)
}
