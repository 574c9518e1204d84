package ics

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
}

func testMeeting() Meeting {
	return Meeting{
		Organizer: Participant{Email: "a@x.com", Name: "A"},
		Required: []Participant{
			{Email: "b@x.com", Name: "B"},
			{Email: "   ", Name: "Ghost"},
		},
		Optional:    []Participant{{Email: " c@x.com "}},
		Summary:     "Interview",
		Description: "Round 1",
		Start:       time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		Location:    "Room 4",
		JoinURL:     "https://meet.example.com/abc",
	}
}

func TestBuilder_GoldenDocuments(t *testing.T) {
	testDir := "testdata"
	actualDir := filepath.Join(testDir, "actual")
	b := NewBuilder(Settings{}, WithClock(fixedClock))

	tests := []struct {
		filename string
		build    func() ([]byte, error)
	}{
		{
			filename: "invite.golden.ics",
			build: func() ([]byte, error) {
				return b.BuildInvite(Invite{Meeting: testMeeting(), UID: "interview-42@powerdashhr.com"})
			},
		},
		{
			filename: "cancellation.golden.ics",
			build: func() ([]byte, error) {
				return b.BuildCancellation(Cancellation{Meeting: testMeeting(), UID: "interview-42@powerdashhr.com", Sequence: 1})
			},
		},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("compare built document: %s", tt.filename), func(t *testing.T) {
			//given
			expected, err := os.ReadFile(filepath.Join(testDir, tt.filename))
			require.NoError(t, err)

			//when
			out, err := tt.build()
			require.NoError(t, err)

			//then
			// golden files are stored with LF endings
			got := strings.ReplaceAll(string(out), "\r\n", "\n")
			if diff := cmp.Diff(string(expected), got); diff != "" {
				if err := os.MkdirAll(actualDir, 0755); err != nil {
					t.Logf("failed to create actual dir: %v", err)
				}
				if err := os.WriteFile(filepath.Join(actualDir, tt.filename), out, 0644); err != nil {
					t.Logf("failed to write actual file: %v", err)
				}
				t.Error(diff)
			}
		})
	}
}
