package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Phrase pools for generated titles. Each pool leans on one keyword list so
// a seeded store shows all three categories.
var (
	workTitles = []string{
		"Sprint planning meeting",
		"Client onboarding call",
		"Quarterly report deadline",
		"Project kickoff",
		"Board presentation dry run",
		"Scrum of scrums",
	}
	personalTitles = []string{
		"Mom's birthday dinner",
		"Family reunion",
		"Anniversary lunch",
		"Beach vacation planning",
		"Housewarming party",
		"Drinks with friends",
	}
	otherTitles = []string{
		"Dentist appointment",
		"Car inspection",
		"Gym session",
		"Grocery run",
		"Library book return",
	}
	notesPool = []string{
		"",
		"bring the notes from last time",
		"don't be late",
		"reschedule if it rains",
	}
)

// Event is the JSON payload submitted to POST /events.
type Event struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Notes string `json:"notes,omitempty"`
}

// generateEvents creates n events with uuid-salted titles spread over the
// next 30 days. The salt keeps titles unique without disturbing the keyword
// the category derives from.
func generateEvents(n int, rng *rand.Rand) []Event {
	pools := [][]string{workTitles, personalTitles, otherTitles}

	events := make([]Event, n)
	now := time.Now()
	for i := range events {
		pool := pools[i%len(pools)]
		title := pool[rng.Intn(len(pool))]

		day := now.AddDate(0, 0, rng.Intn(30))
		events[i] = Event{
			Title: fmt.Sprintf("%s [%s]", title, uuid.New().String()[:8]),
			Date:  day.Format("2006-01-02"),
			Time:  fmt.Sprintf("%02d:%02d", rng.Intn(24), rng.Intn(60)),
			Notes: notesPool[rng.Intn(len(notesPool))],
		}
	}
	return events
}
