package catalog

import (
	"sort"
	"strings"
	"time"

	"ms-storefront/internal/models"
	"ms-storefront/internal/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type SortKey string

const (
	SortByDate     SortKey = "date"
	SortByTitle    SortKey = "title"
	SortByLocation SortKey = "location"
)

// DefaultSort is what the events page starts with.
const DefaultSort = SortByDate

// Filter holds the three independent listing criteria.
type Filter struct {
	Query    string  `json:"q"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// Apply derives the listing view. It never modifies events and returns a new slice.
// Ties, and unknown sort keys, keep catalog order.
func Apply(events []models.Event, f Filter) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, e := range events {
		if f.matchesQuery(e) && f.matchesCategory(e) {
			out = append(out, e)
		}
	}

	switch f.Sort {
	case SortByDate:
		sortByDate(out)
	case SortByTitle:
		sortByText(out, func(e models.Event) string { return e.Title })
	case SortByLocation:
		sortByText(out, func(e models.Event) string { return e.Location })
	}
	return out
}

func (f Filter) matchesQuery(e models.Event) bool {
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Description), q) ||
		strings.Contains(strings.ToLower(e.Location), q)
}

// matchesCategory accepts a category id ("food") or the free-text category itself ("Food & Drink").
func (f Filter) matchesCategory(e models.Event) bool {
	if f.Category == "" || f.Category == models.CategoryAll {
		return true
	}
	if e.Category == f.Category {
		return true
	}
	if c, ok := models.CategoryByID(f.Category); ok {
		return e.Category == c.Name
	}
	return false
}

// sortByDate orders by start date ascending. Unparseable dates go last.
func sortByDate(events []models.Event) {
	starts := make(map[string]time.Time, len(events))
	valid := make(map[string]bool, len(events))
	for _, e := range events {
		if t, err := utils.ParseCalendarDate(e.StartDate); err == nil {
			starts[e.StartDate] = t
			valid[e.StartDate] = true
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].StartDate, events[j].StartDate
		switch {
		case valid[a] && valid[b]:
			return starts[a].Before(starts[b])
		case valid[a]:
			return true
		default:
			return false
		}
	})
}

func sortByText(events []models.Event, key func(models.Event) string) {
	// Collators keep internal buffers; one per call.
	col := collate.New(language.English)
	sort.SliceStable(events, func(i, j int) bool {
		return col.CompareString(key(events[i]), key(events[j])) < 0
	})
}
