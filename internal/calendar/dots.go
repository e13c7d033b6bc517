// Package calendar groups dated records by day into ordered calendar markers.
package calendar

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mmynk/housemate/internal/ownership"
)

// Marker colours. Selected is used for every marker on the selected day.
const (
	ColorMine     = "#FF9F1C"
	ColorMate     = "#7B61FF"
	ColorSelected = "#FFFFFF"
)

// Marker is one dot under a calendar day.
type Marker struct {
	Key           string `json:"key"`
	Color         string `json:"color"`
	SelectedColor string `json:"selectedDotColor"`
}

// Day holds the markers for one date, actor's own records first.
type Day struct {
	Dots []Marker `json:"dots"`
}

// Options names the fields BuildDotsWith reads from each record.
type Options struct {
	IDField      string
	DateField    string
	CreatedField string
	// OwnerFields is the probe order for the creator; see ownership.Classify.
	OwnerFields []string
}

// DefaultOptions matches the puzzle schema.
var DefaultOptions = Options{
	IDField:      "id",
	DateField:    "scheduledDate",
	CreatedField: "createdAt",
	OwnerFields:  []string{ownership.FieldLoginID, ownership.FieldMemberID},
}

// BuildDots builds the per-day markers for records using DefaultOptions.
func BuildDots[R ownership.Record](actorID string, records []R) map[string]Day {
	return BuildDotsWith(DefaultOptions, actorID, records)
}

type entry struct {
	key     string
	id      float64
	created string
	mine    bool
}

// BuildDotsWith groups records by the YYYY-MM-DD prefix of their date field
// and orders each day: the actor's records first, then records with a creation
// timestamp (ascending) before those without, then by id ascending. Nil
// records and records without a date are skipped and no day is ever present
// with zero markers.
func BuildDotsWith[R ownership.Record](opts Options, actorID string, records []R) map[string]Day {
	days := make(map[string]Day)
	if len(records) == 0 {
		return days
	}

	buckets := make(map[string][]entry)
	for _, rec := range records {
		if ownership.IsNil(rec) {
			continue
		}
		date := datePrefix(lookupString(rec, opts.DateField))
		if date == "" {
			continue
		}
		idValue, _ := rec.Lookup(opts.IDField)
		id := ownership.Normalize(idValue)
		buckets[date] = append(buckets[date], entry{
			key:     id + "-" + date,
			id:      numericID(id),
			created: lookupString(rec, opts.CreatedField),
			mine:    ownership.Classify(rec, actorID, opts.OwnerFields) == ownership.Me,
		})
	}

	for date, entries := range buckets {
		sort.SliceStable(entries, func(i, j int) bool {
			return less(entries[i], entries[j])
		})
		dots := make([]Marker, len(entries))
		for i, e := range entries {
			color := ColorMate
			if e.mine {
				color = ColorMine
			}
			dots[i] = Marker{Key: e.key, Color: color, SelectedColor: ColorSelected}
		}
		days[date] = Day{Dots: dots}
	}
	return days
}

func less(a, b entry) bool {
	if a.mine != b.mine {
		return a.mine
	}
	// Timestamped records precede untimestamped ones so the order stays total.
	if (a.created == "") != (b.created == "") {
		return a.created != ""
	}
	if a.created != b.created {
		return a.created < b.created
	}
	return a.id < b.id
}

func lookupString(rec ownership.Record, field string) string {
	if field == "" {
		return ""
	}
	v, ok := rec.Lookup(field)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func datePrefix(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func numericID(id string) float64 {
	f, err := strconv.ParseFloat(id, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}
