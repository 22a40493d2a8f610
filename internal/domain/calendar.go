package domain

import (
	"sort"
	"time"
)

// CalendarDay is the computed occupancy view for one calendar date. It is
// never persisted; it exists only inside an Availability window.
type CalendarDay struct {
	Date           time.Time
	ScheduledItems []ScheduledItem
	// Capacity is the maximum items per destination per day, owned by
	// caller configuration rather than baked into the calculator.
	Capacity  int
	occupancy map[string]int
}

// Available reports whether any destination could still book this day,
// i.e. the day holds fewer total items than capacity allows somewhere.
func (d CalendarDay) Available(destination string) bool {
	return d.occupancy[destination] < d.Capacity
}

// OccupiedDestinations returns the destinations already booked on this day,
// sorted for deterministic output.
func (d CalendarDay) OccupiedDestinations() []string {
	return sortedKeys(d.occupancy)
}

// Occupancy returns the booked-item count for a destination on this day.
func (d CalendarDay) Occupancy(destination string) int {
	return d.occupancy[destination]
}

// Availability is the computed calendar window: one CalendarDay per date in
// the inclusive [Start, End] range, ascending.
type Availability struct {
	Start time.Time
	End   time.Time
	Days  []CalendarDay

	index map[time.Time]int
}

// ComputeAvailability builds the occupancy view for [start, end] from the
// scheduled items whose effective date falls in range. Pure function of its
// inputs: no clock reads, no side effects.
func ComputeAvailability(start, end time.Time, items []ScheduledItem, capacity int) (*Availability, error) {
	start = NormalizeDate(start)
	end = NormalizeDate(end)
	if start.After(end) {
		return nil, ErrInvalidRange
	}
	if capacity <= 0 {
		capacity = 1
	}

	span := int(end.Sub(start).Hours()/24) + 1
	avail := &Availability{
		Start: start,
		End:   end,
		Days:  make([]CalendarDay, 0, span),
		index: make(map[time.Time]int, span),
	}
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		avail.index[day] = len(avail.Days)
		avail.Days = append(avail.Days, CalendarDay{
			Date:      day,
			Capacity:  capacity,
			occupancy: make(map[string]int),
		})
	}

	for _, item := range items {
		date := NormalizeDate(item.Date)
		i, ok := avail.index[date]
		if !ok {
			continue
		}
		avail.Days[i].ScheduledItems = append(avail.Days[i].ScheduledItems, item)
		avail.Days[i].occupancy[item.Destination]++
	}
	for i := range avail.Days {
		sortItems(avail.Days[i].ScheduledItems)
	}
	return avail, nil
}

// Day looks up the CalendarDay for a date inside the window.
func (a *Availability) Day(date time.Time) (CalendarDay, bool) {
	i, ok := a.index[NormalizeDate(date)]
	if !ok {
		return CalendarDay{}, false
	}
	return a.Days[i], true
}

// HasCapacity reports whether the destination can still be booked on date.
// Dates outside the window have no capacity.
func (a *Availability) HasCapacity(date time.Time, destination string) bool {
	day, ok := a.Day(date)
	if !ok {
		return false
	}
	return day.Available(destination)
}

// reserve books one slot in the in-memory view so a single routing decision
// cannot overlap itself while being assembled.
func (a *Availability) reserve(date time.Time, destination string, item ScheduledItem) {
	i, ok := a.index[NormalizeDate(date)]
	if !ok {
		return
	}
	a.Days[i].occupancy[destination]++
	a.Days[i].ScheduledItems = append(a.Days[i].ScheduledItems, item)
}

// DefaultWindow returns the conventional query window for a reference time:
// the Sunday of its UTC week through windowDays-1 days later.
func DefaultWindow(now time.Time, windowDays int) (time.Time, time.Time) {
	if windowDays <= 0 {
		windowDays = 28
	}
	day := NormalizeDate(now)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, windowDays-1)
}

func sortItems(items []ScheduledItem) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].Date.Equal(items[j].Date) {
			return items[i].Date.Before(items[j].Date)
		}
		if items[i].Destination != items[j].Destination {
			return items[i].Destination < items[j].Destination
		}
		return items[i].DecisionID.String() < items[j].DecisionID.String()
	})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
