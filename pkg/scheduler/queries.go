package scheduler

import (
	"sort"
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// GetScheduledSessions returns the sessions placed so far, in placement order
func (s *Schedule) GetScheduledSessions() []*models.Session {
	return append([]*models.Session(nil), s.scheduled...)
}

// GetUnscheduledSessions returns every pool session not yet placed,
// preserving pool order
func (s *Schedule) GetUnscheduledSessions() []*models.Session {
	var out []*models.Session
	for _, sess := range s.sessions {
		placed := false
		for _, sch := range s.scheduled {
			if sch.ID == sess.ID {
				placed = true
				break
			}
		}
		if !placed {
			out = append(out, sess)
		}
	}
	return out
}

// GetFilteredSessions narrows the unscheduled sessions by type, format,
// sponsors and topic. An empty filter list leaves that field unconstrained;
// the sponsor filter requires the session's sponsors to be a subset of it.
func (s *Schedule) GetFilteredSessions(types, formats, sponsors, topics []string) []*models.Session {
	var out []*models.Session
	for _, sess := range s.GetUnscheduledSessions() {
		if len(types) > 0 && !contains(types, sess.Type) {
			continue
		}
		if len(formats) > 0 && !contains(formats, sess.Format) {
			continue
		}
		if len(sponsors) > 0 && !subset(sess.Sponsors, sponsors) {
			continue
		}
		if len(topics) > 0 && !contains(topics, sess.Topic) {
			continue
		}
		out = append(out, sess)
	}
	return out
}

// GetSessionMinCapacity returns the smallest estimated capacity among the
// given sessions, or 0 for an empty list
func (s *Schedule) GetSessionMinCapacity(sessions []*models.Session) int {
	min := 0
	for i, sess := range sessions {
		if i == 0 || sess.EstCapacity < min {
			min = sess.EstCapacity
		}
	}
	return min
}

// GetRoomMaxCapacity returns the largest capacity in the room pool
func (s *Schedule) GetRoomMaxCapacity() int {
	max := 0
	for _, room := range s.rooms {
		if room.MaxCapacity > max {
			max = room.MaxCapacity
		}
	}
	return max
}

// GetFilteredRoomAvailability counts, for every room passing the supplied
// filters, the open slot instances across the selected days and times.
// Rooms with no open matching instance are omitted.
//
// The capacity test is deliberately two-sided: a room must not exceed the
// requested capacity and must hold the smallest selected session.
func (s *Schedule) GetFilteredRoomAvailability(days, times []time.Time, properties, equipment []string, capacity int, formats []string, selected []*models.Session) []models.RoomAvailability {
	minCap := s.GetSessionMinCapacity(selected)
	slots := s.calendar.SlotIndexes(times)
	dayIdx := s.knownDayIndexes(days)

	var out []models.RoomAvailability
	for _, room := range s.rooms {
		if len(equipment) > 0 && !subset(room.Equipment, equipment) {
			continue
		}
		if room.MaxCapacity > capacity || room.MaxCapacity < minCap {
			continue
		}
		if len(formats) > 0 && room.Format != "" && !contains(formats, room.Format) {
			continue
		}
		if len(properties) > 0 && !contains(properties, room.Property) {
			continue
		}

		grid, ok := s.grids[room.ID]
		if !ok {
			continue
		}

		open := 0
		for _, day := range dayIdx {
			for _, slot := range slots {
				if grid.CellFree(day, slot) {
					open++
				}
			}
		}
		if open > 0 {
			out = append(out, models.RoomAvailability{Room: *room, OpenSlots: open})
		}
	}
	return out
}

// GetRoomFormats returns the distinct adopted formats across the room pool
func (s *Schedule) GetRoomFormats() []string {
	set := make(map[string]struct{})
	for _, room := range s.rooms {
		if room.Format != "" {
			set[room.Format] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetRoomEquipment returns the distinct adopted equipment across the room pool
func (s *Schedule) GetRoomEquipment() []string {
	set := make(map[string]struct{})
	for _, room := range s.rooms {
		for _, eq := range room.Equipment {
			set[eq] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetRoomProperties returns the distinct properties across the room pool
func (s *Schedule) GetRoomProperties() []string {
	set := make(map[string]struct{})
	for _, room := range s.rooms {
		if room.Property != "" {
			set[room.Property] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetSessionFormats returns the distinct formats of unscheduled sessions
func (s *Schedule) GetSessionFormats() []string {
	set := make(map[string]struct{})
	for _, sess := range s.GetUnscheduledSessions() {
		if sess.Format != "" {
			set[sess.Format] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetSessionTopics returns the distinct topics of unscheduled sessions
func (s *Schedule) GetSessionTopics() []string {
	set := make(map[string]struct{})
	for _, sess := range s.GetUnscheduledSessions() {
		if sess.Topic != "" {
			set[sess.Topic] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetSessionTypes returns the distinct types of unscheduled sessions
func (s *Schedule) GetSessionTypes() []string {
	set := make(map[string]struct{})
	for _, sess := range s.GetUnscheduledSessions() {
		if sess.Type != "" {
			set[sess.Type] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// GetSessionSponsors returns the distinct sponsors of unscheduled sessions
func (s *Schedule) GetSessionSponsors() []string {
	set := make(map[string]struct{})
	for _, sess := range s.GetUnscheduledSessions() {
		for _, sp := range sess.Sponsors {
			set[sp] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// knownDayIndexes is the lenient counterpart of dayIndexes used by read-only
// queries: selected dates outside the calendar are skipped, not errors.
func (s *Schedule) knownDayIndexes(days []time.Time) []int {
	if len(days) == 0 {
		idx := make([]int, len(s.days))
		for i := range s.days {
			idx[i] = i
		}
		return idx
	}
	var idx []int
	for _, d := range days {
		for i, cd := range s.days {
			if sameDate(cd, d) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
