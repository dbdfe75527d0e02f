package scheduler

import (
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// RoomGrid is one room's per-day array of slot cells. A nil cell is empty;
// an occupied cell holds the session placed there.
type RoomGrid struct {
	Room  *models.Room
	cells map[int][]*models.Session // day index -> one cell per calendar slot
}

func newRoomGrid(room *models.Room) *RoomGrid {
	return &RoomGrid{
		Room:  room,
		cells: make(map[int][]*models.Session),
	}
}

func (g *RoomGrid) initDay(day, numSlots int) {
	if _, ok := g.cells[day]; !ok {
		g.cells[day] = make([]*models.Session, numSlots)
	}
}

// CellFree reports whether the (day, slot) cell exists and is empty
func (g *RoomGrid) CellFree(day, slot int) bool {
	row, ok := g.cells[day]
	return ok && slot < len(row) && row[slot] == nil
}

// SessionAt returns the session occupying (day, slot), or nil
func (g *RoomGrid) SessionAt(day, slot int) *models.Session {
	row, ok := g.cells[day]
	if !ok || slot >= len(row) {
		return nil
	}
	return row[slot]
}

// Compatible decides whether the session may ever occupy this room,
// independent of time. No side effects.
//
// A room whose equipment is still empty is a wildcard: it accepts any
// session and will adopt that session's equipment on first placement.
func (g *RoomGrid) Compatible(sess *models.Session) bool {
	if len(sess.Equipment) > 0 && g.Room.Adopted() {
		if !subset(sess.Equipment, g.Room.Equipment) {
			return false
		}
	}
	return sess.EstCapacity <= g.Room.MaxCapacity
}

// Place tries the eligible slot indices in order and places the session in
// the first slot that is free, long enough, and conflict-free venue-wide.
// On success it stamps the session, occupies the cell, adopts the room's
// format/equipment if still unset, and commits the conflict ledger entry.
// Rejected slots leave no state behind.
func (g *RoomGrid) Place(sess *models.Session, day int, date time.Time, slots []int, cal *SlotCalendar, ledger *ConflictLedger) bool {
	if !g.Compatible(sess) {
		return false
	}

	for _, i := range slots {
		switch {
		case !g.CellFree(day, i):
			continue
		case cal.SlotMinutes(i) < sess.Duration:
			continue
		case ledger.SpeakerConflict(day, i, sess.Speakers):
			continue
		case ledger.TopicConflict(day, i, sess.Topic):
			continue
		case ledger.SponsorConflict(day, i, sess.Sponsors):
			continue
		}

		start, end := cal.Window(i, date)
		sess.Assign(g.Room.ID, start, end)
		g.cells[day][i] = sess

		if !g.Room.Adopted() {
			g.Room.Adopt(sess.Format, sess.Equipment)
		}

		ledger.Commit(day, i, sess)
		return true
	}

	return false
}

// subset reports whether every element of needles appears in haystack
func subset(needles, haystack []string) bool {
	for _, n := range needles {
		found := false
		for _, h := range haystack {
			if n == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
