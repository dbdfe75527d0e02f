package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// Schedule is the aggregate that owns one scheduling run: the session, room
// and speaker pools, the day calendar, the slot calendar, the conflict
// ledger and every room grid. It is not safe for concurrent use; run one
// placement call at a time and use separate Schedule instances to
// parallelize across independent events.
type Schedule struct {
	calendar *SlotCalendar
	days     []time.Time

	sessions []*models.Session
	rooms    []*models.Room
	speakers map[int]*models.Speaker

	ledger    *ConflictLedger
	grids     map[int]*RoomGrid
	roomsUsed map[int]*models.Room // rooms touched by a placement attempt

	scheduled    []*models.Session // insertion order preserved
	notScheduled []*models.Session // leftovers of the most recent day step

	initialized bool
}

// NewSchedule builds a Schedule from the five collaborator-supplied pools.
// Call Init exactly once before any placement.
func NewSchedule(starts, ends, days []time.Time, sessions []*models.Session, rooms []*models.Room, speakers []*models.Speaker) (*Schedule, error) {
	cal, err := NewSlotCalendar(starts, ends)
	if err != nil {
		return nil, err
	}

	dir := make(map[int]*models.Speaker, len(speakers))
	for _, sp := range speakers {
		dir[sp.ID] = sp
	}

	return &Schedule{
		calendar:  cal,
		days:      append([]time.Time(nil), days...),
		sessions:  sessions,
		rooms:     rooms,
		speakers:  dir,
		ledger:    NewConflictLedger(),
		grids:     make(map[int]*RoomGrid),
		roomsUsed: make(map[int]*models.Room),
	}, nil
}

// Init pre-allocates a grid for every room in the pool across every day.
// It must be called exactly once before any placement call.
func (s *Schedule) Init() error {
	if s.initialized {
		return errors.New("schedule already initialized")
	}
	for _, room := range s.rooms {
		grid := newRoomGrid(room)
		for day := range s.days {
			grid.initDay(day, s.calendar.Len())
		}
		s.grids[room.ID] = grid
	}
	s.initialized = true
	return nil
}

// CreateDaySchedule runs the single-day greedy step: sessions sorted by
// estimated capacity descending (stable), rooms tried in caller order,
// first accepting room+slot wins. Sessions no room accepts end up in the
// day's not-scheduled list.
func (s *Schedule) CreateDaySchedule(sessions []*models.Session, rooms []*models.Room, day int, date time.Time, slots []int) {
	s.notScheduled = nil

	ordered := append([]*models.Session(nil), sessions...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].EstCapacity > ordered[j].EstCapacity
	})

	for _, sess := range ordered {
		placed := false

		for _, room := range rooms {
			if _, ok := s.roomsUsed[room.ID]; !ok {
				s.roomsUsed[room.ID] = room
			}

			grid, ok := s.grids[room.ID]
			if !ok {
				// Caller supplied a room outside the constructed pool.
				grid = newRoomGrid(room)
				for d := range s.days {
					grid.initDay(d, s.calendar.Len())
				}
				s.grids[room.ID] = grid
			}

			if grid.Place(sess, day, date, slots, s.calendar, s.ledger) {
				s.scheduled = append(s.scheduled, sess)
				placed = true
				break
			}
		}

		if !placed {
			s.notScheduled = append(s.notScheduled, sess)
		}
	}
}

// CreateSchedule is the placement entry point. It resolves the selected
// times-of-day to slot indices once, then walks the selected days in order,
// feeding each day's leftovers to the next and stopping early once every
// session has landed. Sessions still unplaced after the last day are
// returned as unscheduled; the engine never backtracks or undoes a
// placement to make room for a later session.
func (s *Schedule) CreateSchedule(sessions []*models.Session, rooms []*models.Room, days []time.Time, times []time.Time) (placed, unplaced []*models.Session, err error) {
	if !s.initialized {
		return nil, nil, errors.New("schedule not initialized")
	}

	slots := s.calendar.SlotIndexes(times)

	dayIdx, err := s.dayIndexes(days)
	if err != nil {
		return nil, nil, err
	}

	remaining := make([]*models.Session, 0, len(sessions))
	for _, sess := range sessions {
		if !sess.Scheduled() {
			remaining = append(remaining, sess)
		}
	}

	before := len(s.scheduled)

	for _, day := range dayIdx {
		if len(remaining) == 0 {
			break
		}
		s.CreateDaySchedule(remaining, rooms, day, s.days[day], slots)
		remaining = s.notScheduled
	}

	return s.scheduled[before:], remaining, nil
}

// UsedRooms returns the rooms touched by a placement attempt so far,
// in ascending id order
func (s *Schedule) UsedRooms() []*models.Room {
	out := make([]*models.Room, 0, len(s.roomsUsed))
	for _, room := range s.roomsUsed {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Days returns a copy of the run's day calendar
func (s *Schedule) Days() []time.Time {
	return append([]time.Time(nil), s.days...)
}

// Calendar returns the shared slot calendar
func (s *Schedule) Calendar() *SlotCalendar {
	return s.calendar
}

// Speaker looks up a speaker by id
func (s *Schedule) Speaker(id int) (*models.Speaker, bool) {
	sp, ok := s.speakers[id]
	return sp, ok
}

// Grid returns the grid for a room id, if the room has one
func (s *Schedule) Grid(roomID int) (*RoomGrid, bool) {
	g, ok := s.grids[roomID]
	return g, ok
}

// Ledger exposes the run's conflict ledger for read-only inspection
func (s *Schedule) Ledger() *ConflictLedger {
	return s.ledger
}

// dayIndexes maps selected dates onto day-calendar indices, in calendar
// order. An empty selection means every day.
func (s *Schedule) dayIndexes(days []time.Time) ([]int, error) {
	if len(days) == 0 {
		idx := make([]int, len(s.days))
		for i := range s.days {
			idx[i] = i
		}
		return idx, nil
	}

	idx := make([]int, 0, len(days))
	for _, d := range days {
		found := -1
		for i, cd := range s.days {
			if sameDate(cd, d) {
				found = i
				break
			}
		}
		if found < 0 {
			return nil, fmt.Errorf("date %s is not in the run's day calendar", d.Format("2006-01-02"))
		}
		idx = append(idx, found)
	}
	return idx, nil
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
