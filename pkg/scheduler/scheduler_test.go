package scheduler

import (
	"testing"
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

func clock(hour, min int) time.Time {
	return time.Date(1, 1, 1, hour, min, 0, 0, time.UTC)
}

func date(day int) time.Time {
	return time.Date(2026, 4, day, 0, 0, 0, 0, time.UTC)
}

// newTestSchedule builds an initialized Schedule with 75-minute slots at
// 7:00 and 8:30 across the given days
func newTestSchedule(t *testing.T, days []time.Time, sessions []*models.Session, rooms []*models.Room) *Schedule {
	t.Helper()

	starts := []time.Time{clock(7, 0), clock(8, 30)}
	ends := []time.Time{clock(8, 15), clock(9, 45)}

	s, err := NewSchedule(starts, ends, days, sessions, rooms, nil)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func TestCreateSchedule_CapacityOrder(t *testing.T) {
	// One room, one day: the higher-capacity session must win the first
	// slot regardless of input order.
	for name, order := range map[string][2]int{"big first": {0, 1}, "small first": {1, 0}} {
		t.Run(name, func(t *testing.T) {
			big := &models.Session{ID: 1, Duration: 60, EstCapacity: 100, Title: "Big", Topic: "CS", Speakers: []int{1}}
			small := &models.Session{ID: 2, Duration: 60, EstCapacity: 50, Title: "Small", Topic: "CS", Speakers: []int{2}}
			pool := [2]*models.Session{big, small}
			sessions := []*models.Session{pool[order[0]], pool[order[1]]}

			room := &models.Room{ID: 1, MaxCapacity: 200, Name: "Main Hall"}
			days := []time.Time{date(13)}
			s := newTestSchedule(t, days, sessions, []*models.Room{room})

			placed, unplaced, err := s.CreateSchedule(sessions, []*models.Room{room}, days, []time.Time{clock(7, 0)})
			if err != nil {
				t.Fatalf("CreateSchedule failed: %v", err)
			}

			if len(placed) != 1 || placed[0].ID != big.ID {
				t.Fatalf("expected session %d to be placed, got %v", big.ID, placed)
			}
			if len(unplaced) != 1 || unplaced[0].ID != small.ID {
				t.Fatalf("expected session %d to be unplaced, got %v", small.ID, unplaced)
			}
		})
	}
}

func TestCreateSchedule_SpeakerConflictAcrossRooms(t *testing.T) {
	// Two free rooms, one slot: a shared speaker must keep the second
	// session out even though a room is open.
	first := &models.Session{ID: 1, Duration: 60, EstCapacity: 20, Topic: "CS", Speakers: []int{7}}
	second := &models.Session{ID: 2, Duration: 60, EstCapacity: 10, Topic: "BS", Speakers: []int{7}}
	sessions := []*models.Session{first, second}

	rooms := []*models.Room{
		{ID: 1, MaxCapacity: 50, Name: "Room 1"},
		{ID: 2, MaxCapacity: 50, Name: "Room 2"},
	}

	days := []time.Time{date(13)}
	s := newTestSchedule(t, days, sessions, rooms)

	placed, unplaced, err := s.CreateSchedule(sessions, rooms, days, []time.Time{clock(7, 0)})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	if len(placed) != 1 || placed[0].ID != first.ID {
		t.Fatalf("expected only session %d placed, got %d placed", first.ID, len(placed))
	}
	if len(unplaced) != 1 || unplaced[0].ID != second.ID {
		t.Fatalf("expected session %d unplaced, got %v", second.ID, unplaced)
	}

	got := s.GetUnscheduledSessions()
	if len(got) != 1 || got[0].ID != second.ID {
		t.Errorf("GetUnscheduledSessions: expected [%d], got %d sessions", second.ID, len(got))
	}
}

func TestCreateSchedule_TopicAndSponsorConflicts(t *testing.T) {
	rooms := []*models.Room{
		{ID: 1, MaxCapacity: 50, Name: "Room 1"},
		{ID: 2, MaxCapacity: 50, Name: "Room 2"},
	}

	t.Run("shared topic", func(t *testing.T) {
		a := &models.Session{ID: 1, Duration: 60, EstCapacity: 20, Topic: "History", Speakers: []int{1}}
		b := &models.Session{ID: 2, Duration: 60, EstCapacity: 10, Topic: "History", Speakers: []int{2}}
		sessions := []*models.Session{a, b}
		days := []time.Time{date(13)}

		s := newTestSchedule(t, days, sessions, rooms)
		placed, _, err := s.CreateSchedule(sessions, rooms, days, []time.Time{clock(7, 0)})
		if err != nil {
			t.Fatalf("CreateSchedule failed: %v", err)
		}
		if len(placed) != 1 {
			t.Errorf("expected 1 placed with shared topic, got %d", len(placed))
		}
	})

	t.Run("shared sponsor", func(t *testing.T) {
		a := &models.Session{ID: 1, Duration: 60, EstCapacity: 20, Topic: "CS", Sponsors: []string{"ASU"}, Speakers: []int{1}}
		b := &models.Session{ID: 2, Duration: 60, EstCapacity: 10, Topic: "BS", Sponsors: []string{"ASU", "Fulton"}, Speakers: []int{2}}
		sessions := []*models.Session{a, b}
		days := []time.Time{date(13)}

		s := newTestSchedule(t, days, sessions, rooms)
		placed, _, err := s.CreateSchedule(sessions, rooms, days, []time.Time{clock(7, 0)})
		if err != nil {
			t.Fatalf("CreateSchedule failed: %v", err)
		}
		if len(placed) != 1 {
			t.Errorf("expected 1 placed with intersecting sponsors, got %d", len(placed))
		}
	})

	t.Run("no sponsors never conflicts", func(t *testing.T) {
		a := &models.Session{ID: 1, Duration: 60, EstCapacity: 20, Topic: "CS", Sponsors: []string{"ASU"}, Speakers: []int{1}}
		b := &models.Session{ID: 2, Duration: 60, EstCapacity: 10, Topic: "BS", Speakers: []int{2}}
		sessions := []*models.Session{a, b}
		days := []time.Time{date(13)}

		s := newTestSchedule(t, days, sessions, rooms)
		placed, _, err := s.CreateSchedule(sessions, rooms, days, []time.Time{clock(7, 0)})
		if err != nil {
			t.Fatalf("CreateSchedule failed: %v", err)
		}
		if len(placed) != 2 {
			t.Errorf("expected both sessions placed, got %d", len(placed))
		}
	})
}

func TestCreateSchedule_EquipmentAdoption(t *testing.T) {
	// Both rooms start as wildcards; both Mic sessions should land, each
	// room adopting Mic from its first session.
	a := &models.Session{ID: 1, Duration: 60, EstCapacity: 8, Topic: "CS", Equipment: []string{"Mic"}, Speakers: []int{1}}
	b := &models.Session{ID: 2, Duration: 60, EstCapacity: 5, Topic: "BS", Equipment: []string{"Mic"}, Speakers: []int{2}}
	sessions := []*models.Session{a, b}

	rooms := []*models.Room{
		{ID: 1, MaxCapacity: 10, Name: "Room 1"},
		{ID: 2, MaxCapacity: 10, Name: "Room 2"},
	}

	days := []time.Time{date(13)}
	s := newTestSchedule(t, days, sessions, rooms)

	placed, unplaced, err := s.CreateSchedule(sessions, rooms, days, []time.Time{clock(7, 0)})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	if len(placed) != 2 || len(unplaced) != 0 {
		t.Fatalf("expected both sessions placed, got %d placed %d unplaced", len(placed), len(unplaced))
	}
	if a.AssignedRoom == b.AssignedRoom {
		t.Errorf("expected sessions in different rooms, both landed in room %d", a.AssignedRoom)
	}
	for _, room := range rooms {
		if len(room.Equipment) != 1 || room.Equipment[0] != "Mic" {
			t.Errorf("room %d: expected adopted equipment [Mic], got %v", room.ID, room.Equipment)
		}
	}
	if got := s.GetScheduledSessions(); len(got) != 2 {
		t.Errorf("GetScheduledSessions: expected 2, got %d", len(got))
	}
	if got := s.UsedRooms(); len(got) != 2 {
		t.Errorf("UsedRooms: expected both rooms registered, got %d", len(got))
	}

	grid, ok := s.Grid(a.AssignedRoom)
	if !ok {
		t.Fatalf("no grid for room %d", a.AssignedRoom)
	}
	if got := grid.SessionAt(0, 0); got == nil || got.ID != a.ID {
		t.Errorf("expected session %d occupying (0,0), got %v", a.ID, got)
	}
	if topics := s.Ledger().TopicsAt(0, 0); len(topics) != 2 {
		t.Errorf("expected both topics committed at (0,0), got %v", topics)
	}
}

func TestCreateSchedule_AdoptedEquipmentGates(t *testing.T) {
	// Once a room adopts Mic, a Wifi session cannot follow it there.
	mic := &models.Session{ID: 1, Duration: 60, EstCapacity: 8, Topic: "CS", Equipment: []string{"Mic"}, Speakers: []int{1}}
	wifi := &models.Session{ID: 2, Duration: 60, EstCapacity: 5, Topic: "BS", Equipment: []string{"Wifi"}, Speakers: []int{2}}
	sessions := []*models.Session{mic, wifi}

	room := &models.Room{ID: 1, MaxCapacity: 10, Name: "Room 1"}
	days := []time.Time{date(13)}
	s := newTestSchedule(t, days, sessions, []*models.Room{room})

	// Two slots are open, so only compatibility can keep wifi out.
	placed, unplaced, err := s.CreateSchedule(sessions, []*models.Room{room}, days, nil)
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	if len(placed) != 1 || placed[0].ID != mic.ID {
		t.Fatalf("expected only the Mic session placed, got %d placed", len(placed))
	}
	if len(unplaced) != 1 || unplaced[0].ID != wifi.ID {
		t.Fatalf("expected the Wifi session unplaced, got %v", unplaced)
	}
}

func TestCreateSchedule_MultiDayDeferral(t *testing.T) {
	// One room, one slot per day, two days: the session losing day one
	// must carry forward and land on day two.
	a := &models.Session{ID: 1, Duration: 60, EstCapacity: 20, Topic: "CS", Speakers: []int{1}}
	b := &models.Session{ID: 2, Duration: 60, EstCapacity: 10, Topic: "BS", Speakers: []int{2}}
	sessions := []*models.Session{a, b}

	room := &models.Room{ID: 1, MaxCapacity: 50, Name: "Room 1"}
	days := []time.Time{date(13), date(14)}
	s := newTestSchedule(t, days, sessions, []*models.Room{room})

	placed, unplaced, err := s.CreateSchedule(sessions, []*models.Room{room}, days, []time.Time{clock(7, 0)})
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}

	if len(placed) != 2 || len(unplaced) != 0 {
		t.Fatalf("expected both sessions placed across two days, got %d placed", len(placed))
	}
	if !sameDate(a.StartTime, date(13)) {
		t.Errorf("expected session 1 on day one, got %v", a.StartTime)
	}
	if !sameDate(b.StartTime, date(14)) {
		t.Errorf("expected session 2 deferred to day two, got %v", b.StartTime)
	}
}

func TestCreateSchedule_SlotTooShort(t *testing.T) {
	long := &models.Session{ID: 1, Duration: 120, EstCapacity: 10, Topic: "CS", Speakers: []int{1}}
	sessions := []*models.Session{long}

	room := &models.Room{ID: 1, MaxCapacity: 50, Name: "Room 1"}
	days := []time.Time{date(13)}
	s := newTestSchedule(t, days, sessions, []*models.Room{room})

	// Slots are 75 minutes, the session needs 120.
	placed, unplaced, err := s.CreateSchedule(sessions, []*models.Room{room}, days, nil)
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}
	if len(placed) != 0 || len(unplaced) != 1 {
		t.Fatalf("expected the 120-minute session to fit no 75-minute slot, got %d placed", len(placed))
	}
}

func TestCreateSchedule_PlacedTimesCoverDuration(t *testing.T) {
	a := &models.Session{ID: 1, Duration: 75, EstCapacity: 10, Topic: "CS", Speakers: []int{1}}
	sessions := []*models.Session{a}

	room := &models.Room{ID: 1, MaxCapacity: 50, Name: "Room 1"}
	days := []time.Time{date(13)}
	s := newTestSchedule(t, days, sessions, []*models.Room{room})

	placed, _, err := s.CreateSchedule(sessions, []*models.Room{room}, days, nil)
	if err != nil {
		t.Fatalf("CreateSchedule failed: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("expected 1 placed, got %d", len(placed))
	}

	window := int(a.EndTime.Sub(a.StartTime).Minutes())
	if a.Duration > window {
		t.Errorf("placed session duration %d exceeds its %d-minute window", a.Duration, window)
	}
	if !sameDate(a.StartTime, date(13)) {
		t.Errorf("start time not stamped with the day's date: %v", a.StartTime)
	}
}

func TestSchedule_InitLifecycle(t *testing.T) {
	days := []time.Time{date(13)}
	s, err := NewSchedule([]time.Time{clock(7, 0)}, []time.Time{clock(8, 15)}, days, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}

	if _, _, err := s.CreateSchedule(nil, nil, days, nil); err == nil {
		t.Error("expected CreateSchedule before Init to fail")
	}
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := s.Init(); err == nil {
		t.Error("expected second Init to fail")
	}
}

func TestSchedule_SpeakerDirectory(t *testing.T) {
	sp := &models.Speaker{ID: 1, FirstName: "Bob", LastInitial: "B", SessionIDs: []int{1, 2}}
	s, err := NewSchedule(
		[]time.Time{clock(7, 0)}, []time.Time{clock(8, 15)},
		[]time.Time{date(13)}, nil, nil, []*models.Speaker{sp},
	)
	if err != nil {
		t.Fatalf("NewSchedule failed: %v", err)
	}

	got, ok := s.Speaker(1)
	if !ok || got.FirstName != "Bob" {
		t.Errorf("expected to find speaker 1, got %+v", got)
	}
	if _, ok := s.Speaker(99); ok {
		t.Error("expected lookup of unknown speaker to miss")
	}
	if len(s.Days()) != 1 || s.Calendar().Len() != 1 {
		t.Errorf("unexpected calendar shape: %d days, %d slots", len(s.Days()), s.Calendar().Len())
	}
}

func TestNewSlotCalendar_Validation(t *testing.T) {
	if _, err := NewSlotCalendar([]time.Time{clock(7, 0)}, nil); err == nil {
		t.Error("expected mismatched start/end lists to fail")
	}
	if _, err := NewSlotCalendar([]time.Time{clock(9, 0)}, []time.Time{clock(8, 0)}); err == nil {
		t.Error("expected a slot ending before it starts to fail")
	}
}

func TestSlotCalendar_SlotIndexes(t *testing.T) {
	cal, err := NewSlotCalendar(
		[]time.Time{clock(7, 0), clock(8, 30), clock(10, 0)},
		[]time.Time{clock(8, 15), clock(9, 45), clock(11, 15)},
	)
	if err != nil {
		t.Fatalf("NewSlotCalendar failed: %v", err)
	}

	got := cal.SlotIndexes([]time.Time{clock(10, 0), clock(7, 0)})
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("expected calendar-ordered indices [0 2], got %v", got)
	}

	if got := cal.SlotIndexes(nil); len(got) != 3 {
		t.Errorf("expected all slots for empty selection, got %v", got)
	}

	if mins := cal.SlotMinutes(0); mins != 75 {
		t.Errorf("expected 75-minute slot, got %d", mins)
	}
}

func TestConflictLedger_Snapshots(t *testing.T) {
	l := NewConflictLedger()
	sess := &models.Session{ID: 1, Topic: "CS", Sponsors: []string{"ASU"}, Speakers: []int{4, 5}}
	l.Commit(0, 1, sess)

	if !l.SpeakerConflict(0, 1, []int{5}) {
		t.Error("expected speaker 5 to conflict at (0,1)")
	}
	if l.SpeakerConflict(1, 1, []int{5}) {
		t.Error("speaker conflict leaked across days")
	}
	if !l.TopicConflict(0, 1, "CS") {
		t.Error("expected topic CS to conflict at (0,1)")
	}
	if !l.SponsorConflict(0, 1, []string{"ASU", "Arts"}) {
		t.Error("expected sponsor ASU to conflict at (0,1)")
	}
	if l.SponsorConflict(0, 1, nil) {
		t.Error("a session without sponsors must never sponsor-conflict")
	}
	if got := l.SpeakersAt(0, 1); len(got) != 2 {
		t.Errorf("expected 2 committed speakers, got %v", got)
	}
}
