package handlers

import (
	"fmt"
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
	"github.com/venueops/conference-scheduler-go/pkg/scheduler"
)

// run wraps one request-scoped Schedule together with the pool pointers it
// was built from. Every endpoint constructs a fresh run, so concurrent
// requests never share scheduler state.
type run struct {
	schedule *scheduler.Schedule
	sessions []*models.Session
	rooms    []*models.Room
}

// newRun turns wire-format pools into an initialized Schedule
func newRun(input models.ScheduleInput) (*run, error) {
	days, err := parseDates(input.Days)
	if err != nil {
		return nil, err
	}
	starts, err := parseClocks(input.StartTimes)
	if err != nil {
		return nil, err
	}
	ends, err := parseClocks(input.EndTimes)
	if err != nil {
		return nil, err
	}

	sessions := make([]*models.Session, len(input.Sessions))
	for i := range input.Sessions {
		sessions[i] = &input.Sessions[i]
	}
	rooms := make([]*models.Room, len(input.Rooms))
	for i := range input.Rooms {
		rooms[i] = &input.Rooms[i]
	}
	speakers := make([]*models.Speaker, len(input.Speakers))
	for i := range input.Speakers {
		speakers[i] = &input.Speakers[i]
	}

	sch, err := scheduler.NewSchedule(starts, ends, days, sessions, rooms, speakers)
	if err != nil {
		return nil, err
	}
	if err := sch.Init(); err != nil {
		return nil, err
	}

	return &run{schedule: sch, sessions: sessions, rooms: rooms}, nil
}

// selectSessions resolves selected session ids against the pool.
// An empty selection means the whole pool.
func (r *run) selectSessions(ids []int) []*models.Session {
	if len(ids) == 0 {
		return r.sessions
	}
	var out []*models.Session
	for _, id := range ids {
		for _, sess := range r.sessions {
			if sess.ID == id {
				out = append(out, sess)
				break
			}
		}
	}
	return out
}

// selectRooms resolves selected room ids against the pool
func (r *run) selectRooms(ids []int) []*models.Room {
	if len(ids) == 0 {
		return r.rooms
	}
	var out []*models.Room
	for _, id := range ids {
		for _, room := range r.rooms {
			if room.ID == id {
				out = append(out, room)
				break
			}
		}
	}
	return out
}

func parseDates(dates []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return nil, fmt.Errorf("bad date %q: want YYYY-MM-DD", d)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseClocks(clocks []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(clocks))
	for _, c := range clocks {
		t, err := time.Parse("15:04", c)
		if err != nil {
			return nil, fmt.Errorf("bad time %q: want HH:MM", c)
		}
		out = append(out, t)
	}
	return out, nil
}

func sessionIDs(sessions []*models.Session) []int {
	out := make([]int, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, sess.ID)
	}
	return out
}

func sessionValues(sessions []*models.Session) []models.Session {
	out := make([]models.Session, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, *sess)
	}
	return out
}
