package models

import "time"

// Session represents a conference session waiting for a room and a time slot
type Session struct {
	ID          int      `json:"id"`
	Duration    int      `json:"duration"` // minutes
	EstCapacity int      `json:"est_capacity"`
	Title       string   `json:"title"`
	Format      string   `json:"format"`
	Topic       string   `json:"topic"`
	Type        string   `json:"type"`
	Sponsors    []string `json:"sponsors,omitempty"`
	Equipment   []string `json:"equipment,omitempty"`
	Speakers    []int    `json:"speakers"`

	// Run state, set exactly once when the session is placed.
	AssignedRoom int       `json:"assigned_room,omitempty"` // 0 until placed
	StartTime    time.Time `json:"start_time,omitempty"`
	EndTime      time.Time `json:"end_time,omitempty"`
}

// Scheduled reports whether the session has been placed this run
func (s *Session) Scheduled() bool {
	return s.AssignedRoom != 0
}

// Assign stamps the session with its room and time window
func (s *Session) Assign(roomID int, start, end time.Time) {
	s.AssignedRoom = roomID
	s.StartTime = start
	s.EndTime = end
}

// Room represents a physical room sessions are scheduled into.
// Format and Equipment start empty and are adopted from the first
// session placed in the room during a run.
type Room struct {
	ID          int      `json:"id"`
	MaxCapacity int      `json:"max_capacity"`
	Name        string   `json:"name"`
	Property    string   `json:"property"` // building/location
	Floor       int      `json:"floor"`
	Format      string   `json:"format,omitempty"`
	Equipment   []string `json:"equipment,omitempty"`
}

// Adopted reports whether the room has taken on an equipment set
func (r *Room) Adopted() bool {
	return len(r.Equipment) > 0
}

// Adopt fixes the room's format and equipment from the first session
// placed in it. Only meaningful while the room is still in its
// wildcard (empty-equipment) state.
func (r *Room) Adopt(format string, equipment []string) {
	r.Format = format
	r.Equipment = append(r.Equipment, equipment...)
}

// Speaker is reference data; the scheduler only reads it
type Speaker struct {
	ID          int    `json:"id"`
	FirstName   string `json:"first_name"`
	LastInitial string `json:"last_initial"`
	SessionIDs  []int  `json:"session_ids"`
}

// ScheduleInput carries the five pools every scheduling call is built from
type ScheduleInput struct {
	Sessions   []Session `json:"sessions"`
	Rooms      []Room    `json:"rooms"`
	Speakers   []Speaker `json:"speakers"`
	Days       []string  `json:"days"`        // "2006-01-02"
	StartTimes []string  `json:"start_times"` // "15:04"
	EndTimes   []string  `json:"end_times"`   // "15:04"
}

// ScheduleRequest is the data structure for the scheduling endpoint.
// Empty selection lists mean "use everything in the pool".
type ScheduleRequest struct {
	ScheduleInput
	SelectedSessions []int    `json:"selected_sessions,omitempty"`
	SelectedRooms    []int    `json:"selected_rooms,omitempty"`
	SelectedDays     []string `json:"selected_days,omitempty"`
	SelectedTimes    []string `json:"selected_times,omitempty"`
}

// ScheduledRow is one exported record per placed session
type ScheduledRow struct {
	SessionID int      `json:"session_id"`
	Title     string   `json:"title"`
	Format    string   `json:"format"`
	Type      string   `json:"type"`
	Capacity  int      `json:"capacity"`
	Topic     string   `json:"topic"`
	Sponsors  []string `json:"sponsors,omitempty"`
	StartTime string   `json:"start_time"`
	EndTime   string   `json:"end_time"`
	RoomID    int      `json:"room_id"`
	Date      string   `json:"date"`
}

// ScheduleResponse is the data structure for the scheduling result
type ScheduleResponse struct {
	Scheduled   []ScheduledRow `json:"scheduled"`
	Unscheduled []int          `json:"unscheduled"` // session IDs that found no room
}

// SessionFilterRequest drives the session-selection step of the workflow
type SessionFilterRequest struct {
	ScheduleInput
	Types    []string `json:"types,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Sponsors []string `json:"sponsors,omitempty"`
	Topics   []string `json:"topics,omitempty"`
}

// RoomAvailabilityRequest drives the room-selection step of the workflow
type RoomAvailabilityRequest struct {
	ScheduleInput
	SelectedSessions []int    `json:"selected_sessions,omitempty"`
	SelectedDays     []string `json:"selected_days,omitempty"`
	SelectedTimes    []string `json:"selected_times,omitempty"`
	Properties       []string `json:"properties,omitempty"`
	Equipment        []string `json:"equipment,omitempty"`
	Formats          []string `json:"formats,omitempty"`
	MaxCapacity      int      `json:"max_capacity,omitempty"` // 0 = largest room in the pool
}

// RoomAvailability pairs a room with its count of open matching slot instances
type RoomAvailability struct {
	Room      Room `json:"room"`
	OpenSlots int  `json:"open_slots"`
}
