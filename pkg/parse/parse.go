// Package parse reads the five CSV inputs the scheduler is driven from
// (sessions, rooms, speakers, days, times) and writes the schedule export.
// Every reader expects a header row and rejects malformed rows before any
// Schedule is constructed.
package parse

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// Sessions reads the session pool. Columns: id, title, format, type,
// estimated capacity, topic, sponsor, co-sponsors, duration, equipment,
// speakers. Equipment, co-sponsors and speakers are comma-separated lists.
func Sessions(r io.Reader) ([]models.Session, error) {
	rows, err := readAll(r, 11)
	if err != nil {
		return nil, fmt.Errorf("sessions: %w", err)
	}

	out := make([]models.Session, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("sessions row %d: bad session id %q", i+2, row[0])
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, fmt.Errorf("sessions row %d: bad capacity %q", i+2, row[4])
		}
		duration, err := strconv.Atoi(strings.TrimSpace(row[8]))
		if err != nil {
			return nil, fmt.Errorf("sessions row %d: bad duration %q", i+2, row[8])
		}

		sponsors := splitList(row[6])
		sponsors = append(sponsors, splitList(row[7])...) // co-sponsors

		speakers, err := intList(row[10])
		if err != nil {
			return nil, fmt.Errorf("sessions row %d: bad speaker list %q", i+2, row[10])
		}

		out = append(out, models.Session{
			ID:          id,
			Duration:    duration,
			EstCapacity: capacity,
			Title:       strings.TrimSpace(row[1]),
			Format:      strings.TrimSpace(row[2]),
			Type:        strings.TrimSpace(row[3]),
			Topic:       strings.TrimSpace(row[5]),
			Sponsors:    sponsors,
			Equipment:   splitList(row[9]),
			Speakers:    speakers,
		})
	}
	return out, nil
}

// Rooms reads the room pool. Columns: id, property, name, capacity, floor.
func Rooms(r io.Reader) ([]models.Room, error) {
	rows, err := readAll(r, 5)
	if err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}

	out := make([]models.Room, 0, len(rows))
	for i, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("rooms row %d: bad room id %q", i+2, row[0])
		}
		capacity, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("rooms row %d: bad capacity %q", i+2, row[3])
		}
		floor, err := strconv.Atoi(strings.TrimSpace(row[4]))
		if err != nil {
			return nil, fmt.Errorf("rooms row %d: bad floor %q", i+2, row[4])
		}

		out = append(out, models.Room{
			ID:          id,
			MaxCapacity: capacity,
			Name:        strings.TrimSpace(row[2]),
			Property:    strings.TrimSpace(row[1]),
			Floor:       floor,
		})
	}
	return out, nil
}

// Speakers reads the speaker directory. Columns: id, first name, last
// initial, session id. Repeated rows for the same speaker merge their
// session ids onto the first occurrence.
func Speakers(r io.Reader) ([]models.Speaker, error) {
	rows, err := readAll(r, 4)
	if err != nil {
		return nil, fmt.Errorf("speakers: %w", err)
	}

	var out []models.Speaker
	index := make(map[int]int)
	for i, row := range rows {
		id, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("speakers row %d: bad speaker id %q", i+2, row[0])
		}
		sessID, err := strconv.Atoi(strings.TrimSpace(row[3]))
		if err != nil {
			return nil, fmt.Errorf("speakers row %d: bad session id %q", i+2, row[3])
		}

		if at, ok := index[id]; ok {
			out[at].SessionIDs = append(out[at].SessionIDs, sessID)
			continue
		}

		index[id] = len(out)
		out = append(out, models.Speaker{
			ID:          id,
			FirstName:   strings.TrimSpace(row[1]),
			LastInitial: strings.TrimSpace(row[2]),
			SessionIDs:  []int{sessID},
		})
	}
	return out, nil
}

// Days reads the day calendar. One M/D/YYYY date per row.
func Days(r io.Reader) ([]time.Time, error) {
	rows, err := readAll(r, 1)
	if err != nil {
		return nil, fmt.Errorf("days: %w", err)
	}

	out := make([]time.Time, 0, len(rows))
	for i, row := range rows {
		d, err := time.Parse("1/2/2006", strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("days row %d: bad date %q", i+2, row[0])
		}
		out = append(out, d)
	}
	return out, nil
}

// Times reads the slot boundaries. Columns: start HH:MM, end HH:MM.
func Times(r io.Reader) (starts, ends []time.Time, err error) {
	rows, err := readAll(r, 2)
	if err != nil {
		return nil, nil, fmt.Errorf("times: %w", err)
	}

	for i, row := range rows {
		start, err := parseClock(row[0])
		if err != nil {
			return nil, nil, fmt.Errorf("times row %d: bad start time %q", i+2, row[0])
		}
		end, err := parseClock(row[1])
		if err != nil {
			return nil, nil, fmt.Errorf("times row %d: bad end time %q", i+2, row[1])
		}
		starts = append(starts, start)
		ends = append(ends, end)
	}
	return starts, ends, nil
}

var exportHeader = []string{
	"Session ID", "Title", "Format", "Type", "Estimated Capacity",
	"Subject/Topic", "Sponsor", "Start Time", "End Time", "Room ID", "Date",
}

// WriteSchedule emits one CSV record per scheduled session
func WriteSchedule(w io.Writer, sessions []*models.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("schedule export: %w", err)
	}
	for _, row := range ExportRows(sessions) {
		record := []string{
			strconv.Itoa(row.SessionID),
			row.Title,
			row.Format,
			row.Type,
			strconv.Itoa(row.Capacity),
			row.Topic,
			strings.Join(row.Sponsors, ","),
			row.StartTime,
			row.EndTime,
			strconv.Itoa(row.RoomID),
			row.Date,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("schedule export: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportRows shapes scheduled sessions into flat export records
func ExportRows(sessions []*models.Session) []models.ScheduledRow {
	rows := make([]models.ScheduledRow, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, models.ScheduledRow{
			SessionID: sess.ID,
			Title:     sess.Title,
			Format:    sess.Format,
			Type:      sess.Type,
			Capacity:  sess.EstCapacity,
			Topic:     sess.Topic,
			Sponsors:  sess.Sponsors,
			StartTime: sess.StartTime.Format("15:04"),
			EndTime:   sess.EndTime.Format("15:04"),
			RoomID:    sess.AssignedRoom,
			Date:      fmt.Sprintf("%d/%d", int(sess.StartTime.Month()), sess.StartTime.Day()),
		})
	}
	return rows
}

// readAll consumes the header row and returns the remaining records,
// enforcing a minimum column count
func readAll(r io.Reader, minCols int) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) < minCols {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", len(rows)+2, minCols, len(record))
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func splitList(field string) []string {
	var out []string
	for _, part := range strings.Split(field, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func intList(field string) ([]int, error) {
	var out []int
	for _, part := range splitList(field) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func parseClock(field string) (time.Time, error) {
	// "15" accepts unpadded hours, so both "7:00" and "13:00" parse.
	return time.Parse("15:04", strings.TrimSpace(field))
}
