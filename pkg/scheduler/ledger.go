package scheduler

import "github.com/venueops/conference-scheduler-go/pkg/models"

type slotKey struct {
	day  int
	slot int
}

// ConflictLedger records, per (day, slot), the speakers, topics and sponsors
// already committed anywhere in the venue. It models that a speaker or an
// attendee following a topic or sponsor cannot be in two rooms at once.
// Owned by a single Schedule; each successful placement commits exactly once
// to exactly one (day, slot) entry.
type ConflictLedger struct {
	speakers map[slotKey]map[int]struct{}
	topics   map[slotKey]map[string]struct{}
	sponsors map[slotKey]map[string]struct{}
}

// NewConflictLedger returns an empty ledger
func NewConflictLedger() *ConflictLedger {
	return &ConflictLedger{
		speakers: make(map[slotKey]map[int]struct{}),
		topics:   make(map[slotKey]map[string]struct{}),
		sponsors: make(map[slotKey]map[string]struct{}),
	}
}

// SpeakerConflict reports whether any of the given speakers is already
// committed at (day, slot)
func (l *ConflictLedger) SpeakerConflict(day, slot int, speakers []int) bool {
	set := l.speakers[slotKey{day, slot}]
	for _, id := range speakers {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// TopicConflict reports whether the topic is already committed at (day, slot)
func (l *ConflictLedger) TopicConflict(day, slot int, topic string) bool {
	_, ok := l.topics[slotKey{day, slot}][topic]
	return ok
}

// SponsorConflict reports whether any of the given sponsors is already
// committed at (day, slot). A session with no sponsors never conflicts.
func (l *ConflictLedger) SponsorConflict(day, slot int, sponsors []string) bool {
	set := l.sponsors[slotKey{day, slot}]
	for _, sp := range sponsors {
		if _, ok := set[sp]; ok {
			return true
		}
	}
	return false
}

// Commit unions the session's speakers, topic and sponsors into the
// (day, slot) entry. Called once per successful placement.
func (l *ConflictLedger) Commit(day, slot int, sess *models.Session) {
	key := slotKey{day, slot}
	if l.speakers[key] == nil {
		l.speakers[key] = make(map[int]struct{})
	}
	for _, id := range sess.Speakers {
		l.speakers[key][id] = struct{}{}
	}
	if l.topics[key] == nil {
		l.topics[key] = make(map[string]struct{})
	}
	l.topics[key][sess.Topic] = struct{}{}
	if len(sess.Sponsors) > 0 {
		if l.sponsors[key] == nil {
			l.sponsors[key] = make(map[string]struct{})
		}
		for _, sp := range sess.Sponsors {
			l.sponsors[key][sp] = struct{}{}
		}
	}
}

// SpeakersAt returns a snapshot of the speaker ids committed at (day, slot)
func (l *ConflictLedger) SpeakersAt(day, slot int) []int {
	set := l.speakers[slotKey{day, slot}]
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}

// TopicsAt returns a snapshot of the topics committed at (day, slot)
func (l *ConflictLedger) TopicsAt(day, slot int) []string {
	set := l.topics[slotKey{day, slot}]
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}

// SponsorsAt returns a snapshot of the sponsors committed at (day, slot)
func (l *ConflictLedger) SponsorsAt(day, slot int) []string {
	set := l.sponsors[slotKey{day, slot}]
	out := make([]string, 0, len(set))
	for sp := range set {
		out = append(out, sp)
	}
	return out
}
