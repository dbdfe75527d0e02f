package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// FilterSessions narrows the unscheduled session pool and returns the
// distinct field values used to populate the selection form
func (h *Handler) FilterSessions(c *gin.Context) {
	var req models.SessionFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := newRun(req.ScheduleInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filtered := r.schedule.GetFilteredSessions(req.Types, req.Formats, req.Sponsors, req.Topics)

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessionValues(filtered),
		"choices": gin.H{
			"formats":  r.schedule.GetSessionFormats(),
			"topics":   r.schedule.GetSessionTopics(),
			"types":    r.schedule.GetSessionTypes(),
			"sponsors": r.schedule.GetSessionSponsors(),
		},
	})
}

// RoomAvailability counts open matching slot instances per room for the
// room-selection step
func (h *Handler) RoomAvailability(c *gin.Context) {
	var req models.RoomAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := newRun(req.ScheduleInput)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	days, err := parseDates(req.SelectedDays)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	times, err := parseClocks(req.SelectedTimes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected := r.selectSessions(req.SelectedSessions)

	maxCapacity := req.MaxCapacity
	if maxCapacity == 0 {
		maxCapacity = r.schedule.GetRoomMaxCapacity()
	}

	available := r.schedule.GetFilteredRoomAvailability(
		days, times, req.Properties, req.Equipment, maxCapacity, req.Formats, selected,
	)

	c.JSON(http.StatusOK, gin.H{
		"rooms":        available,
		"min_capacity": r.schedule.GetSessionMinCapacity(selected),
		"max_capacity": maxCapacity,
		"choices": gin.H{
			"properties": r.schedule.GetRoomProperties(),
			"formats":    r.schedule.GetRoomFormats(),
			"equipment":  r.schedule.GetRoomEquipment(),
		},
	})
}
