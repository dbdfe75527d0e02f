package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/venueops/conference-scheduler-go/pkg/models"
)

// ValidateInput checks the structural health of the pools before scheduling
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	if len(input.Sessions) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one session is required"})
		return
	}
	if len(input.Rooms) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one room is required"})
		return
	}
	if len(input.Days) == 0 {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "At least one day is required"})
		return
	}
	if len(input.StartTimes) == 0 || len(input.StartTimes) != len(input.EndTimes) {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": "start_times and end_times must be non-empty and the same length"})
		return
	}

	// Check for duplicate IDs
	sessIDs := make(map[int]bool)
	for _, s := range input.Sessions {
		if sessIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate session ID: %d", s.ID)})
			return
		}
		sessIDs[s.ID] = true
	}

	roomIDs := make(map[int]bool)
	for _, r := range input.Rooms {
		if roomIDs[r.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": fmt.Sprintf("Duplicate room ID: %d", r.ID)})
			return
		}
		roomIDs[r.ID] = true
	}

	// A malformed calendar must be rejected before Schedule construction
	if _, err := newRun(input); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"session_count": len(input.Sessions),
			"room_count":    len(input.Rooms),
			"speaker_count": len(input.Speakers),
			"day_count":     len(input.Days),
			"slot_count":    len(input.StartTimes),
		},
	})
}
