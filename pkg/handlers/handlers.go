package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/venueops/conference-scheduler-go/pkg/auth"
	"github.com/venueops/conference-scheduler-go/pkg/database"
	"github.com/venueops/conference-scheduler-go/pkg/models"
	"github.com/venueops/conference-scheduler-go/pkg/parse"
)

// Handler contains dependencies for the route handlers
type Handler struct {
	DB *gorm.DB
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for scheduler routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// ScheduleJSON runs one scheduling pass over JSON pools and selections
func (h *Handler) ScheduleJSON(c *gin.Context) {
	var req models.ScheduleRequest
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

	placed, unplaced, err := r.schedule.CreateSchedule(
		r.selectSessions(req.SelectedSessions),
		r.selectRooms(req.SelectedRooms),
		days, times,
	)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(req.Sessions), len(req.Rooms))

	c.JSON(http.StatusOK, models.ScheduleResponse{
		Scheduled:   parse.ExportRows(placed),
		Unscheduled: sessionIDs(unplaced),
	})
}

// ScheduleCSV schedules everything from the five uploaded CSV files and
// returns the export CSV
func (h *Handler) ScheduleCSV(c *gin.Context) {
	open := func(field string) (multipart.File, bool) {
		fh, err := c.FormFile(field)
		if err != nil {
			return nil, false
		}
		f, err := fh.Open()
		if err != nil {
			return nil, false
		}
		return f, true
	}

	sessFile, ok := open("sessions_file")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sessions_file is required"})
		return
	}
	defer sessFile.Close()
	roomsFile, ok := open("rooms_file")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rooms_file is required"})
		return
	}
	defer roomsFile.Close()
	daysFile, ok := open("days_file")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "days_file is required"})
		return
	}
	defer daysFile.Close()
	timesFile, ok := open("times_file")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "times_file is required"})
		return
	}
	defer timesFile.Close()

	sessions, err := parse.Sessions(sessFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rooms, err := parse.Rooms(roomsFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	days, err := parse.Days(daysFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	starts, ends, err := parse.Times(timesFile)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var speakers []models.Speaker
	if spFile, ok := open("speakers_file"); ok {
		defer spFile.Close()
		speakers, err = parse.Speakers(spFile)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	input := models.ScheduleInput{
		Sessions: sessions,
		Rooms:    rooms,
		Speakers: speakers,
	}
	for _, d := range days {
		input.Days = append(input.Days, d.Format("2006-01-02"))
	}
	for i := range starts {
		input.StartTimes = append(input.StartTimes, starts[i].Format("15:04"))
		input.EndTimes = append(input.EndTimes, ends[i].Format("15:04"))
	}

	r, err := newRun(input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	placed, unplaced, err := r.schedule.CreateSchedule(r.sessions, r.rooms, nil, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.RecordUsage(c, len(sessions), len(rooms))

	var outCSV strings.Builder
	if err := parse.WriteSchedule(&outCSV, placed); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"csv":         outCSV.String(),
		"unscheduled": sessionIDs(unplaced),
	})
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, sessionCount, roomCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count":  gorm.Expr("request_count + ?", 1),
			"total_sessions": gorm.Expr("total_sessions + ?", sessionCount),
			"total_rooms":    gorm.Expr("total_rooms + ?", roomCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:         apiKey.ID,
		Date:          today,
		RequestCount:  1,
		TotalSessions: sessionCount,
		TotalRooms:    roomCount,
	})
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := auth.GenerateHMACKey(req.Name)

	preview := "****"
	if len(key) > 8 {
		preview = key[:3] + "..." + key[len(key)-4:]
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: preview,
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.APIKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}
