package handlers

import (
	"net/http"
	"strconv"

	"roombook/models"
	"roombook/services/booking"
	"roombook/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the availability engine over HTTP.
type BookingHandler struct {
	Engine  booking.AvailabilityEngine
	Catalog *catalog.Catalog
}

func NewBookingHandler(engine booking.AvailabilityEngine, cat *catalog.Catalog) *BookingHandler {
	return &BookingHandler{Engine: engine, Catalog: cat}
}

type slotDTO struct {
	Start string `json:"start"`
	Taken bool   `json:"taken"`
}

type durationDTO struct {
	Minutes int    `json:"minutes"`
	Label   string `json:"label"`
}

type userBookingDTO struct {
	Room  string `json:"room"`
	Start string `json:"start"`
}

type createBookingInput struct {
	UserID          *int64 `json:"userId" binding:"required"`
	Room            string `json:"room" binding:"required"`
	Start           string `json:"start" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
}

func userIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("userID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return id, true
}

// ListBuildingsHandler returns the configured buildings.
func (h *BookingHandler) ListBuildingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"buildings": h.Catalog.Buildings()})
}

// ListRoomsHandler returns the rooms of one building.
func (h *BookingHandler) ListRoomsHandler(c *gin.Context) {
	rooms, err := h.Engine.Rooms(c.Param("building"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

// DaySlotsHandler returns today's slot grid of a room.
func (h *BookingHandler) DaySlotsHandler(c *gin.Context) {
	slots, err := h.Engine.DaySlots(c.Request.Context(), c.Param("room"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]slotDTO, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotDTO{Start: s.Start.String(), Taken: s.Taken})
	}
	c.JSON(http.StatusOK, gin.H{"room": c.Param("room"), "slots": out})
}

// ListDurationsHandler returns legal durations for ?start=HH:MM.
func (h *BookingHandler) ListDurationsHandler(c *gin.Context) {
	start, err := models.ParseClock(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start", "details": err.Error()})
		return
	}
	durations, err := h.Engine.ListDurations(c.Request.Context(), c.Param("room"), start)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]durationDTO, 0, len(durations))
	for _, d := range durations {
		out = append(out, durationDTO{Minutes: d.Minutes(), Label: models.FormatDuration(d)})
	}
	c.JSON(http.StatusOK, gin.H{"room": c.Param("room"), "start": start.String(), "durations": out})
}

// CreateBookingHandler commits one booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	start, err := models.ParseClock(input.Start)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start", "details": err.Error()})
		return
	}
	duration, err := models.FromMinutes(input.DurationMinutes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration", "details": err.Error()})
		return
	}

	userID := *input.UserID
	id, err := h.Engine.Commit(c.Request.Context(), userID, input.Room, start, duration)
	if err != nil {
		writeError(c, err)
		return
	}
	getLogger(c).Info("Booking committed", zap.String("id", id), zap.Int64("userId", userID))
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListUserBookingsHandler lists today's bookings of a user.
func (h *BookingHandler) ListUserBookingsHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	bookings, err := h.Engine.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]userBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, userBookingDTO{Room: b.Room, Start: b.Start.String()})
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// CancelBookingHandler deletes ?room=&start= for the user. Missing bookings are not an error.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	room := c.Query("room")
	if room == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "room is required"})
		return
	}
	start, err := models.ParseClock(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start", "details": err.Error()})
		return
	}
	n, err := h.Engine.Cancel(c.Request.Context(), userID, room, start)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
