package handlers

import (
	"errors"
	"net/http"

	"roombook/services/booking"
	"roombook/services/catalog"
	"roombook/services/session"
	"roombook/utils"

	"github.com/gin-gonic/gin"
)

// writeError maps engine and flow errors onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		taken   *booking.SlotTakenError
		noRoom  *booking.NoAvailabilityError
		storage *booking.StoreError
	)
	switch {
	case errors.As(err, &taken):
		utils.JSONError(c, http.StatusConflict, "slotTaken", err.Error())
	case errors.As(err, &noRoom):
		utils.JSONError(c, http.StatusUnprocessableEntity, "noAvailability", err.Error())
	case errors.Is(err, booking.ErrRoomNotFound), errors.Is(err, catalog.ErrBuildingNotFound):
		utils.JSONError(c, http.StatusNotFound, "notFound", err.Error())
	case errors.Is(err, booking.ErrInvalidBooking), errors.Is(err, session.ErrUnknownEvent):
		utils.JSONError(c, http.StatusBadRequest, "invalidRequest", err.Error())
	case errors.As(err, &storage):
		utils.JSONError(c, http.StatusServiceUnavailable, "storeUnavailable", "Please try again later.")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
