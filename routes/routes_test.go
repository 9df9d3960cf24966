package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"roombook/cron"
	bookingRepo "roombook/database/repository/booking"
	lockRepo "roombook/database/repository/lock"
	"roombook/handlers"
	"roombook/models"
	"roombook/services/booking"
	"roombook/services/catalog"
	"roombook/services/session"

	"github.com/gin-gonic/gin"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, err := catalog.New([]models.Building{
		{Name: "Videosecurity", Rooms: []string{"Silver", "Gold"}},
		{Name: "Victiana", Rooms: []string{"Trening room"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	engine := booking.NewDefaultAvailabilityEngine(bookingRepo.NewMemoryBookingRepo(), cat, lockRepo.NewLocalLocker(), nil, models.DefaultWindow(), nil)
	flow := session.NewFlow(engine, cat, session.NewMemoryStore(), nil, nil)

	r := gin.New()
	RegisterRoutes(r, &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(engine, cat),
		Session: handlers.NewSessionHandler(flow),
		Admin:   handlers.NewAdminHandler(cron.NewResetter(engine, nil)),
	})
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodGet, "/api/buildings", nil)
	var buildings struct{ Buildings []string }
	decode(t, w, &buildings)
	if w.Code != http.StatusOK || len(buildings.Buildings) != 2 {
		t.Fatalf("buildings %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/buildings/Victiana/rooms", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rooms %d", w.Code)
	}
	if w = do(t, r, http.MethodGet, "/api/buildings/Nowhere/rooms", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown building %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/rooms/Trening%20room/slots", nil)
	var slots struct {
		Slots []struct {
			Start string
			Taken bool
		}
	}
	decode(t, w, &slots)
	if w.Code != http.StatusOK || len(slots.Slots) != 21 || slots.Slots[0].Start != "08:30" {
		t.Fatalf("slots %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/rooms/Gold/durations?start=18:30", nil)
	var durations struct {
		Durations []struct {
			Minutes int
			Label   string
		}
	}
	decode(t, w, &durations)
	if w.Code != http.StatusOK || len(durations.Durations) != 1 || durations.Durations[0].Label != "30 min" {
		t.Fatalf("durations %d %s", w.Code, w.Body.String())
	}
	if w = do(t, r, http.MethodGet, "/api/rooms/Gold/durations?start=19:00", nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("end of day %d", w.Code)
	}
	if w = do(t, r, http.MethodGet, "/api/rooms/Gold/durations?start=9", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad start %d", w.Code)
	}
}

func TestBookingLifecycleEndpoints(t *testing.T) {
	r := newTestRouter(t)
	create := map[string]any{"userId": 42, "room": "Gold", "start": "09:00", "durationMinutes": 60}

	w := do(t, r, http.MethodPost, "/api/bookings", create)
	if w.Code != http.StatusCreated {
		t.Fatalf("create %d %s", w.Code, w.Body.String())
	}
	if w = do(t, r, http.MethodPost, "/api/bookings", create); w.Code != http.StatusConflict {
		t.Fatalf("duplicate %d", w.Code)
	}
	if w = do(t, r, http.MethodGet, "/api/rooms/Gold/durations?start=09:30", nil); w.Code != http.StatusConflict {
		t.Fatalf("taken start %d", w.Code)
	}
	bad := map[string]any{"userId": 42, "room": "Gold", "start": "18:30", "durationMinutes": 60}
	if w = do(t, r, http.MethodPost, "/api/bookings", bad); w.Code != http.StatusBadRequest {
		t.Fatalf("past end of day %d", w.Code)
	}
	unknown := map[string]any{"userId": 42, "room": "Jupiter", "start": "10:00", "durationMinutes": 30}
	if w = do(t, r, http.MethodPost, "/api/bookings", unknown); w.Code != http.StatusNotFound {
		t.Fatalf("unknown room %d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/users/42/bookings", nil)
	var mine struct {
		Bookings []struct{ Room, Start string }
	}
	decode(t, w, &mine)
	if len(mine.Bookings) != 1 || mine.Bookings[0].Start != "09:00" {
		t.Fatalf("user bookings %s", w.Body.String())
	}

	for _, want := range []float64{1, 0} {
		w = do(t, r, http.MethodDelete, "/api/users/42/bookings?room=Gold&start=09:00", nil)
		var out struct{ Deleted float64 }
		decode(t, w, &out)
		if w.Code != http.StatusOK || out.Deleted != want {
			t.Fatalf("delete %d %s, want %v", w.Code, w.Body.String(), want)
		}
	}
	if w = do(t, r, http.MethodGet, "/api/users/abc/bookings", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad user id %d", w.Code)
	}
}

func TestCreateBookingUserIDZero(t *testing.T) {
	r := newTestRouter(t)
	zero := map[string]any{"userId": 0, "room": "Silver", "start": "10:00", "durationMinutes": 30}
	if w := do(t, r, http.MethodPost, "/api/bookings", zero); w.Code != http.StatusCreated {
		t.Fatalf("user 0 create %d %s", w.Code, w.Body.String())
	}
	w := do(t, r, http.MethodGet, "/api/users/0/bookings", nil)
	var mine struct {
		Bookings []struct{ Room, Start string }
	}
	decode(t, w, &mine)
	if len(mine.Bookings) != 1 || mine.Bookings[0].Room != "Silver" {
		t.Fatalf("user 0 bookings %s", w.Body.String())
	}

	missing := map[string]any{"room": "Silver", "start": "11:00", "durationMinutes": 30}
	if w := do(t, r, http.MethodPost, "/api/bookings", missing); w.Code != http.StatusBadRequest {
		t.Fatalf("missing user id %d", w.Code)
	}
}

func TestChatAndAdminEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w := do(t, r, http.MethodPost, "/api/chat/7/start", nil)
	var prompt session.Prompt
	decode(t, w, &prompt)
	if w.Code != http.StatusOK || len(prompt.Options) != 2 {
		t.Fatalf("start %d %s", w.Code, w.Body.String())
	}
	for _, data := range []string{"building:Videosecurity", "room:Silver", "time:10:00", "duration:90"} {
		w = do(t, r, http.MethodPost, "/api/chat/7/select", map[string]string{"data": data})
		if w.Code != http.StatusOK {
			t.Fatalf("select %s: %d %s", data, w.Code, w.Body.String())
		}
	}
	decode(t, w, &prompt)
	if prompt.Options[0].Data != session.DataMenu {
		t.Fatalf("confirmation %+v", prompt)
	}
	if w = do(t, r, http.MethodPost, "/api/chat/7/select", map[string]string{"data": "dummy"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown event %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/admin/reset", nil)
	var reset struct{ Removed float64 }
	decode(t, w, &reset)
	if w.Code != http.StatusOK || reset.Removed != 1 {
		t.Fatalf("reset %d %s", w.Code, w.Body.String())
	}

	if w = do(t, r, http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("health %d", w.Code)
	}
}
