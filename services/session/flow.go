package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"roombook/models"
	"roombook/services/booking"
	"roombook/services/catalog"

	"go.uber.org/zap"
)

// ErrUnknownEvent is returned for data the flow cannot interpret in the
// session's current state.
var ErrUnknownEvent = errors.New("unknown event")

// Auditor records one line per user action.
type Auditor interface {
	Record(userID int64, action string)
}

type nopAuditor struct{}

func (nopAuditor) Record(int64, string) {}

// Flow drives the per-user booking conversation.
type Flow struct {
	Engine  booking.AvailabilityEngine
	Catalog *catalog.Catalog
	Store   SessionStore
	Audit   Auditor
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewFlow(engine booking.AvailabilityEngine, cat *catalog.Catalog, store SessionStore, audit Auditor, logger *zap.Logger) *Flow {
	if audit == nil {
		audit = nopAuditor{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flow{Engine: engine, Catalog: cat, Store: store, Audit: audit, Logger: logger, Now: time.Now}
}

// Start overwrites the user's session with an idle one and returns the main menu.
func (f *Flow) Start(ctx context.Context, userID int64) (Prompt, error) {
	f.Audit.Record(userID, "start")
	if err := f.save(ctx, models.NewBookingSession(userID)); err != nil {
		return Prompt{}, err
	}
	return menuPrompt(), nil
}

// Handle applies one selection to the user's session.
func (f *Flow) Handle(ctx context.Context, userID int64, data string) (Prompt, error) {
	sess, err := f.Store.Get(ctx, userID)
	if err != nil {
		return Prompt{}, err
	}

	switch {
	case data == DataMenu:
		return f.Start(ctx, userID)
	case data == DataRooms:
		f.Audit.Record(userID, "open building list")
		return f.buildings(ctx, sess)
	case data == DataCancel:
		f.Audit.Record(userID, "open cancellation list")
		return f.cancelList(ctx, sess)
	case data == DataBack:
		f.Audit.Record(userID, "back from "+string(sess.State))
		return f.back(ctx, sess)
	case strings.HasPrefix(data, PrefixBuild):
		name := strings.TrimPrefix(data, PrefixBuild)
		f.Audit.Record(userID, "choose building "+name)
		return f.chooseBuilding(ctx, sess, name)
	case strings.HasPrefix(data, PrefixRoom):
		name := strings.TrimPrefix(data, PrefixRoom)
		f.Audit.Record(userID, "choose room "+name)
		return f.chooseRoom(ctx, sess, name)
	case strings.HasPrefix(data, PrefixTime):
		f.Audit.Record(userID, fmt.Sprintf("choose start %s in %s", strings.TrimPrefix(data, PrefixTime), sess.Room))
		start, err := models.ParseClock(strings.TrimPrefix(data, PrefixTime))
		if err != nil {
			return Prompt{}, fmt.Errorf("%w: %v", ErrUnknownEvent, err)
		}
		return f.chooseStart(ctx, sess, start)
	case strings.HasPrefix(data, PrefixDur):
		minutes, err := strconv.Atoi(strings.TrimPrefix(data, PrefixDur))
		if err != nil {
			return Prompt{}, fmt.Errorf("%w: bad duration %q", ErrUnknownEvent, data)
		}
		duration, err := models.FromMinutes(minutes)
		if err != nil {
			return Prompt{}, fmt.Errorf("%w: %v", ErrUnknownEvent, err)
		}
		f.Audit.Record(userID, fmt.Sprintf("choose duration %s for %s from %s", models.FormatDuration(duration), sess.Room, sess.Start))
		return f.chooseDuration(ctx, sess, duration)
	case strings.HasPrefix(data, PrefixDelete):
		room, start, err := parseDelete(data)
		if err != nil {
			return Prompt{}, err
		}
		f.Audit.Record(userID, fmt.Sprintf("cancel booking %s at %s", room, start))
		return f.deleteBooking(ctx, sess, room, start)
	}
	return Prompt{}, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
}

func (f *Flow) save(ctx context.Context, sess *models.BookingSession) error {
	sess.UpdatedAt = f.Now()
	if err := f.Store.Save(ctx, sess); err != nil {
		f.Logger.Error("failed to save session", zap.Int64("userId", sess.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (f *Flow) buildings(ctx context.Context, sess *models.BookingSession) (Prompt, error) {
	sess.State = models.StateIdle
	sess.Building, sess.Room, sess.Start = "", "", 0
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: textBuildings}
	for _, b := range f.Catalog.Buildings() {
		p.Options = append(p.Options, Option{Label: b, Data: PrefixBuild + b})
	}
	p.Options = append(p.Options, backOption(DataMenu))
	return p, nil
}

func (f *Flow) chooseBuilding(ctx context.Context, sess *models.BookingSession, name string) (Prompt, error) {
	rooms, err := f.Engine.Rooms(name)
	if err != nil {
		return Prompt{}, fmt.Errorf("%w: %v", ErrUnknownEvent, err)
	}
	sess.State = models.StateBuildingChosen
	sess.Building = name
	sess.Room, sess.Start = "", 0
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: textRooms}
	for _, r := range rooms {
		p.Options = append(p.Options, Option{Label: r.Name, Data: PrefixRoom + r.Name})
	}
	p.Options = append(p.Options, backOption(DataRooms))
	return p, nil
}

func (f *Flow) chooseRoom(ctx context.Context, sess *models.BookingSession, name string) (Prompt, error) {
	room, ok := f.Catalog.Room(name)
	if !ok {
		return Prompt{}, fmt.Errorf("%w: %v: %s", ErrUnknownEvent, booking.ErrRoomNotFound, name)
	}
	grid, err := f.slotGrid(ctx, room, "")
	if err != nil {
		if booking.IsStoreError(err) {
			return tryLaterPrompt(), nil
		}
		return Prompt{}, err
	}
	sess.State = models.StateRoomChosen
	sess.Building = room.Building
	sess.Room = room.Name
	sess.Start = 0
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	return grid, nil
}

// slotGrid renders the day for room with taken slots disabled.
func (f *Flow) slotGrid(ctx context.Context, room models.Room, notice string) (Prompt, error) {
	slots, err := f.Engine.DaySlots(ctx, room.Name)
	if err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: textStart, Notice: notice}
	for _, s := range slots {
		if s.Taken {
			p.Options = append(p.Options, Option{Label: "❌ " + s.Start.String(), Disabled: true})
			continue
		}
		p.Options = append(p.Options, Option{Label: s.Start.String(), Data: PrefixTime + s.Start.String()})
	}
	p.Options = append(p.Options, backOption(PrefixBuild+room.Building))
	return p, nil
}

// regrid re-prompts slot selection for the session's room.
func (f *Flow) regrid(ctx context.Context, sess *models.BookingSession, notice string) (Prompt, error) {
	room, _ := f.Catalog.Room(sess.Room)
	grid, err := f.slotGrid(ctx, room, notice)
	if err != nil {
		if booking.IsStoreError(err) {
			return tryLaterPrompt(), nil
		}
		return Prompt{}, err
	}
	sess.State = models.StateRoomChosen
	sess.Start = 0
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	return grid, nil
}

func (f *Flow) chooseStart(ctx context.Context, sess *models.BookingSession, start models.HalfHour) (Prompt, error) {
	if sess.Room == "" || (sess.State != models.StateRoomChosen && sess.State != models.StateStartChosen) {
		return Prompt{}, fmt.Errorf("%w: no room selected", ErrUnknownEvent)
	}
	durations, err := f.Engine.ListDurations(ctx, sess.Room, start)
	switch {
	case booking.IsSlotTaken(err):
		f.Audit.Record(sess.UserID, "chose a taken time")
		return f.regrid(ctx, sess, textTaken)
	case booking.IsNoAvailability(err):
		f.Audit.Record(sess.UserID, "no durations available")
		return f.regrid(ctx, sess, textNoSlots)
	case booking.IsStoreError(err):
		return tryLaterPrompt(), nil
	case err != nil:
		return Prompt{}, err
	}

	sess.State = models.StateStartChosen
	sess.Start = start
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: textDuration}
	for _, d := range durations {
		p.Options = append(p.Options, Option{
			Label: models.FormatDuration(d),
			Data:  PrefixDur + strconv.Itoa(d.Minutes()),
		})
	}
	p.Options = append(p.Options, backOption(PrefixRoom+sess.Room))
	return p, nil
}

func (f *Flow) chooseDuration(ctx context.Context, sess *models.BookingSession, duration models.HalfHour) (Prompt, error) {
	if sess.State != models.StateStartChosen {
		return Prompt{}, fmt.Errorf("%w: no start selected", ErrUnknownEvent)
	}
	id, err := f.Engine.Commit(ctx, sess.UserID, sess.Room, sess.Start, duration)
	switch {
	case booking.IsSlotTaken(err):
		f.Audit.Record(sess.UserID, "lost the slot at commit")
		return f.regrid(ctx, sess, textTaken)
	case booking.IsStoreError(err):
		return tryLaterPrompt(), nil
	case errors.Is(err, booking.ErrInvalidBooking):
		return Prompt{}, fmt.Errorf("%w: %v", ErrUnknownEvent, err)
	case err != nil:
		return Prompt{}, err
	}

	text := fmt.Sprintf("✅ Booking for %s at %s for %s created!", sess.Room, sess.Start, models.FormatDuration(duration))
	sess.State = models.StateCommitted
	sess.BookingID = id
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	return Prompt{Text: text, Options: []Option{{Label: labelRestart, Data: DataMenu}}}, nil
}

func (f *Flow) cancelList(ctx context.Context, sess *models.BookingSession) (Prompt, error) {
	mine, err := f.Engine.ListUserBookings(ctx, sess.UserID)
	if err != nil {
		if booking.IsStoreError(err) {
			return tryLaterPrompt(), nil
		}
		return Prompt{}, err
	}
	if len(mine) == 0 {
		return Prompt{Text: textNoBookings, Options: []Option{backOption(DataMenu)}}, nil
	}
	sess.State = models.StateCancelListing
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	p := Prompt{Text: textCancelList}
	for _, b := range mine {
		p.Options = append(p.Options, Option{
			Label: fmt.Sprintf("%s at %s", b.Room, b.Start),
			Data:  fmt.Sprintf("%s%s:%s", PrefixDelete, b.Start, b.Room),
		})
	}
	p.Options = append(p.Options, backOption(DataMenu))
	return p, nil
}

// parseDelete splits "delete:HH:MM:<room>".
func parseDelete(data string) (string, models.HalfHour, error) {
	parts := strings.SplitN(strings.TrimPrefix(data, PrefixDelete), ":", 3)
	if len(parts) != 3 || parts[2] == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrUnknownEvent, data)
	}
	start, err := models.ParseClock(parts[0] + ":" + parts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUnknownEvent, err)
	}
	return parts[2], start, nil
}

func (f *Flow) deleteBooking(ctx context.Context, sess *models.BookingSession, room string, start models.HalfHour) (Prompt, error) {
	if _, err := f.Engine.Cancel(ctx, sess.UserID, room, start); err != nil {
		if booking.IsStoreError(err) {
			return tryLaterPrompt(), nil
		}
		return Prompt{}, err
	}
	sess.State = models.StateIdle
	if err := f.save(ctx, sess); err != nil {
		return Prompt{}, err
	}
	return Prompt{
		Text:    fmt.Sprintf("❌ Booking for %s at %s cancelled.", room, start),
		Options: []Option{{Label: labelRestart, Data: DataMenu}},
	}, nil
}

func (f *Flow) back(ctx context.Context, sess *models.BookingSession) (Prompt, error) {
	switch sess.State {
	case models.StateBuildingChosen:
		return f.buildings(ctx, sess)
	case models.StateRoomChosen:
		return f.chooseBuilding(ctx, sess, sess.Building)
	case models.StateStartChosen:
		return f.chooseRoom(ctx, sess, sess.Room)
	}
	return f.Start(ctx, sess.UserID)
}
