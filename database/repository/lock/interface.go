// File: database/repository/lock/interface.go
package lockRepo

import (
	"context"
	"errors"
	"fmt"
)

// ErrLockTimeout is returned when the lock could not be acquired before ctx expired.
var ErrLockTimeout = errors.New("room lock not acquired")

// RoomLocker serializes commits for one (room, date) pair.
type RoomLocker interface {
	Lock(ctx context.Context, room, date string) (unlock func(), err error)
}

func lockKey(room, date string) string {
	return fmt.Sprintf("roomlock:%s:%s", room, date)
}
