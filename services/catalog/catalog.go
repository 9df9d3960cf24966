package catalog

import (
	"errors"
	"fmt"

	"roombook/models"
)

var ErrBuildingNotFound = errors.New("building not found")

// Catalog is the static room inventory, in configured order.
type Catalog struct {
	buildings []models.Building
	rooms     map[string]models.Room
}

// New validates buildings and indexes their rooms. Room names must be
// unique across the whole catalog.
func New(buildings []models.Building) (*Catalog, error) {
	c := &Catalog{rooms: make(map[string]models.Room)}
	seenBuilding := make(map[string]bool)
	for _, b := range buildings {
		if b.Name == "" {
			return nil, errors.New("building with empty name")
		}
		if seenBuilding[b.Name] {
			return nil, fmt.Errorf("duplicate building %q", b.Name)
		}
		seenBuilding[b.Name] = true
		for _, r := range b.Rooms {
			if r == "" {
				return nil, fmt.Errorf("building %q has a room with empty name", b.Name)
			}
			if prev, ok := c.rooms[r]; ok {
				return nil, fmt.Errorf("room %q listed in both %q and %q", r, prev.Building, b.Name)
			}
			c.rooms[r] = models.Room{Building: b.Name, Name: r}
		}
		c.buildings = append(c.buildings, models.Building{
			Name:  b.Name,
			Rooms: append([]string(nil), b.Rooms...),
		})
	}
	if len(c.rooms) == 0 {
		return nil, errors.New("catalog has no rooms")
	}
	return c, nil
}

// Buildings returns building names.
func (c *Catalog) Buildings() []string {
	names := make([]string, 0, len(c.buildings))
	for _, b := range c.buildings {
		names = append(names, b.Name)
	}
	return names
}

func (c *Catalog) ListRooms(building string) ([]models.Room, error) {
	for _, b := range c.buildings {
		if b.Name != building {
			continue
		}
		rooms := make([]models.Room, 0, len(b.Rooms))
		for _, r := range b.Rooms {
			rooms = append(rooms, models.Room{Building: b.Name, Name: r})
		}
		return rooms, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrBuildingNotFound, building)
}

func (c *Catalog) HasRoom(name string) bool {
	_, ok := c.rooms[name]
	return ok
}

func (c *Catalog) Room(name string) (models.Room, bool) {
	r, ok := c.rooms[name]
	return r, ok
}

// AllRooms lists every room across buildings.
func (c *Catalog) AllRooms() []models.Room {
	var out []models.Room
	for _, b := range c.buildings {
		for _, r := range b.Rooms {
			out = append(out, models.Room{Building: b.Name, Name: r})
		}
	}
	return out
}
