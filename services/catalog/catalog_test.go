package catalog

import (
	"errors"
	"testing"

	"roombook/models"
)

var inventory = []models.Building{
	{Name: "Videosecurity", Rooms: []string{"Silver", "Gold", "Антикамера"}},
	{Name: "Victiana", Rooms: []string{"Fres", "Trening room", "Conferens", "Mars", "White"}},
}

func TestCatalogOrderAndLookup(t *testing.T) {
	c, err := New(inventory)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Buildings(); len(got) != 2 || got[0] != "Videosecurity" || got[1] != "Victiana" {
		t.Fatalf("buildings = %v", got)
	}
	rooms, err := c.ListRooms("Victiana")
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 5 || rooms[0].Name != "Fres" || rooms[4].Name != "White" {
		t.Fatalf("rooms = %+v", rooms)
	}
	if !c.HasRoom("Антикамера") || c.HasRoom("Jupiter") {
		t.Fatal("HasRoom mismatch")
	}
	if r, ok := c.Room("Gold"); !ok || r.Building != "Videosecurity" {
		t.Fatalf("Room(Gold) = %+v, %v", r, ok)
	}
	if len(c.AllRooms()) != 8 {
		t.Fatalf("AllRooms = %d", len(c.AllRooms()))
	}
}

func TestListRoomsUnknownBuilding(t *testing.T) {
	c, err := New(inventory)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.ListRooms("Nowhere"); !errors.Is(err, ErrBuildingNotFound) {
		t.Fatalf("got %v, want ErrBuildingNotFound", err)
	}
}

func TestNewRejectsBadInventory(t *testing.T) {
	cases := map[string][]models.Building{
		"empty":          nil,
		"duplicate room": {{Name: "A", Rooms: []string{"X"}}, {Name: "B", Rooms: []string{"X"}}},
		"duplicate bld":  {{Name: "A", Rooms: []string{"X"}}, {Name: "A", Rooms: []string{"Y"}}},
		"unnamed room":   {{Name: "A", Rooms: []string{""}}},
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := New(b); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
