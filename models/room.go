package models

// Room is a catalog entry. Names are unique across buildings.
type Room struct {
	Building string `json:"building" mapstructure:"building"`
	Name     string `json:"name" mapstructure:"name"`
}

// Building groups rooms for navigation.
type Building struct {
	Name  string   `json:"name" mapstructure:"name"`
	Rooms []string `json:"rooms" mapstructure:"rooms"`
}
