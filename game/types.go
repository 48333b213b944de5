package game

type Team string

const (
	TeamRed       Team = "red"
	TeamBlue      Team = "blue"
	TeamSpectator Team = "spectator"
)

func (t Team) Valid() bool {
	return t == TeamRed || t == TeamBlue || t == TeamSpectator
}

// Player is a room member as it appears on the wire. ID is the player's
// connection identity.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
	Team   Team   `json:"team"`
	IsHost bool   `json:"isHost"`
}

// TeamMember is the reduced player record carried in the redTeam / blueTeam /
// spectators views.
type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

// RoomState is a point-in-time snapshot of a room, safe to hand out after
// the room's lock is released. The password never leaves the registry.
type RoomState struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Host        string       `json:"host"`
	MaxPlayers  int          `json:"maxPlayers"`
	HasPassword bool         `json:"hasPassword"`
	Players     []Player     `json:"players"`
	RedTeam     []TeamMember `json:"redTeam"`
	BlueTeam    []TeamMember `json:"blueTeam"`
	Spectators  []TeamMember `json:"spectators"`
	CreatedAt   int64        `json:"createdAt"`
}

// RoomSummary is the lightweight listing entry: no rosters, no identities,
// no secrets.
type RoomSummary struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Host           string `json:"host"`
	MaxPlayers     int    `json:"maxPlayers"`
	CurrentPlayers int    `json:"currentPlayers"`
	HasPassword    bool   `json:"hasPassword"`
	CreatedAt      int64  `json:"createdAt"`
}

// Removal reports the outcome of taking a player out of a room.
type Removal struct {
	RoomID  string
	Room    RoomState
	Player  Player
	Deleted bool
}
