package game

import "encoding/json"

// The wire protocol is a JSON named-event envelope, both directions:
// {"event": "join_room", "data": {...}}.

// Inbound event names.
const (
	EventGetRooms   = "get_rooms"
	EventCreateRoom = "create_room"
	EventJoinRoom   = "join_room"
	EventPlayerMove = "player_move"
	EventGameState  = "game_state"
	EventBallKicked = "ball_kicked"
	EventTeamChange = "team_change"
)

// Outbound event names.
const (
	EventRoomsList       = "rooms_list"
	EventRoomCreated     = "room_created"
	EventRoomsUpdated    = "rooms_updated"
	EventRoomJoined      = "room_joined"
	EventJoinError       = "join_error"
	EventPlayerJoined    = "player_joined"
	EventPlayerUpdate    = "player_update"
	EventGameStateUpdate = "game_state_update"
	EventBallUpdate      = "ball_update"
	EventTeamUpdated     = "team_updated"
	EventPlayerLeft      = "player_left"
	EventError           = "error"
)

type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func DecodeEnvelope(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Event == "" {
		return Envelope{}, ErrInvalidPayload
	}
	return env, nil
}

type CreateRoomData struct {
	RoomName     string `json:"roomName"`
	MaxPlayers   int    `json:"maxPlayers"`
	HasPassword  bool   `json:"hasPassword"`
	Password     string `json:"password"`
	PlayerName   string `json:"playerName"`
	PlayerNumber int    `json:"playerNumber"`
}

type JoinRoomData struct {
	RoomID       string `json:"roomId"`
	PlayerName   string `json:"playerName"`
	PlayerNumber int    `json:"playerNumber"`
	Password     string `json:"password"`
}

type MoveData struct {
	RoomID  string  `json:"roomId"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Running bool    `json:"running"`
}

// RoomScopedData extracts just the room id from relay payloads whose bodies
// are forwarded verbatim.
type RoomScopedData struct {
	RoomID string `json:"roomId"`
}

type TeamChangeData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	Team     Team   `json:"team"`
}

// PlayerUpdate is the re-keyed player_move broadcast, stamped with the
// sender's connection identity.
type PlayerUpdate struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	VX      float64 `json:"vx"`
	VY      float64 `json:"vy"`
	Running bool    `json:"running"`
}

func encode(event string, data any) []byte {
	var raw json.RawMessage
	if data != nil {
		raw, _ = json.Marshal(data)
	}
	b, _ := json.Marshal(Envelope{Event: event, Data: raw})
	return b
}

func MakeRoomsList(rooms []RoomSummary) []byte {
	if rooms == nil {
		rooms = []RoomSummary{}
	}
	return encode(EventRoomsList, rooms)
}

func MakeRoomCreated(room RoomState) []byte {
	return encode(EventRoomCreated, struct {
		Success bool      `json:"success"`
		RoomID  string    `json:"roomId"`
		Room    RoomState `json:"room"`
	}{true, room.ID, room})
}

func MakeRoomsUpdated() []byte {
	return encode(EventRoomsUpdated, nil)
}

func MakeRoomJoined(room RoomState) []byte {
	return encode(EventRoomJoined, struct {
		Success bool      `json:"success"`
		Room    RoomState `json:"room"`
	}{true, room})
}

func MakeJoinError(message string) []byte {
	return encode(EventJoinError, struct {
		Message string `json:"message"`
	}{message})
}

func MakePlayerJoined(player Player, room RoomState) []byte {
	return encode(EventPlayerJoined, struct {
		Player Player    `json:"player"`
		Room   RoomState `json:"room"`
	}{player, room})
}

func MakePlayerUpdate(update PlayerUpdate) []byte {
	return encode(EventPlayerUpdate, update)
}

func MakeGameStateUpdate(payload json.RawMessage) []byte {
	return encode(EventGameStateUpdate, payload)
}

func MakeBallUpdate(payload json.RawMessage) []byte {
	return encode(EventBallUpdate, payload)
}

func MakeTeamUpdated(room RoomState) []byte {
	return encode(EventTeamUpdated, struct {
		Room RoomState `json:"room"`
	}{room})
}

func MakePlayerLeft(playerID string, room RoomState) []byte {
	return encode(EventPlayerLeft, struct {
		PlayerID string    `json:"playerId"`
		Room     RoomState `json:"room"`
	}{playerID, room})
}

func MakeError(message string) []byte {
	return encode(EventError, struct {
		Message string `json:"message"`
	}{message})
}
