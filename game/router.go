package game

import (
	"encoding/json"
	"slices"

	"github.com/rs/zerolog"
)

// Router validates inbound events against the registry, applies the
// mutation, and computes the fanout set. It keeps no state of its own.
type Router struct {
	registry *Registry
	hub      *Hub
	log      zerolog.Logger
}

func NewRouter(registry *Registry, hub *Hub, log zerolog.Logger) *Router {
	return &Router{
		registry: registry,
		hub:      hub,
		log:      log.With().Str("component", "router").Logger(),
	}
}

// Dispatch handles one inbound envelope from a connection.
func (rt *Router) Dispatch(c Conn, raw []byte) {
	env, err := DecodeEnvelope(raw)
	if err != nil {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}

	switch env.Event {
	case EventGetRooms:
		rt.handleGetRooms(c)
	case EventCreateRoom:
		rt.handleCreateRoom(c, env.Data)
	case EventJoinRoom:
		rt.handleJoinRoom(c, env.Data)
	case EventPlayerMove:
		rt.handlePlayerMove(c, env.Data)
	case EventGameState:
		rt.handleRelay(c, env.Data, MakeGameStateUpdate)
	case EventBallKicked:
		rt.handleRelay(c, env.Data, MakeBallUpdate)
	case EventTeamChange:
		rt.handleTeamChange(c, env.Data)
	default:
		rt.log.Debug().Str("conn", c.ID()).Str("event", env.Event).Msg("unknown event")
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
	}
}

func (rt *Router) handleGetRooms(c Conn) {
	c.Send(MakeRoomsList(slices.Collect(rt.registry.Rooms())))
}

func (rt *Router) handleCreateRoom(c Conn, data json.RawMessage) {
	var d CreateRoomData
	if err := json.Unmarshal(data, &d); err != nil || d.RoomName == "" {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}

	password := ""
	if d.HasPassword {
		password = d.Password
	}
	state, err := rt.registry.CreateRoom(c.ID(), d.PlayerName, d.PlayerNumber, CreateRoomParams{
		Name:       d.RoomName,
		MaxPlayers: d.MaxPlayers,
		Password:   password,
	})
	if err != nil {
		c.Send(MakeError(ErrorMessage(err)))
		return
	}

	c.Send(MakeRoomCreated(state))
	rt.hub.Broadcast(MakeRoomsUpdated())
}

func (rt *Router) handleJoinRoom(c Conn, data json.RawMessage) {
	var d JoinRoomData
	if err := json.Unmarshal(data, &d); err != nil || d.RoomID == "" {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}

	state, joined, err := rt.registry.JoinRoom(d.RoomID, c.ID(), d.PlayerName, d.PlayerNumber, d.Password)
	if err != nil {
		c.Send(MakeJoinError(ErrorMessage(err)))
		return
	}

	c.Send(MakeRoomJoined(state))
	rt.sendToRoom(d.RoomID, MakePlayerJoined(joined, state), "")
	rt.hub.Broadcast(MakeRoomsUpdated())
}

func (rt *Router) handlePlayerMove(c Conn, data json.RawMessage) {
	var d MoveData
	if err := json.Unmarshal(data, &d); err != nil {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}
	if !rt.senderInRoom(c, d.RoomID) {
		return
	}
	rt.sendToRoom(d.RoomID, MakePlayerUpdate(PlayerUpdate{
		ID:      c.ID(),
		X:       d.X,
		Y:       d.Y,
		VX:      d.VX,
		VY:      d.VY,
		Running: d.Running,
	}), c.ID())
}

// handleRelay forwards the raw payload to the sender's room, excluding the
// sender. The payload is never interpreted beyond the room id.
func (rt *Router) handleRelay(c Conn, data json.RawMessage, wrap func(json.RawMessage) []byte) {
	var d RoomScopedData
	if err := json.Unmarshal(data, &d); err != nil {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}
	if !rt.senderInRoom(c, d.RoomID) {
		return
	}
	rt.sendToRoom(d.RoomID, wrap(data), c.ID())
}

func (rt *Router) handleTeamChange(c Conn, data json.RawMessage) {
	var d TeamChangeData
	if err := json.Unmarshal(data, &d); err != nil || !d.Team.Valid() {
		c.Send(MakeError(ErrorMessage(ErrInvalidPayload)))
		return
	}

	state, ok := rt.registry.ChangeTeam(d.RoomID, d.PlayerID, d.Team)
	if !ok {
		// unknown room or player: permissive no-op
		return
	}
	rt.sendToRoom(d.RoomID, MakeTeamUpdated(state), "")
}

// HandleDisconnect applies the leave transitions for a closing connection.
// The hub entry is expected to be gone already, so room broadcasts and the
// global rooms_updated naturally exclude the leaver.
func (rt *Router) HandleDisconnect(connID string) {
	for _, removal := range rt.registry.RemoveFromAll(connID) {
		if removal.Deleted {
			rt.hub.Broadcast(MakeRoomsUpdated())
			continue
		}
		rt.sendToRoom(removal.RoomID, MakePlayerLeft(removal.Player.ID, removal.Room), "")
		rt.hub.Broadcast(MakeRoomsUpdated())
	}
}

func (rt *Router) senderInRoom(c Conn, roomID string) bool {
	current, ok := rt.registry.RoomOf(c.ID())
	if !ok || current != roomID {
		rt.log.Debug().Str("conn", c.ID()).Str("room", roomID).Msg("relay from non-member dropped")
		return false
	}
	return true
}

// sendToRoom computes the fanout set from registry membership at dispatch
// time and pushes to each member's outbound queue. excludeID skips the
// sender for no-echo relays; empty means room-inclusive.
func (rt *Router) sendToRoom(roomID string, data []byte, excludeID string) {
	members, ok := rt.registry.Members(roomID)
	if !ok {
		return
	}
	for _, id := range members {
		if id == excludeID {
			continue
		}
		if c, found := rt.hub.Get(id); found {
			c.Send(data)
		}
	}
}
