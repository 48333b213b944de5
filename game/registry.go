package game

import (
	"iter"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreateRoomParams carries the client-supplied room settings. A zero
// MaxPlayers falls back to DefaultMaxPlayers; an empty Password makes an
// open room.
type CreateRoomParams struct {
	Name       string
	MaxPlayers int
	Password   string
}

// Registry owns the room map and the connection-to-room index. The outer
// RWMutex guards only the maps; each room serializes its own mutations, so
// list and broadcast paths never hold a lock across I/O.
type Registry struct {
	mu      sync.RWMutex
	rooms   map[string]*room
	roomOf  map[string]string // connection id -> room id
	log     zerolog.Logger
	hashing argon2id.Params
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		rooms:   make(map[string]*room),
		roomOf:  make(map[string]string),
		log:     log.With().Str("component", "registry").Logger(),
		hashing: *argon2id.DefaultParams,
	}
}

// CreateRoom makes a fresh room with the creator as host on the red team.
// The room id is registry-scoped and independent of any connection identity.
func (reg *Registry) CreateRoom(ownerID, ownerName string, ownerNumber int, params CreateRoomParams) (RoomState, error) {
	hash := ""
	if params.Password != "" {
		h, err := argon2id.CreateHash(params.Password, &reg.hashing)
		if err != nil {
			return RoomState{}, err
		}
		hash = h
	}

	creator := Player{ID: ownerID, Name: ownerName, Number: ownerNumber}

	reg.mu.Lock()
	if _, taken := reg.roomOf[ownerID]; taken {
		reg.mu.Unlock()
		return RoomState{}, ErrAlreadyInRoom
	}
	id := reg.freshID()
	r := newRoom(id, params.Name, params.MaxPlayers, hash, creator)
	reg.rooms[id] = r
	reg.roomOf[ownerID] = id
	reg.mu.Unlock()

	reg.log.Info().Str("room", id).Str("name", params.Name).Str("host", ownerID).Msg("room created")
	return r.state(), nil
}

// freshID re-rolls until the id is unused. Caller holds mu.
func (reg *Registry) freshID() string {
	for {
		id := uuid.NewString()
		if _, exists := reg.rooms[id]; !exists {
			return id
		}
	}
}

// Rooms yields the current room summaries. The room set is snapshotted up
// front, so the sequence is finite and restartable; each summary is read at
// yield time.
func (reg *Registry) Rooms() iter.Seq[RoomSummary] {
	return func(yield func(RoomSummary) bool) {
		reg.mu.RLock()
		rooms := make([]*room, 0, len(reg.rooms))
		for _, r := range reg.rooms {
			rooms = append(rooms, r)
		}
		reg.mu.RUnlock()

		for _, r := range rooms {
			if !yield(r.summary()) {
				return
			}
		}
	}
}

// JoinRoom adds the connection to a room as a spectator and returns the
// updated room plus the joined player record.
func (reg *Registry) JoinRoom(roomID, connID, name string, number int, password string) (RoomState, Player, error) {
	reg.mu.Lock()
	r, ok := reg.rooms[roomID]
	if !ok {
		reg.mu.Unlock()
		return RoomState{}, Player{}, ErrRoomNotFound
	}
	if _, taken := reg.roomOf[connID]; taken {
		reg.mu.Unlock()
		return RoomState{}, Player{}, ErrAlreadyInRoom
	}
	// Reserve the membership slot before releasing the map lock so a
	// concurrent join of the same identity cannot slip in.
	reg.roomOf[connID] = roomID
	reg.mu.Unlock()

	state, joined, err := r.join(Player{ID: connID, Name: name, Number: number}, password)
	if err != nil {
		reg.mu.Lock()
		delete(reg.roomOf, connID)
		reg.mu.Unlock()
		return RoomState{}, Player{}, err
	}
	reg.log.Info().Str("room", roomID).Str("player", connID).Msg("player joined")
	return state, joined, nil
}

// ChangeTeam repartitions a player. Unknown room or player is a silent no-op
// (ok=false), matching the permissive relay behavior.
func (reg *Registry) ChangeTeam(roomID, playerID string, team Team) (RoomState, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if !ok {
		return RoomState{}, false
	}
	return r.changeTeam(playerID, team)
}

// RemovePlayer drops a connection from a room, deleting the room when it
// empties and migrating the host otherwise.
func (reg *Registry) RemovePlayer(roomID, connID string) (Removal, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if !ok {
		return Removal{}, false
	}

	removed, state, empty, found := r.remove(connID)
	if !found {
		return Removal{}, false
	}

	reg.mu.Lock()
	delete(reg.roomOf, connID)
	if empty {
		delete(reg.rooms, roomID)
	}
	reg.mu.Unlock()

	if empty {
		reg.log.Info().Str("room", roomID).Msg("room deleted")
	}
	return Removal{RoomID: roomID, Room: state, Player: removed, Deleted: empty}, true
}

// RemoveFromAll handles a disconnect: the identity is removed from every
// room holding it. With the membership index that is at most one room, but
// the result stays a slice so callers treat it uniformly.
func (reg *Registry) RemoveFromAll(connID string) []Removal {
	reg.mu.RLock()
	roomID, ok := reg.roomOf[connID]
	reg.mu.RUnlock()
	if !ok {
		return nil
	}
	removal, found := reg.RemovePlayer(roomID, connID)
	if !found {
		return nil
	}
	return []Removal{removal}
}

// RoomOf reports which room a connection currently occupies.
func (reg *Registry) RoomOf(connID string) (string, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	id, ok := reg.roomOf[connID]
	return id, ok
}

// Members returns the connection ids of a room's players.
func (reg *Registry) Members(roomID string) ([]string, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return r.memberIDs(), true
}

// Room returns a snapshot of one room.
func (reg *Registry) Room(roomID string) (RoomState, bool) {
	reg.mu.RLock()
	r, ok := reg.rooms[roomID]
	reg.mu.RUnlock()
	if !ok {
		return RoomState{}, false
	}
	return r.state(), true
}

// Counts reports live room and player totals for the status surface.
func (reg *Registry) Counts() (rooms, players int) {
	reg.mu.RLock()
	snapshot := make([]*room, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		snapshot = append(snapshot, r)
	}
	reg.mu.RUnlock()

	for _, r := range snapshot {
		players += r.playerCount()
	}
	return len(snapshot), players
}
