package game

import (
	"sync"
	"time"

	"github.com/alexedwards/argon2id"
)

const DefaultMaxPlayers = 20

// room is the registry-internal mutable state. Its mutex serializes every
// read-mutate-snapshot sequence for one room; RoomState snapshots cross the
// lock boundary, *room never does.
type room struct {
	mu           sync.Mutex
	id           string
	name         string
	hostID       string
	maxPlayers   int
	passwordHash string
	players      []Player
	redTeam      []TeamMember
	blueTeam     []TeamMember
	spectators   []TeamMember
	createdAt    time.Time
	closed       bool
}

func newRoom(id, name string, maxPlayers int, passwordHash string, creator Player) *room {
	if maxPlayers <= 0 || maxPlayers > DefaultMaxPlayers {
		maxPlayers = DefaultMaxPlayers
	}
	creator.Team = TeamRed
	creator.IsHost = true
	r := &room{
		id:           id,
		name:         name,
		hostID:       creator.ID,
		maxPlayers:   maxPlayers,
		passwordHash: passwordHash,
		players:      []Player{creator},
		createdAt:    time.Now(),
	}
	r.rebuildTeams()
	return r
}

// rebuildTeams repartitions the three views from players. Views are always
// derived, never mutated on their own. Caller holds mu.
func (r *room) rebuildTeams() {
	r.redTeam = r.redTeam[:0]
	r.blueTeam = r.blueTeam[:0]
	r.spectators = r.spectators[:0]
	for _, p := range r.players {
		m := TeamMember{ID: p.ID, Name: p.Name, Number: p.Number}
		switch p.Team {
		case TeamRed:
			r.redTeam = append(r.redTeam, m)
		case TeamBlue:
			r.blueTeam = append(r.blueTeam, m)
		default:
			r.spectators = append(r.spectators, m)
		}
	}
}

// join appends a new spectator. The identity must not already be present;
// the registry's player index guards that before calling.
func (r *room) join(p Player, password string) (RoomState, Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A room that emptied out is gone even if the registry map hasn't
	// caught up yet.
	if r.closed {
		return RoomState{}, Player{}, ErrRoomNotFound
	}
	if len(r.players) >= r.maxPlayers {
		return RoomState{}, Player{}, ErrRoomFull
	}
	if r.passwordHash != "" {
		match, err := argon2id.ComparePasswordAndHash(password, r.passwordHash)
		if err != nil || !match {
			return RoomState{}, Player{}, ErrBadPassword
		}
	}

	p.Team = TeamSpectator
	p.IsHost = false
	r.players = append(r.players, p)
	r.rebuildTeams()
	return r.snapshot(), p, nil
}

// changeTeam moves a player between views. Unknown player: no-op.
func (r *room) changeTeam(playerID string, team Team) (RoomState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.players {
		if r.players[i].ID == playerID {
			r.players[i].Team = team
			r.rebuildTeams()
			return r.snapshot(), true
		}
	}
	return RoomState{}, false
}

// remove takes a player out, migrating the host to the earliest remaining
// joiner when needed. empty=true means the caller must delete the room.
func (r *room) remove(playerID string) (removed Player, state RoomState, empty, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.players {
		if r.players[i].ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Player{}, RoomState{}, false, false
	}

	removed = r.players[idx]
	r.players = append(r.players[:idx], r.players[idx+1:]...)

	if len(r.players) == 0 {
		r.closed = true
		return removed, RoomState{}, true, true
	}

	if r.hostID == removed.ID {
		r.hostID = r.players[0].ID
		r.players[0].IsHost = true
	}
	r.rebuildTeams()
	return removed, r.snapshot(), false, true
}

// snapshot copies the wire-facing state. Caller holds mu.
func (r *room) snapshot() RoomState {
	s := RoomState{
		ID:          r.id,
		Name:        r.name,
		Host:        r.hostID,
		MaxPlayers:  r.maxPlayers,
		HasPassword: r.passwordHash != "",
		Players:     make([]Player, len(r.players)),
		RedTeam:     make([]TeamMember, len(r.redTeam)),
		BlueTeam:    make([]TeamMember, len(r.blueTeam)),
		Spectators:  make([]TeamMember, len(r.spectators)),
		CreatedAt:   r.createdAt.UnixMilli(),
	}
	copy(s.Players, r.players)
	copy(s.RedTeam, r.redTeam)
	copy(s.BlueTeam, r.blueTeam)
	copy(s.Spectators, r.spectators)
	return s
}

func (r *room) summary() RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomSummary{
		ID:             r.id,
		Name:           r.name,
		Host:           r.hostID,
		MaxPlayers:     r.maxPlayers,
		CurrentPlayers: len(r.players),
		HasPassword:    r.passwordHash != "",
		CreatedAt:      r.createdAt.UnixMilli(),
	}
}

func (r *room) memberIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, len(r.players))
	for i, p := range r.players {
		ids[i] = p.ID
	}
	return ids
}

func (r *room) playerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

func (r *room) state() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}
