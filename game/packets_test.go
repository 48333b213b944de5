package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		raw     string
		event   string
		wantErr bool
	}{
		{name: "valid", raw: `{"event":"get_rooms"}`, event: EventGetRooms},
		{name: "valid with data", raw: `{"event":"player_move","data":{"roomId":"r1","x":1}}`, event: EventPlayerMove},
		{name: "not json", raw: `{oops`, wantErr: true},
		{name: "missing event", raw: `{"data":{}}`, wantErr: true},
		{name: "empty", raw: ``, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			env, err := DecodeEnvelope([]byte(tc.raw))
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.event, env.Event)
		})
	}
}

func TestMakeRoomsList_EmptyIsAnArray(t *testing.T) {
	t.Parallel()
	env, err := DecodeEnvelope(MakeRoomsList(nil))
	require.NoError(t, err)
	assert.Equal(t, EventRoomsList, env.Event)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRoomSummary_NeverCarriesSecrets(t *testing.T) {
	t.Parallel()
	raw, err := json.Marshal(RoomSummary{ID: "r1", Name: "Locked", HasPassword: true})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "password")
	assert.NotContains(t, fields, "players")
	assert.NotContains(t, fields, "redTeam")
	assert.Equal(t, true, fields["hasPassword"])
}

func TestMakePlayerLeft(t *testing.T) {
	t.Parallel()
	env, err := DecodeEnvelope(MakePlayerLeft("conn-a", RoomState{ID: "r1", Host: "conn-b"}))
	require.NoError(t, err)
	assert.Equal(t, EventPlayerLeft, env.Event)

	var data struct {
		PlayerID string    `json:"playerId"`
		Room     RoomState `json:"room"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "conn-a", data.PlayerID)
	assert.Equal(t, "conn-b", data.Room.Host)
}
