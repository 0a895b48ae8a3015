package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenreTags(t *testing.T) {
	tests := []struct {
		name  string
		genre string
		want  []string
	}{
		{"empty", "", nil},
		{"single", "RPG", []string{"RPG"}},
		{"multiple with spaces", "Action, Platformer , Shooter", []string{"Action", "Platformer", "Shooter"}},
		{"empty segments dropped", "RPG,,  ,Puzzle", []string{"RPG", "Puzzle"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Game{Genre: tt.genre}
			assert.Equal(t, tt.want, g.GenreTags())
		})
	}
}

func TestHasGenreMatchesWholeTagOnly(t *testing.T) {
	g := Game{Genre: "Action-Adventure, RPG"}

	assert.True(t, g.HasGenre("Action-Adventure"))
	assert.True(t, g.HasGenre("RPG"))
	assert.False(t, g.HasGenre("Action"), "a tag prefix is not a match")
}

func TestFilterStateMutualExclusivity(t *testing.T) {
	var f FilterState

	f.SetAlpha("M")
	f.SetGenre("RPG")
	assert.Empty(t, f.Alpha, "setting genre clears the alpha filter")
	assert.Equal(t, "RPG", f.Genre)

	f.SetStatus(StatusPlaying)
	assert.Empty(t, f.Genre, "setting status clears the genre filter")
	assert.True(t, f.StatusActive)

	f.SetAlpha(AlphaDigits)
	assert.False(t, f.StatusActive, "setting alpha clears the status filter")
	assert.True(t, f.Active())

	f.Clear()
	assert.False(t, f.Active())
}

func TestStatusUpdateSetSerializesOneField(t *testing.T) {
	var u StatusUpdate
	u.Set(StatusDropped, true)

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))
	assert.Equal(t, map[string]interface{}{"is_dropped": true}, fields)
}

func TestGameStatusFlagRoundtrip(t *testing.T) {
	var s GameStatus
	for _, kind := range StatusKinds {
		assert.False(t, s.Flag(kind))
		s.SetFlag(kind, true)
		assert.True(t, s.Flag(kind), kind.String())
	}
}

func TestParseStatusKind(t *testing.T) {
	for _, kind := range StatusKinds {
		got, ok := ParseStatusKind(kind.Param())
		require.True(t, ok, kind.Param())
		assert.Equal(t, kind, got)
	}

	_, ok := ParseStatusKind("nonsense")
	assert.False(t, ok)
}
