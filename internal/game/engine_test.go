package game

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/pitango/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// recordingPersister captures every saved state
type recordingPersister struct {
	saves []*State
	err   error
}

func (r *recordingPersister) Save(s *State) error {
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, s.Clone())
	return nil
}

func newTestEngine(t *testing.T, opts ...TestSnapshotOption) (*Engine, *recordingPersister) {
	t.Helper()
	p := &recordingPersister{}
	return NewEngine(NewState(NewTestSnapshot(opts...)), p, quietLogger()), p
}

func TestNewStateDeals(t *testing.T) {
	snap := NewTestSnapshot(WithStartWord("りんご"))
	s := NewState(snap)

	assert.Equal(t, snap.Players, s.Players)
	assert.Equal(t, "りんご", s.CurrentWord)
	assert.Empty(t, s.History)
	assert.NotNil(t, s.History)
	require.Len(t, s.Hands, 2)
	assert.Len(t, s.Hands["p1"], 2)
	assert.Len(t, s.Hands["p2"], 2)
	assert.Equal(t, 0, s.UsedCount())
	assert.Equal(t, 4, s.DealtCount())
}

func TestNewStateDefaultStartWord(t *testing.T) {
	s := NewState(NewTestSnapshot(WithStartWord("")))
	assert.Equal(t, DefaultStartWord, s.CurrentWord)
}

func TestNewStateDeterministic(t *testing.T) {
	snap := NewTestSnapshot(WithSeed("abc"), WithPlayers("a", "b", "c"), WithPerHand(3))
	assert.Equal(t, NewState(snap), NewState(snap))
}

func TestNewStateDoesNotAliasSnapshot(t *testing.T) {
	snap := NewTestSnapshot()
	s := NewState(snap)
	s.Players[0].Name = "changed"
	assert.Empty(t, snap.Players[0].Name)
}

func TestUseCardThenUndo(t *testing.T) {
	e, p := newTestEngine(t)
	before := e.State()
	card := before.Hands["p1"][0].Text

	entry, err := e.UseCard("p1", 0, "  りんご ")
	require.NoError(t, err)
	assert.Equal(t, HistoryEntry{
		PlayerID:  "p1",
		CardIndex: 0,
		CardText:  card,
		SaidWord:  "りんご",
		PrevWord:  before.CurrentWord,
	}, entry)

	s := e.State()
	assert.Equal(t, "りんご", s.CurrentWord)
	assert.True(t, s.Hands["p1"][0].Used)
	assert.Equal(t, []HistoryEntry{entry}, s.History)
	require.Len(t, p.saves, 1)
	assert.Equal(t, s, p.saves[0])

	undone, err := e.Undo()
	require.NoError(t, err)
	assert.Equal(t, entry, undone)

	s = e.State()
	assert.Equal(t, before.CurrentWord, s.CurrentWord)
	assert.False(t, s.Hands["p1"][0].Used)
	assert.Equal(t, before, s)
	assert.Len(t, p.saves, 2)
}

func TestUseCardGuards(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*Engine)
		player  string
		index   int
		word    string
		wantErr error
	}{
		{name: "unknown player", player: "nobody", index: 0, word: "x", wantErr: ErrUnknownPlayer},
		{name: "negative index", player: "p1", index: -1, word: "x", wantErr: ErrCardOutOfRange},
		{name: "index past end", player: "p1", index: 2, word: "x", wantErr: ErrCardOutOfRange},
		{name: "empty word", player: "p1", index: 0, word: "", wantErr: ErrEmptyWord},
		{name: "whitespace word", player: "p1", index: 0, word: " \t\n　", wantErr: ErrEmptyWord},
		{
			name: "already used",
			setup: func(e *Engine) {
				_, err := e.UseCard("p1", 1, "first")
				if err != nil {
					panic(err)
				}
			},
			player: "p1", index: 1, word: "again", wantErr: ErrCardUsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, p := newTestEngine(t)
			if tt.setup != nil {
				tt.setup(e)
			}
			before := e.State()
			saves := len(p.saves)

			_, err := e.UseCard(tt.player, tt.index, tt.word)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, e.State())
			assert.Len(t, p.saves, saves, "rejected call must not persist")
		})
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	e, p := newTestEngine(t)
	before := e.State()

	assert.False(t, e.CanUndo())
	_, err := e.Undo()
	require.ErrorIs(t, err, ErrNothingToUndo)
	assert.Equal(t, "nothing to undo", err.Error())
	assert.Equal(t, before, e.State())
	assert.Empty(t, p.saves)
}

func TestUndoIsLIFO(t *testing.T) {
	e, _ := newTestEngine(t)
	start := e.CurrentWord()

	_, err := e.UseCard("p1", 0, "one")
	require.NoError(t, err)
	_, err = e.UseCard("p2", 1, "two")
	require.NoError(t, err)
	_, err = e.UseCard("p1", 1, "three")
	require.NoError(t, err)

	words := []string{"two", "one", start}
	for _, want := range words {
		_, err := e.Undo()
		require.NoError(t, err)
		assert.Equal(t, want, e.CurrentWord())
	}
	_, err = e.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestInverseLaw(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			e, _ := newTestEngine(t,
				WithSeed(fmt.Sprint(seed)),
				WithPlayers("a", "b", "c"),
				WithPerHand(4),
				WithCards("c1", "c2", "c3", "c4", "c5", "c6", "c7", "c8", "c9", "c10"),
			)
			initial := e.State()
			rng := randutil.New(seed)

			applied := 0
			for attempt := 0; attempt < 30; attempt++ {
				s := e.State()
				player := s.Players[rng.IntN(len(s.Players))].ID
				idx := rng.IntN(5) // sometimes out of range
				_, err := e.UseCard(player, idx, fmt.Sprintf("w%d", attempt))
				if err == nil {
					applied++
				}

				after := e.State()
				require.Equal(t, len(after.History), after.UsedCount(), "history length tracks used cards")
			}

			for i := 0; i < applied; i++ {
				_, err := e.Undo()
				require.NoError(t, err)
			}
			assert.Equal(t, initial, e.State())
			assert.False(t, e.CanUndo())
		})
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	e, p := newTestEngine(t)
	boom := errors.New("disk full")

	t.Run("use card", func(t *testing.T) {
		before := e.State()
		p.err = boom
		_, err := e.UseCard("p1", 0, "word")
		p.err = nil

		require.ErrorIs(t, err, boom)
		assert.Equal(t, before, e.State())
	})

	t.Run("undo", func(t *testing.T) {
		_, err := e.UseCard("p1", 0, "word")
		require.NoError(t, err)
		before := e.State()

		p.err = boom
		_, err = e.Undo()
		p.err = nil

		require.ErrorIs(t, err, boom)
		assert.Equal(t, before, e.State())
	})
}

func TestStateReturnsCopy(t *testing.T) {
	e, _ := newTestEngine(t)
	s := e.State()
	s.Hands["p1"][0].Used = true
	s.CurrentWord = "tampered"
	s.History = append(s.History, HistoryEntry{PlayerID: "p1"})

	fresh := e.State()
	assert.False(t, fresh.Hands["p1"][0].Used)
	assert.NotEqual(t, "tampered", fresh.CurrentWord)
	assert.Empty(t, fresh.History)
}

func TestNilPersisterAndLogger(t *testing.T) {
	e := NewEngine(NewState(NewTestSnapshot()), nil, nil)
	_, err := e.UseCard("p2", 0, "ok")
	require.NoError(t, err)
	_, err = e.Undo()
	require.NoError(t, err)
}

func TestPersisterFunc(t *testing.T) {
	calls := 0
	e := NewEngine(NewState(NewTestSnapshot()), PersisterFunc(func(*State) error {
		calls++
		return nil
	}), quietLogger())

	_, err := e.UseCard("p1", 0, "x")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Alice", Player{Name: "Alice"}.DisplayName(0))
	assert.Equal(t, "Player 3", Player{Name: "   "}.DisplayName(2))
	assert.Equal(t, "Player 1", Player{}.DisplayName(0))
}

func TestIndexOf(t *testing.T) {
	players := NewTestSnapshot(WithPlayers("x", "y")).Players
	assert.Equal(t, 1, IndexOf(players, "y"))
	assert.Equal(t, -1, IndexOf(players, "z"))
	assert.Equal(t, []string{"x", "y"}, PlayerIDs(players))
}
