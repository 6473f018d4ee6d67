// Package game implements a Pitango session: hands dealt from a shuffled
// deck, a running chain of declared words, and an undo stack.
//
// # Basic Usage
//
// Deal a session from a lobby snapshot and play cards against it:
//
//	state := game.NewState(snap)
//	e := game.NewEngine(state, persister, logger)
//	entry, err := e.UseCard("p1", 0, "りんご")
//	// ...
//	e.Undo()
//
// Every successful UseCard or Undo is handed to the Persister before the
// call returns. If persisting fails the change is rolled back and the
// error returned, so the in-memory state never drifts from storage.
//
// # Deterministic Dealing
//
// A snapshot with a non-empty Seed always deals the same hands:
//
//	a := game.NewState(snap)
//	b := game.NewState(snap)
//	// a and b hold identical hands
package game
