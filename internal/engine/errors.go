package engine

import "errors"

// All command failures are locally recoverable: the caller receives the
// previous state unchanged alongside one of these errors.
var (
	// ErrGameOver rejects commands against a terminal session.
	ErrGameOver = errors.New("engine: game is over")

	// ErrPaused rejects moves and powerup commands while paused.
	ErrPaused = errors.New("engine: game is paused")

	// ErrPowerupNotUnlocked rejects activating a powerup that was never
	// unlocked this session.
	ErrPowerupNotUnlocked = errors.New("engine: powerup not unlocked")

	// ErrPowerupAlreadyUsed rejects a second activation of the same
	// powerup type, and re-unlocking a type already held or spent.
	ErrPowerupAlreadyUsed = errors.New("engine: powerup already used")

	// ErrPowerupCapacity rejects a fourth simultaneous unlock.
	ErrPowerupCapacity = errors.New("engine: powerup capacity exceeded")

	// ErrTargetRequired rejects any command while a targeted powerup is
	// still waiting for ApplyTarget.
	ErrTargetRequired = errors.New("engine: powerup target required")

	// ErrNoPendingTarget rejects ApplyTarget when nothing awaits a
	// target.
	ErrNoPendingTarget = errors.New("engine: no powerup awaiting a target")

	// ErrInvalidTarget rejects a target that is out of range or illegal
	// for the pending powerup.
	ErrInvalidTarget = errors.New("engine: invalid target")

	// ErrNothingToUndo rejects Undo when no previous state is buffered.
	ErrNothingToUndo = errors.New("engine: nothing to undo")

	// ErrNotWon rejects ContinueAfterWin before the win threshold is
	// reached.
	ErrNotWon = errors.New("engine: session has not been won")
)
