package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLedger(t *testing.T) {
	known := map[int64]struct{}{
		101: {},
		102: {},
	}

	ledger := NewLedger(known)

	assert.Equal(t, 2, ledger.Size())
	assert.True(t, ledger.Contains(101))
	assert.True(t, ledger.Contains(102))
	assert.False(t, ledger.Contains(103))
}

func TestNewLedger_CopiesKnownSet(t *testing.T) {
	known := map[int64]struct{}{101: {}}
	ledger := NewLedger(known)

	// Mutating the caller's map must not leak into the ledger.
	known[202] = struct{}{}
	delete(known, 101)

	assert.True(t, ledger.Contains(101))
	assert.False(t, ledger.Contains(202))
	assert.Equal(t, 1, ledger.Size())
}

func TestNewLedger_Empty(t *testing.T) {
	ledger := NewLedger(nil)

	assert.Equal(t, 0, ledger.Size())
	assert.False(t, ledger.Contains(1))
}

func TestLedger_Mark(t *testing.T) {
	ledger := NewLedger(nil)

	assert.False(t, ledger.Contains(42))

	ledger.Mark(42)

	assert.True(t, ledger.Contains(42))
	assert.Equal(t, 1, ledger.Size())

	// Marking twice is a no-op.
	ledger.Mark(42)
	assert.Equal(t, 1, ledger.Size())
}
