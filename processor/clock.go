package processor

import (
	"github.com/jonboulle/clockwork"

	"github.com/rony4d/go-tiprouter/tiprouter"
)

// Clock tells the processor where the ledger is in time.
type Clock interface {
	// Now returns the current slot and the epoch it belongs to.
	Now() (slot, epoch uint64)
}

// SlotClock derives slots from wall-clock time since genesis.
type SlotClock struct {
	clock clockwork.Clock
	rules tiprouter.EpochsRules
}

// NewSlotClock returns a SlotClock for rules reading time from clock.
func NewSlotClock(clock clockwork.Clock, rules tiprouter.EpochsRules) *SlotClock {
	return &SlotClock{
		clock: clock,
		rules: rules,
	}
}

// Now implements Clock. Before genesis it reports slot 0.
func (c *SlotClock) Now() (slot, epoch uint64) {
	elapsed := c.clock.Since(c.rules.GenesisTime)
	if elapsed > 0 {
		slot = uint64(elapsed / c.rules.SlotDuration)
	}
	return slot, slot / c.rules.SlotsPerEpoch
}

// FixedClock is a Clock that stands still.
type FixedClock struct {
	Slot  uint64
	Epoch uint64
}

// Now implements Clock.
func (c *FixedClock) Now() (slot, epoch uint64) {
	return c.Slot, c.Epoch
}
