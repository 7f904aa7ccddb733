package vm

import (
	"fmt"
	"time"

	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/event"
)

// Block is the block a transaction is executed in. Timestamps are given in
// micro-seconds.
type Block struct {
	Height    int64
	Timestamp int64
}

func (b Block) String() string {
	return fmt.Sprintf("Block(height=%d,ts=%d)", b.Height, b.Timestamp)
}

// advance returns the block delta blocks after b.
func (b Block) advance(delta int64, interval time.Duration) Block {
	return Block{
		Height:    b.Height + delta,
		Timestamp: b.Timestamp + delta*interval.Microseconds(),
	}
}

// noTransaction is the index used while a block groups several transactions
// but none of them has started yet.
const noTransaction = -1

// Transaction describes the transaction currently executed.
type Transaction struct {
	Block Block
	Index int
}

// Hash derives a deterministic transaction hash from block and index.
func (t Transaction) Hash() []byte {
	return common.Sha3([]byte(fmt.Sprintf("%v:%d", t.Block, t.Index)))
}

// Timestamp returns the transaction timestamp in micro-seconds.
func (t Transaction) Timestamp() int64 {
	return t.Block.Timestamp + int64(t.Index)*10
}

// beginTransaction opens a transaction scope. Outside of any scope a new
// block is started; within an open scope the next transaction of the
// current block is started. Scopes counting as transaction collect their
// events in a fresh log which becomes the result of LastEvents once the
// returned function closes the scope.
func (e *Engine) beginTransaction(countsAsTransaction bool) func() {
	outermost := e.tx == nil
	if outermost {
		e.block = e.block.advance(1, e.params.BlockInterval)
		e.tx = &Transaction{Block: e.block, Index: noTransaction}
	}
	events := e.events
	if countsAsTransaction {
		e.tx.Index++
		e.events = event.NewLog()
		e.logger.Debug("Begin transaction", "block", e.tx.Block.Height, "index", e.tx.Index)
	}
	return func() {
		if countsAsTransaction {
			e.lastEvents = e.events.Events()
			e.events = events
		}
		if outermost {
			e.tx = nil
		}
	}
}

// Block returns the current block.
func (e *Engine) Block() Block {
	return e.block
}

// AdvanceBlock moves the chain delta blocks forward using the configured
// block interval.
func (e *Engine) AdvanceBlock(delta int64) error {
	return e.AdvanceBlockBy(delta, time.Duration(delta)*e.params.BlockInterval)
}

// AdvanceBlockBy moves the chain delta blocks and the given duration
// forward. Blocks can not be advanced while a transaction is executed.
func (e *Engine) AdvanceBlockBy(delta int64, duration time.Duration) error {
	if e.tx != nil {
		return stateError(ErrBlockInTransaction, "at %v", e.tx.Block)
	}
	if delta <= 0 || duration <= 0 {
		return argumentError(ErrInvalidParameter, "invalid block delta %d / %v", delta, duration)
	}
	e.block = Block{
		Height:    e.block.Height + delta,
		Timestamp: e.block.Timestamp + duration.Microseconds(),
	}
	e.logger.Debug("Advanced block", "height", e.block.Height, "timestamp", e.block.Timestamp)
	return nil
}
