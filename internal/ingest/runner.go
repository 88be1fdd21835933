// Package ingest serializes the command stream into a single writer
// goroutine so the matching core (internal/engine) never needs its own
// locking (spec §5: one logical writer, since PriceLevel/book mutation
// is not safe for concurrent callers). Supervision follows the
// teacher's use of gopkg.in/tomb.v2 for goroutine lifecycle.
package ingest

import (
	"context"
	"errors"

	"matchbook/internal/engine"
	"matchbook/internal/protocol"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// ErrRunnerStopped names the condition of a runner that has been torn
// down. Nothing in this package returns it: Submit on a stopped runner
// waits until ctx is done and returns ctx.Err().
var ErrRunnerStopped = errors.New("ingest: runner stopped")

const commandQueueSize = 1024

// Command is a decoded request awaiting application to the engine.
type Command struct {
	RequestID uuid.UUID
	Add       *protocol.AddOrderCommand
	Cancel    *protocol.CancelOrderCommand
	Modify    *protocol.ModifyOrderCommand
}

// Result is the outcome of applying a Command to the engine.
type Result struct {
	RequestID uuid.UUID
	Trades    []engine.Trade
	Err       error
}

type request struct {
	cmd  Command
	resp chan Result
}

// Runner owns the matching engine and applies every command against it
// from a single goroutine, in submission order.
type Runner struct {
	eng     *engine.MatchingEngine
	queue   chan request
}

// NewRunner builds a Runner around an already-constructed engine.
func NewRunner(eng *engine.MatchingEngine) *Runner {
	return &Runner{
		eng:   eng,
		queue: make(chan request, commandQueueSize),
	}
}

// Start launches the serializing loop under the supervising tomb and
// returns immediately; the loop exits once the tomb begins dying.
func (r *Runner) Start(t *tomb.Tomb) {
	t.Go(func() error { return r.loop(t) })
}

func (r *Runner) loop(t *tomb.Tomb) error {
	for {
		select {
		case <-t.Dying():
			return nil
		case req := <-r.queue:
			req.resp <- r.apply(req.cmd)
		}
	}
}

// Submit hands a command to the runner and blocks for its result. Safe
// to call from many goroutines; commands are still applied to the
// engine one at a time.
func (r *Runner) Submit(ctx context.Context, cmd Command) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	resp := make(chan Result, 1)
	select {
	case r.queue <- request{cmd: cmd, resp: resp}:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}

	select {
	case res := <-resp:
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (r *Runner) apply(cmd Command) Result {
	res := Result{RequestID: cmd.RequestID}
	switch {
	case cmd.Add != nil:
		trades, err := r.eng.AddOrder(cmd.Add.OrderID, cmd.Add.Price, cmd.Add.Quantity, cmd.Add.IsBuy, cmd.Add.UserID, cmd.Add.TIF)
		res.Trades, res.Err = trades, err
	case cmd.Cancel != nil:
		res.Err = r.eng.CancelOrder(cmd.Cancel.OrderID)
	case cmd.Modify != nil:
		trades, err := r.eng.ModifyOrder(cmd.Modify.OrderID, cmd.Modify.NewPrice, cmd.Modify.NewQuantity)
		res.Trades, res.Err = trades, err
	default:
		res.Err = errors.New("ingest: empty command")
	}
	if res.Err != nil {
		log.Debug().Err(res.Err).Str("request_id", cmd.RequestID.String()).Msg("command rejected")
	}
	return res
}
