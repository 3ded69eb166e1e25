package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/metrics"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

// Slot names a mutating operation. Each (identity, slot) pair allows at most
// one non-terminal call at a time; different slots do not block each other.
type Slot string

const (
	SlotApply            Slot = "apply"
	SlotEnroll           Slot = "enroll"
	SlotClaimCertificate Slot = "claim-certificate"
	SlotApprove          Slot = "approve"
	SlotReject           Slot = "reject"
	SlotUpdateGPA        Slot = "update-gpa"
	SlotGraduate         Slot = "graduate"
)

// State is the call lifecycle state.
type State string

const (
	StateSubmitted  State = "SUBMITTED"
	StateConfirming State = "CONFIRMING"
	StateConfirmed  State = "CONFIRMED"
	StateFailed     State = "FAILED"
)

// Terminal reports whether the state is final.
func (s State) Terminal() bool {
	return s == StateConfirmed || s == StateFailed
}

// Call tracks one submitted ledger mutation.
type Call struct {
	ID          string         `json:"id"`
	Slot        Slot           `json:"slot"`
	Actor       common.Address `json:"actor"`
	State       State          `json:"state"`
	TxHash      string         `json:"txHash,omitempty"`
	Reason      Reason         `json:"reason,omitempty"`
	Message     string         `json:"message,omitempty"`
	SubmittedAt time.Time      `json:"submittedAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// SubmitFunc signs and submits the transaction. It runs after the
// single-flight check passed, so local validation must already be done.
type SubmitFunc func(ctx context.Context) (*types.Transaction, error)

// Waiter blocks until a transaction is mined.
type Waiter interface {
	WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}

// Invalidator drops cached state for an identity after a confirmed write.
type Invalidator interface {
	Invalidate(address common.Address)
}

// Dispatcher runs the Submitted -> Confirming -> Confirmed | Failed
// lifecycle for each action slot. The ledger stays authoritative: on
// confirmation the caller's snapshot is invalidated and re-read instead of
// being patched optimistically, since fields like the semester or derived
// student IDs cannot be predicted locally.
type Dispatcher struct {
	waiter      Waiter
	invalidator Invalidator
	metrics     metrics.Metrics
	logger      zerolog.Logger
	retention   time.Duration

	mu     sync.Mutex
	calls  map[string]*Call
	active map[string]string // actor|slot -> call id of the non-terminal call
}

// DefaultRetention is how long terminal calls stay queryable via Lookup
// before being pruned.
const DefaultRetention = time.Hour

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRetention overrides the terminal-call retention window.
func WithRetention(d time.Duration) Option {
	return func(disp *Dispatcher) {
		disp.retention = d
	}
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(waiter Waiter, invalidator Invalidator, m metrics.Metrics, lgr zerolog.Logger, opts ...Option) *Dispatcher {
	if m == nil {
		m = metrics.NewNopMetrics()
	}
	d := &Dispatcher{
		waiter:      waiter,
		invalidator: invalidator,
		metrics:     m,
		logger:      lgr,
		retention:   DefaultRetention,
		calls:       make(map[string]*Call),
		active:      make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func slotKey(actor common.Address, slot Slot) string {
	return actor.Hex() + "|" + string(slot)
}

// Dispatch submits the action unless the same slot already has a call in
// flight for this actor. The in-flight check is local and never contacts the
// ledger. Snapshots of the actor and any affected identities are invalidated
// on confirmation. The returned Call is a snapshot; poll Lookup for progress.
func (d *Dispatcher) Dispatch(actor common.Address, slot Slot, submit SubmitFunc, affected ...common.Address) (Call, error) {
	d.mu.Lock()
	d.pruneLocked(time.Now())
	if id, ok := d.active[slotKey(actor, slot)]; ok {
		inflight := *d.calls[id]
		d.mu.Unlock()
		return inflight, apperrors.NewConflictError("a " + string(slot) + " call is already in flight")
	}

	call := &Call{
		ID:          uuid.New().String(),
		Slot:        slot,
		Actor:       actor,
		State:       StateSubmitted,
		SubmittedAt: time.Now(),
		UpdatedAt:   time.Now(),
	}
	d.calls[call.ID] = call
	d.active[slotKey(actor, slot)] = call.ID
	snapshot := *call
	d.mu.Unlock()

	d.metrics.IncActionSubmitted(string(slot))
	d.logger.Info().Str("call", call.ID).Str("slot", string(slot)).Str("actor", actor.Hex()).Msg("Action submitted")

	// The wallet layer cannot be cancelled once asked to sign, and
	// confirmation must outlive the HTTP request, so the lifecycle runs on a
	// background context.
	go d.run(context.Background(), call.ID, submit, affected)

	return snapshot, nil
}

func (d *Dispatcher) run(ctx context.Context, id string, submit SubmitFunc, affected []common.Address) {
	tx, err := submit(ctx)
	if err != nil {
		d.fail(id, err)
		return
	}

	d.transition(id, func(call *Call) {
		call.State = StateConfirming
		call.TxHash = tx.Hash().Hex()
	})

	receipt, err := d.waiter.WaitMined(ctx, tx)
	if err != nil {
		d.fail(id, err)
		return
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		d.failReason(id, ReasonUnknown)
		return
	}
	d.confirm(id, affected)
}

func (d *Dispatcher) transition(id string, mutate func(*Call)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	call, ok := d.calls[id]
	if !ok {
		return
	}
	mutate(call)
	call.UpdatedAt = time.Now()
	if call.State.Terminal() {
		delete(d.active, slotKey(call.Actor, call.Slot))
	}
}

func (d *Dispatcher) confirm(id string, affected []common.Address) {
	var slot Slot
	var actor common.Address
	var latency time.Duration
	d.transition(id, func(call *Call) {
		call.State = StateConfirmed
		slot = call.Slot
		actor = call.Actor
		latency = time.Since(call.SubmittedAt)
	})

	d.metrics.IncActionConfirmed(string(slot))
	d.metrics.ObserveConfirmLatency(string(slot), latency)
	d.logger.Info().Str("call", id).Str("slot", string(slot)).Dur("latency", latency).Msg("Action confirmed")

	// Explicit invalidate-and-reread: the next status query fetches a fresh
	// snapshot rather than trusting any local guess.
	if d.invalidator != nil {
		d.invalidator.Invalidate(actor)
		for _, address := range affected {
			if address != actor {
				d.invalidator.Invalidate(address)
			}
		}
	}
}

func (d *Dispatcher) fail(id string, err error) {
	reason := Classify(err)
	d.logger.Warn().Str("call", id).Err(err).Str("reason", string(reason)).Msg("Action failed")
	d.failReason(id, reason)
}

func (d *Dispatcher) failReason(id string, reason Reason) {
	var slot Slot
	d.transition(id, func(call *Call) {
		call.State = StateFailed
		call.Reason = reason
		call.Message = reason.Message()
		slot = call.Slot
	})
	d.metrics.IncActionFailed(string(slot), string(reason))
}

// pruneLocked evicts terminal calls past the retention window so the call
// table stays bounded on a long-running gateway. Non-terminal calls are
// never evicted. Caller holds d.mu.
func (d *Dispatcher) pruneLocked(now time.Time) {
	for id, call := range d.calls {
		if call.State.Terminal() && now.Sub(call.UpdatedAt) > d.retention {
			delete(d.calls, id)
		}
	}
}

// Lookup returns the call with the given id. Terminal calls age out after
// the retention window and look up as not found.
func (d *Dispatcher) Lookup(id string) (Call, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	call, ok := d.calls[id]
	if !ok {
		return Call{}, apperrors.ErrCallNotFound
	}
	return *call, nil
}

// InFlight reports whether the actor has a non-terminal call in the slot.
func (d *Dispatcher) InFlight(actor common.Address, slot Slot) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.active[slotKey(actor, slot)]
	return ok
}
