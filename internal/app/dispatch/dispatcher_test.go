package dispatch_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KamiliaNHayati/university-registration-contracts/internal/app/dispatch"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/metrics"
	"github.com/KamiliaNHayati/university-registration-contracts/internal/pkg/apperrors"
)

var actor = common.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")

func newTx() *types.Transaction {
	return types.NewTx(&types.LegacyTx{Nonce: 1})
}

type fakeWaiter struct {
	release chan struct{}
	receipt *types.Receipt
	err     error
}

func (w *fakeWaiter) WaitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if w.release != nil {
		<-w.release
	}
	return w.receipt, w.err
}

type fakeInvalidator struct {
	mu        sync.Mutex
	addresses []common.Address
}

func (f *fakeInvalidator) Invalidate(address common.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addresses = append(f.addresses, address)
}

func (f *fakeInvalidator) invalidated() []common.Address {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]common.Address(nil), f.addresses...)
}

func newDispatcher(waiter dispatch.Waiter, invalidator dispatch.Invalidator) *dispatch.Dispatcher {
	return dispatch.NewDispatcher(waiter, invalidator, metrics.NewNopMetrics(), zerolog.Nop())
}

func awaitTerminal(t *testing.T, d *dispatch.Dispatcher, id string) dispatch.Call {
	t.Helper()
	var call dispatch.Call
	require.Eventually(t, func() bool {
		var err error
		call, err = d.Lookup(id)
		return err == nil && call.State.Terminal()
	}, 2*time.Second, 5*time.Millisecond)
	return call
}

func TestDispatchConfirmsAndInvalidates(t *testing.T) {
	waiter := &fakeWaiter{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}
	invalidator := &fakeInvalidator{}
	d := newDispatcher(waiter, invalidator)

	call, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)
	assert.Equal(t, dispatch.StateSubmitted, call.State)
	assert.Equal(t, actor, call.Actor)
	assert.NotEmpty(t, call.ID)

	final := awaitTerminal(t, d, call.ID)
	assert.Equal(t, dispatch.StateConfirmed, final.State)
	assert.NotEmpty(t, final.TxHash)
	assert.Equal(t, []common.Address{actor}, invalidator.invalidated())
	assert.False(t, d.InFlight(actor, dispatch.SlotApply))
}

func TestDispatchInvalidatesAffectedIdentities(t *testing.T) {
	student := common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
	waiter := &fakeWaiter{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}
	invalidator := &fakeInvalidator{}
	d := newDispatcher(waiter, invalidator)

	call, err := d.Dispatch(actor, dispatch.SlotApprove, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	}, student)
	require.NoError(t, err)

	awaitTerminal(t, d, call.ID)
	assert.ElementsMatch(t, []common.Address{actor, student}, invalidator.invalidated())
}

func TestDispatchClassifiesSubmitFailure(t *testing.T) {
	d := newDispatcher(&fakeWaiter{}, &fakeInvalidator{})

	call, err := d.Dispatch(actor, dispatch.SlotEnroll, func(ctx context.Context) (*types.Transaction, error) {
		return nil, errors.New("execution reverted: EnrollmentClosed()")
	})
	require.NoError(t, err)

	final := awaitTerminal(t, d, call.ID)
	assert.Equal(t, dispatch.StateFailed, final.State)
	assert.Equal(t, dispatch.ReasonEnrollmentClosed, final.Reason)
	assert.Equal(t, dispatch.ReasonEnrollmentClosed.Message(), final.Message)
	assert.Empty(t, final.TxHash)
}

func TestDispatchRevertedReceipt(t *testing.T) {
	waiter := &fakeWaiter{receipt: &types.Receipt{Status: types.ReceiptStatusFailed}}
	invalidator := &fakeInvalidator{}
	d := newDispatcher(waiter, invalidator)

	call, err := d.Dispatch(actor, dispatch.SlotEnroll, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)

	final := awaitTerminal(t, d, call.ID)
	assert.Equal(t, dispatch.StateFailed, final.State)
	assert.Equal(t, dispatch.ReasonUnknown, final.Reason)
	assert.Empty(t, invalidator.invalidated())
}

func TestDispatchSingleFlightPerSlot(t *testing.T) {
	waiter := &fakeWaiter{
		release: make(chan struct{}),
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful},
	}
	d := newDispatcher(waiter, &fakeInvalidator{})

	first, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		call, err := d.Lookup(first.ID)
		return err == nil && call.State == dispatch.StateConfirming
	}, 2*time.Second, 5*time.Millisecond)

	// Second attempt on the same slot is refused locally and returns the
	// in-flight call.
	inflight, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		t.Fatal("submit must not run for a rejected dispatch")
		return nil, nil
	})
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Equal(t, first.ID, inflight.ID)

	// A different slot is unaffected.
	assert.False(t, d.InFlight(actor, dispatch.SlotClaimCertificate))

	close(waiter.release)
	final := awaitTerminal(t, d, first.ID)
	assert.Equal(t, dispatch.StateConfirmed, final.State)

	// Terminal state frees the slot for a fresh dispatch.
	waiter.release = nil
	again, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, again.ID)
	awaitTerminal(t, d, again.ID)
}

func TestDispatchDistinctActorsShareSlot(t *testing.T) {
	other := common.HexToAddress("0x90F79bf6EB2c4f870365E785982E1f101E93b906")
	waiter := &fakeWaiter{
		release: make(chan struct{}),
		receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful},
	}
	d := newDispatcher(waiter, &fakeInvalidator{})

	_, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)

	second, err := d.Dispatch(other, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)

	close(waiter.release)
	awaitTerminal(t, d, second.ID)
}

func TestLookupUnknownCall(t *testing.T) {
	d := newDispatcher(&fakeWaiter{}, &fakeInvalidator{})
	_, err := d.Lookup("b0b6be16-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, apperrors.ErrCallNotFound)
}

func TestDispatchPrunesExpiredTerminalCalls(t *testing.T) {
	waiter := &fakeWaiter{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}
	d := dispatch.NewDispatcher(waiter, &fakeInvalidator{}, metrics.NewNopMetrics(), zerolog.Nop(),
		dispatch.WithRetention(10*time.Millisecond))

	call, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)
	awaitTerminal(t, d, call.ID)

	time.Sleep(50 * time.Millisecond)

	// Pruning happens on the next Dispatch; the expired call ages out while
	// the fresh one stays queryable.
	fresh, err := d.Dispatch(actor, dispatch.SlotEnroll, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)

	_, err = d.Lookup(call.ID)
	assert.ErrorIs(t, err, apperrors.ErrCallNotFound)
	_, err = d.Lookup(fresh.ID)
	assert.NoError(t, err)
}

func TestDispatchRetainsTerminalCallsWithinWindow(t *testing.T) {
	waiter := &fakeWaiter{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful}}
	d := newDispatcher(waiter, &fakeInvalidator{})

	call, err := d.Dispatch(actor, dispatch.SlotApply, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)
	awaitTerminal(t, d, call.ID)

	_, err = d.Dispatch(actor, dispatch.SlotEnroll, func(ctx context.Context) (*types.Transaction, error) {
		return newTx(), nil
	})
	require.NoError(t, err)

	got, err := d.Lookup(call.ID)
	require.NoError(t, err)
	assert.Equal(t, dispatch.StateConfirmed, got.State)
}
