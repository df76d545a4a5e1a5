package ledger

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/fleshka4/amm-router/internal/apperrors"
)

// Contract is anything deployed on the ledger.
type Contract interface {
	Address() common.Address
}

// Ledger is an in-process execution host. It serializes calls, tracks native
// balances and deployed contracts, and undoes every journaled mutation of a
// call that fails.
type Ledger struct {
	mu    sync.Mutex
	clock func() time.Time
	log   *zap.Logger

	native    *Map[common.Address, *big.Int]
	nonces    *Map[common.Address, uint64]
	contracts *Map[common.Address, Contract]

	journal  []func()
	onCommit []func()
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock overrides the source of block time.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithLogger sets the logger used for call tracing.
func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		l.log = log
	}
}

// New creates an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		clock:     time.Now,
		log:       zap.NewNop(),
		native:    NewMap[common.Address, *big.Int](),
		nonces:    NewMap[common.Address, uint64](),
		contracts: NewMap[common.Address, Contract](),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Execute runs fn as one atomic call originated by from. If fn returns an
// error or panics, all state changes made during the call are rolled back.
func (l *Ledger) Execute(ctx context.Context, from common.Address, fn func(tx *Tx) error) (err error) {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "ctx.Err")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.journal = l.journal[:0]
	l.onCommit = l.onCommit[:0]

	tx := &Tx{
		l:      l,
		ctx:    ctx,
		caller: from,
		self:   from,
		value:  new(big.Int),
		now:    l.clock(),
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("call panicked: %v", r)
		}
		if err != nil {
			l.revert()
			l.log.Debug("call reverted", zap.Stringer("from", from), zap.Error(err))
			return
		}
		hooks := l.onCommit
		l.journal = l.journal[:0]
		l.onCommit = nil
		for _, h := range hooks {
			h()
		}
	}()

	return fn(tx)
}

// View runs fn under the ledger lock without a transaction. fn must not mutate state.
func (l *Ledger) View(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// Contract returns the contract deployed at addr. Callers must hold the
// ledger lock, i.e. run inside Execute or View.
func (l *Ledger) Contract(addr common.Address) (Contract, bool) {
	return l.contracts.Get(addr)
}

// NativeBalance returns the native currency held by addr. Callers must hold
// the ledger lock.
func (l *Ledger) NativeBalance(addr common.Address) *big.Int {
	if b, ok := l.native.Get(addr); ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

// Now returns the current block time.
func (l *Ledger) Now() time.Time {
	return l.clock()
}

func (l *Ledger) revert() {
	for i := len(l.journal) - 1; i >= 0; i-- {
		l.journal[i]()
	}
	l.journal = l.journal[:0]
	l.onCommit = l.onCommit[:0]
}

// At resolves the contract at addr as T.
func At[T any](l *Ledger, addr common.Address) (T, error) {
	var zero T
	c, ok := l.Contract(addr)
	if !ok {
		return zero, errors.Wrapf(apperrors.ErrContractNotFound, "no contract at %s", addr.Hex())
	}
	t, ok := c.(T)
	if !ok {
		return zero, errors.Wrapf(apperrors.ErrContractNotFound, "unexpected contract kind at %s", addr.Hex())
	}
	return t, nil
}

// Tx is a call frame. Caller is the address that invoked the current
// contract, Self is the contract being executed.
type Tx struct {
	l      *Ledger
	ctx    context.Context
	caller common.Address
	self   common.Address
	value  *big.Int
	now    time.Time
}

// Caller returns the immediate caller of the frame.
func (tx *Tx) Caller() common.Address { return tx.caller }

// Self returns the address executing the frame.
func (tx *Tx) Self() common.Address { return tx.self }

// Value returns the native currency attached to the frame.
func (tx *Tx) Value() *big.Int { return new(big.Int).Set(tx.value) }

// Time returns the block time of the call.
func (tx *Tx) Time() time.Time { return tx.now }

// Context returns the context of the call.
func (tx *Tx) Context() context.Context { return tx.ctx }

// Ledger returns the ledger the frame runs on.
func (tx *Tx) Ledger() *Ledger { return tx.l }

// Call enters a frame of the contract at to, moving value from the current
// frame's address to it.
func (tx *Tx) Call(to common.Address, value *big.Int) (*Tx, error) {
	if value == nil {
		value = new(big.Int)
	}
	if value.Sign() < 0 {
		return nil, errors.Wrapf(apperrors.ErrInvalidArgument, "negative call value %s", value)
	}
	if err := tx.ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "ctx.Err")
	}
	if value.Sign() > 0 {
		if err := tx.moveNative(tx.self, to, value); err != nil {
			return nil, err
		}
	}
	return &Tx{
		l:      tx.l,
		ctx:    tx.ctx,
		caller: tx.self,
		self:   to,
		value:  new(big.Int).Set(value),
		now:    tx.now,
	}, nil
}

// OnRevert registers an undo step for a mutation made in this call.
func (tx *Tx) OnRevert(undo func()) {
	tx.l.journal = append(tx.l.journal, undo)
}

// OnCommit registers fn to run once the whole call has committed.
func (tx *Tx) OnCommit(fn func()) {
	tx.l.onCommit = append(tx.l.onCommit, fn)
}

// SendNative transfers native currency from the frame's address.
func (tx *Tx) SendNative(to common.Address, amount *big.Int) error {
	return tx.moveNative(tx.self, to, amount)
}

// MintNative credits native currency out of thin air. Reserved for genesis.
func (tx *Tx) MintNative(to common.Address, amount *big.Int) {
	bal := tx.l.NativeBalance(to)
	tx.l.native.Set(tx, to, bal.Add(bal, amount))
}

func (tx *Tx) moveNative(from, to common.Address, amount *big.Int) error {
	if amount.Sign() < 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "negative native amount")
	}
	if amount.Sign() == 0 || from == to {
		return nil
	}
	fromBal := tx.l.NativeBalance(from)
	if fromBal.Cmp(amount) < 0 {
		return errors.Wrapf(apperrors.ErrInsufficientBalance, "native balance of %s", from.Hex())
	}
	toBal := tx.l.NativeBalance(to)
	tx.l.native.Set(tx, from, fromBal.Sub(fromBal, amount))
	tx.l.native.Set(tx, to, toBal.Add(toBal, amount))
	return nil
}

// Deploy creates a contract at the next address derived from the frame's
// address and nonce.
func (tx *Tx) Deploy(build func(addr common.Address) (Contract, error)) (common.Address, error) {
	nonce, _ := tx.l.nonces.Get(tx.self)
	addr := crypto.CreateAddress(tx.self, nonce)
	tx.l.nonces.Set(tx, tx.self, nonce+1)
	return addr, tx.DeployAt(addr, build)
}

// DeployAt creates a contract at a fixed address.
func (tx *Tx) DeployAt(addr common.Address, build func(addr common.Address) (Contract, error)) error {
	if _, ok := tx.l.contracts.Get(addr); ok {
		return errors.Errorf("address %s already in use", addr.Hex())
	}
	c, err := build(addr)
	if err != nil {
		return errors.Wrap(err, "build")
	}
	tx.l.contracts.Set(tx, addr, c)
	return nil
}
