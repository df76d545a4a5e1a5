package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/dexmath"
	"github.com/fleshka4/amm-router/internal/ledger"
)

// FungibleToken is the balance, allowance and transfer surface the router
// and pairs rely on. Mutating methods take the caller's frame.
type FungibleToken interface {
	ledger.Contract

	BalanceOf(owner common.Address) *big.Int
	Allowance(owner, spender common.Address) *big.Int
	TotalSupply() *big.Int

	Transfer(tx *ledger.Tx, to common.Address, amount *big.Int) error
	TransferFrom(tx *ledger.Tx, from, to common.Address, amount *big.Int) error
	Approve(tx *ledger.Tx, spender common.Address, amount *big.Int) error
}

// Permitter is a token that accepts EIP-2612 signed approvals.
type Permitter interface {
	FungibleToken

	Permit(tx *ledger.Tx, p Permit) error
}

// Permit is an off-chain signed approval.
type Permit struct {
	Owner    common.Address
	Spender  common.Address
	Value    *big.Int
	Deadline uint64
	V        uint8
	R        [32]byte
	S        [32]byte
}

type allowanceKey struct {
	owner   common.Address
	spender common.Address
}

// ERC20 is a fungible token with EIP-2612 permit support.
type ERC20 struct {
	address  common.Address
	name     string
	symbol   string
	decimals uint8

	totalSupply *ledger.Cell[*big.Int]
	balances    *ledger.Map[common.Address, *big.Int]
	allowances  *ledger.Map[allowanceKey, *big.Int]
	nonces      *ledger.Map[common.Address, uint64]

	domainSeparator common.Hash
}

// NewERC20 creates the token state for a contract living at addr.
func NewERC20(addr common.Address, name, symbol string, decimals uint8, chainID *big.Int) *ERC20 {
	return &ERC20{
		address:  addr,
		name:     name,
		symbol:   symbol,
		decimals: decimals,

		totalSupply: ledger.NewCell(new(big.Int)),
		balances:    ledger.NewMap[common.Address, *big.Int](),
		allowances:  ledger.NewMap[allowanceKey, *big.Int](),
		nonces:      ledger.NewMap[common.Address, uint64](),

		domainSeparator: domainSeparator(name, chainID, addr),
	}
}

// Deploy deploys a new ERC20 from the frame's address.
func Deploy(tx *ledger.Tx, name, symbol string, decimals uint8, chainID *big.Int) (*ERC20, error) {
	var t *ERC20
	_, err := tx.Deploy(func(addr common.Address) (ledger.Contract, error) {
		t = NewERC20(addr, name, symbol, decimals, chainID)
		return t, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tx.Deploy")
	}
	return t, nil
}

// DeployAt deploys a new ERC20 at a fixed address.
func DeployAt(tx *ledger.Tx, addr common.Address, name, symbol string, decimals uint8, chainID *big.Int) (*ERC20, error) {
	var t *ERC20
	err := tx.DeployAt(addr, func(addr common.Address) (ledger.Contract, error) {
		t = NewERC20(addr, name, symbol, decimals, chainID)
		return t, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tx.DeployAt")
	}
	return t, nil
}

// At resolves a FungibleToken deployed on the ledger.
func At(l *ledger.Ledger, addr common.Address) (FungibleToken, error) {
	return ledger.At[FungibleToken](l, addr)
}

func (t *ERC20) Address() common.Address { return t.address }
func (t *ERC20) Name() string            { return t.name }
func (t *ERC20) Symbol() string          { return t.symbol }
func (t *ERC20) Decimals() uint8         { return t.decimals }

// DomainSeparator returns the EIP-712 domain separator of the token.
func (t *ERC20) DomainSeparator() common.Hash { return t.domainSeparator }

func (t *ERC20) TotalSupply() *big.Int {
	return new(big.Int).Set(t.totalSupply.Get())
}

func (t *ERC20) BalanceOf(owner common.Address) *big.Int {
	if b, ok := t.balances.Get(owner); ok {
		return new(big.Int).Set(b)
	}
	return new(big.Int)
}

func (t *ERC20) Allowance(owner, spender common.Address) *big.Int {
	if a, ok := t.allowances.Get(allowanceKey{owner: owner, spender: spender}); ok {
		return new(big.Int).Set(a)
	}
	return new(big.Int)
}

// Nonces returns the next permit nonce of owner.
func (t *ERC20) Nonces(owner common.Address) uint64 {
	n, _ := t.nonces.Get(owner)
	return n
}

func (t *ERC20) Transfer(tx *ledger.Tx, to common.Address, amount *big.Int) error {
	in, err := tx.Call(t.address, nil)
	if err != nil {
		return err
	}
	return t.move(in, in.Caller(), to, amount)
}

func (t *ERC20) TransferFrom(tx *ledger.Tx, from, to common.Address, amount *big.Int) error {
	in, err := tx.Call(t.address, nil)
	if err != nil {
		return err
	}
	spender := in.Caller()
	if spender != from {
		allowed := t.Allowance(from, spender)
		// max allowance is never decreased.
		if allowed.Cmp(dexmath.MaxU256()) != 0 {
			if allowed.Cmp(amount) < 0 {
				return errors.Wrapf(apperrors.ErrInsufficientAllowance, "%s: %s allowed %s, need %s",
					t.symbol, spender.Hex(), allowed, amount)
			}
			t.allowances.Set(in, allowanceKey{owner: from, spender: spender}, allowed.Sub(allowed, amount))
		}
	}
	return t.move(in, from, to, amount)
}

func (t *ERC20) Approve(tx *ledger.Tx, spender common.Address, amount *big.Int) error {
	in, err := tx.Call(t.address, nil)
	if err != nil {
		return err
	}
	return t.approve(in, in.Caller(), spender, amount)
}

// Mint creates amount tokens for to. It performs no authorization: the
// embedding contract or genesis code decides who may mint.
func (t *ERC20) Mint(tx *ledger.Tx, to common.Address, amount *big.Int) error {
	supply := new(big.Int).Add(t.totalSupply.Get(), amount)
	if !dexmath.FitsU256(supply) {
		return errors.Wrapf(apperrors.ErrOverflow, "%s total supply", t.symbol)
	}
	t.totalSupply.Set(tx, supply)
	bal := t.BalanceOf(to)
	t.balances.Set(tx, to, bal.Add(bal, amount))
	return nil
}

// Burn destroys amount tokens held by from. Like Mint it is unguarded.
func (t *ERC20) Burn(tx *ledger.Tx, from common.Address, amount *big.Int) error {
	bal := t.BalanceOf(from)
	if bal.Cmp(amount) < 0 {
		return errors.Wrapf(apperrors.ErrInsufficientBalance, "%s: burn %s from %s holding %s",
			t.symbol, amount, from.Hex(), bal)
	}
	t.balances.Set(tx, from, bal.Sub(bal, amount))
	t.totalSupply.Set(tx, new(big.Int).Sub(t.totalSupply.Get(), amount))
	return nil
}

func (t *ERC20) move(tx *ledger.Tx, from, to common.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrap(apperrors.ErrInvalidArgument, "transfer amount")
	}
	fromBal := t.BalanceOf(from)
	if fromBal.Cmp(amount) < 0 {
		return errors.Wrapf(apperrors.ErrInsufficientBalance, "%s: %s holds %s, need %s",
			t.symbol, from.Hex(), fromBal, amount)
	}
	if from == to {
		return nil
	}
	toBal := t.BalanceOf(to)
	t.balances.Set(tx, from, fromBal.Sub(fromBal, amount))
	t.balances.Set(tx, to, toBal.Add(toBal, amount))
	return nil
}

func (t *ERC20) approve(tx *ledger.Tx, owner, spender common.Address, amount *big.Int) error {
	if amount == nil || !dexmath.FitsU256(amount) {
		return errors.Wrap(apperrors.ErrInvalidArgument, "approve amount")
	}
	t.allowances.Set(tx, allowanceKey{owner: owner, spender: spender}, new(big.Int).Set(amount))
	return nil
}
