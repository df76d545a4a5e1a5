package token

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/ledger"
)

// WrappedNative is an ERC20 backed 1:1 by native currency held by the contract.
type WrappedNative struct {
	*ERC20
}

// DeployWrappedNative deploys the wrapped native token from the frame's address.
func DeployWrappedNative(tx *ledger.Tx, chainID *big.Int) (*WrappedNative, error) {
	var w *WrappedNative
	_, err := tx.Deploy(func(addr common.Address) (ledger.Contract, error) {
		w = &WrappedNative{ERC20: NewERC20(addr, "Wrapped CSPR", "WCSPR", 9, chainID)}
		return w, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "tx.Deploy")
	}
	return w, nil
}

// Deposit wraps the attached value and credits it to the caller.
func (w *WrappedNative) Deposit(tx *ledger.Tx, value *big.Int) error {
	in, err := tx.Call(w.address, value)
	if err != nil {
		return err
	}
	return w.Mint(in, in.Caller(), in.Value())
}

// Withdraw burns amount wrapped units of the caller and sends back native currency.
func (w *WrappedNative) Withdraw(tx *ledger.Tx, amount *big.Int) error {
	in, err := tx.Call(w.address, nil)
	if err != nil {
		return err
	}
	if err := w.Burn(in, in.Caller(), amount); err != nil {
		return err
	}
	return in.SendNative(in.Caller(), amount)
}
