package token

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/fleshka4/amm-router/internal/apperrors"
	"github.com/fleshka4/amm-router/internal/ledger"
)

var (
	domainTypeHash = crypto.Keccak256Hash([]byte(
		"EIP712Domain(string name,string version,uint256 chainId,address verifyingContract)"))
	permitTypeHash = crypto.Keccak256Hash([]byte(
		"Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"))

	versionHash = crypto.Keccak256Hash([]byte("1"))

	bytes32Ty, _ = abi.NewType("bytes32", "", nil)
	addressTy, _ = abi.NewType("address", "", nil)
	uint256Ty, _ = abi.NewType("uint256", "", nil)

	domainArgs = abi.Arguments{
		{Type: bytes32Ty}, {Type: bytes32Ty}, {Type: bytes32Ty}, {Type: uint256Ty}, {Type: addressTy},
	}
	permitArgs = abi.Arguments{
		{Type: bytes32Ty}, {Type: addressTy}, {Type: addressTy}, {Type: uint256Ty}, {Type: uint256Ty}, {Type: uint256Ty},
	}
)

func domainSeparator(name string, chainID *big.Int, verifyingContract common.Address) common.Hash {
	if chainID == nil {
		chainID = new(big.Int)
	}
	enc, err := domainArgs.Pack(
		[32]byte(domainTypeHash),
		[32]byte(crypto.Keccak256Hash([]byte(name))),
		[32]byte(versionHash),
		chainID,
		verifyingContract,
	)
	if err != nil {
		// argument types are static.
		panic(err)
	}
	return crypto.Keccak256Hash(enc)
}

// PermitDigest returns the EIP-712 digest an owner signs to approve spender.
func (t *ERC20) PermitDigest(owner, spender common.Address, value *big.Int, nonce, deadline uint64) (common.Hash, error) {
	enc, err := permitArgs.Pack(
		[32]byte(permitTypeHash),
		owner,
		spender,
		value,
		new(big.Int).SetUint64(nonce),
		new(big.Int).SetUint64(deadline),
	)
	if err != nil {
		return common.Hash{}, errors.Wrap(err, "permitArgs.Pack")
	}
	structHash := crypto.Keccak256(enc)
	return crypto.Keccak256Hash([]byte{0x19, 0x01}, t.domainSeparator.Bytes(), structHash), nil
}

// Permit sets spender's allowance over owner's tokens from a signature.
// The owner's nonce is consumed on success.
func (t *ERC20) Permit(tx *ledger.Tx, p Permit) error {
	in, err := tx.Call(t.address, nil)
	if err != nil {
		return err
	}
	if uint64(in.Time().Unix()) > p.Deadline {
		return errors.Wrap(apperrors.ErrExpired, "permit")
	}
	if p.Value == nil || p.Value.Sign() < 0 {
		return errors.Wrap(apperrors.ErrInvalidPermit, "value")
	}

	nonce := t.Nonces(p.Owner)
	digest, err := t.PermitDigest(p.Owner, p.Spender, p.Value, nonce, p.Deadline)
	if err != nil {
		return err
	}
	signer, err := recoverSigner(digest, p.V, p.R, p.S)
	if err != nil || signer == (common.Address{}) || signer != p.Owner {
		return errors.Wrapf(apperrors.ErrInvalidPermit, "signature does not match owner %s", p.Owner.Hex())
	}

	t.nonces.Set(in, p.Owner, nonce+1)
	return t.approve(in, p.Owner, p.Spender, p.Value)
}

func recoverSigner(digest common.Hash, v uint8, r, s [32]byte) (common.Address, error) {
	if v >= 27 {
		v -= 27
	}
	sig := make([]byte, crypto.SignatureLength)
	copy(sig[:32], r[:])
	copy(sig[32:64], s[:])
	sig[64] = v
	if !crypto.ValidateSignatureValues(v, new(big.Int).SetBytes(r[:]), new(big.Int).SetBytes(s[:]), true) {
		return common.Address{}, errors.New("malformed signature")
	}
	pub, err := crypto.SigToPub(digest.Bytes(), sig)
	if err != nil {
		return common.Address{}, errors.Wrap(err, "crypto.SigToPub")
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// SignPermit signs digest with key and returns it split into v, r and s,
// v in the 27/28 form.
func SignPermit(key *ecdsa.PrivateKey, digest common.Hash) (uint8, [32]byte, [32]byte, error) {
	var r, s [32]byte
	sig, err := crypto.Sign(digest.Bytes(), key)
	if err != nil {
		return 0, r, s, errors.Wrap(err, "crypto.Sign")
	}
	copy(r[:], sig[:32])
	copy(s[:], sig[32:64])
	return sig[64] + 27, r, s, nil
}
