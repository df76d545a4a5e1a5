package apperrors

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument is returned when the request parameters are invalid.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrExpired is returned when a call is made after its deadline.
	ErrExpired = errors.New("expired")

	// ErrInsufficientAAmount is returned when the settled amount of token A
	// is below the caller's minimum.
	ErrInsufficientAAmount = errors.New("insufficient A amount")

	// ErrInsufficientBAmount is returned when the settled amount of token B
	// is below the caller's minimum.
	ErrInsufficientBAmount = errors.New("insufficient B amount")

	// ErrInsufficientOutputAmount is returned when a swap would pay out less
	// than the caller's minimum, or when a requested output is zero.
	ErrInsufficientOutputAmount = errors.New("insufficient output amount")

	// ErrExcessiveInputAmount is returned when an exact-output swap needs
	// more input than the caller allowed.
	ErrExcessiveInputAmount = errors.New("excessive input amount")

	// ErrInsufficientAmount is returned by quote for a zero amount.
	ErrInsufficientAmount = errors.New("insufficient amount")

	// ErrInsufficientInputAmount is returned when a swap receives no input.
	ErrInsufficientInputAmount = errors.New("insufficient input amount")

	// ErrInsufficientLiquidity is returned when the pool does not have enough
	// reserves to satisfy the requested swap.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")

	// ErrInsufficientLiquidityMinted is returned when a deposit would mint no shares.
	ErrInsufficientLiquidityMinted = errors.New("insufficient liquidity minted")

	// ErrInsufficientLiquidityBurned is returned when a burn would pay out nothing
	// of one of the tokens.
	ErrInsufficientLiquidityBurned = errors.New("insufficient liquidity burned")

	// ErrIdenticalAddresses is returned when both sides of a pair are the same token.
	ErrIdenticalAddresses = errors.New("identical addresses")

	// ErrZeroAddress is returned when a token identity is the zero address.
	ErrZeroAddress = errors.New("zero address")

	// ErrK is returned when a swap would decrease the fee-adjusted constant product.
	ErrK = errors.New("K")

	// ErrInvalidPermit is returned when a permit signature does not recover to the owner.
	ErrInvalidPermit = errors.New("invalid permit")

	// ErrPairNotFound is returned when no pair exists for the requested tokens.
	ErrPairNotFound = errors.New("pair not found")

	// ErrPairExists is returned by the factory when the pair was already created.
	ErrPairExists = errors.New("pair exists")

	// ErrInvalidPath is returned for swap paths that are too short or do not
	// start or end with the wrapped native token where required.
	ErrInvalidPath = errors.New("invalid path")

	// ErrInvalidTo is returned when a swap recipient is one of the pair's tokens.
	ErrInvalidTo = errors.New("invalid to")

	// ErrLocked is returned on reentrant calls into a pair.
	ErrLocked = errors.New("locked")

	// ErrForbidden is returned when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrOverflow is returned when a value leaves the unsigned 256-bit range.
	ErrOverflow = errors.New("overflow")

	// ErrInsufficientBalance is returned when an account cannot cover a debit.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInsufficientAllowance is returned when a spender exceeds its allowance.
	ErrInsufficientAllowance = errors.New("insufficient allowance")

	// ErrContractNotFound is returned when no contract of the expected kind is
	// deployed at an address.
	ErrContractNotFound = errors.New("contract not found")

	// ErrPairRead is returned when fetching pair data (tokens or reserves) fails,
	// typically due to an RPC or ABI decoding error.
	ErrPairRead = errors.New("pair read failed")
)
