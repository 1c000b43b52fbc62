package domain

import "errors"

var (
	// ErrUnauthorized is returned when the caller lacks the required role or ownership
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput is returned for malformed or out-of-range parameters
	ErrInvalidInput = errors.New("invalid input")

	// ErrAlreadyRegistered is returned when an identity registers twice
	ErrAlreadyRegistered = errors.New("artist already registered")

	// ErrNotRegistered is returned when an operation requires a registered artist
	ErrNotRegistered = errors.New("artist not registered")

	// ErrAlreadyVerified is returned when a verified artist attempts verification again
	ErrAlreadyVerified = errors.New("artist already verified")

	// ErrAlreadyListed is returned when listing an artwork that is already for sale
	ErrAlreadyListed = errors.New("artwork already listed")

	// ErrNotListed is returned when unlisting or repricing an artwork that is not for sale
	ErrNotListed = errors.New("artwork not listed")

	// ErrNotForSale is returned when purchasing an artwork that is not listed
	ErrNotForSale = errors.New("artwork not for sale")

	// ErrPriceTooLow is returned when a price falls below the minimum listing price
	ErrPriceTooLow = errors.New("price below minimum")

	// ErrRoyaltyTooHigh is returned when a mint requests a royalty above the ceiling
	ErrRoyaltyTooHigh = errors.New("royalty percentage too high")

	// ErrInsufficientPayment is returned when the submitted value is below the requirement
	ErrInsufficientPayment = errors.New("insufficient payment")

	// ErrInsufficientFunds is returned when an account balance cannot cover a debit
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSelfPurchase is returned when the current owner attempts to buy their own artwork
	ErrSelfPurchase = errors.New("cannot purchase own artwork")

	// ErrReentrantCall is returned when a guarded operation is invoked while another is in flight
	ErrReentrantCall = errors.New("reentrant call")

	// ErrTransferFailed is returned when an outbound value transfer is rejected by its recipient
	ErrTransferFailed = errors.New("transfer failed")

	// ErrNothingToWithdraw is returned when the platform treasury holds no balance
	ErrNothingToWithdraw = errors.New("nothing to withdraw")
)
