package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// authorization
	ErrNotOwner     = errors.New("caller is not the item owner")
	ErrUnauthorized = errors.New("caller is not the administrator")

	// precondition
	ErrNotApproved     = errors.New("item is not approved for trading")
	ErrAlreadyListed   = errors.New("item already has an active listing")
	ErrInAuction       = errors.New("item already has an active auction")
	ErrNotListed       = errors.New("item has no active listing")
	ErrNotActive       = errors.New("item has no active auction")
	ErrEnded           = errors.New("auction already ended")
	ErrNotYetEnded     = errors.New("auction has not ended yet")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrInvalidDuration = errors.New("invalid auction duration")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidRoyalty  = errors.New("invalid royalty rate")
	ErrSelfTrade       = errors.New("buyer and seller are the same account")
	ErrSelfBid         = errors.New("bidder is the auction seller")
	ErrBidTooLow       = errors.New("bid is not above the current highest bid")
	ErrPaused          = errors.New("marketplace is paused")
	ErrUnsupported     = errors.New("operation is not supported")

	// payment
	ErrInsufficientTender = errors.New("tendered amount is below the price")
	ErrTransferFailed     = errors.New("transfer failed")
	ErrNothingToWithdraw  = errors.New("no pending balance to withdraw")

	// configuration
	ErrFeeTooHigh = errors.New("fee rate exceeds the ceiling")
)
