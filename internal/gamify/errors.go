package gamify

import "errors"

var (
	// ErrInsufficientFunds is returned when a debit exceeds the wallet
	// balance.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")

	// ErrMissionUnavailable is returned for missions that are disabled or
	// not offered to the user.
	ErrMissionUnavailable = errors.New("mission unavailable")

	// ErrMissionAlreadyCompleted is returned when the mission was already
	// claimed and its frequency does not allow another completion yet.
	ErrMissionAlreadyCompleted = errors.New("mission already completed")

	// ErrMissionRequirementsUnmet is returned when one or more requirement
	// counters have not reached their goal.
	ErrMissionRequirementsUnmet = errors.New("mission requirements not met")

	// ErrTitleNotPurchasable is returned for titles without a price or
	// withdrawn from sale.
	ErrTitleNotPurchasable = errors.New("title is not purchasable")

	// ErrTitleNotOwned is returned when toggling a title the user has not
	// earned or bought.
	ErrTitleNotOwned = errors.New("title not owned")

	// ErrTitleAlreadyOwned is returned when buying a title twice.
	ErrTitleAlreadyOwned = errors.New("title already owned")
)
