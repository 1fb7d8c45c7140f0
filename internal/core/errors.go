// Package core defines sentinel errors shared across the binding.
package core

import "errors"

var (
	// Frame interpretation errors
	ErrFrameTooShort       = errors.New("someipbind: frame too short")
	ErrUpdateBitOutOfRange = errors.New("someipbind: update bit outside frame")

	// Event binding errors
	ErrNotSubscribed     = errors.New("someipbind: event not subscribed")
	ErrAlreadySubscribed = errors.New("someipbind: event already subscribed")

	// Configuration errors
	ErrConfigInvalid = errors.New("someipbind: invalid configuration")
)
