package logic

import "errors"

var (
	ErrNoTokenAccount      = errors.New("no token account for mint")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyClaimed      = errors.New("allocation already claimed")
	ErrNoEscrow            = errors.New("no escrow for wallet")
)
