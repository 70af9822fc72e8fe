package journal

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no entry has the requested signature.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when an entry with the same signature exists.
	ErrDuplicateKey = errors.New("duplicate key")

	ErrInvalidInput = errors.New("invalid input")
)

type Kind string

const (
	KindClaim Kind = "claim"
	KindStake Kind = "stake"
	KindVote  Kind = "vote"
	KindSwap  Kind = "swap"
)

type Status string

const (
	StatusSimulated Status = "simulated"
	StatusSent      Status = "sent"
	StatusConfirmed Status = "confirmed"
	StatusFailed    Status = "failed"
)

// Entry is one transaction built on behalf of a wallet. Simulated entries
// have no signature.
type Entry struct {
	ID        int64     `json:"id"`
	Kind      Kind      `json:"kind"`
	Wallet    string    `json:"wallet"`
	Mint      string    `json:"mint,omitempty"`
	Signature string    `json:"signature,omitempty"`
	Amount    uint64    `json:"amount"`
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Store persists entries. Implementations must be safe for concurrent use.
type Store interface {
	// Record inserts e and sets its ID and timestamps.
	Record(ctx context.Context, e *Entry) error
	// UpdateStatus moves the entry with signature to status.
	UpdateStatus(ctx context.Context, signature string, status Status, errMsg string) error
	Get(ctx context.Context, signature string) (*Entry, error)
	// ListByWallet returns the newest entries first.
	ListByWallet(ctx context.Context, wallet string, limit int) ([]*Entry, error)
	Close()
}

func Validate(e *Entry) error {
	if e == nil || e.Kind == "" || e.Wallet == "" || e.Status == "" {
		return ErrInvalidInput
	}
	return nil
}
