package svc

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/config"
	"jupkit/internal/journal"
	"jupkit/internal/journal/memory"
	"jupkit/internal/journal/postgres"
	"jupkit/internal/wallet"
	"jupkit/pkg/distributor"
	"jupkit/pkg/govern"
	"jupkit/pkg/lockedvoter"
)

// ErrNoWallet is returned by write operations when no key is configured.
var ErrNoWallet = errors.New("no wallet configured")

type ServiceContext struct {
	Config   config.Config
	Accounts config.Accounts

	Sol     *client.SolClient
	Jupiter *client.JupiterClient
	Proofs  *client.ProofClient
	Journal journal.Store

	// Wallet is nil when the config carries no key. Read-only commands
	// still work in that case.
	Wallet *wallet.Wallet

	// DryRun makes write operations simulate instead of sending.
	DryRun bool
}

func NewServiceContext(ctx context.Context, c config.Config) (*ServiceContext, error) {
	accounts, err := c.ParseAccounts()
	if err != nil {
		return nil, err
	}
	distributor.SetProgramID(accounts.Distributor)
	lockedvoter.SetProgramID(accounts.LockedVoter)
	govern.SetProgramID(accounts.Govern)

	w, err := wallet.Load(c.Wallet.PrivateKey, c.Wallet.Mnemonic, c.Wallet.Passphrase, c.Wallet.DerivationPath)
	if err != nil && !errors.Is(err, wallet.ErrNoKey) {
		return nil, fmt.Errorf("load wallet: %w", err)
	}

	rpcURL := c.Solana.Rpc
	if rpcURL == "" {
		rpcURL = rpc.MainNetBeta_RPC
	}
	opts := []client.SolOption{
		client.WithCommitment(rpc.CommitmentType(c.Solana.Commitment)),
		client.WithPollInterval(c.Solana.PollInterval),
		client.WithConfirmTimeout(c.Solana.ConfirmTimeout),
	}
	if c.Solana.Ws != "" {
		wsClient, err := ws.Connect(ctx, c.Solana.Ws)
		if err != nil {
			logx.Errorf("connect %s, falling back to polling: %v", c.Solana.Ws, err)
		} else {
			opts = append(opts, client.WithWS(wsClient))
		}
	}

	store, err := NewJournal(ctx, c.Journal)
	if err != nil {
		return nil, err
	}

	return &ServiceContext{
		Config:   c,
		Accounts: accounts,
		Sol:      client.NewSolClient(rpcURL, opts...),
		Jupiter:  client.NewJupiterClient(c.Jupiter.SwapURL, c.Jupiter.Timeout, c.Jupiter.Retries),
		Proofs:   client.NewProofClient(c.Jupiter.ProofURL, c.Jupiter.Timeout, c.Jupiter.Retries),
		Journal:  store,
		Wallet:   w,
	}, nil
}

// NewJournal opens postgres when a data source is set and memory otherwise.
func NewJournal(ctx context.Context, c config.JournalConf) (journal.Store, error) {
	if c.DataSource == "" {
		return memory.NewStore(), nil
	}
	store, err := postgres.Open(ctx, c.DataSource, c.MaxConns)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

// RequireWallet returns the configured wallet or ErrNoWallet.
func (s *ServiceContext) RequireWallet() (*wallet.Wallet, error) {
	if s.Wallet == nil {
		return nil, ErrNoWallet
	}
	return s.Wallet, nil
}

func (s *ServiceContext) Close() {
	s.Sol.Close()
	s.Journal.Close()
}
