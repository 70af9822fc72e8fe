package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
	"github.com/zeromicro/go-zero/core/logx"
)

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrSimulationFailed  = errors.New("simulation failed")
	ErrTransactionFailed = errors.New("transaction failed")
	ErrBlockhashExpired  = errors.New("blockhash expired before confirmation")
)

const (
	defaultPollInterval   = 500 * time.Millisecond
	defaultConfirmTimeout = 90 * time.Second
)

// SolClient wraps the JSON-RPC client, and optionally a websocket client, with
// the account lookups and send/confirm flow the operations share.
type SolClient struct {
	rpc            *rpc.Client
	ws             *ws.Client
	commitment     rpc.CommitmentType
	pollInterval   time.Duration
	confirmTimeout time.Duration
}

type SolOption func(*SolClient)

// WithWS enables signatureSubscribe alongside status polling during Confirm.
func WithWS(wsClient *ws.Client) SolOption {
	return func(c *SolClient) { c.ws = wsClient }
}

func WithCommitment(commitment rpc.CommitmentType) SolOption {
	return func(c *SolClient) {
		if commitment != "" {
			c.commitment = commitment
		}
	}
}

func WithPollInterval(d time.Duration) SolOption {
	return func(c *SolClient) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

func WithConfirmTimeout(d time.Duration) SolOption {
	return func(c *SolClient) {
		if d > 0 {
			c.confirmTimeout = d
		}
	}
}

func NewSolClient(rpcURL string, opts ...SolOption) *SolClient {
	return NewSolClientFrom(rpc.New(rpcURL), opts...)
}

func NewSolClientFrom(rpcClient *rpc.Client, opts ...SolOption) *SolClient {
	c := &SolClient{
		rpc:            rpcClient,
		commitment:     rpc.CommitmentConfirmed,
		pollInterval:   defaultPollInterval,
		confirmTimeout: defaultConfirmTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *SolClient) RPC() *rpc.Client {
	return c.rpc
}

func (c *SolClient) Commitment() rpc.CommitmentType {
	return c.commitment
}

// GetAccount returns ErrAccountNotFound only when the node reports a null
// account. Transport and decoding failures are returned as they are.
func (c *SolClient) GetAccount(ctx context.Context, account solana.PublicKey) (*rpc.Account, error) {
	out, err := c.rpc.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
	}
	if err != nil {
		return nil, fmt.Errorf("get account %s: %w", account, err)
	}
	return out.Value, nil
}

func (c *SolClient) GetAccountData(ctx context.Context, account solana.PublicKey) ([]byte, error) {
	acc, err := c.GetAccount(ctx, account)
	if err != nil {
		return nil, err
	}
	if acc.Data == nil {
		return nil, nil
	}
	return acc.Data.GetBinary(), nil
}

// AccountExists reports false only for a null account.
func (c *SolClient) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := c.GetAccount(ctx, account)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type MintInfo struct {
	Address      solana.PublicKey
	TokenProgram solana.PublicKey
	Decimals     uint8
	Supply       uint64
}

// GetMint decodes a mint owned by either token program. The base layout is
// shared so extensions past it are ignored.
func (c *SolClient) GetMint(ctx context.Context, mint solana.PublicKey) (*MintInfo, error) {
	acc, err := c.GetAccount(ctx, mint)
	if err != nil {
		return nil, err
	}
	if !acc.Owner.Equals(solana.TokenProgramID) && !acc.Owner.Equals(solana.Token2022ProgramID) {
		return nil, fmt.Errorf("%s is owned by %s, not a token program", mint, acc.Owner)
	}
	var m token.Mint
	if err := m.UnmarshalWithDecoder(bin.NewBinDecoder(acc.Data.GetBinary())); err != nil {
		return nil, fmt.Errorf("decode mint %s: %w", mint, err)
	}
	return &MintInfo{
		Address:      mint,
		TokenProgram: acc.Owner,
		Decimals:     m.Decimals,
		Supply:       m.Supply,
	}, nil
}

type TokenAccount struct {
	Address solana.PublicKey
	token.Account
}

func (c *SolClient) GetTokenAccountsByOwner(ctx context.Context, owner, mint solana.PublicKey) ([]TokenAccount, error) {
	out, err := c.rpc.GetTokenAccountsByOwner(ctx, owner,
		&rpc.GetTokenAccountsConfig{Mint: &mint},
		&rpc.GetTokenAccountsOpts{Encoding: solana.EncodingBase64, Commitment: c.commitment},
	)
	if err != nil {
		return nil, fmt.Errorf("get token accounts of %s: %w", owner, err)
	}
	accounts := make([]TokenAccount, 0, len(out.Value))
	for _, v := range out.Value {
		if v == nil || v.Account.Data == nil {
			continue
		}
		var acc token.Account
		if err := acc.UnmarshalWithDecoder(bin.NewBinDecoder(v.Account.Data.GetBinary())); err != nil {
			return nil, fmt.Errorf("decode token account %s: %w", v.Pubkey, err)
		}
		accounts = append(accounts, TokenAccount{Address: v.Pubkey, Account: acc})
	}
	return accounts, nil
}

func (c *SolClient) LatestBlockhash(ctx context.Context) (*rpc.LatestBlockhashResult, error) {
	out, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		return nil, fmt.Errorf("get latest blockhash: %w", err)
	}
	if out.Value == nil {
		return nil, errors.New("get latest blockhash: empty result")
	}
	return out.Value, nil
}

type SimulationResult struct {
	Logs          []string
	UnitsConsumed uint64
}

// Simulate runs the transaction with a fresh blockhash and without signature
// checks, so unsigned transactions can be previewed.
func (c *SolClient) Simulate(ctx context.Context, tx *solana.Transaction) (*SimulationResult, error) {
	out, err := c.rpc.SimulateTransactionWithOpts(ctx, tx, &rpc.SimulateTransactionOpts{
		SigVerify:              false,
		ReplaceRecentBlockhash: true,
		Commitment:             rpc.CommitmentProcessed,
	})
	if err != nil {
		return nil, fmt.Errorf("simulate: %w", err)
	}
	if out.Value == nil {
		return nil, errors.New("simulate: empty result")
	}
	res := &SimulationResult{Logs: out.Value.Logs}
	if out.Value.UnitsConsumed != nil {
		res.UnitsConsumed = *out.Value.UnitsConsumed
	}
	if out.Value.Err != nil {
		return res, fmt.Errorf("%w: %v\n%s", ErrSimulationFailed, out.Value.Err, strings.Join(out.Value.Logs, "\n"))
	}
	return res, nil
}

// Send submits a signed transaction with preflight at the client commitment.
func (c *SolClient) Send(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send transaction: %w", err)
	}
	return sig, nil
}

// SendRaw submits serialized transaction bytes skipping preflight, the way
// aggregator-built transactions are usually pushed.
func (c *SolClient) SendRaw(ctx context.Context, raw []byte) (solana.Signature, error) {
	sig, err := c.rpc.SendEncodedTransactionWithOpts(ctx, base64.StdEncoding.EncodeToString(raw), rpc.TransactionOpts{
		SkipPreflight:       true,
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		return solana.Signature{}, fmt.Errorf("send raw transaction: %w", err)
	}
	return sig, nil
}

// Confirm waits until sig reaches the client commitment. It fails with
// ErrBlockhashExpired once the chain passes lastValidBlockHeight, and with
// ErrTransactionFailed when the transaction landed with an error. A zero
// lastValidBlockHeight disables the expiry check.
func (c *SolClient) Confirm(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) error {
	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	var notified <-chan error
	if c.ws != nil {
		notified = c.subscribe(ctx, sig)
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkStatus(ctx, sig, lastValidBlockHeight)
		if done {
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirm %s: %w", sig, ctx.Err())
		case err, ok := <-notified:
			if !ok {
				notified = nil
				continue
			}
			return err
		case <-ticker.C:
		}
	}
}

func (c *SolClient) checkStatus(ctx context.Context, sig solana.Signature, lastValidBlockHeight uint64) (bool, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, false, sig)
	if err == nil && len(out.Value) > 0 && out.Value[0] != nil {
		status := out.Value[0]
		if status.Err != nil {
			return true, fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, status.Err)
		}
		if reached(status.ConfirmationStatus, c.commitment) {
			return true, nil
		}
		return false, nil
	}
	if err != nil && !errors.Is(err, rpc.ErrNotFound) {
		logx.WithContext(ctx).Errorf("get signature status %s: %v", sig, err)
		return false, nil
	}
	if lastValidBlockHeight == 0 {
		return false, nil
	}
	height, err := c.rpc.GetBlockHeight(ctx, c.commitment)
	if err != nil {
		return false, nil
	}
	if height > lastValidBlockHeight {
		return true, fmt.Errorf("%w: %s at height %d > %d", ErrBlockhashExpired, sig, height, lastValidBlockHeight)
	}
	return false, nil
}

func reached(got rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	rank := func(s string) int {
		switch s {
		case "processed":
			return 1
		case "confirmed":
			return 2
		case "finalized":
			return 3
		}
		return 0
	}
	return rank(string(got)) >= rank(string(want)) && rank(string(got)) > 0
}

// subscribe delivers one result from signatureSubscribe, or closes the channel
// without a value when the subscription cannot be used.
func (c *SolClient) subscribe(ctx context.Context, sig solana.Signature) <-chan error {
	out := make(chan error, 1)
	go func() {
		defer close(out)
		sub, err := c.ws.SignatureSubscribe(sig, c.commitment)
		if err != nil {
			logx.WithContext(ctx).Errorf("subscribe %s: %v", sig, err)
			return
		}
		defer sub.Unsubscribe()
		got, err := sub.Recv(ctx)
		if err != nil {
			return
		}
		if got.Value.Err != nil {
			out <- fmt.Errorf("%w: %s: %v", ErrTransactionFailed, sig, got.Value.Err)
			return
		}
		out <- nil
	}()
	return out
}

// SendAndConfirm sends a signed transaction and waits for it.
func (c *SolClient) SendAndConfirm(ctx context.Context, tx *solana.Transaction, lastValidBlockHeight uint64) (solana.Signature, error) {
	sig, err := c.Send(ctx, tx)
	if err != nil {
		return sig, err
	}
	logx.WithContext(ctx).Infow("transaction sent", logx.Field("signature", sig.String()))
	return sig, c.Confirm(ctx, sig, lastValidBlockHeight)
}

func (c *SolClient) Close() {
	if c.ws != nil {
		c.ws.Close()
	}
}
