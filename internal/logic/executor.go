package logic

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

// Outcome describes a transaction that was either sent or simulated.
type Outcome struct {
	Signature     solana.Signature
	Simulated     bool
	UnitsConsumed uint64
	Logs          []string
	// MaxFee is the base plus priority fee the compute budget allows.
	MaxFee uint64
	// Tree is the rendered instruction tree, set for dry runs.
	Tree string
}

// Executor signs, submits and journals transactions for one operation.
type Executor struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewExecutor(ctx context.Context, svcCtx *svc.ServiceContext) *Executor {
	return &Executor{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Run builds b against the latest blockhash and submits it.
func (e *Executor) Run(b *global.TxBuilder, entry journal.Entry) (*Outcome, error) {
	bh, err := e.svcCtx.Sol.LatestBlockhash(e.ctx)
	if err != nil {
		return nil, err
	}
	tx, err := b.BuildTx(bh.Blockhash)
	if err != nil {
		return nil, fmt.Errorf("build transaction: %w", err)
	}
	budget := b.Budget()
	fee, err := client.EstimateFee(uint64(tx.Message.Header.NumRequiredSignatures), budget.UnitLimit, budget.MicroLamports)
	if err != nil {
		return nil, fmt.Errorf("estimate fee: %w", err)
	}
	e.Infof("%s fee %s", entry.Kind, fee)

	out, err := e.submit(tx, bh.LastValidBlockHeight, false, entry)
	if out != nil {
		out.MaxFee = fee.TotalLamports
	}
	return out, err
}

// RunPrebuilt submits a transaction assembled elsewhere, such as one
// returned by the swap API. It is sent raw without preflight.
func (e *Executor) RunPrebuilt(tx *solana.Transaction, lastValidBlockHeight uint64, entry journal.Entry) (*Outcome, error) {
	return e.submit(tx, lastValidBlockHeight, true, entry)
}

func (e *Executor) sign(tx *solana.Transaction) error {
	getter := func(solana.PublicKey) *solana.PrivateKey { return nil }
	if e.svcCtx.Wallet != nil {
		getter = e.svcCtx.Wallet.Signer()
	}
	if e.svcCtx.DryRun {
		// unsigned slots stay zero, simulation skips verification
		_, err := tx.PartialSign(getter)
		return err
	}
	_, err := tx.Sign(getter)
	return err
}

func (e *Executor) submit(tx *solana.Transaction, lastValidBlockHeight uint64, raw bool, entry journal.Entry) (*Outcome, error) {
	if err := e.sign(tx); err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}
	if e.svcCtx.DryRun {
		return e.simulate(tx, entry)
	}

	var (
		sig solana.Signature
		err error
	)
	if raw {
		var data []byte
		if data, err = tx.MarshalBinary(); err != nil {
			return nil, fmt.Errorf("serialize transaction: %w", err)
		}
		sig, err = e.svcCtx.Sol.SendRaw(e.ctx, data)
	} else {
		sig, err = e.svcCtx.Sol.Send(e.ctx, tx)
	}
	if err != nil {
		entry.Status = journal.StatusFailed
		entry.Error = err.Error()
		e.record(entry)
		return nil, err
	}

	e.Infow("transaction sent",
		logx.Field("kind", entry.Kind),
		logx.Field("signature", sig.String()),
		logx.Field("link", global.TxLink(sig)),
	)
	entry.Signature = sig.String()
	entry.Status = journal.StatusSent
	e.record(entry)

	out := &Outcome{Signature: sig}
	if err := e.svcCtx.Sol.Confirm(e.ctx, sig, lastValidBlockHeight); err != nil {
		e.updateStatus(sig, journal.StatusFailed, err.Error())
		return out, err
	}
	e.updateStatus(sig, journal.StatusConfirmed, "")
	return out, nil
}

func (e *Executor) simulate(tx *solana.Transaction, entry journal.Entry) (*Outcome, error) {
	out := &Outcome{Simulated: true, Tree: tx.String()}
	res, err := e.svcCtx.Sol.Simulate(e.ctx, tx)
	if res != nil {
		out.UnitsConsumed = res.UnitsConsumed
		out.Logs = res.Logs
	}
	entry.Status = journal.StatusSimulated
	if err != nil {
		entry.Status = journal.StatusFailed
		entry.Error = err.Error()
	}
	e.record(entry)
	return out, err
}

// Journal failures are logged and never returned.
func (e *Executor) record(entry journal.Entry) {
	if err := e.svcCtx.Journal.Record(e.ctx, &entry); err != nil {
		e.Errorf("journal %s %s: %v", entry.Kind, entry.Signature, err)
	}
}

func (e *Executor) updateStatus(sig solana.Signature, status journal.Status, errMsg string) {
	err := e.svcCtx.Journal.UpdateStatus(e.ctx, sig.String(), status, errMsg)
	if err != nil && !errors.Is(err, journal.ErrNotFound) {
		e.Errorf("journal update %s: %v", sig, err)
	}
}

func (o *Outcome) Result() types.TxResult {
	if o == nil {
		return types.TxResult{}
	}
	r := types.TxResult{
		Simulated:     o.Simulated,
		UnitsConsumed: o.UnitsConsumed,
		MaxFee:        o.MaxFee,
		Logs:          o.Logs,
		Tree:          o.Tree,
	}
	if !o.Signature.IsZero() {
		r.Signature = o.Signature.String()
		r.Link = global.TxLink(o.Signature)
	}
	return r
}
