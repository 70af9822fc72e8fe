package vote

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cast"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/pda"
	"jupkit/internal/svc"
	"jupkit/internal/types"
	"jupkit/pkg/govern"
	"jupkit/pkg/lockedvoter"
)

var ErrInvalidSide = errors.New("invalid vote side")

var sideNames = map[string]uint8{
	"against": govern.SideAgainst,
	"for":     govern.SideFor,
	"abstain": govern.SideAbstain,
}

// ParseSide accepts a side name or its number. Pending is not a valid choice.
func ParseSide(s string) (uint8, error) {
	if side, ok := sideNames[s]; ok {
		return side, nil
	}
	side, err := cast.ToUint8E(s)
	if err != nil || side == govern.SidePending || side > govern.SideAbstain {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
	return side, nil
}

type Vote struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewVote(ctx context.Context, svcCtx *svc.ServiceContext) *Vote {
	return &Vote{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Vote casts req.Side on req.Proposal with the wallet's escrow. A wallet that
// already has a vote record gets Voted=false and no error.
func (l *Vote) Vote(req *types.VoteRequest) (resp *types.VoteResponse, err error) {
	if req.Side == govern.SidePending || req.Side > govern.SideAbstain {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, req.Side)
	}
	w, err := l.svcCtx.RequireWallet()
	if err != nil {
		return nil, err
	}
	owner := w.PublicKey()
	acc := l.svcCtx.Accounts

	proposal, err := solana.PublicKeyFromBase58(req.Proposal)
	if err != nil {
		return nil, fmt.Errorf("proposal %q: %w", req.Proposal, err)
	}

	escrow, _, err := pda.DeriveEscrowPDA(acc.LockedVoter, acc.Locker, owner)
	if err != nil {
		return nil, fmt.Errorf("derive escrow: %w", err)
	}
	hasEscrow, err := l.svcCtx.Sol.AccountExists(l.ctx, escrow)
	if err != nil {
		return nil, fmt.Errorf("check escrow: %w", err)
	}
	if !hasEscrow {
		return nil, fmt.Errorf("%w: %s", logic.ErrNoEscrow, escrow)
	}

	votePDA, _, err := pda.DeriveVotePDA(acc.Govern, proposal, owner)
	if err != nil {
		return nil, fmt.Errorf("derive vote: %w", err)
	}
	resp = &types.VoteResponse{
		Wallet:   owner.String(),
		Proposal: proposal.String(),
		Vote:     votePDA.String(),
		Side:     req.Side,
	}

	data, err := l.svcCtx.Sol.GetAccountData(l.ctx, votePDA)
	switch {
	case err == nil:
		if existing, derr := govern.DecodeVote(data); derr == nil {
			resp.Side = existing.Side
		}
		resp.AlreadyVoted = true
		l.Infow("already voted",
			logx.Field("proposal", proposal.String()),
			logx.Field("vote", votePDA.String()),
			logx.Field("side", resp.Side),
		)
		return resp, nil
	case !errors.Is(err, client.ErrAccountNotFound):
		return nil, fmt.Errorf("check vote: %w", err)
	}

	b := global.NewTxBuilder(owner).SetComputeBudget(l.svcCtx.Config.Vote.Budget())
	newVote, err := govern.NewNewVoteInstruction(owner, proposal, votePDA, owner).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	castVote, err := lockedvoter.NewCastVoteInstruction(
		req.Side,
		acc.Locker,
		escrow,
		owner,
		proposal,
		votePDA,
		acc.Governor,
		acc.Govern,
	).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	b.AddInstruction(newVote, castVote)

	l.Infow("voting",
		logx.Field("proposal", proposal.String()),
		logx.Field("side", req.Side),
		logx.Field("escrow", escrow.String()),
	)

	out, err := logic.NewExecutor(l.ctx, l.svcCtx).Run(b, journal.Entry{
		Kind:   journal.KindVote,
		Wallet: owner.String(),
	})
	resp.TxResult = out.Result()
	if err != nil {
		return resp, err
	}
	resp.Voted = !resp.Simulated
	return resp, nil
}
