package stake

import (
	"context"
	"errors"
	"fmt"

	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/pda"
	"jupkit/internal/svc"
	"jupkit/internal/types"
	"jupkit/pkg/ata"
	"jupkit/pkg/lockedvoter"
)

type Stake struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewStake(ctx context.Context, svcCtx *svc.ServiceContext) *Stake {
	return &Stake{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Stake locks req.Amount tokens into the wallet's escrow at maximum duration,
// opening the escrow and its token account first when needed.
func (l *Stake) Stake(req *types.StakeRequest) (resp *types.StakeResponse, err error) {
	w, err := l.svcCtx.RequireWallet()
	if err != nil {
		return nil, err
	}
	owner := w.PublicKey()
	acc := l.svcCtx.Accounts

	mintInfo, err := l.svcCtx.Sol.GetMint(l.ctx, acc.StakeMint)
	if err != nil {
		return nil, err
	}
	amount, err := global.FromUIAmount(req.Amount, mintInfo.Decimals)
	if err != nil {
		return nil, err
	}

	tokenAccounts, err := l.svcCtx.Sol.GetTokenAccountsByOwner(l.ctx, owner, acc.StakeMint)
	if err != nil {
		return nil, err
	}
	if len(tokenAccounts) == 0 {
		return nil, fmt.Errorf("%w: %s", logic.ErrNoTokenAccount, global.MintSymbol(acc.StakeMint))
	}
	source := tokenAccounts[0]
	for _, ta := range tokenAccounts[1:] {
		if ta.Amount > source.Amount {
			source = ta
		}
	}
	if source.Amount < amount {
		return nil, fmt.Errorf("%w: have %s, want %s", logic.ErrInsufficientBalance,
			global.FormatAmount(source.Amount, mintInfo.Decimals), global.FormatAmount(amount, mintInfo.Decimals))
	}

	escrow, _, err := pda.DeriveEscrowPDA(acc.LockedVoter, acc.Locker, owner)
	if err != nil {
		return nil, fmt.Errorf("derive escrow: %w", err)
	}
	escrowTokens, _, err := ata.Find(escrow, acc.StakeMint, mintInfo.TokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive escrow tokens: %w", err)
	}
	resp = &types.StakeResponse{
		Wallet:       owner.String(),
		Escrow:       escrow.String(),
		EscrowTokens: escrowTokens.String(),
		Amount:       amount,
		UIAmount:     global.FormatAmount(amount, mintInfo.Decimals),
	}

	b := global.NewTxBuilder(owner).SetComputeBudget(l.svcCtx.Config.Stake.Budget())

	var state *lockedvoter.Escrow
	data, err := l.svcCtx.Sol.GetAccountData(l.ctx, escrow)
	switch {
	case errors.Is(err, client.ErrAccountNotFound):
		l.Infow("creating escrow", logx.Field("escrow", escrow.String()))
		resp.CreatedEscrow = true
		b.AddInstruction(lockedvoter.NewNewEscrowInstruction(acc.Locker, escrow, owner, owner).Build())
	case err != nil:
		return nil, fmt.Errorf("check escrow: %w", err)
	default:
		if state, err = lockedvoter.DecodeEscrow(data); err != nil {
			return nil, fmt.Errorf("decode escrow %s: %w", escrow, err)
		}
	}

	hasTokens, err := l.svcCtx.Sol.AccountExists(l.ctx, escrowTokens)
	if err != nil {
		return nil, fmt.Errorf("check escrow tokens: %w", err)
	}
	if !hasTokens {
		b.AddInstruction(ata.NewCreateInstruction(owner, escrow, acc.StakeMint, mintInfo.TokenProgram).
			SetIdempotent(true).
			Build())
	}

	if state == nil || !state.IsMaxLock {
		b.AddInstruction(lockedvoter.NewToggleMaxLockInstruction(true, acc.Locker, escrow, owner).Build())
	}

	ix, err := lockedvoter.NewIncreaseLockedAmountInstruction(amount, acc.Locker, escrow, escrowTokens, owner, source.Address).
		SetTokenProgramAccount(mintInfo.TokenProgram).
		ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	b.AddInstruction(ix)

	l.Infow("staking",
		logx.Field("wallet", owner.String()),
		logx.Field("amount", resp.UIAmount),
		logx.Field("source", source.Address.String()),
		logx.Field("escrow", escrow.String()),
	)

	out, err := logic.NewExecutor(l.ctx, l.svcCtx).Run(b, journal.Entry{
		Kind:   journal.KindStake,
		Wallet: owner.String(),
		Mint:   acc.StakeMint.String(),
		Amount: amount,
	})
	resp.TxResult = out.Result()
	return resp, err
}
