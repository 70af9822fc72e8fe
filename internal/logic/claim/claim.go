package claim

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/pda"
	"jupkit/internal/svc"
	"jupkit/internal/types"
	"jupkit/pkg/ata"
	"jupkit/pkg/distributor"
)

type Claim struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClaim(ctx context.Context, svcCtx *svc.ServiceContext) *Claim {
	return &Claim{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Claim claims the wallet's allocation of req.Mint. An amount of zero with a
// nil error means the wallet has no allocation.
func (l *Claim) Claim(req *types.ClaimRequest) (resp *types.ClaimResponse, err error) {
	w, err := l.svcCtx.RequireWallet()
	if err != nil {
		return nil, err
	}
	claimant := w.PublicKey()

	mint := l.svcCtx.Accounts.ClaimMint
	if req.Mint != "" {
		if mint, err = solana.PublicKeyFromBase58(req.Mint); err != nil {
			return nil, fmt.Errorf("mint %q: %w", req.Mint, err)
		}
	}
	resp = &types.ClaimResponse{Wallet: claimant.String(), Mint: mint.String(), UIAmount: "0"}

	proof, err := l.svcCtx.Proofs.GetProof(l.ctx, mint, claimant)
	if errors.Is(err, client.ErrNoAllocation) {
		l.Infow("no allocation", logx.Field("wallet", claimant.String()), logx.Field("mint", mint.String()))
		return resp, nil
	}
	if err != nil {
		return nil, err
	}

	claimStatus, _, err := pda.DeriveClaimStatusPDA(l.svcCtx.Accounts.Distributor, claimant, proof.MerkleTree)
	if err != nil {
		return nil, fmt.Errorf("derive claim status: %w", err)
	}
	resp.ClaimStatus = claimStatus.String()

	claimed, err := l.svcCtx.Sol.AccountExists(l.ctx, claimStatus)
	if err != nil {
		return nil, fmt.Errorf("check claim status: %w", err)
	}
	if claimed {
		return resp, fmt.Errorf("%w: %s", logic.ErrAlreadyClaimed, claimStatus)
	}

	mintInfo, err := l.svcCtx.Sol.GetMint(l.ctx, mint)
	if err != nil {
		return nil, err
	}
	from, _, err := ata.Find(proof.MerkleTree, mint, mintInfo.TokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive vault: %w", err)
	}
	to, _, err := ata.Find(claimant, mint, mintInfo.TokenProgram)
	if err != nil {
		return nil, fmt.Errorf("derive token account: %w", err)
	}

	b := global.NewTxBuilder(claimant).SetComputeBudget(l.svcCtx.Config.Claim.Budget())

	hasATA, err := l.svcCtx.Sol.AccountExists(l.ctx, to)
	if err != nil {
		return nil, fmt.Errorf("check token account: %w", err)
	}
	if !hasATA {
		b.AddInstruction(ata.NewCreateInstruction(claimant, claimant, mint, mintInfo.TokenProgram).Build())
	}

	ix, err := distributor.NewNewClaimInstruction(
		proof.Amount,
		proof.LockedAmount,
		proof.Proof,
		proof.MerkleTree,
		claimStatus,
		from,
		to,
		claimant,
		mintInfo.TokenProgram,
	).ValidateAndBuild()
	if err != nil {
		return nil, err
	}
	b.AddInstruction(ix)

	l.Infow("claiming",
		logx.Field("wallet", claimant.String()),
		logx.Field("amount", global.FormatAmount(proof.Amount, mintInfo.Decimals)),
		logx.Field("merkleTree", proof.MerkleTree.String()),
		logx.Field("claimStatus", claimStatus.String()),
	)

	out, err := logic.NewExecutor(l.ctx, l.svcCtx).Run(b, journal.Entry{
		Kind:   journal.KindClaim,
		Wallet: claimant.String(),
		Mint:   mint.String(),
		Amount: proof.Amount,
	})
	resp.TxResult = out.Result()
	if err != nil {
		return resp, err
	}
	resp.Amount = proof.Amount
	resp.UIAmount = global.FormatAmount(proof.Amount, mintInfo.Decimals)
	return resp, nil
}
