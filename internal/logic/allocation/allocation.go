package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/pda"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

type Allocation struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAllocation(ctx context.Context, svcCtx *svc.ServiceContext) *Allocation {
	return &Allocation{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Allocation looks up the eligibility of any address and whether it has
// already been claimed. It never signs anything.
func (l *Allocation) Allocation(req *types.AllocationRequest) (resp *types.AllocationResponse, err error) {
	owner, err := solana.PublicKeyFromBase58(req.Wallet)
	if err != nil {
		return nil, fmt.Errorf("wallet %q: %w", req.Wallet, err)
	}
	mint := l.svcCtx.Accounts.ClaimMint
	if req.Mint != "" {
		if mint, err = solana.PublicKeyFromBase58(req.Mint); err != nil {
			return nil, fmt.Errorf("mint %q: %w", req.Mint, err)
		}
	}
	resp = &types.AllocationResponse{Wallet: owner.String(), Mint: mint.String()}

	proof, err := l.svcCtx.Proofs.GetProof(l.ctx, mint, owner)
	if errors.Is(err, client.ErrNoAllocation) {
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp.Eligible = true
	resp.MerkleTree = proof.MerkleTree.String()
	resp.Amount = proof.Amount
	resp.LockedAmount = proof.LockedAmount

	claimStatus, _, err := pda.DeriveClaimStatusPDA(l.svcCtx.Accounts.Distributor, owner, proof.MerkleTree)
	if err != nil {
		return nil, fmt.Errorf("derive claim status: %w", err)
	}
	resp.ClaimStatus = claimStatus.String()
	if resp.Claimed, err = l.svcCtx.Sol.AccountExists(l.ctx, claimStatus); err != nil {
		return nil, fmt.Errorf("check claim status: %w", err)
	}
	return resp, nil
}
