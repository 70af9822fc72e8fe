package address

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/pda"
	"jupkit/internal/svc"
	"jupkit/internal/types"
	"jupkit/pkg/ata"
)

type Address struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAddress(ctx context.Context, svcCtx *svc.ServiceContext) *Address {
	return &Address{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func optionalKey(name, s string) (solana.PublicKey, error) {
	if s == "" {
		return solana.PublicKey{}, nil
	}
	key, err := solana.PublicKeyFromBase58(s)
	if err != nil {
		return key, fmt.Errorf("%s %q: %w", name, s, err)
	}
	return key, nil
}

// Address derives every program address relevant to a wallet. It makes no
// network calls.
func (l *Address) Address(req *types.AddressRequest) (resp *types.AddressResponse, err error) {
	owner, err := solana.PublicKeyFromBase58(req.Wallet)
	if err != nil {
		return nil, fmt.Errorf("wallet %q: %w", req.Wallet, err)
	}
	proposal, err := optionalKey("proposal", req.Proposal)
	if err != nil {
		return nil, err
	}
	tree, err := optionalKey("merkle tree", req.MerkleTree)
	if err != nil {
		return nil, err
	}

	acc := l.svcCtx.Accounts
	addrs, err := pda.DeriveAll(pda.Programs{
		Distributor: acc.Distributor,
		LockedVoter: acc.LockedVoter,
		Locker:      acc.Locker,
		Govern:      acc.Govern,
	}, owner, tree, proposal)
	if err != nil {
		return nil, err
	}
	escrowTokens, _, err := ata.Find(addrs.Escrow, acc.StakeMint, solana.TokenProgramID)
	if err != nil {
		return nil, err
	}

	resp = &types.AddressResponse{
		Wallet:       owner.String(),
		Escrow:       addrs.Escrow.String(),
		EscrowTokens: escrowTokens.String(),
	}
	if !addrs.ClaimStatus.IsZero() {
		resp.ClaimStatus = addrs.ClaimStatus.String()
	}
	if !addrs.Vote.IsZero() {
		resp.Vote = addrs.Vote.String()
	}
	return resp, nil
}
