package pipeline

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/logic/claim"
	"jupkit/internal/logic/swap"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

type ClaimSwap struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewClaimSwap(ctx context.Context, svcCtx *svc.ServiceContext) *ClaimSwap {
	return &ClaimSwap{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ClaimSwap claims the allocation and sells all of it into the configured
// output mint. Nothing is swapped when there is no allocation or the claim
// was only simulated.
func (l *ClaimSwap) ClaimSwap(req *types.ClaimRequest) (resp *types.ClaimSwapResponse, err error) {
	claimed, err := claim.NewClaim(l.ctx, l.svcCtx).Claim(req)
	resp = &types.ClaimSwapResponse{Claim: claimed}
	if err != nil {
		return resp, err
	}
	resp.ClaimOK = true
	if claimed.Amount == 0 {
		l.Info("nothing claimed, skipping swap")
		return resp, nil
	}
	if claimed.Simulated {
		l.Info("claim simulated, skipping swap")
		return resp, nil
	}

	resp.Swap, err = swap.NewSwap(l.ctx, l.svcCtx).Swap(&types.SwapRequest{
		InputMint:   claimed.Mint,
		OutputMint:  l.svcCtx.Config.Swap.OutputMint,
		Amount:      claimed.Amount,
		SlippageBps: l.svcCtx.Config.Swap.SlippageBps,
	})
	return resp, err
}
