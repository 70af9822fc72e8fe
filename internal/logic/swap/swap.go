package swap

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/client"
	"jupkit/internal/global"
	"jupkit/internal/journal"
	"jupkit/internal/logic"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

type Swap struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSwap(ctx context.Context, svcCtx *svc.ServiceContext) *Swap {
	return &Swap{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Swap sells req.Amount raw units of req.InputMint through Jupiter. Output
// mint, slippage and minimum output fall back to the Swap config.
func (l *Swap) Swap(req *types.SwapRequest) (resp *types.SwapResponse, err error) {
	w, err := l.svcCtx.RequireWallet()
	if err != nil {
		return nil, err
	}
	user := w.PublicKey()
	cfg := l.svcCtx.Config.Swap

	in, err := solana.PublicKeyFromBase58(req.InputMint)
	if err != nil {
		return nil, fmt.Errorf("input mint %q: %w", req.InputMint, err)
	}
	out := l.svcCtx.Accounts.OutputMint
	if req.OutputMint != "" {
		if out, err = solana.PublicKeyFromBase58(req.OutputMint); err != nil {
			return nil, fmt.Errorf("output mint %q: %w", req.OutputMint, err)
		}
	}
	slippage := req.SlippageBps
	if slippage == 0 {
		slippage = cfg.SlippageBps
	}
	minOut := req.MinOut
	if minOut == 0 {
		minOut = cfg.MinOut
	}

	quote, err := l.svcCtx.Jupiter.Quote(l.ctx, client.QuoteRequest{
		InputMint:   in,
		OutputMint:  out,
		Amount:      req.Amount,
		SlippageBps: slippage,
	})
	if err != nil {
		return nil, err
	}
	outAmount, _ := quote.OutAmountUint()
	worstOut, _ := quote.MinOutAmount()
	resp = &types.SwapResponse{
		InputMint:  in.String(),
		OutputMint: out.String(),
		InAmount:   req.Amount,
		OutAmount:  outAmount,
		MinOut:     worstOut,
		Route:      quote.Labels(),
	}
	l.Infow("quote",
		logx.Field("in", fmt.Sprintf("%d %s", req.Amount, global.MintSymbol(in))),
		logx.Field("out", fmt.Sprintf("%d %s", outAmount, global.MintSymbol(out))),
		logx.Field("route", resp.Route),
	)
	if err := client.CheckMinOut(quote, minOut); err != nil {
		return resp, err
	}

	swapResp, err := l.svcCtx.Jupiter.Swap(l.ctx, quote, user)
	if err != nil {
		return resp, err
	}
	tx, err := swapResp.Transaction()
	if err != nil {
		return resp, err
	}

	outcome, err := logic.NewExecutor(l.ctx, l.svcCtx).RunPrebuilt(tx, swapResp.LastValidBlockHeight, journal.Entry{
		Kind:   journal.KindSwap,
		Wallet: user.String(),
		Mint:   in.String(),
		Amount: req.Amount,
	})
	resp.TxResult = outcome.Result()
	return resp, err
}
