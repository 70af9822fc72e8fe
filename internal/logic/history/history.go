package history

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/svc"
	"jupkit/internal/types"
)

const maxLimit = 500

type History struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHistory(ctx context.Context, svcCtx *svc.ServiceContext) *History {
	return &History{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *History) History(req *types.HistoryRequest) (resp *types.HistoryResponse, err error) {
	owner, err := solana.PublicKeyFromBase58(req.Wallet)
	if err != nil {
		return nil, fmt.Errorf("wallet %q: %w", req.Wallet, err)
	}
	limit := req.Limit
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	entries, err := l.svcCtx.Journal.ListByWallet(l.ctx, owner.String(), limit)
	if err != nil {
		return nil, err
	}
	resp = &types.HistoryResponse{Wallet: owner.String(), Entries: make([]*types.HistoryEntry, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, &types.HistoryEntry{
			Kind:      string(e.Kind),
			Mint:      e.Mint,
			Signature: e.Signature,
			Amount:    e.Amount,
			Status:    string(e.Status),
			Error:     e.Error,
			CreatedAt: e.CreatedAt.Unix(),
		})
	}
	return resp, nil
}
