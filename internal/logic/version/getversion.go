package version

import (
	"context"
	"runtime"

	"github.com/zeromicro/go-zero/core/logx"

	"jupkit/internal/svc"
	"jupkit/internal/types"
)

// Set with -ldflags "-X jupkit/internal/logic/version.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

type GetVersion struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetVersion(ctx context.Context, svcCtx *svc.ServiceContext) *GetVersion {
	return &GetVersion{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetVersion reports build information. With a service context it also
// reports the signing wallet and the commitment used for confirmations.
func (l *GetVersion) GetVersion(req *types.GetVersionRequest) (resp *types.GetVersionResponse, err error) {
	resp = &types.GetVersionResponse{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
	if l.svcCtx == nil {
		return resp, nil
	}
	if l.svcCtx.Wallet != nil {
		resp.Wallet = l.svcCtx.Wallet.PublicKey().String()
	}
	if l.svcCtx.Sol != nil {
		resp.Commitment = string(l.svcCtx.Sol.Commitment())
	}
	resp.DryRun = l.svcCtx.DryRun
	return resp, nil
}
