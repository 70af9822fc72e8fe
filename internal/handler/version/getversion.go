package version

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"jupkit/internal/logic/version"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

// GetVersion takes no parameters, so the query is not parsed.
func GetVersion(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := version.NewGetVersion(r.Context(), svcCtx).GetVersion(&types.GetVersionRequest{})
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}
		w.Header().Set("Cache-Control", "no-store")
		httpx.OkJsonCtx(r.Context(), w, resp)
	}
}
