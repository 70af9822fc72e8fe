package allocation

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"jupkit/internal/logic/allocation"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

func Allocation(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AllocationRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := allocation.NewAllocation(r.Context(), svcCtx)
		resp, err := l.Allocation(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
