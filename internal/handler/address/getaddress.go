package address

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest/httpx"

	"jupkit/internal/logic/address"
	"jupkit/internal/svc"
	"jupkit/internal/types"
)

func Address(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AddressRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := address.NewAddress(r.Context(), svcCtx)
		resp, err := l.Address(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
