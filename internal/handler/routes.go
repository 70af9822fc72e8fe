package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	address "jupkit/internal/handler/address"
	allocation "jupkit/internal/handler/allocation"
	history "jupkit/internal/handler/history"
	version "jupkit/internal/handler/version"
	"jupkit/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/version",
				Handler: version.GetVersion(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/allocation",
				Handler: allocation.Allocation(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/address",
				Handler: address.Address(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/history",
				Handler: history.History(serverCtx),
			},
		},
		rest.WithPrefix("/api/v1"),
	)
}
