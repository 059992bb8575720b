//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package main

import (
	"royalslots/internal/biz"
	"royalslots/internal/conf"
	"royalslots/internal/data"
	"royalslots/internal/notify"
	"royalslots/internal/server"
	"royalslots/internal/service"

	"github.com/go-kratos/kratos/v2"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
)

// wireApp init kratos application.
func wireApp(*conf.Server, *conf.Data, *conf.Slot, *conf.Notify, log.Logger) (*kratos.App, func(), error) {
	panic(wire.Build(server.ProviderSet, data.ProviderSet, biz.ProviderSet, notify.ProviderSet, service.ProviderSet, newApp))
}
