package branding

import (
	"github.com/smallbiznis/docbill/internal/branding/repository"
	"github.com/smallbiznis/docbill/internal/branding/service"
	"go.uber.org/fx"
)

var Module = fx.Module("branding.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
