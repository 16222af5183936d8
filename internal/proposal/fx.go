package proposal

import (
	"github.com/smallbiznis/docbill/internal/proposal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("proposal.service",
	fx.Provide(service.NewService),
)
