package ledger

import "go.uber.org/fx"

// Module exposes the ledger client via Fx.
var Module = fx.Options(
	fx.Provide(NewClient),
)
