package logger

import "go.uber.org/fx"

// Module exposes the logger constructor to the fx graph.
var Module = fx.Provide(New)
