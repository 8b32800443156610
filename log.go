package hologram

import (
	"github.com/phanxgames/hologram/debugserver"
	"github.com/phanxgames/hologram/events"
	"github.com/phanxgames/hologram/host"
	"github.com/phanxgames/hologram/resources"
	"github.com/rs/zerolog"
)

var logger = zerolog.Nop()

// SetLogger installs l for this package and every subpackage that logs.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "hologram").Logger()
	events.SetLogger(l)
	resources.SetLogger(l)
	host.SetLogger(l)
	debugserver.SetLogger(l)
}
