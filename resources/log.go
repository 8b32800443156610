package resources

import "github.com/rs/zerolog"

var logger = zerolog.Nop()

// SetLogger installs the structured logger used for load failures and
// lifecycle messages.
func SetLogger(l zerolog.Logger) { logger = l.With().Str("component", "resources").Logger() }
