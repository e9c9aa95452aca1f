package secretstore

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logger is the single diagnostic channel for this package. Genuine
// backend failures produce one error-level line; not-found results and
// platform-unavailable conditions never log anything.
var logger = log.Logger

// SetLogger redirects this package's diagnostics. The default is the
// global zerolog logger. Not safe to call concurrently with store
// operations.
func SetLogger(l zerolog.Logger) {
	logger = l
}
