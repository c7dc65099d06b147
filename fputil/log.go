package fp

import "github.com/rs/zerolog"

// Parser diagnostics are debug-only; the package stays quiet unless a
// logger is installed.
var logger = zerolog.Nop()

// SetLogger installs the logger used for parser diagnostics.
func SetLogger(l zerolog.Logger) {
	logger = l
}
