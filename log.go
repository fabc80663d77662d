package rapidid

import (
	"log/slog"
	"sync/atomic"

	"github.com/Lzww0608/rapidid/internal/logging"
)

var pkgLogger atomic.Pointer[slog.Logger]

func init() {
	pkgLogger.Store(logging.Nop())
}

// SetLogger routes the package's diagnostics (clock regressions, node ID
// fallback) to l. A nil l silences them again.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	pkgLogger.Store(l)
}

func logger() *slog.Logger {
	return pkgLogger.Load()
}
