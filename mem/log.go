package mem

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the logger used for native mapping events and leak
// diagnostics. A nil logger restores the no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}
