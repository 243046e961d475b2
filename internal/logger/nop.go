package logger

import (
	"go.uber.org/zap"

	"github.com/goudreinette/vary-velocity/sdk/contracts"
)

// NewNopLogger returns a logger that discards everything. Used as the test
// default and wherever a host embeds the plugin without wanting log output.
func NewNopLogger() contracts.Logger {
	return &ZapLogger{logger: zap.NewNop(), level: zap.NewAtomicLevel()}
}
