package hazelcast

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

func testLogger() logr.Logger {
	return zapr.NewLogger(zap.NewNop())
}
