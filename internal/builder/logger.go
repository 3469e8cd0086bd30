package builder

import (
	"github.com/futig/app-builder/internal/pkg/logger"
	"go.uber.org/zap"
)

func setupLogger(level string) (*zap.Logger, error) {
	l, err := logger.New(level)
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(l)
	return l, nil
}
