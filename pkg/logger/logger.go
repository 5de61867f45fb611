package logger

import (
	"go.uber.org/zap"
)

// NOOPLogger discards everything. Servers use it until a real logger is set.
var NOOPLogger = zap.NewNop().Sugar()

// New builds a sugared logger. The "local" environment gets the
// human-readable development encoder, everything else JSON.
func New(env string) (*zap.SugaredLogger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if env == "local" || env == "" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return l.Sugar().With("env", env), nil
}
