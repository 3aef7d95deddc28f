package logging

import (
	"log"

	"go.uber.org/zap"

	"freshcart-backend/internal/config"
)

// L is the shared application logger, set once by Init.
var L *zap.Logger

func Init(cfg *config.Config) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger could not be initialized: %v", err)
	}
	L = logger
}

func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
