package infra

import (
	"go.uber.org/zap"
	"tabi/internal/config"
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
