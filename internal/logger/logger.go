package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New builds the service logger: JSON output in prod, console otherwise.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(env) {
	case "prod", "production":
		return zap.NewProduction()
	default:
		return zap.NewDevelopment()
	}
}
