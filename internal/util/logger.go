package util

import "go.uber.org/zap"

// NewLogger builds a JSON production logger for env "production" and a
// console development logger otherwise. Tests call it without env.
func NewLogger(env ...string) *zap.SugaredLogger {
	if len(env) > 0 && env[0] == "production" {
		return zap.Must(zap.NewProduction()).Sugar()
	}
	return zap.Must(zap.NewDevelopment()).Sugar()
}
