// Package autoload initialises the global logger from LOG_* environment
// variables when imported for side effects.
package autoload

import (
	configx "github.com/tanpawarit/Chative-Car-Rental/pkg/config"
	logx "github.com/tanpawarit/Chative-Car-Rental/pkg/logger"
)

func init() {
	cfg, err := configx.New[logx.Config]("LOG")
	if err != nil {
		logx.Init()
		return
	}
	logx.Init(*cfg)
}
