// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/0-LuckyPenny/react-node-test/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup applies configured store budgets before the handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})
	cur := timeouts.Current()
	logger.Info("store timeouts configured",
		zap.Duration("short", cur.Short),
		zap.Duration("medium", cur.Medium))
	return nil
}
