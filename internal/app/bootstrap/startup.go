// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"

	"github.com/vitamove/vitamove-server/internal/app/system/media"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. VitaMove
// uses it to make sure the media directory exists and to warn when the
// service is running without an SMTP host (mail goes to the log only).
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if _, err := media.NewLocal(appCfg.MediaPath, appCfg.MediaURLPrefix); err != nil {
		return fmt.Errorf("media directory: %w", err)
	}

	if appCfg.MailSMTPHost == "" {
		logger.Warn("no SMTP host configured; outgoing mail will be logged, not delivered")
	}
	if len(appCfg.AdminEmails) == 0 {
		logger.Warn("no admin emails configured; admin sign-in is disabled")
	}

	return nil
}
