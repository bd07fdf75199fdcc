package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/subkart/core/internal/modules/auth/otp"
	"github.com/subkart/core/internal/modules/auth/token"
	pkgcron "github.com/subkart/core/internal/pkg/cron"
	"github.com/subkart/core/internal/pkg/kv"
)

// registerCronJobs registers the scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, logger *zap.Logger, otpSvc *otp.Service, store kv.Store) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "sweep_expired_otps",
		Description: "remove expired password-reset OTP records",
		Interval:    otp.SweepInterval,
		Fn: func(ctx context.Context) error {
			n, err := otpSvc.Sweep(ctx)
			if err != nil {
				cronLogger.Warn("otp sweep failed", zap.Error(err))
				return err
			}
			if n > 0 {
				cronLogger.Info("otp sweep done", zap.Int("removed", n))
			}
			return nil
		},
	})

	sched.Register(pkgcron.Job{
		Name:        "sweep_revoked_tokens",
		Description: "drop expired token-revocation entries on stores without native expiry",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			if n := token.SweepRevoked(store); n > 0 {
				cronLogger.Info("revocation sweep done", zap.Int("removed", n))
			}
			return nil
		},
	})
}
