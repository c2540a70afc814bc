package worker

import (
	"context"
	"log/slog"
	"time"

	"pharmalink/config"
	"pharmalink/internal/usecase"

	"go.uber.org/fx"
)

const defaultSweepInterval = time.Minute

// Sweeper periodically flips overdue active alerts to expired. It runs in the
// worker process so the API stays stateless.
type Sweeper struct {
	interval time.Duration
	logger   *slog.Logger
	alertUC  usecase.AlertUsecase
	done     chan struct{}
}

// SweeperParams holds dependencies for the Sweeper
type SweeperParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	AlertUC usecase.AlertUsecase
}

// NewSweeper creates the expiry sweeper and binds it to the fx lifecycle.
func NewSweeper(params SweeperParams) *Sweeper {
	interval := defaultSweepInterval
	if params.Cfg.Alert != nil && params.Cfg.Alert.SweepInterval > 0 {
		interval = params.Cfg.Alert.SweepInterval
	}

	s := &Sweeper{
		interval: interval,
		logger:   params.Logger,
		alertUC:  params.AlertUC,
		done:     make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.run()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.done)

			return nil
		},
	})

	return s
}

func (s *Sweeper) run() {
	s.logger.Info("Starting alert expiry sweeper", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			s.logger.Info("Stopping alert expiry sweeper")

			return
		}
	}
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()

	if _, err := s.alertUC.SweepExpiredAlerts(ctx); err != nil {
		s.logger.Error("Alert expiry sweep failed", slog.Any("error", err))
	}
}
