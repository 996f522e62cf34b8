package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const leaseKey = "emergency_sweep_lease"

// ExpirySweeper - то, что умеет закрывать просроченные рассылки
type ExpirySweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

// Sweeper периодически запускает SweepExpired.
// При наличии Redis за один тик очистку выполняет только один экземпляр сервиса.
type Sweeper struct {
	service     ExpirySweeper
	redisClient *redis.Client
	logger      *logrus.Logger
	interval    time.Duration
	owner       string
	now         func() time.Time
}

func New(service ExpirySweeper, redisClient *redis.Client, logger *logrus.Logger, interval time.Duration, owner string) *Sweeper {
	return &Sweeper{
		service:     service,
		redisClient: redisClient,
		logger:      logger,
		interval:    interval,
		owner:       owner,
		now:         time.Now,
	}
}

// Start запускает горутину с тикером. Останавливается по отмене контекста.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.WithField("interval", s.interval).Info("Starting expiry sweeper...")
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Stopping expiry sweeper.")
				return
			case <-ticker.C:
				if _, err := s.RunOnce(ctx); err != nil {
					s.logger.WithError(err).Error("Expiry sweep failed")
				}
			}
		}
	}()
}

// RunOnce выполняет один проход, если удалось взять аренду
func (s *Sweeper) RunOnce(ctx context.Context) (int, error) {
	acquired, err := s.acquireLease(ctx)
	if err != nil {
		// без Redis продолжаем: повторный переход в expired всё равно отклонит хранилище
		s.logger.WithError(err).Warn("Failed to acquire sweep lease, sweeping anyway")
	} else if !acquired {
		s.logger.Debug("Sweep lease held by another instance")
		return 0, nil
	}

	count, err := s.service.SweepExpired(ctx, s.now())
	if err != nil {
		return count, fmt.Errorf("sweeper: %w", err)
	}
	return count, nil
}

func (s *Sweeper) acquireLease(ctx context.Context) (bool, error) {
	if s.redisClient == nil {
		return true, nil
	}
	// аренда чуть короче интервала, чтобы следующий тик мог её взять
	ttl := s.interval - s.interval/10
	if ttl <= 0 {
		ttl = s.interval
	}
	ok, err := s.redisClient.SetNX(ctx, leaseKey, s.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to set sweep lease: %w", err)
	}
	return ok, nil
}
