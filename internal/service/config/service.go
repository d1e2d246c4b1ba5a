package config

import (
	"github.com/m04kA/SMC-BookingSlots/internal/service/config/models"
)

// Service сервис чтения политики расписания
// Политика загружается из config.toml при старте и не меняется во время работы
type Service struct {
	source PolicySource
	logger Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(source PolicySource, logger Logger) *Service {
	return &Service{
		source: source,
		logger: logger,
	}
}

// GetPolicy возвращает действующую политику для формы бронирования
func (s *Service) GetPolicy() (*models.PolicyResponse, error) {
	if s.source == nil {
		return nil, ErrPolicyNotLoaded
	}

	policy := models.FromEngineConfig(s.source.Config())
	s.logger.Info("GetPolicy: windows=%d, durations=%d, tz=%s",
		len(policy.Windows), len(policy.Durations), policy.TimeZone)
	return policy, nil
}
