package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/cadastrolabs/cadastro-api/internal/infrastructure/viacep"
	"github.com/cadastrolabs/cadastro-api/pkg/helpers"
)

const cepCacheTTL = 24 * time.Hour

func cepCacheKey(cep string) string { return "cep:" + cep }

// CepService proxies postal-code lookups to ViaCEP with a Redis
// get-or-populate cache in front. The cache is best-effort: a Redis
// failure falls through to the upstream call.
type CepService struct {
	Client *viacep.Client
	Redis  *redis.Client
	Logger *logrus.Logger
}

func NewCepService(client *viacep.Client, rdb *redis.Client, logger *logrus.Logger) *CepService {
	return &CepService{Client: client, Redis: rdb, Logger: logger}
}

func (s *CepService) Lookup(ctx context.Context, cep string) (*viacep.Address, error) {
	if !validCepFormat(cep) {
		return nil, ErrInvalidCEP
	}

	if s.Redis != nil {
		var cached viacep.Address
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, cepCacheKey(cep), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	addr, err := s.Client.Lookup(ctx, cep)
	if err != nil {
		if errors.Is(err, viacep.ErrNotFound) {
			return nil, ErrCEPNotFound
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("cep", cep).Warn("viacep lookup failed")
		}
		return nil, ErrCEPUnavailable
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, cepCacheKey(cep), addr, cepCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("cep", cep).Warn("cep cache write failed")
		}
	}
	return addr, nil
}

func validCepFormat(cep string) bool {
	if len(cep) != 8 {
		return false
	}
	for i := 0; i < len(cep); i++ {
		if cep[i] < '0' || cep[i] > '9' {
			return false
		}
	}
	return true
}
