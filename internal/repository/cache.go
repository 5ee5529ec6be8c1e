package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"combgame/internal/domain/analysis"
)

type AnalysisCache struct {
	client *redis.Client
	log    *zap.SugaredLogger
	ttl    time.Duration
}

func NewAnalysisCache(client *redis.Client, log *zap.SugaredLogger, ttl time.Duration) *AnalysisCache {
	return &AnalysisCache{
		client: client,
		log:    log,
		ttl:    ttl,
	}
}

func (c *AnalysisCache) GetAnalysis(ctx context.Context, key string) (analysis.Analysis, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Errorf("failed to read cached analysis %s: %v", key, err)
		}
		return analysis.Analysis{}, false
	}

	var a analysis.Analysis
	if err := json.Unmarshal(data, &a); err != nil {
		c.log.Errorf("cached analysis %s is corrupt: %v", key, err)
		return analysis.Analysis{}, false
	}
	return a, true
}

func (c *AnalysisCache) PutAnalysis(ctx context.Context, key string, a analysis.Analysis) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	data, err := json.Marshal(a)
	if err != nil {
		c.log.Errorf("failed to encode analysis %s: %v", a.ID, err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Errorf("failed to cache analysis %s: %v", a.ID, err)
	}
}
