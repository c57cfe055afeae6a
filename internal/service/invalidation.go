package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/pkg/jobs"
)

// JobTypeCacheInvalidate is the queue job type that clears a cache namespace.
const JobTypeCacheInvalidate = "cache.invalidate"

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, prefix string) error
}

// InvalidationService clears cached read models after writes, off the request path when a
// queue is available.
type InvalidationService struct {
	cache  cacheInvalidator
	queue  jobEnqueuer
	logger *zap.Logger
}

// NewInvalidationService wires the service; queue may be nil for synchronous invalidation.
func NewInvalidationService(cache cacheInvalidator, queue jobEnqueuer, logger *zap.Logger) *InvalidationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvalidationService{cache: cache, queue: queue, logger: logger}
}

// ProjectsChanged schedules invalidation of every read model derived from projects.
func (s *InvalidationService) ProjectsChanged(ctx context.Context) {
	if s == nil {
		return
	}
	for _, prefix := range []string{CachePrefixGallery, CachePrefixAnalytics} {
		if s.queue != nil {
			err := s.queue.Enqueue(jobs.Job{Type: JobTypeCacheInvalidate, Payload: prefix})
			if err == nil {
				continue
			}
			s.logger.Warn("enqueue cache invalidation failed, invalidating inline", zap.String("prefix", prefix), zap.Error(err))
		}
		if err := s.cache.Invalidate(context.WithoutCancel(ctx), prefix); err != nil {
			s.logger.Error("cache invalidation failed", zap.String("prefix", prefix), zap.Error(err))
		}
	}
}

// Handle is the queue handler for JobTypeCacheInvalidate jobs.
func (s *InvalidationService) Handle(ctx context.Context, job jobs.Job) error {
	prefix, ok := job.Payload.(string)
	if !ok || prefix == "" {
		return fmt.Errorf("invalid invalidation payload %v", job.Payload)
	}
	return s.cache.Invalidate(ctx, prefix)
}
