package repository

import (
	"context"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/domain/repositories"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"golang.org/x/time/rate"
)

// RateLimitedStore 对底层MediaStore的查询做QPS限制
type RateLimitedStore struct {
	store   repositories.MediaStore
	limiter *rate.Limiter
}

// NewRateLimitedStore qps为0或负数时不限制
func NewRateLimitedStore(store repositories.MediaStore, qps int) *RateLimitedStore {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if qps > 0 {
		// 桶大小为QPS，允许短时间突发
		limiter = rate.NewLimiter(rate.Limit(qps), qps)
	}
	return &RateLimitedStore{store: store, limiter: limiter}
}

// QPS 当前限制，0表示不限制
func (s *RateLimitedStore) QPS() int {
	if s.limiter.Limit() == rate.Inf {
		return 0
	}
	return int(s.limiter.Limit())
}

func (s *RateLimitedStore) FindLibraryByName(ctx context.Context, name, siteName string) (*entities.MediaLibrary, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.FindLibraryByName(ctx, name, siteName)
}

func (s *RateLimitedStore) FindFileByLibraryAndPath(ctx context.Context, libraryID int, path string) (*entities.MediaFile, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.FindFileByLibraryAndPath(ctx, libraryID, path)
}

func (s *RateLimitedStore) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return errors.NewServiceErrorWithCause(errors.ErrorCodeRateLimit, "store query rate limit wait aborted", err)
	}
	return nil
}
