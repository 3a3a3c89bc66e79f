package media

import (
	"context"
	"time"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/domain/repositories"
	"github.com/easayliu/media-url-resolver/internal/domain/services/mediaurl"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/cache"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
)

// DefaultCacheTTL 媒体库/文件查询的默认缓存时间
const DefaultCacheTTL = 60 * time.Minute

// Options 解析器选项
type Options struct {
	SiteName string
	TTL      time.Duration
	SkipRule mediaurl.SkipRule
	EventLog EventLog
}

// Resolver 响应式图片URL解析器，媒体库与媒体文件查询结果带依赖标签缓存
type Resolver struct {
	store    repositories.MediaStore
	tags     cache.TagCache
	skip     mediaurl.SkipRule
	events   EventLog
	siteName string
	ttl      time.Duration
}

// NewResolver 创建解析器
func NewResolver(store repositories.MediaStore, tags cache.TagCache, opts Options) *Resolver {
	if opts.TTL <= 0 {
		opts.TTL = DefaultCacheTTL
	}
	if opts.SkipRule == nil {
		opts.SkipRule = mediaurl.NewSegmentSkipRule([]string{"assets"}, []string{"getmedia"})
	}
	if opts.EventLog == nil {
		opts.EventLog = LoggerEventLog{SiteName: opts.SiteName}
	}

	return &Resolver{
		store:    store,
		tags:     tags,
		skip:     opts.SkipRule,
		events:   opts.EventLog,
		siteName: opts.SiteName,
		ttl:      opts.TTL,
	}
}

// ResolveLibrary 按名称查找当前站点的媒体库，失败时记录日志并返回nil
// 失败结果不会被缓存
func (r *Resolver) ResolveLibrary(ctx context.Context, name string) *entities.MediaLibrary {
	lib, err := cache.GetOrCompute(r.tags, cache.LibraryKey(r.siteName, name), r.ttl,
		func() (*entities.MediaLibrary, []string, error) {
			lib, err := r.store.FindLibraryByName(ctx, name, r.siteName)
			if err != nil {
				return nil, nil, err
			}
			if lib == nil {
				return nil, nil, errors.NewServiceError(errors.ErrorCodeNotFound, "media library not found")
			}
			return lib, []string{cache.LibraryTag(lib.GUID)}, nil
		})
	if err != nil {
		r.events.LogException("GetCachedMediaLibraryInfo", SeverityInformation, err, "Unable to get media library: "+name)
		return nil
	}
	return lib
}

// ResolveFile 按(媒体库ID, 路径)查找媒体文件，失败时记录日志并返回nil
func (r *Resolver) ResolveFile(ctx context.Context, libraryID int, path string) *entities.MediaFile {
	file, err := cache.GetOrCompute(r.tags, cache.FileKey(libraryID, path), r.ttl,
		func() (*entities.MediaFile, []string, error) {
			file, err := r.store.FindFileByLibraryAndPath(ctx, libraryID, path)
			if err != nil {
				return nil, nil, err
			}
			if file == nil {
				return nil, nil, errors.NewServiceError(errors.ErrorCodeNotFound, "media file not found")
			}
			return file.Projection(), []string{cache.FileTag(file.GUID)}, nil
		})
	if err != nil {
		r.events.LogException("GetCachedMediaFileInfo", SeverityInformation, err, "Unable to get media file: "+path)
		return nil
	}
	return file
}
