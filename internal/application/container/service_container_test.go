package container

import (
	"context"
	"testing"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/config"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Media: config.MediaConfig{
			SiteName:        "corporate",
			CacheMinutes:    60,
			CleanupMinutes:  10,
			SkipSegments:    []string{"assets"},
			ResolvedMarkers: []string{"getmedia"},
		},
	}
}

// 目录变更通过依赖标签让缓存中的旧记录失效
func TestContainer_CatalogChangeInvalidatesCache(t *testing.T) {
	catalog, err := repository.NewMediaRepository("")
	require.NoError(t, err)

	lib := &entities.MediaLibrary{Name: "Images", SiteName: "corporate"}
	require.NoError(t, catalog.UpsertLibrary(lib))
	file := &entities.MediaFile{Name: "hero", Extension: ".jpg", LibraryID: lib.ID, Path: "hero.jpg"}
	require.NoError(t, catalog.UpsertFile(file))

	c, err := NewServiceContainerWithCatalog(testConfig(), catalog)
	require.NoError(t, err)

	ctx := context.Background()
	url := "/media/corporate/Images/hero.jpg"
	before := c.GetResolver().GetResponsiveImageURL(ctx, url, 0, 0)
	assert.Equal(t, "/getmedia/"+file.GUID.String()+"/hero", before)
	assert.Equal(t, 2, c.GetTagCache().Stats().Items)

	file.Name = "hero-large"
	require.NoError(t, catalog.UpsertFile(file))
	assert.Equal(t, 1, c.GetTagCache().Stats().Items)

	after := c.GetResolver().GetResponsiveImageURL(ctx, url, 0, 0)
	assert.Equal(t, "/getmedia/"+file.GUID.String()+"/hero-large", after)
}

// 按GUID更新媒体库后，其下文件仍可解析
func TestContainer_LibraryUpdateKeepsFilesResolvable(t *testing.T) {
	catalog, err := repository.NewMediaRepository("")
	require.NoError(t, err)

	lib := &entities.MediaLibrary{Name: "Images", SiteName: "corporate"}
	require.NoError(t, catalog.UpsertLibrary(lib))
	file := &entities.MediaFile{Name: "hero", Extension: ".jpg", LibraryID: lib.ID, Path: "hero.jpg"}
	require.NoError(t, catalog.UpsertFile(file))

	c, err := NewServiceContainerWithCatalog(testConfig(), catalog)
	require.NoError(t, err)

	ctx := context.Background()
	url := "/media/corporate/Images/hero.jpg"
	want := "/getmedia/" + file.GUID.String() + "/hero?width=200&ext=.jpg"
	assert.Equal(t, want, c.GetResolver().GetResponsiveImageURL(ctx, url, 200, 0))

	require.NoError(t, catalog.UpsertLibrary(&entities.MediaLibrary{GUID: lib.GUID, Name: "Images", SiteName: "corporate", Folder: "images"}))
	assert.Equal(t, want, c.GetResolver().GetResponsiveImageURL(ctx, url, 200, 0))
}

func TestContainer_InvalidCron(t *testing.T) {
	catalog, err := repository.NewMediaRepository("")
	require.NoError(t, err)

	cfg := testConfig()
	cfg.Catalog.SyncCron = "every minute"
	_, err = NewServiceContainerWithCatalog(cfg, catalog)
	assert.Error(t, err)
}
