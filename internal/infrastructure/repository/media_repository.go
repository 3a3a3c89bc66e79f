package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/easayliu/media-url-resolver/internal/domain/entities"
	"github.com/easayliu/media-url-resolver/internal/domain/repositories"
	"github.com/easayliu/media-url-resolver/internal/infrastructure/cache"
	"github.com/easayliu/media-url-resolver/internal/shared/errors"
	"github.com/easayliu/media-url-resolver/pkg/logger"
	fileutil "github.com/easayliu/media-url-resolver/pkg/utils/file"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// catalogDocument 目录文件结构
type catalogDocument struct {
	Libraries []*entities.MediaLibrary `yaml:"libraries"`
	Files     []*entities.MediaFile    `yaml:"files"`
}

// MediaRepository 媒体库与媒体文件的内存目录，可从YAML文件加载并持久化
// 每次变更都会把记录的依赖标签通知给订阅者
type MediaRepository struct {
	filePath string

	mu        sync.RWMutex
	libraries map[uuid.UUID]*entities.MediaLibrary
	files     map[uuid.UUID]*entities.MediaFile
	nextID    int

	listenerMu sync.RWMutex
	listeners  []repositories.ChangeListener
}

// NewMediaRepository 创建目录仓库，filePath为空时只在内存中保存
func NewMediaRepository(filePath string) (*MediaRepository, error) {
	repo := &MediaRepository{
		filePath:  filePath,
		libraries: make(map[uuid.UUID]*entities.MediaLibrary),
		files:     make(map[uuid.UUID]*entities.MediaFile),
	}

	if filePath == "" {
		return repo, nil
	}

	doc, err := repo.readCatalog()
	if err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	repo.replaceLocked(doc)

	return repo, nil
}

// Subscribe 注册变更监听器
func (r *MediaRepository) Subscribe(listener repositories.ChangeListener) {
	r.listenerMu.Lock()
	defer r.listenerMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

// FindLibraryByName 按名称和站点查找媒体库（不区分大小写）
func (r *MediaRepository) FindLibraryByName(ctx context.Context, name, siteName string) (*entities.MediaLibrary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, lib := range r.libraries {
		if strings.EqualFold(lib.Name, name) && strings.EqualFold(lib.SiteName, siteName) {
			copied := *lib
			return &copied, nil
		}
	}

	return nil, errors.NewServiceErrorWithDetails(errors.ErrorCodeNotFound, "media library not found",
		map[string]interface{}{"name": name, "site": siteName})
}

// FindFileByLibraryAndPath 按媒体库ID和路径精确查找，只返回生成URL所需字段
func (r *MediaRepository) FindFileByLibraryAndPath(ctx context.Context, libraryID int, path string) (*entities.MediaFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, file := range r.files {
		if file.LibraryID == libraryID && file.Path == path {
			return file.Projection(), nil
		}
	}

	return nil, errors.NewServiceErrorWithDetails(errors.ErrorCodeNotFound, "media file not found",
		map[string]interface{}{"library_id": libraryID, "path": path})
}

// Libraries 列出所有媒体库，按ID排序
func (r *MediaRepository) Libraries() []*entities.MediaLibrary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedLibraries(r.libraries)
}

// Files 列出指定媒体库的文件，按路径排序
func (r *MediaRepository) Files(libraryID int) []*entities.MediaFile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.MediaFile, 0)
	for _, file := range r.files {
		if file.LibraryID == libraryID {
			copied := *file
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result
}

// UpsertLibrary 新增或更新媒体库
// 按GUID更新时沿用已有ID，同一站点内名称必须唯一
func (r *MediaRepository) UpsertLibrary(lib *entities.MediaLibrary) error {
	if lib.Name == "" {
		return errors.NewServiceError(errors.ErrorCodeInvalidRequest, "library name is required")
	}

	r.mu.Lock()
	if lib.GUID == uuid.Nil {
		lib.GUID = uuid.New()
	}
	if err := r.checkLibraryLocked(lib); err != nil {
		r.mu.Unlock()
		return err
	}
	r.assignID(&lib.ID)
	copied := *lib
	r.libraries[lib.GUID] = &copied
	err := r.saveLocked()
	r.mu.Unlock()

	r.notify(cache.LibraryTag(lib.GUID))
	return err
}

// UpsertFile 新增或更新媒体文件，所属媒体库必须存在
// 同一媒体库内路径必须唯一
func (r *MediaRepository) UpsertFile(file *entities.MediaFile) error {
	if file.Path == "" || file.Name == "" {
		return errors.NewServiceError(errors.ErrorCodeInvalidRequest, "file name and path are required")
	}

	r.mu.Lock()
	if !r.hasLibraryLocked(file.LibraryID) {
		r.mu.Unlock()
		return errors.NewServiceErrorWithDetails(errors.ErrorCodeNotFound, "media library not found",
			map[string]interface{}{"library_id": file.LibraryID})
	}
	if file.GUID == uuid.Nil {
		file.GUID = uuid.New()
	}
	if err := r.checkFileLocked(file); err != nil {
		r.mu.Unlock()
		return err
	}
	if file.Extension == "" {
		file.Extension = fileutil.DottedExtension(file.Path)
	}
	if file.MimeType == "" {
		file.MimeType = fileutil.MimeTypeOf(file.Path)
	}
	r.assignID(&file.ID)
	copied := *file
	r.files[file.GUID] = &copied
	err := r.saveLocked()
	r.mu.Unlock()

	r.notify(cache.FileTag(file.GUID))
	return err
}

// checkLibraryLocked 校验媒体库的ID与名称不与其他记录冲突，已有记录未给ID时沿用原ID
func (r *MediaRepository) checkLibraryLocked(lib *entities.MediaLibrary) error {
	if existing, ok := r.libraries[lib.GUID]; ok {
		if lib.ID != 0 && lib.ID != existing.ID {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "library id cannot change",
				map[string]interface{}{"guid": lib.GUID.String(), "id": existing.ID})
		}
		lib.ID = existing.ID
	}

	for guid, other := range r.libraries {
		if guid == lib.GUID {
			continue
		}
		if lib.ID != 0 && other.ID == lib.ID {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "library id already in use",
				map[string]interface{}{"id": lib.ID})
		}
		if strings.EqualFold(other.Name, lib.Name) && strings.EqualFold(other.SiteName, lib.SiteName) {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "library name already exists",
				map[string]interface{}{"name": lib.Name, "site": lib.SiteName})
		}
	}
	return nil
}

// checkFileLocked 校验文件的ID与(媒体库ID, 路径)不与其他记录冲突
func (r *MediaRepository) checkFileLocked(file *entities.MediaFile) error {
	if existing, ok := r.files[file.GUID]; ok {
		if file.ID != 0 && file.ID != existing.ID {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "file id cannot change",
				map[string]interface{}{"guid": file.GUID.String(), "id": existing.ID})
		}
		file.ID = existing.ID
	}

	for guid, other := range r.files {
		if guid == file.GUID {
			continue
		}
		if file.ID != 0 && other.ID == file.ID {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "file id already in use",
				map[string]interface{}{"id": file.ID})
		}
		if other.LibraryID == file.LibraryID && other.Path == file.Path {
			return errors.NewServiceErrorWithDetails(errors.ErrorCodeInvalidRequest, "file path already exists",
				map[string]interface{}{"library_id": file.LibraryID, "path": file.Path})
		}
	}
	return nil
}

// assignID 为新记录分配ID（调用时必须已经持有锁）
func (r *MediaRepository) assignID(id *int) {
	if *id == 0 {
		r.nextID++
		*id = r.nextID
	} else if *id > r.nextID {
		r.nextID = *id
	}
}

// DeleteFile 删除媒体文件
func (r *MediaRepository) DeleteFile(guid uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.files[guid]; !ok {
		r.mu.Unlock()
		return errors.NewServiceErrorWithDetails(errors.ErrorCodeNotFound, "media file not found",
			map[string]interface{}{"guid": guid.String()})
	}
	delete(r.files, guid)
	err := r.saveLocked()
	r.mu.Unlock()

	r.notify(cache.FileTag(guid))
	return err
}

// Reload 重新读取目录文件，对新增、变更和删除的记录触发依赖标签
// 返回触发的标签数量
func (r *MediaRepository) Reload() (int, error) {
	if r.filePath == "" {
		return 0, nil
	}

	// 读文件与替换在同一把锁内，避免覆盖并发写入
	r.mu.Lock()
	doc, err := r.readCatalog()
	if err != nil {
		r.mu.Unlock()
		return 0, fmt.Errorf("failed to reload catalog: %w", err)
	}
	oldLibs, oldFiles := r.libraries, r.files
	r.replaceLocked(doc)
	tags := diffTags(oldLibs, r.libraries, oldFiles, r.files)
	r.mu.Unlock()

	for _, tag := range tags {
		r.notify(tag)
	}
	if len(tags) > 0 {
		logger.Info("Media catalog reloaded", "changed", len(tags), "file", r.filePath)
	}
	return len(tags), nil
}

func (r *MediaRepository) notify(tag string) {
	r.listenerMu.RLock()
	defer r.listenerMu.RUnlock()
	for _, listener := range r.listeners {
		listener(tag)
	}
}

func (r *MediaRepository) hasLibraryLocked(id int) bool {
	for _, lib := range r.libraries {
		if lib.ID == id {
			return true
		}
	}
	return false
}

func (r *MediaRepository) readCatalog() (*catalogDocument, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return nil, err
	}

	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// replaceLocked 用目录文件内容替换内存数据（调用时必须已经持有锁）
func (r *MediaRepository) replaceLocked(doc *catalogDocument) {
	r.libraries = make(map[uuid.UUID]*entities.MediaLibrary, len(doc.Libraries))
	r.files = make(map[uuid.UUID]*entities.MediaFile, len(doc.Files))

	for _, lib := range doc.Libraries {
		if lib.GUID == uuid.Nil {
			lib.GUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("library:"+lib.SiteName+"/"+lib.Name))
		}
		if lib.ID > r.nextID {
			r.nextID = lib.ID
		}
		r.libraries[lib.GUID] = lib
	}
	for _, file := range doc.Files {
		if file.GUID == uuid.Nil {
			file.GUID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(fmt.Sprintf("file:%d/%s", file.LibraryID, file.Path)))
		}
		if file.ID > r.nextID {
			r.nextID = file.ID
		}
		r.files[file.GUID] = file
	}
}

// saveLocked 保存目录到文件（调用时必须已经持有锁）
func (r *MediaRepository) saveLocked() error {
	if r.filePath == "" {
		return nil
	}

	doc := catalogDocument{
		Libraries: sortedLibraries(r.libraries),
		Files:     make([]*entities.MediaFile, 0, len(r.files)),
	}
	for _, file := range r.files {
		doc.Files = append(doc.Files, file)
	}
	sort.Slice(doc.Files, func(i, j int) bool { return doc.Files[i].ID < doc.Files[j].ID })

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create catalog directory: %w", err)
	}
	return os.WriteFile(r.filePath, data, 0644)
}

func sortedLibraries(libs map[uuid.UUID]*entities.MediaLibrary) []*entities.MediaLibrary {
	result := make([]*entities.MediaLibrary, 0, len(libs))
	for _, lib := range libs {
		copied := *lib
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func diffTags(oldLibs, newLibs map[uuid.UUID]*entities.MediaLibrary, oldFiles, newFiles map[uuid.UUID]*entities.MediaFile) []string {
	var tags []string

	for guid, old := range oldLibs {
		if cur, ok := newLibs[guid]; !ok || *cur != *old {
			tags = append(tags, cache.LibraryTag(guid))
		}
	}
	for guid := range newLibs {
		if _, ok := oldLibs[guid]; !ok {
			tags = append(tags, cache.LibraryTag(guid))
		}
	}
	for guid, old := range oldFiles {
		if cur, ok := newFiles[guid]; !ok || *cur != *old {
			tags = append(tags, cache.FileTag(guid))
		}
	}
	for guid := range newFiles {
		if _, ok := oldFiles[guid]; !ok {
			tags = append(tags, cache.FileTag(guid))
		}
	}

	sort.Strings(tags)
	return tags
}
