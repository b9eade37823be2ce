package service

import (
	"PdfVault/internal/repo"
	"PdfVault/model"
	"PdfVault/utils"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// memoryCache is an in-memory Cache for invalidation tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return errors.New("cache miss")
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memoryCache) countPrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			n++
		}
	}
	return n
}

// useMemoryCache installs an in-memory cache for the duration of a test.
func useMemoryCache(t *testing.T) *memoryCache {
	t.Helper()
	cache := newMemoryCache()
	restore := utils.UseCache(cache)
	t.Cleanup(restore)
	return cache
}

// TestListFilesServesCachedResult tests that a second listing is a cache
// hit: a row inserted behind the cache's back stays invisible until the
// cache is invalidated by a mutation path.
func TestListFilesServesCachedResult(t *testing.T) {
	cleanTables(t)
	useMemoryCache(t)
	owner, c := createTestUser(t, model.LevelUser)
	createTestFile(t, owner.ID, "a.pdf", "", nil)

	items, err := ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expect 1 item, got %d", len(items))
	}

	// Bypass the service layer so no invalidation fires.
	if err := repo.Db.Create(&model.File{
		Name: "b.pdf", FilePath: "obj_b", FileType: "application/pdf", Size: 1, UserID: owner.ID,
	}).Error; err != nil {
		t.Fatalf("direct insert failed: %v", err)
	}

	items, err = ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expect stale cached list of 1, got %d", len(items))
	}
}

// TestUploadInvalidatesFileListCache tests that an upload evicts cached
// lists so the next listing reflects the new file.
func TestUploadInvalidatesFileListCache(t *testing.T) {
	cleanTables(t)
	useMemoryCache(t)
	useFakeStore(t)
	_, c := createTestUser(t, model.LevelUser)

	items, err := ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expect empty list, got %d", len(items))
	}

	if _, err := UploadFile(context.Background(), c, UploadInput{
		Name:        "new.pdf",
		Blob:        strings.NewReader("x"),
		Size:        1,
		ContentType: "application/pdf",
	}); err != nil {
		t.Fatalf("UploadFile failed: %v", err)
	}

	items, err = ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "new.pdf" {
		t.Fatalf("upload must evict cached lists, got %+v", items)
	}
}

// TestUpdateAndDeleteInvalidateFileListCache tests eviction on the other
// file mutation paths.
func TestUpdateAndDeleteInvalidateFileListCache(t *testing.T) {
	cleanTables(t)
	useMemoryCache(t)
	useFakeStore(t)
	owner, c := createTestUser(t, model.LevelUser)
	file := createTestFile(t, owner.ID, "a.pdf", "", nil)

	items, err := ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "a.pdf" {
		t.Fatalf("expect [a.pdf], got %+v", items)
	}

	if _, err := UpdateFile(context.Background(), c, file.ID, "b.pdf", "", nil); err != nil {
		t.Fatalf("UpdateFile failed: %v", err)
	}
	items, err = ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "b.pdf" {
		t.Fatalf("update must evict cached lists, got %+v", items)
	}

	if err := DeleteFile(context.Background(), c, file.ID); err != nil {
		t.Fatalf("DeleteFile failed: %v", err)
	}
	items, err = ListFiles(context.Background(), c, "", nil)
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("delete must evict cached lists, got %+v", items)
	}
}

// TestTagMutationsInvalidateCaches tests that registry mutations evict
// the tag name cache and every cached file list.
func TestTagMutationsInvalidateCaches(t *testing.T) {
	cleanTables(t)
	cache := useMemoryCache(t)
	_, admin := createTestUser(t, model.LevelAdmin)

	names, err := ListTagNames(context.Background())
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expect no tags, got %v", names)
	}
	if _, err := ListFiles(context.Background(), admin, "", nil); err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if cache.countPrefix(utils.CacheKeyFileList) == 0 {
		t.Fatal("expect a cached file list before the mutation")
	}

	tag, err := CreateTag(admin, "invoice")
	if err != nil {
		t.Fatalf("CreateTag failed: %v", err)
	}
	names, err = ListTagNames(context.Background())
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "invoice" {
		t.Fatalf("create must evict cached names, got %v", names)
	}
	if cache.countPrefix(utils.CacheKeyFileList) != 0 {
		t.Fatal("tag mutation must also evict cached file lists")
	}

	if _, err := RenameTag(admin, tag.ID, "receipt"); err != nil {
		t.Fatalf("RenameTag failed: %v", err)
	}
	names, err = ListTagNames(context.Background())
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if len(names) != 1 || names[0] != "receipt" {
		t.Fatalf("rename must evict cached names, got %v", names)
	}

	if err := DeleteTag(admin, tag.ID); err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	names, err = ListTagNames(context.Background())
	if err != nil {
		t.Fatalf("ListTagNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("delete must evict cached names, got %v", names)
	}
}
