package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/srcdup/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/srcdup/internal/core/domain"
)

// failingStore wraps the memory store and fails every write.
type failingStore struct {
	*memory.DocumentStore
}

func (s failingStore) Write(context.Context, string, string) error {
	return errors.New("disk full")
}

const headerDoc = "class A {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n" +
	"class B {\n" +
	"// <common_code>\nvoid Func() { return; }\n// </common_code>\n};\n"

const headerSynced = "class A {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n" +
	"class B {\n" +
	"// <common_code>\nvoid Func() {}\n// </common_code>\n};\n"

func newTestService() (*SyncService, *memory.DocumentStore) {
	store := memory.NewDocumentStore()
	return NewSyncService(store, domain.DefaultDelimiters), store
}

func TestNewSyncService(t *testing.T) {
	svc, _ := newTestService()
	require.NotNil(t, svc)
	assert.Equal(t, domain.DefaultDelimiters, svc.Delimiters())
}

func TestSyncService_SyncFile(t *testing.T) {
	svc, store := newTestService()
	store.Put("Delegate.h", headerDoc)
	ctx := context.Background()

	result, err := svc.SyncFile(ctx, "Delegate.h", domain.SyncOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Delegate.h", result.Path)
	assert.Equal(t, 2, result.Spans)
	assert.Equal(t, 1, result.Rewritten)
	assert.True(t, result.Written)
	assert.True(t, result.Changed())

	got, err := store.Read(ctx, "Delegate.h")
	require.NoError(t, err)
	assert.Equal(t, headerSynced, got)
	assert.Equal(t, 1, store.Writes("Delegate.h"))
}

func TestSyncService_SyncFile_UnchangedSkipsWrite(t *testing.T) {
	svc, store := newTestService()
	store.Put("Delegate.h", headerSynced)

	result, err := svc.SyncFile(context.Background(), "Delegate.h", domain.SyncOptions{})
	require.NoError(t, err)

	assert.False(t, result.Changed())
	assert.False(t, result.Written)
	assert.Equal(t, 0, store.Writes("Delegate.h"))
}

func TestSyncService_SyncFile_DryRun(t *testing.T) {
	svc, store := newTestService()
	store.Put("Delegate.h", headerDoc)
	ctx := context.Background()

	result, err := svc.SyncFile(ctx, "Delegate.h", domain.SyncOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.Changed())
	assert.False(t, result.Written)
	assert.Equal(t, headerSynced, result.After)

	got, err := store.Read(ctx, "Delegate.h")
	require.NoError(t, err)
	assert.Equal(t, headerDoc, got)
}

func TestSyncService_SyncFile_NotFound(t *testing.T) {
	svc, store := newTestService()

	result, err := svc.SyncFile(context.Background(), "missing.h", domain.SyncOptions{})

	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "missing.h")
	assert.Equal(t, 0, store.Writes("missing.h"))
}

func TestSyncService_SyncFile_WriteError(t *testing.T) {
	store := memory.NewDocumentStore()
	store.Put("Delegate.h", headerDoc)
	svc := NewSyncService(failingStore{store}, domain.DefaultDelimiters)

	result, err := svc.SyncFile(context.Background(), "Delegate.h", domain.SyncOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	require.NotNil(t, result)
	assert.False(t, result.Written)
}

func TestSyncService_SyncFile_NilStore(t *testing.T) {
	svc := NewSyncService(nil, domain.DefaultDelimiters)

	_, err := svc.SyncFile(context.Background(), "a.h", domain.SyncOptions{})
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestSyncService_SyncFile_CancelledContext(t *testing.T) {
	svc, store := newTestService()
	store.Put("Delegate.h", headerDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SyncFile(ctx, "Delegate.h", domain.SyncOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, store.Writes("Delegate.h"))
}

func TestSyncService_SyncFiles(t *testing.T) {
	svc, store := newTestService()
	store.Put("a.h", headerDoc)
	store.Put("b.h", headerSynced)

	results, err := svc.SyncFiles(context.Background(), []string{"a.h", "missing.h", "b.h"}, domain.SyncOptions{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	var fileErr *domain.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Equal(t, "missing.h", fileErr.Path)
	require.Len(t, results, 2)
	assert.Equal(t, "a.h", results[0].Path)
	assert.True(t, results[0].Written)
	assert.Equal(t, "b.h", results[1].Path)
	assert.False(t, results[1].Written)
}

func TestSyncService_SyncFiles_AllSucceed(t *testing.T) {
	svc, store := newTestService()
	store.Put("a.h", headerDoc)

	results, err := svc.SyncFiles(context.Background(), []string{"a.h"}, domain.SyncOptions{})

	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSyncService_Diff(t *testing.T) {
	svc, store := newTestService()
	store.Put("Delegate.h", headerDoc)

	result, err := svc.SyncFile(context.Background(), "Delegate.h", domain.SyncOptions{DryRun: true})
	require.NoError(t, err)

	diff, err := svc.Diff(result)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- Delegate.h")
	assert.Contains(t, diff, "+++ Delegate.h (synchronised)")
	assert.Contains(t, diff, "-void Func() { return; }")
	assert.Contains(t, diff, "+void Func() {}")
}

func TestSyncService_Diff_Unchanged(t *testing.T) {
	svc, _ := newTestService()

	diff, err := svc.Diff(&domain.SyncResult{Before: "x", After: "x"})
	require.NoError(t, err)
	assert.Empty(t, diff)

	diff, err = svc.Diff(nil)
	require.NoError(t, err)
	assert.Empty(t, diff)
}
