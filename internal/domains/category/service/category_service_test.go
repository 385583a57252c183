package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/category"
)

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*category.Category
	listErr    error
	cascade    *category.CascadeResult
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[uuid.UUID]*category.Category{}}
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*category.CategorySummary, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*category.CategorySummary, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, &category.CategorySummary{
			ID:          c.ID,
			EnglishName: c.EnglishName,
			ArabicName:  c.ArabicName,
		})
	}
	return out, nil
}

func (f *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) Create(ctx context.Context, cat *category.Category) (*category.Category, error) {
	cat.ID = uuid.New()
	cat.CreatedAt = time.Now()
	cat.UpdatedAt = cat.CreatedAt
	f.categories[cat.ID] = cat
	return cat, nil
}

func (f *fakeCategoryRepo) Update(ctx context.Context, id uuid.UUID, patch *category.UpdateCategoryRequest) (*category.Category, error) {
	existing, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	if patch.EnglishName != nil {
		existing.EnglishName = *patch.EnglishName
	}
	if patch.ArabicName != nil {
		existing.ArabicName = *patch.ArabicName
	}
	return existing, nil
}

func (f *fakeCategoryRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (*category.CascadeResult, error) {
	if _, ok := f.categories[id]; !ok {
		return nil, category.NewCategoryNotFound()
	}
	delete(f.categories, id)
	if f.cascade != nil {
		return f.cascade, nil
	}
	return &category.CascadeResult{}, nil
}

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string][]byte{}} }

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.store[key] = []byte("x")
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.store, k)
	}
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                          { return nil }

type fakeEnqueuer struct {
	batches [][]string
	err     error
}

func (f *fakeEnqueuer) EnqueueImageCleanup(ctx context.Context, publicIDs []string) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, publicIDs)
	return nil
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, newFakeCache(), &fakeEnqueuer{})

	created, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "  Plumbing  ",
		ArabicName:  "سباكة",
	})
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", created.EnglishName)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateCategoryRejectsMissingNames(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	_, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "Plumbing",
	})
	require.Error(t, err)

	_, message, code := category.GetErrorResponse(err)
	assert.Equal(t, "INVALID_CATEGORY_DATA", code)
	assert.NotEmpty(t, message)
}

func TestCreateCategoryInvalidatesListCache(t *testing.T) {
	repo := newFakeCategoryRepo()
	c := newFakeCache()
	c.store[category.ListCacheKey] = []byte("cached")
	svc := NewCategoryService(repo, c, &fakeEnqueuer{})

	_, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "Plumbing",
		ArabicName:  "سباكة",
	})
	require.NoError(t, err)
	assert.NotContains(t, c.store, category.ListCacheKey)
}

func TestUpdateCategoryRejectsBadID(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	name := "Electrics"
	_, err := svc.UpdateCategory(context.Background(), "not-a-uuid", &category.UpdateCategoryRequest{
		EnglishName: &name,
	})
	require.Error(t, err)

	status, _, code := category.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_CATEGORY_ID", code)
}

func TestUpdateCategoryRejectsEmptyPatch(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	_, err := svc.UpdateCategory(context.Background(), uuid.NewString(), &category.UpdateCategoryRequest{})
	require.Error(t, err)

	status, _, _ := category.GetErrorResponse(err)
	assert.Equal(t, 400, status)
}

func TestUpdateCategoryNotFound(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	name := "Electrics"
	_, err := svc.UpdateCategory(context.Background(), uuid.NewString(), &category.UpdateCategoryRequest{
		EnglishName: &name,
	})
	require.Error(t, err)

	status, _, code := category.GetErrorResponse(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "CATEGORY_NOT_FOUND", code)
}

func TestDeleteCategoryEnqueuesImageCleanup(t *testing.T) {
	repo := newFakeCategoryRepo()
	enq := &fakeEnqueuer{}
	svc := NewCategoryService(repo, newFakeCache(), enq)

	created, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "Plumbing",
		ArabicName:  "سباكة",
	})
	require.NoError(t, err)

	repo.cascade = &category.CascadeResult{
		SubCategoriesDeleted: 2,
		ProvidersDeleted:     5,
		ImagePublicIDs:       []string{"img-1", "img-2"},
	}

	result, err := svc.DeleteCategory(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, result.SubCategoriesDeleted)
	assert.Equal(t, 5, result.ProvidersDeleted)

	require.Len(t, enq.batches, 1)
	assert.Equal(t, []string{"img-1", "img-2"}, enq.batches[0])
}

func TestDeleteCategorySurvivesEnqueueFailure(t *testing.T) {
	repo := newFakeCategoryRepo()
	enq := &fakeEnqueuer{err: errors.New("redis down")}
	svc := NewCategoryService(repo, newFakeCache(), enq)

	created, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "Plumbing",
		ArabicName:  "سباكة",
	})
	require.NoError(t, err)

	repo.cascade = &category.CascadeResult{ImagePublicIDs: []string{"img-1"}}

	// the rows are gone, a cleanup enqueue failure must not surface
	_, err = svc.DeleteCategory(context.Background(), created.ID.String())
	assert.NoError(t, err)
}

func TestListCategoriesUsesRepoOnCacheMiss(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, newFakeCache(), &fakeEnqueuer{})

	_, err := svc.CreateCategory(context.Background(), &category.CreateCategoryRequest{
		EnglishName: "Plumbing",
		ArabicName:  "سباكة",
	})
	require.NoError(t, err)

	list, err := svc.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
