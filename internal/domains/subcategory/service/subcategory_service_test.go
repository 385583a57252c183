package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/category"
	"catalog-backend/internal/domains/subcategory"
)

type fakeSubCategoryRepo struct {
	parents map[uuid.UUID]bool
	subs    map[uuid.UUID]*subcategory.SubCategory
	cascade *subcategory.CascadeResult
}

func newFakeSubCategoryRepo() *fakeSubCategoryRepo {
	return &fakeSubCategoryRepo{
		parents: map[uuid.UUID]bool{},
		subs:    map[uuid.UUID]*subcategory.SubCategory{},
	}
}

func (f *fakeSubCategoryRepo) MainCategoryExists(ctx context.Context, mainCategoryID uuid.UUID) (bool, error) {
	return f.parents[mainCategoryID], nil
}

func (f *fakeSubCategoryRepo) ListByParent(ctx context.Context, mainCategoryID uuid.UUID) ([]*subcategory.SubCategorySummary, error) {
	var out []*subcategory.SubCategorySummary
	for _, s := range f.subs {
		if s.MainCategoryID == mainCategoryID {
			out = append(out, &subcategory.SubCategorySummary{
				ID:          s.ID,
				EnglishName: s.EnglishName,
				ArabicName:  s.ArabicName,
			})
		}
	}
	return out, nil
}

func (f *fakeSubCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*subcategory.SubCategory, error) {
	return f.subs[id], nil
}

func (f *fakeSubCategoryRepo) Create(ctx context.Context, sub *subcategory.SubCategory) (*subcategory.SubCategory, error) {
	sub.ID = uuid.New()
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	f.subs[sub.ID] = sub
	return sub, nil
}

func (f *fakeSubCategoryRepo) Update(ctx context.Context, id uuid.UUID, patch *subcategory.UpdateSubCategoryRequest) (*subcategory.SubCategory, error) {
	existing, ok := f.subs[id]
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

func (f *fakeSubCategoryRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (*subcategory.CascadeResult, error) {
	if _, ok := f.subs[id]; !ok {
		return nil, subcategory.NewSubCategoryNotFound()
	}
	delete(f.subs, id)
	if f.cascade != nil {
		return f.cascade, nil
	}
	return &subcategory.CascadeResult{}, nil
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
}

func (f *fakeEnqueuer) EnqueueImageCleanup(ctx context.Context, publicIDs []string) error {
	f.batches = append(f.batches, publicIDs)
	return nil
}

func TestCreateSubCategoryRequiresExistingParent(t *testing.T) {
	repo := newFakeSubCategoryRepo()
	svc := NewSubCategoryService(repo, newFakeCache(), &fakeEnqueuer{})

	_, err := svc.CreateSubCategory(context.Background(), uuid.NewString(), &subcategory.CreateSubCategoryRequest{
		EnglishName: "Pipes",
		ArabicName:  "أنابيب",
	})
	require.Error(t, err)

	status, _, code := subcategory.GetErrorResponse(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "MAIN_CATEGORY_NOT_FOUND", code)
	assert.Empty(t, repo.subs)
}

func TestCreateSubCategory(t *testing.T) {
	repo := newFakeSubCategoryRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	svc := NewSubCategoryService(repo, newFakeCache(), &fakeEnqueuer{})

	created, err := svc.CreateSubCategory(context.Background(), parent.String(), &subcategory.CreateSubCategoryRequest{
		EnglishName: " Pipes ",
		ArabicName:  "أنابيب",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pipes", created.EnglishName)
	assert.Equal(t, parent, created.MainCategoryID)
}

func TestCreateSubCategoryInvalidatesCategoryListCache(t *testing.T) {
	repo := newFakeSubCategoryRepo()
	parent := uuid.New()
	repo.parents[parent] = true

	c := newFakeCache()
	c.store[category.ListCacheKey] = []byte("cached")
	svc := NewSubCategoryService(repo, c, &fakeEnqueuer{})

	_, err := svc.CreateSubCategory(context.Background(), parent.String(), &subcategory.CreateSubCategoryRequest{
		EnglishName: "Pipes",
		ArabicName:  "أنابيب",
	})
	require.NoError(t, err)

	// the cached projection carries subCategoryCount, it is stale now
	assert.NotContains(t, c.store, category.ListCacheKey)
}

func TestListByParentRejectsUnknownParent(t *testing.T) {
	svc := NewSubCategoryService(newFakeSubCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	_, err := svc.ListByParent(context.Background(), uuid.NewString())
	require.Error(t, err)

	status, _, _ := subcategory.GetErrorResponse(err)
	assert.Equal(t, 404, status)
}

func TestUpdateSubCategoryRejectsEmptyPatch(t *testing.T) {
	svc := NewSubCategoryService(newFakeSubCategoryRepo(), newFakeCache(), &fakeEnqueuer{})

	_, err := svc.UpdateSubCategory(context.Background(), uuid.NewString(), &subcategory.UpdateSubCategoryRequest{})
	require.Error(t, err)

	status, _, code := subcategory.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_SUB_CATEGORY_DATA", code)
}

func TestDeleteSubCategoryEnqueuesProviderImages(t *testing.T) {
	repo := newFakeSubCategoryRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	enq := &fakeEnqueuer{}
	svc := NewSubCategoryService(repo, newFakeCache(), enq)

	created, err := svc.CreateSubCategory(context.Background(), parent.String(), &subcategory.CreateSubCategoryRequest{
		EnglishName: "Pipes",
		ArabicName:  "أنابيب",
	})
	require.NoError(t, err)

	repo.cascade = &subcategory.CascadeResult{
		ProvidersDeleted: 3,
		ImagePublicIDs:   []string{"a", "b", "c"},
	}

	result, err := svc.DeleteSubCategory(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, 3, result.ProvidersDeleted)

	require.Len(t, enq.batches, 1)
	assert.Equal(t, []string{"a", "b", "c"}, enq.batches[0])
}
