package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"catalog-backend/internal/domains/provider"
	"catalog-backend/internal/infrastructure/storage"
)

type fakeProviderRepo struct {
	parents   map[uuid.UUID]bool
	providers map[uuid.UUID]*provider.ServiceProvider
	createErr error
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		parents:   map[uuid.UUID]bool{},
		providers: map[uuid.UUID]*provider.ServiceProvider{},
	}
}

func (f *fakeProviderRepo) SubCategoryExists(ctx context.Context, subCategoryID uuid.UUID) (bool, error) {
	return f.parents[subCategoryID], nil
}

func (f *fakeProviderRepo) ListByParent(ctx context.Context, subCategoryID uuid.UUID) ([]*provider.ServiceProvider, error) {
	var out []*provider.ServiceProvider
	for _, p := range f.providers {
		if p.SubCategoryID == subCategoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProviderRepo) GetByID(ctx context.Context, id uuid.UUID) (*provider.ServiceProvider, error) {
	return f.providers[id], nil
}

func (f *fakeProviderRepo) Search(ctx context.Context, query string) ([]*provider.ServiceProvider, error) {
	var out []*provider.ServiceProvider
	for _, p := range f.providers {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProviderRepo) Create(ctx context.Context, p *provider.ServiceProvider) (*provider.ServiceProvider, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.providers[p.ID] = p
	return p, nil
}

func (f *fakeProviderRepo) Update(ctx context.Context, p *provider.ServiceProvider) (*provider.ServiceProvider, error) {
	if _, ok := f.providers[p.ID]; !ok {
		return nil, provider.NewProviderNotFound(p.ID.String())
	}
	f.providers[p.ID] = p
	return p, nil
}

func (f *fakeProviderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.providers[id]; !ok {
		return provider.NewProviderNotFound(id.String())
	}
	delete(f.providers, id)
	return nil
}

// fakeUploader counts uploads and can fail a specific call.
type fakeUploader struct {
	mu       sync.Mutex
	uploads  int
	deletes  []string
	failCall int // 1-based call number that fails; 0 means never
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, folder string) (storage.ImageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads++
	if f.failCall > 0 && f.uploads == f.failCall {
		return storage.ImageRef{}, fmt.Errorf("store rejected upload")
	}
	id := fmt.Sprintf("%s/asset-%d", folder, f.uploads)
	return storage.ImageRef{URL: "https://cdn.example.com/" + id, PublicID: id}, nil
}

func (f *fakeUploader) Delete(ctx context.Context, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, publicID)
	return nil
}

type fakeEnqueuer struct {
	batches [][]string
}

func (f *fakeEnqueuer) EnqueueImageCleanup(ctx context.Context, publicIDs []string) error {
	f.batches = append(f.batches, publicIDs)
	return nil
}

func jpegBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	b := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(b, img, nil))
	return b.Bytes()
}

func newTestService(repo *fakeProviderRepo, up *fakeUploader, enq *fakeEnqueuer) provider.Service {
	return NewProviderService(repo, up, storage.NewImageProcessor(), enq, "catalog")
}

func validCreateRequest() *provider.CreateServiceProviderRequest {
	return &provider.CreateServiceProviderRequest{
		Name:         "Al Noor Plumbing",
		Bio:          "Residential plumbing and maintenance",
		WorkingDays:  []string{"Sunday", "Monday"},
		WorkingHours: []string{"09:00"},
		ClosingHours: []string{"17:00"},
		PhoneContacts: []provider.PhoneContact{
			{PhoneNumber: "+970590000001", HasWhatsApp: true, CanCall: true},
		},
	}
}

func TestCreateProviderUploadsImages(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	up := &fakeUploader{}
	svc := newTestService(repo, up, &fakeEnqueuer{})

	images := [][]byte{jpegBytes(t), jpegBytes(t), jpegBytes(t)}
	created, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), images)
	require.NoError(t, err)

	assert.Equal(t, 3, up.uploads)
	require.Len(t, created.ImagesURL, 3)
	for _, ref := range created.ImagesURL {
		assert.NotEmpty(t, ref.URL)
		assert.NotEmpty(t, ref.PublicID)
	}
}

func TestCreateProviderRejectsUnknownParent(t *testing.T) {
	repo := newFakeProviderRepo()
	up := &fakeUploader{}
	svc := newTestService(repo, up, &fakeEnqueuer{})

	_, err := svc.CreateProvider(context.Background(), uuid.NewString(), validCreateRequest(), nil)
	require.Error(t, err)

	status, _, code := provider.GetErrorResponse(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "SUB_CATEGORY_NOT_FOUND", code)
	assert.Zero(t, up.uploads)
}

func TestCreateProviderRejectsNonImageFile(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	up := &fakeUploader{}
	svc := newTestService(repo, up, &fakeEnqueuer{})

	_, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), [][]byte{[]byte("not an image")})
	require.Error(t, err)

	status, _, code := provider.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_IMAGE", code)
	assert.Zero(t, up.uploads)
}

func TestCreateProviderUploadFailureCleansUpSucceeded(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	up := &fakeUploader{failCall: 2}
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, up, enq)

	_, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), [][]byte{jpegBytes(t), jpegBytes(t)})
	require.Error(t, err)

	_, _, code := provider.GetErrorResponse(err)
	assert.Equal(t, "UPLOAD_FAILED", code)
	assert.Empty(t, repo.providers)

	// the upload that landed before the failure must be queued for cleanup
	require.Len(t, enq.batches, 1)
	assert.Len(t, enq.batches[0], 1)
}

func TestCreateProviderRepoFailureCleansUpUploads(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	repo.createErr = fmt.Errorf("connection reset")
	up := &fakeUploader{}
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, up, enq)

	_, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), [][]byte{jpegBytes(t)})
	require.Error(t, err)

	require.Len(t, enq.batches, 1)
	assert.Len(t, enq.batches[0], 1)
}

func TestUpdateProviderComposesImages(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	up := &fakeUploader{}
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, up, enq)

	created, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), [][]byte{jpegBytes(t), jpegBytes(t)})
	require.NoError(t, err)
	require.Len(t, created.ImagesURL, 2)

	dropped := created.ImagesURL[0].PublicID
	kept := created.ImagesURL[1].PublicID

	updated, err := svc.UpdateProvider(context.Background(), created.ID.String(), &provider.UpdateServiceProviderRequest{
		DeletedImageIds: []string{dropped},
	}, [][]byte{jpegBytes(t)})
	require.NoError(t, err)

	require.Len(t, updated.ImagesURL, 2)
	ids := []string{updated.ImagesURL[0].PublicID, updated.ImagesURL[1].PublicID}
	assert.Contains(t, ids, kept)
	assert.NotContains(t, ids, dropped)

	// the dropped asset goes to the cleanup queue
	require.Len(t, enq.batches, 1)
	assert.Equal(t, []string{dropped}, enq.batches[0])
}

func TestUpdateProviderPatchesFields(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	svc := newTestService(repo, &fakeUploader{}, &fakeEnqueuer{})

	created, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), nil)
	require.NoError(t, err)

	bio := "Updated bio"
	days := []string{"Friday"}
	updated, err := svc.UpdateProvider(context.Background(), created.ID.String(), &provider.UpdateServiceProviderRequest{
		Bio:         &bio,
		WorkingDays: &days,
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Updated bio", updated.Bio)
	assert.Equal(t, []string{"Friday"}, updated.WorkingDays)
	// untouched fields survive
	assert.Equal(t, "Al Noor Plumbing", updated.Name)
}

func TestUpdateProviderRejectsEmptyPatch(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(), &fakeUploader{}, &fakeEnqueuer{})

	_, err := svc.UpdateProvider(context.Background(), uuid.NewString(), &provider.UpdateServiceProviderRequest{}, nil)
	require.Error(t, err)

	status, _, code := provider.GetErrorResponse(err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "INVALID_PROVIDER_DATA", code)
}

func TestDeleteProviderEnqueuesItsImages(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	enq := &fakeEnqueuer{}
	svc := newTestService(repo, &fakeUploader{}, enq)

	created, err := svc.CreateProvider(context.Background(), parent.String(), validCreateRequest(), [][]byte{jpegBytes(t)})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProvider(context.Background(), created.ID.String()))
	assert.Empty(t, repo.providers)

	require.Len(t, enq.batches, 1)
	assert.Len(t, enq.batches[0], 1)
}

func TestSearchProvidersRequiresQuery(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(), &fakeUploader{}, &fakeEnqueuer{})

	_, err := svc.SearchProviders(context.Background(), "   ")
	require.Error(t, err)

	status, _, _ := provider.GetErrorResponse(err)
	assert.Equal(t, 400, status)
}

func TestBulkImport(t *testing.T) {
	repo := newFakeProviderRepo()
	parent := uuid.New()
	repo.parents[parent] = true
	svc := newTestService(repo, &fakeUploader{}, &fakeEnqueuer{})

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "bio", "workingDays", "workingHours", "closingHours", "phoneNumbers", "locationLinks"},
		{"Al Noor Plumbing", "Residential plumbing", "Sunday,Monday", "09:00", "17:00", "+970590000001", "https://maps.example.com/1"},
		{"", "missing name row", "", "", "", "", ""},
		{"Salam Electrics", "Wiring and repairs", "Sunday", "08:00", "16:00", "+970590000002,+970590000003", ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := svc.BulkImport(context.Background(), parent.String(), buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Created)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Len(t, repo.providers, 2)
}

func TestBulkImportRejectsUnknownParent(t *testing.T) {
	svc := newTestService(newFakeProviderRepo(), &fakeUploader{}, &fakeEnqueuer{})

	f := excelize.NewFile()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	_, err = svc.BulkImport(context.Background(), uuid.NewString(), buf)
	require.Error(t, err)

	status, _, _ := provider.GetErrorResponse(err)
	assert.Equal(t, 404, status)
}
