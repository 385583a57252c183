package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"

	"catalog-backend/internal/domains/provider"
	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/internal/infrastructure/storage"
)

type providerService struct {
	repo      provider.Repository
	uploader  storage.Uploader
	processor *storage.ImageProcessor
	enqueuer  queue.Enqueuer
	folder    string
}

func NewProviderService(
	repo provider.Repository,
	uploader storage.Uploader,
	processor *storage.ImageProcessor,
	enqueuer queue.Enqueuer,
	folder string,
) provider.Service {
	return &providerService{
		repo:      repo,
		uploader:  uploader,
		processor: processor,
		enqueuer:  enqueuer,
		folder:    folder,
	}
}

func (s *providerService) ListProviders(ctx context.Context, subCategoryID string) ([]*provider.ServiceProvider, error) {
	parentID, err := uuid.Parse(subCategoryID)
	if err != nil {
		return nil, provider.NewInvalidSubCategoryID(subCategoryID)
	}

	exists, err := s.repo.SubCategoryExists(ctx, parentID)
	if err != nil {
		return nil, provider.NewListProvidersError(err)
	}
	if !exists {
		return nil, provider.NewSubCategoryNotFound(subCategoryID)
	}

	providers, err := s.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, provider.NewListProvidersError(err)
	}
	return providers, nil
}

func (s *providerService) GetProvider(ctx context.Context, id string) (*provider.ServiceProvider, error) {
	providerID, err := uuid.Parse(id)
	if err != nil {
		return nil, provider.NewInvalidProviderID(id)
	}

	p, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		return nil, provider.NewListProvidersError(err)
	}
	if p == nil {
		return nil, provider.NewProviderNotFound(id)
	}
	return p, nil
}

func (s *providerService) SearchProviders(ctx context.Context, query string) ([]*provider.ServiceProvider, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, provider.NewInvalidProviderData(errRequired("search query"))
	}

	providers, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, provider.NewSearchProvidersError(err)
	}
	return providers, nil
}

func (s *providerService) CreateProvider(ctx context.Context, subCategoryID string, req *provider.CreateServiceProviderRequest, images [][]byte) (*provider.ServiceProvider, error) {
	parentID, err := uuid.Parse(subCategoryID)
	if err != nil {
		return nil, provider.NewInvalidSubCategoryID(subCategoryID)
	}
	if err := req.Validate(); err != nil {
		return nil, provider.NewInvalidProviderData(err)
	}
	if len(images) > provider.MaxImagesPerProvider {
		return nil, provider.NewInvalidProviderData(fmt.Errorf("at most %d images allowed, got %d", provider.MaxImagesPerProvider, len(images)))
	}

	exists, err := s.repo.SubCategoryExists(ctx, parentID)
	if err != nil {
		return nil, provider.NewCreateProviderError(err)
	}
	if !exists {
		return nil, provider.NewSubCategoryNotFound(subCategoryID)
	}

	refs, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	p := &provider.ServiceProvider{
		SubCategoryID: parentID,
		Name:          strings.TrimSpace(req.Name),
		Bio:           strings.TrimSpace(req.Bio),
		ImagesURL:     refs,
		WorkingDays:   req.WorkingDays,
		WorkingHours:  req.WorkingHours,
		ClosingHours:  req.ClosingHours,
		PhoneContacts: req.PhoneContacts,
		LocationLinks: req.LocationLinks,
		Offers:        req.Offers,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		// the row never landed, so the uploaded assets are orphans
		s.enqueueCleanup(ctx, publicIDs(refs))
		return nil, provider.NewCreateProviderError(err)
	}
	return created, nil
}

func (s *providerService) UpdateProvider(ctx context.Context, id string, req *provider.UpdateServiceProviderRequest, images [][]byte) (*provider.ServiceProvider, error) {
	providerID, err := uuid.Parse(id)
	if err != nil {
		return nil, provider.NewInvalidProviderID(id)
	}
	if err := req.Validate(); err != nil {
		return nil, provider.NewInvalidProviderData(err)
	}
	if req.Empty() && len(images) == 0 {
		return nil, provider.NewInvalidProviderData(errRequired("at least one field to update"))
	}

	existing, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		return nil, provider.NewUpdateProviderError(err)
	}
	if existing == nil {
		return nil, provider.NewProviderNotFound(id)
	}

	kept, removed := partitionImages(existing.ImagesURL, req.DeletedImageIds)
	if len(kept)+len(images) > provider.MaxImagesPerProvider {
		return nil, provider.NewInvalidProviderData(fmt.Errorf("at most %d images allowed", provider.MaxImagesPerProvider))
	}

	newRefs, err := s.uploadImages(ctx, images)
	if err != nil {
		return nil, err
	}

	applyPatch(existing, req)
	existing.ImagesURL = append(kept, newRefs...)

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		s.enqueueCleanup(ctx, publicIDs(newRefs))
		if provider.IsNotFound(err) {
			return nil, err
		}
		return nil, provider.NewUpdateProviderError(err)
	}

	// the removed assets are unreferenced now that the row is saved
	s.enqueueCleanup(ctx, removed)
	return updated, nil
}

func (s *providerService) DeleteProvider(ctx context.Context, id string) error {
	providerID, err := uuid.Parse(id)
	if err != nil {
		return provider.NewInvalidProviderID(id)
	}

	existing, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		return provider.NewDeleteProviderError(err)
	}
	if existing == nil {
		return provider.NewProviderNotFound(id)
	}

	if err := s.repo.Delete(ctx, providerID); err != nil {
		if provider.IsNotFound(err) {
			return err
		}
		return provider.NewDeleteProviderError(err)
	}

	s.enqueueCleanup(ctx, publicIDs(existing.ImagesURL))
	return nil
}

func (s *providerService) BulkImport(ctx context.Context, subCategoryID string, file io.Reader) (*provider.BulkImportResult, error) {
	parentID, err := uuid.Parse(subCategoryID)
	if err != nil {
		return nil, provider.NewInvalidSubCategoryID(subCategoryID)
	}

	exists, err := s.repo.SubCategoryExists(ctx, parentID)
	if err != nil {
		return nil, provider.NewBulkImportError(err)
	}
	if !exists {
		return nil, provider.NewSubCategoryNotFound(subCategoryID)
	}

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, provider.NewBulkImportError(fmt.Errorf("failed to open workbook: %w", err))
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, provider.NewBulkImportError(fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	if len(rows) < 2 {
		return nil, provider.NewBulkImportError(fmt.Errorf("sheet %s has no data rows", sheet))
	}

	result := &provider.BulkImportResult{}
	for i, row := range rows[1:] {
		rowNum := i + 2
		req, err := parseImportRow(row)
		if err != nil {
			result.Errors = append(result.Errors, provider.BulkRowError{Row: rowNum, Message: err.Error()})
			continue
		}

		p := &provider.ServiceProvider{
			SubCategoryID: parentID,
			Name:          req.Name,
			Bio:           req.Bio,
			ImagesURL:     []storage.ImageRef{},
			WorkingDays:   req.WorkingDays,
			WorkingHours:  req.WorkingHours,
			ClosingHours:  req.ClosingHours,
			PhoneContacts: req.PhoneContacts,
			LocationLinks: req.LocationLinks,
		}
		if _, err := s.repo.Create(ctx, p); err != nil {
			result.Errors = append(result.Errors, provider.BulkRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		result.Created++
	}
	return result, nil
}

// uploadImages validates every file up front, then normalises and
// uploads them concurrently. If any upload fails the rest are
// cancelled and the ones that already landed are queued for cleanup.
func (s *providerService) uploadImages(ctx context.Context, images [][]byte) ([]storage.ImageRef, error) {
	if len(images) == 0 {
		return []storage.ImageRef{}, nil
	}

	for _, data := range images {
		if err := s.processor.ValidateImage(data); err != nil {
			return nil, provider.NewInvalidImage(err)
		}
	}

	refs := make([]storage.ImageRef, len(images))
	g, gctx := errgroup.WithContext(ctx)
	for i, data := range images {
		g.Go(func() error {
			normalized, err := s.processor.Normalize(data)
			if err != nil {
				return provider.NewInvalidImage(err)
			}
			ref, err := s.uploader.Upload(gctx, normalized, s.folder)
			if err != nil {
				return provider.NewUploadError(err)
			}
			refs[i] = ref
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.enqueueCleanup(ctx, publicIDs(refs))
		return nil, err
	}
	return refs, nil
}

func (s *providerService) enqueueCleanup(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	if err := s.enqueuer.EnqueueImageCleanup(ctx, ids); err != nil {
		log.Error().Err(err).
			Int("images", len(ids)).
			Msg("Failed to enqueue image cleanup")
	}
}

func applyPatch(p *provider.ServiceProvider, req *provider.UpdateServiceProviderRequest) {
	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		p.Bio = strings.TrimSpace(*req.Bio)
	}
	if req.WorkingDays != nil {
		p.WorkingDays = *req.WorkingDays
	}
	if req.WorkingHours != nil {
		p.WorkingHours = *req.WorkingHours
	}
	if req.ClosingHours != nil {
		p.ClosingHours = *req.ClosingHours
	}
	if req.PhoneContacts != nil {
		p.PhoneContacts = *req.PhoneContacts
	}
	if req.LocationLinks != nil {
		p.LocationLinks = *req.LocationLinks
	}
	if req.Offers != nil {
		p.Offers = *req.Offers
	}
}

// partitionImages splits the current images into the ones to keep and
// the public ids to delete. Unknown ids in deleted are ignored.
func partitionImages(current []storage.ImageRef, deleted []string) ([]storage.ImageRef, []string) {
	if len(deleted) == 0 {
		return current, nil
	}

	drop := make(map[string]bool, len(deleted))
	for _, id := range deleted {
		drop[id] = true
	}

	kept := make([]storage.ImageRef, 0, len(current))
	var removed []string
	for _, ref := range current {
		if drop[ref.PublicID] {
			removed = append(removed, ref.PublicID)
		} else {
			kept = append(kept, ref)
		}
	}
	return kept, removed
}

func publicIDs(refs []storage.ImageRef) []string {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.PublicID != "" {
			ids = append(ids, ref.PublicID)
		}
	}
	return ids
}

func parseImportRow(row []string) (*provider.CreateServiceProviderRequest, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	req := &provider.CreateServiceProviderRequest{
		Name:          cell(0),
		Bio:           cell(1),
		WorkingDays:   splitList(cell(2)),
		WorkingHours:  splitList(cell(3)),
		ClosingHours:  splitList(cell(4)),
		LocationLinks: splitList(cell(6)),
	}
	for _, number := range splitList(cell(5)) {
		req.PhoneContacts = append(req.PhoneContacts, provider.PhoneContact{
			PhoneNumber: number,
			CanCall:     true,
		})
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func errRequired(what string) error {
	return fmt.Errorf("%s is required", what)
}
