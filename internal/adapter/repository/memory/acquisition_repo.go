package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain/entity"
	"github.com/marcos-nsantos/satellite-imagery-backend/internal/pkg/pagination"
)

// AcquisitionRepo keeps the most recently used acquisitions in process memory.
// The least recently used entry is dropped once size is exceeded.
type AcquisitionRepo struct {
	cache  *lru.Cache[uuid.UUID, entity.Acquisition]
	logger *zap.Logger
}

func NewAcquisitionRepo(size int, logger *zap.Logger) (*AcquisitionRepo, error) {
	r := &AcquisitionRepo{logger: logger}

	cache, err := lru.NewWithEvict(size, r.onEvict)
	if err != nil {
		return nil, fmt.Errorf("creating acquisition cache: %w", err)
	}
	r.cache = cache

	return r, nil
}

func (r *AcquisitionRepo) Create(_ context.Context, acq *entity.Acquisition) error {
	r.cache.Add(acq.ID, clone(acq))
	return nil
}

func (r *AcquisitionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Acquisition, error) {
	acq, ok := r.cache.Get(id)
	if !ok {
		return nil, domain.ErrAcquisitionNotFound
	}
	out := clone(&acq)
	return &out, nil
}

func (r *AcquisitionRepo) List(_ context.Context, params pagination.Params) ([]entity.Acquisition, *pagination.Info, error) {
	all := r.cache.Values()
	slices.SortFunc(all, func(a, b entity.Acquisition) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	page := pagination.Page(all, params)
	items := make([]entity.Acquisition, 0, len(page))
	for i := range page {
		items = append(items, clone(&page[i]))
	}

	return items, pagination.NewInfo(params.Page, params.PerPage, len(all)), nil
}

func (r *AcquisitionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if !r.cache.Remove(id) {
		return domain.ErrAcquisitionNotFound
	}
	return nil
}

// onEvict runs for capacity evictions and explicit removals alike.
func (r *AcquisitionRepo) onEvict(id uuid.UUID, acq entity.Acquisition) {
	if r.logger == nil {
		return
	}
	r.logger.Debug("acquisition dropped from memory repository",
		zap.String("acquisition_id", id.String()),
		zap.Int("images", len(acq.Images)),
	)
}

// clone sorts images newest first, matching the postgres repository.
func clone(acq *entity.Acquisition) entity.Acquisition {
	out := *acq
	out.Images = slices.Clone(acq.Images)
	slices.SortStableFunc(out.Images, func(a, b entity.AcquisitionImage) int {
		return cmp.Compare(b.Version, a.Version)
	})
	return out
}
