package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var (
	_ repository.WasteTypeRepository = (*WasteTypeRepo)(nil)
	_ repository.CriterionRepository = (*CriterionRepo)(nil)
)

// WasteTypeRepo catálogo de residuos en memoria. Links apunta al CriterionRepo para
// CountCriteria; puede ser nil.
type WasteTypeRepo struct {
	mu    sync.Mutex
	items map[string]*entity.WasteType
	Links *CriterionRepo
	Err   error
}

// NewWasteTypeRepo construye el catálogo con los tipos dados.
func NewWasteTypeRepo(items ...*entity.WasteType) *WasteTypeRepo {
	r := &WasteTypeRepo{items: map[string]*entity.WasteType{}}
	for _, wt := range items {
		cp := *wt
		r.items[wt.ID] = &cp
	}
	return r
}

func (r *WasteTypeRepo) Create(_ context.Context, wt *entity.WasteType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, o := range r.items {
		if strings.EqualFold(o.Name, wt.Name) {
			return domain.ErrDuplicate
		}
	}
	if wt.ID == "" {
		wt.ID = uuid.New().String()
	}
	cp := *wt
	r.items[wt.ID] = &cp
	return nil
}

func (r *WasteTypeRepo) GetByID(_ context.Context, id string) (*entity.WasteType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	wt, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *wt
	return &cp, nil
}

func (r *WasteTypeRepo) Update(_ context.Context, wt *entity.WasteType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[wt.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *wt
	r.items[wt.ID] = &cp
	return nil
}

func (r *WasteTypeRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *WasteTypeRepo) List(_ context.Context, f repository.WasteTypeFilter) ([]*entity.WasteType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.WasteType
	for _, wt := range r.items {
		if f.Category != "" && wt.Category != f.Category {
			continue
		}
		if f.Status != "" && wt.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(wt.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *wt
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WasteTypeRepo) Categories(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	seen := map[string]bool{}
	var out []string
	for _, wt := range r.items {
		if !seen[wt.Category] {
			seen[wt.Category] = true
			out = append(out, wt.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *WasteTypeRepo) Stats(_ context.Context) (*entity.WasteTypeStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	s := &entity.WasteTypeStats{}
	cats := map[string]bool{}
	sum := decimal.Zero
	for _, wt := range r.items {
		if s.Total == 0 || wt.BaseScore.GreaterThan(s.MaxScore) {
			s.MaxScore = wt.BaseScore
		}
		if s.Total == 0 || wt.BaseScore.LessThan(s.MinScore) {
			s.MinScore = wt.BaseScore
		}
		s.Total++
		sum = sum.Add(wt.BaseScore)
		cats[wt.Category] = true
		if wt.Status == entity.StatusActive {
			s.Active++
		} else {
			s.Inactive++
		}
	}
	s.Categories = len(cats)
	if s.Total > 0 {
		s.AverageScore = sum.Div(decimal.NewFromInt(int64(s.Total)))
	}
	return s, nil
}

func (r *WasteTypeRepo) CountCriteria(ctx context.Context, wasteTypeID string) (int, error) {
	if r.Links == nil {
		return 0, nil
	}
	list, err := r.Links.ListByWasteType(ctx, wasteTypeID)
	return len(list), err
}

// CriterionRepo directorio de criterios y asociaciones en memoria.
type CriterionRepo struct {
	mu    sync.Mutex
	items map[string]*entity.Criterion
	links []*entity.WasteTypeCriterion
	Err   error
}

// NewCriterionRepo construye el directorio con los criterios dados.
func NewCriterionRepo(items ...*entity.Criterion) *CriterionRepo {
	r := &CriterionRepo{items: map[string]*entity.Criterion{}}
	for _, c := range items {
		cp := *c
		r.items[c.ID] = &cp
	}
	return r
}

func (r *CriterionRepo) Create(_ context.Context, c *entity.Criterion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, o := range r.items {
		if strings.EqualFold(o.Name, c.Name) {
			return domain.ErrDuplicate
		}
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *CriterionRepo) GetByID(_ context.Context, id string) (*entity.Criterion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CriterionRepo) Update(_ context.Context, c *entity.Criterion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *CriterionRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	kept := r.links[:0]
	for _, a := range r.links {
		if a.CriterionID != id {
			kept = append(kept, a)
		}
	}
	r.links = kept
	return nil
}

func (r *CriterionRepo) List(_ context.Context, f repository.CriterionFilter) ([]*entity.Criterion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.Criterion
	for _, c := range r.items {
		if f.DataType != "" && c.DataType != f.DataType {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(f.Search)) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *CriterionRepo) Associate(_ context.Context, a *entity.WasteTypeCriterion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.items[a.CriterionID]; !ok {
		return domain.ErrNotFound
	}
	for _, o := range r.links {
		if o.WasteTypeID == a.WasteTypeID && o.CriterionID == a.CriterionID {
			return domain.ErrDuplicate
		}
	}
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	r.links = append(r.links, &cp)
	return nil
}

func (r *CriterionRepo) Dissociate(_ context.Context, wasteTypeID, criterionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for i, a := range r.links {
		if a.WasteTypeID == wasteTypeID && a.CriterionID == criterionID {
			r.links = append(r.links[:i], r.links[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CriterionRepo) ListByWasteType(_ context.Context, wasteTypeID string) ([]*entity.WasteTypeCriterion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.WasteTypeCriterion
	for _, a := range r.links {
		if a.WasteTypeID != wasteTypeID {
			continue
		}
		cp := *a
		if c, ok := r.items[a.CriterionID]; ok {
			cc := *c
			cp.Criterion = &cc
		}
		out = append(out, &cp)
	}
	return out, nil
}
