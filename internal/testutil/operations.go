package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var (
	_ repository.CollectionRequestRepository = (*RequestRepo)(nil)
	_ repository.RouteRepository             = (*RouteRepo)(nil)
	_ repository.CollectionRepository        = (*CollectionRepo)(nil)
)

// RequestRepo solicitudes de recolección en memoria.
type RequestRepo struct {
	mu    sync.Mutex
	items []*entity.CollectionRequest
	Err   error
}

// NewRequestRepo construye el almacén con las solicitudes dadas.
func NewRequestRepo(items ...*entity.CollectionRequest) *RequestRepo {
	r := &RequestRepo{}
	for _, it := range items {
		cp := *it
		r.items = append(r.items, &cp)
	}
	return r
}

func (r *RequestRepo) Create(_ context.Context, cr *entity.CollectionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if cr.ID == "" {
		cr.ID = uuid.New().String()
	}
	cp := *cr
	r.items = append(r.items, &cp)
	return nil
}

func (r *RequestRepo) GetByID(_ context.Context, id string) (*entity.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, it := range r.items {
		if it.ID == id {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *RequestRepo) List(_ context.Context, userID, status string, limit, offset int) ([]*entity.CollectionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	var out []*entity.CollectionRequest
	for _, it := range r.items {
		if userID != "" && it.UserID != userID {
			continue
		}
		if status != "" && it.Status != status {
			continue
		}
		cp := *it
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *RequestRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, it := range r.items {
		if it.ID == id {
			it.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

// RouteRepo rutas y puntos en memoria. Users, si no es nil, resuelve el recolector.
type RouteRepo struct {
	mu     sync.Mutex
	routes map[string]*entity.Route
	Users  *UserRepo
	Err    error
}

// NewRouteRepo construye el almacén con las rutas dadas.
func NewRouteRepo(routes ...*entity.Route) *RouteRepo {
	r := &RouteRepo{routes: map[string]*entity.Route{}}
	for _, rt := range routes {
		r.routes[rt.ID] = cloneRoute(rt)
	}
	return r
}

func cloneRoute(rt *entity.Route) *entity.Route {
	cp := *rt
	cp.Points = append([]entity.RoutePoint(nil), rt.Points...)
	return &cp
}

func (r *RouteRepo) Create(_ context.Context, rt *entity.Route) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	r.routes[rt.ID] = cloneRoute(rt)
	return nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*entity.Route, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	rt, ok := r.routes[id]
	if !ok {
		r.mu.Unlock()
		return nil, nil
	}
	out := cloneRoute(rt)
	r.mu.Unlock()
	return out, r.resolveCollector(ctx, out)
}

func (r *RouteRepo) resolveCollector(ctx context.Context, rt *entity.Route) error {
	if r.Users == nil || rt.CollectorID == "" {
		return nil
	}
	u, err := r.Users.GetByID(ctx, rt.CollectorID)
	rt.Collector = u
	return err
}

func (r *RouteRepo) List(ctx context.Context, search string) ([]*entity.Route, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	var out []*entity.Route
	for _, rt := range r.routes {
		if search != "" && !strings.Contains(strings.ToLower(rt.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, cloneRoute(rt))
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	for _, rt := range out {
		if err := r.resolveCollector(ctx, rt); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *RouteRepo) UpdateStatus(_ context.Context, id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	rt, ok := r.routes[id]
	if !ok {
		return domain.ErrNotFound
	}
	rt.Status = status
	return nil
}

func (r *RouteRepo) GetPoint(_ context.Context, pointID string) (*entity.RoutePoint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	for _, rt := range r.routes {
		for _, p := range rt.Points {
			if p.ID == pointID {
				cp := p
				return &cp, nil
			}
		}
	}
	return nil, nil
}

func (r *RouteRepo) UpdatePointStatus(_ context.Context, pointID, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, rt := range r.routes {
		for i := range rt.Points {
			if rt.Points[i].ID == pointID {
				rt.Points[i].Status = status
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

// TxRunner ejecuta fn sobre los repos en memoria. Si fn falla, la ruta creada se descarta,
// igual que un rollback.
type TxRunner struct {
	Routes *RouteRepo
	Users  *UserRepo
}

func (t *TxRunner) RunRoutes(ctx context.Context, fn func(repository.RouteRepository, repository.UserRepository) error) error {
	staged := NewRouteRepo()
	if err := fn(staged, t.Users); err != nil {
		return err
	}
	staged.mu.Lock()
	defer staged.mu.Unlock()
	for _, rt := range staged.routes {
		if err := t.Routes.Create(ctx, rt); err != nil {
			return err
		}
	}
	return nil
}

// CollectionRepo recolecciones en memoria. Las vistas resuelven nombres y puntos con
// los repos enlazados (cualquiera puede ser nil).
type CollectionRepo struct {
	mu         sync.Mutex
	items      []*entity.Collection
	Users      *UserRepo
	WasteTypes *WasteTypeRepo
	Routes     *RouteRepo
	Err        error
}

// NewCollectionRepo construye el almacén enlazado a los repos dados.
func NewCollectionRepo(users *UserRepo, wasteTypes *WasteTypeRepo, routes *RouteRepo, items ...*entity.Collection) *CollectionRepo {
	r := &CollectionRepo{Users: users, WasteTypes: wasteTypes, Routes: routes}
	for _, c := range items {
		cp := *c
		r.items = append(r.items, &cp)
	}
	return r
}

func (r *CollectionRepo) Create(_ context.Context, c *entity.Collection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	cp := *c
	r.items = append(r.items, &cp)
	return nil
}

func (r *CollectionRepo) GetByID(ctx context.Context, id string) (*entity.CollectionView, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	var found *entity.Collection
	for _, c := range r.items {
		if c.ID == id {
			cp := *c
			found = &cp
		}
	}
	r.mu.Unlock()
	if found == nil {
		return nil, nil
	}
	return r.view(ctx, found)
}

func (r *CollectionRepo) view(ctx context.Context, c *entity.Collection) (*entity.CollectionView, error) {
	v := &entity.CollectionView{Collection: *c, Points: decimal.Zero}
	if r.WasteTypes != nil {
		wt, err := r.WasteTypes.GetByID(ctx, c.WasteTypeID)
		if err != nil {
			return nil, err
		}
		if wt != nil {
			v.WasteTypeName, v.Category, v.Points = wt.Name, wt.Category, wt.BaseScore
		}
	}
	if r.Users != nil {
		u, err := r.Users.GetByID(ctx, c.UserID)
		if err != nil {
			return nil, err
		}
		if u != nil {
			v.UserName, v.UserFullName = u.UserName, u.FullName()
		}
	}
	if r.Routes != nil && c.RouteID != "" {
		rt, err := r.Routes.GetByID(ctx, c.RouteID)
		if err != nil {
			return nil, err
		}
		if rt != nil {
			v.RouteName = rt.Name
		}
	}
	return v, nil
}

func (r *CollectionRepo) matching(f repository.CollectionFilter) []*entity.Collection {
	var out []*entity.Collection
	for _, c := range r.items {
		if f.UserID != "" && c.UserID != f.UserID {
			continue
		}
		if f.ParticipantID != "" && c.UserID != f.ParticipantID && c.RegisteredBy != f.ParticipantID {
			continue
		}
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.WasteTypeID != "" && c.WasteTypeID != f.WasteTypeID {
			continue
		}
		if f.Since != nil && c.Date.Before(*f.Since) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (r *CollectionRepo) List(ctx context.Context, f repository.CollectionFilter) ([]*entity.CollectionView, error) {
	r.mu.Lock()
	if r.Err != nil {
		r.mu.Unlock()
		return nil, r.Err
	}
	items := r.matching(f)
	r.mu.Unlock()
	out := make([]*entity.CollectionView, 0, len(items))
	for _, c := range items {
		v, err := r.view(ctx, c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *CollectionRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.update(id, func(c *entity.Collection) { c.Status = status })
}

func (r *CollectionRepo) AssignRoute(_ context.Context, id, routeID string) error {
	return r.update(id, func(c *entity.Collection) { c.RouteID = routeID })
}

func (r *CollectionRepo) update(id string, fn func(*entity.Collection)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	for _, c := range r.items {
		if c.ID == id {
			fn(c)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *CollectionRepo) Stats(ctx context.Context, f repository.CollectionFilter) (*entity.CollectionStats, error) {
	views, err := r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	s := &entity.CollectionStats{TotalPoints: decimal.Zero}
	cats := map[string]bool{}
	for _, v := range views {
		s.Total++
		switch v.Status {
		case entity.CollectionCompleted:
			s.Completed++
		case entity.CollectionPending:
			s.Pending++
		case entity.CollectionInProgress:
			s.InProgress++
		}
		s.TotalPoints = s.TotalPoints.Add(v.Points)
		if v.Category != "" {
			cats[v.Category] = true
		}
	}
	s.Categories = len(cats)
	return s, nil
}
