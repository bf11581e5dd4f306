package testutil

import (
	"context"
	"time"

	"github.com/jhoicas/ecorecoleccion-api/internal/domain/entity"
	"github.com/jhoicas/ecorecoleccion-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo devuelve agregados fijos. Requests se indexa por userID ("" = global).
type DashboardRepo struct {
	Users       entity.UserCounts
	Catalog     entity.CatalogCounts
	Collections entity.CollectionCounts
	Requests    map[string]entity.RequestCounts
	Totals      map[string]int
	Err         error

	// Today recibe la fecha con la que se pidió CollectionCounts.
	Today time.Time
}

func (r *DashboardRepo) UserCounts(context.Context) (*entity.UserCounts, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	c := r.Users
	return &c, nil
}

func (r *DashboardRepo) CatalogCounts(context.Context) (*entity.CatalogCounts, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	c := r.Catalog
	return &c, nil
}

func (r *DashboardRepo) CollectionCounts(_ context.Context, today time.Time) (*entity.CollectionCounts, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.Today = today
	c := r.Collections
	return &c, nil
}

func (r *DashboardRepo) RequestCounts(_ context.Context, userID string) (*entity.RequestCounts, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	c := r.Requests[userID]
	return &c, nil
}

func (r *DashboardRepo) CollectionTotal(_ context.Context, userID string) (int, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	return r.Totals[userID], nil
}
