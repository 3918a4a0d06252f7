package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"werkzeug_dashboard/models"
)

// Source 五个集合的列表接口（records.Client 实现）
type Source interface {
	ListLocations(ctx context.Context) ([]models.Location, error)
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	ListTools(ctx context.Context) ([]models.Tool, error)
	ListCheckouts(ctx context.Context) ([]models.Checkout, error)
	ListReturns(ctx context.Context) ([]models.Return, error)
}

// Fetch 五个请求并发，任何一个失败就整体失败，不返回部分数据
func Fetch(ctx context.Context, src Source) (Snapshot, error) {
	var s Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Locations, err = src.ListLocations(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Employees, err = src.ListEmployees(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Tools, err = src.ListTools(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Checkouts, err = src.ListCheckouts(ctx)
		return err
	})
	g.Go(func() (err error) {
		s.Returns, err = src.ListReturns(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
