package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werkzeug_dashboard/models"
)

type fakeSource struct {
	snap     Snapshot
	failTool error
	calls    atomic.Int32
}

func (f *fakeSource) ListLocations(ctx context.Context) ([]models.Location, error) {
	f.calls.Add(1)
	return f.snap.Locations, nil
}

func (f *fakeSource) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	f.calls.Add(1)
	return f.snap.Employees, nil
}

func (f *fakeSource) ListTools(ctx context.Context) ([]models.Tool, error) {
	f.calls.Add(1)
	if f.failTool != nil {
		return nil, f.failTool
	}
	return f.snap.Tools, nil
}

// 等到 ctx 被取消，验证失败会取消其它请求
func (f *fakeSource) ListCheckouts(ctx context.Context) ([]models.Checkout, error) {
	f.calls.Add(1)
	if f.failTool != nil {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return f.snap.Checkouts, nil
}

func (f *fakeSource) ListReturns(ctx context.Context) ([]models.Return, error) {
	f.calls.Add(1)
	return f.snap.Returns, nil
}

func TestFetchAll(t *testing.T) {
	src := &fakeSource{snap: baseSnapshot()}
	src.snap.Checkouts = []models.Checkout{checkout(10, 1, 100, "2026-10-25", "")}

	s, err := Fetch(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, int32(5), src.calls.Load())
	assert.Len(t, s.Tools, 4)
	assert.Len(t, s.Employees, 2)
	assert.Len(t, s.Locations, 2)
	assert.Len(t, s.Checkouts, 1)
}

func TestFetchAllOrNothing(t *testing.T) {
	boom := errors.New("backend down")
	src := &fakeSource{snap: baseSnapshot(), failTool: boom}

	s, err := Fetch(context.Background(), src)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, s.Tools)
	assert.Nil(t, s.Employees)
	assert.Nil(t, s.Locations)
}
