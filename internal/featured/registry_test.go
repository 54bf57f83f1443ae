package featured

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lukman83/showcase/internal/api"
	"github.com/lukman83/showcase/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend mimics the backend's featured-products rules in memory.
type memBackend struct {
	mu       sync.Mutex
	nextID   int
	records  map[int]*models.FeaturedProduct
	products map[int]string
	extra    map[int]*models.PositionSlot
	calls    []string
}

func newMemBackend() *memBackend {
	products := map[int]string{}
	for id := 1; id <= 200; id++ {
		products[id] = fmt.Sprintf("product %d", id)
	}
	return &memBackend{nextID: 1, records: map[int]*models.FeaturedProduct{}, products: products}
}

func (m *memBackend) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *memBackend) FeaturedProducts(ctx context.Context) ([]models.FeaturedProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FeaturedProduct
	for _, r := range m.records {
		out = append(out, *r)
	}
	return out, nil
}

func (m *memBackend) FeaturedPositions(ctx context.Context) (map[int]*models.PositionSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("positions")
	out := map[int]*models.PositionSlot{}
	for p := MinPosition; p <= MaxPosition; p++ {
		out[p] = nil
	}
	for _, r := range m.records {
		if r.IsActive {
			out[r.Position] = &models.PositionSlot{ID: r.ID, ProductID: r.ProductID, ProductName: m.products[r.ProductID]}
		}
	}
	for p, s := range m.extra {
		out[p] = s
	}
	return out, nil
}

func (m *memBackend) occupant(position int) *models.FeaturedProduct {
	for _, r := range m.records {
		if r.Position == position && r.IsActive {
			return r
		}
	}
	return nil
}

func (m *memBackend) CreateFeatured(ctx context.Context, in models.FeaturedInput) (*models.FeaturedProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("create")
	if _, ok := m.products[in.ProductID]; !ok {
		return nil, &api.Error{Kind: api.KindHTTP, StatusCode: 404, Message: "产品不存在"}
	}
	if in.Position < MinPosition || in.Position > MaxPosition {
		return nil, &api.Error{Kind: api.KindValidation, StatusCode: 422, Message: "validation failed: body.position: out of range"}
	}
	if m.occupant(in.Position) != nil {
		return nil, &api.Error{Kind: api.KindHTTP, StatusCode: 400, Message: fmt.Sprintf("位置 %d 已被占用", in.Position)}
	}
	rec := &models.FeaturedProduct{ID: m.nextID, ProductID: in.ProductID, Position: in.Position, IsActive: in.IsActive}
	m.records[rec.ID] = rec
	m.nextID++
	return rec, nil
}

func (m *memBackend) UpdateFeatured(ctx context.Context, id int, in models.FeaturedUpdate) (*models.FeaturedProduct, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(fmt.Sprintf("update %d", id))
	rec, ok := m.records[id]
	if !ok {
		return nil, &api.Error{Kind: api.KindHTTP, StatusCode: 404, Message: "特色产品不存在"}
	}
	if in.ProductID != nil {
		if _, ok := m.products[*in.ProductID]; !ok {
			return nil, &api.Error{Kind: api.KindHTTP, StatusCode: 404, Message: "产品不存在"}
		}
		rec.ProductID = *in.ProductID
	}
	return rec, nil
}

func (m *memBackend) DeleteFeatured(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record(fmt.Sprintf("delete %d", id))
	if _, ok := m.records[id]; !ok {
		return &api.Error{Kind: api.KindHTTP, StatusCode: 404, Message: "特色产品不存在"}
	}
	delete(m.records, id)
	return nil
}

func (m *memBackend) callCount(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

func TestSetProductThenLoadShowsProductAtEveryPosition(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)

	for p := MinPosition; p <= MaxPosition; p++ {
		pid := 100 + p
		require.NoError(t, reg.SetProduct(ctx, pid, p))

		slots, err := reg.LoadPositions(ctx)
		require.NoError(t, err)
		slot := slots[p-MinPosition]
		assert.Equal(t, Occupied, slot.State)
		assert.Equal(t, pid, slot.Record.ProductID, "position %d", p)
	}
}

func TestSetProductOnOccupiedPositionUpdates(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)

	require.NoError(t, reg.SetProduct(ctx, 42, 3))
	require.NoError(t, reg.SetProduct(ctx, 7, 3))

	assert.Equal(t, 1, backend.callCount("create"))
	assert.Equal(t, 1, backend.callCount("update 1"))
	slot, ok := reg.Slot(3)
	require.True(t, ok)
	assert.Equal(t, 7, slot.Record.ProductID)
	assert.Len(t, backend.records, 1)
}

func TestSetProductFailureLeavesViewUnchanged(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)
	require.NoError(t, reg.SetProduct(ctx, 42, 2))
	before := reg.Positions()
	reloads := backend.callCount("positions")

	err := reg.SetProduct(ctx, 9999, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "产品不存在")
	assert.Equal(t, before, reg.Positions())
	assert.Equal(t, reloads, backend.callCount("positions"), "no reload after a failed mutation")
}

func TestSetProductOutOfRangeIsRejectedByBackend(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)

	err := reg.SetProduct(ctx, 42, 7)
	require.Error(t, err)
	assert.Equal(t, 1, backend.callCount("create"), "range check is the backend's job")
	assert.Equal(t, api.KindValidation, api.KindOf(err))
}

func TestRemoveDeclinedDispatchesNothing(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	asked := ""
	reg := NewRegistry(backend, func(_ context.Context, prompt string) (bool, error) {
		asked = prompt
		return false, nil
	}, nil)
	require.NoError(t, reg.SetProduct(ctx, 42, 3))

	err := reg.Remove(ctx, 1, 3)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Contains(t, asked, "position 3")
	assert.Zero(t, backend.callCount("delete"))
	slot, _ := reg.Slot(3)
	assert.Equal(t, Occupied, slot.State)
}

func TestRemoveConfirmError(t *testing.T) {
	backend := newMemBackend()
	reg := NewRegistry(backend, func(context.Context, string) (bool, error) {
		return false, errors.New("stdin closed")
	}, nil)

	err := reg.Remove(context.Background(), 1, 3)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	assert.Zero(t, backend.callCount("delete"))
}

func TestRemovePositionClearsSlot(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)
	require.NoError(t, reg.SetProduct(ctx, 42, 3))

	require.NoError(t, reg.RemovePosition(ctx, 3))

	slot, _ := reg.Slot(3)
	assert.Equal(t, Empty, slot.State)
	assert.Nil(t, slot.Record)
	assert.Error(t, reg.RemovePosition(ctx, 3), "already empty")
}

func TestLoadIgnoresPositionsOutsideRange(t *testing.T) {
	backend := newMemBackend()
	backend.extra = map[int]*models.PositionSlot{9: {ID: 99, ProductID: 1}}
	reg := NewRegistry(backend, nil, nil)

	slots, err := reg.LoadPositions(context.Background())
	require.NoError(t, err)
	assert.Len(t, slots, MaxPosition)
	for _, s := range slots {
		assert.Equal(t, Empty, s.State)
	}
	_, ok := reg.Slot(9)
	assert.False(t, ok)
}

func TestListOrdersByPosition(t *testing.T) {
	ctx := context.Background()
	backend := newMemBackend()
	reg := NewRegistry(backend, nil, nil)
	require.NoError(t, reg.SetProduct(ctx, 5, 5))
	require.NoError(t, reg.SetProduct(ctx, 1, 1))
	require.NoError(t, reg.SetProduct(ctx, 3, 3))

	records, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []int{1, 3, 5}, []int{records[0].Position, records[1].Position, records[2].Position})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "empty", Empty.String())
	assert.Equal(t, "occupied", Occupied.String())
}
