package featured

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/lukman83/showcase/internal/logging"
	"github.com/lukman83/showcase/internal/models"
)

// Storefront positions are numbered MinPosition..MaxPosition.
const (
	MinPosition = 1
	MaxPosition = 6
)

// ErrCancelled is returned when the user declines a removal.
var ErrCancelled = errors.New("removal cancelled")

// Backend is the featured-products part of the API client.
type Backend interface {
	FeaturedProducts(ctx context.Context) ([]models.FeaturedProduct, error)
	FeaturedPositions(ctx context.Context) (map[int]*models.PositionSlot, error)
	CreateFeatured(ctx context.Context, in models.FeaturedInput) (*models.FeaturedProduct, error)
	UpdateFeatured(ctx context.Context, id int, in models.FeaturedUpdate) (*models.FeaturedProduct, error)
	DeleteFeatured(ctx context.Context, id int) error
}

// ConfirmFunc asks the user to approve a destructive action.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// State of a single position.
type State int

const (
	Empty State = iota
	Occupied
)

func (s State) String() string {
	if s == Occupied {
		return "occupied"
	}
	return "empty"
}

// Slot is the local view of one position.
type Slot struct {
	Position int
	State    State
	Record   *models.PositionSlot // nil when Empty
}

// Registry mirrors the backend's position map. It never edits its view
// optimistically: every successful mutation is followed by a reload, so a
// failed mutation leaves the view as it was.
type Registry struct {
	backend Backend
	confirm ConfirmFunc
	logger  *slog.Logger

	mu       sync.RWMutex
	slots    [MaxPosition]Slot
	loadedAt time.Time
}

// NewRegistry creates a Registry. A nil confirm approves every removal.
func NewRegistry(backend Backend, confirm ConfirmFunc, logger *slog.Logger) *Registry {
	if confirm == nil {
		confirm = func(context.Context, string) (bool, error) { return true, nil }
	}
	r := &Registry{
		backend: backend,
		confirm: confirm,
		logger:  logging.OrDiscard(logger),
	}
	r.slots = emptySlots()
	return r
}

func emptySlots() [MaxPosition]Slot {
	var slots [MaxPosition]Slot
	for i := range slots {
		slots[i] = Slot{Position: i + MinPosition, State: Empty}
	}
	return slots
}

// LoadPositions fetches the position map and replaces the local view.
func (r *Registry) LoadPositions(ctx context.Context) ([]Slot, error) {
	positions, err := r.backend.FeaturedPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}

	slots := emptySlots()
	for pos, rec := range positions {
		if pos < MinPosition || pos > MaxPosition {
			r.logger.Warn("ignoring position outside range", "position", pos)
			continue
		}
		if rec == nil {
			continue
		}
		rec := *rec
		slots[pos-MinPosition] = Slot{Position: pos, State: Occupied, Record: &rec}
	}

	r.mu.Lock()
	r.slots = slots
	r.loadedAt = time.Now()
	r.mu.Unlock()

	return slots[:], nil
}

// Positions returns a snapshot of the local view.
func (r *Registry) Positions() []Slot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Slot, len(r.slots))
	copy(out, r.slots[:])
	return out
}

// Slot returns the local view of one position.
func (r *Registry) Slot(position int) (Slot, bool) {
	if position < MinPosition || position > MaxPosition {
		return Slot{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.slots[position-MinPosition], true
}

// Loaded reports whether the view has been fetched at least once.
func (r *Registry) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.loadedAt.IsZero()
}

// SetProduct binds productID to position. An occupied position has its
// record updated; an empty one gets a new record. Range checks are left to
// the backend.
func (r *Registry) SetProduct(ctx context.Context, productID, position int) error {
	if !r.Loaded() {
		if _, err := r.LoadPositions(ctx); err != nil {
			return err
		}
	}

	slot, ok := r.Slot(position)
	if ok && slot.State == Occupied {
		pid := productID
		if _, err := r.backend.UpdateFeatured(ctx, slot.Record.ID, models.FeaturedUpdate{ProductID: &pid}); err != nil {
			return fmt.Errorf("update position %d: %w", position, err)
		}
		r.logger.Info("position updated", "position", position, "product_id", productID, "record_id", slot.Record.ID)
	} else {
		rec, err := r.backend.CreateFeatured(ctx, models.FeaturedInput{
			ProductID: productID,
			Position:  position,
			IsActive:  true,
		})
		if err != nil {
			return fmt.Errorf("assign position %d: %w", position, err)
		}
		r.logger.Info("position assigned", "position", position, "product_id", productID, "record_id", rec.ID)
	}

	_, err := r.LoadPositions(ctx)
	return err
}

// Remove deletes the record backing position after the user confirms.
func (r *Registry) Remove(ctx context.Context, recordID, position int) error {
	ok, err := r.confirm(ctx, fmt.Sprintf("Remove the featured product at position %d?", position))
	if err != nil {
		return fmt.Errorf("confirm removal: %w", err)
	}
	if !ok {
		return ErrCancelled
	}

	if err := r.backend.DeleteFeatured(ctx, recordID); err != nil {
		return fmt.Errorf("remove position %d: %w", position, err)
	}
	r.logger.Info("position cleared", "position", position, "record_id", recordID)

	_, err = r.LoadPositions(ctx)
	return err
}

// RemovePosition removes whatever occupies position, using the local view
// to find the record. Removing an empty position is an error.
func (r *Registry) RemovePosition(ctx context.Context, position int) error {
	if !r.Loaded() {
		if _, err := r.LoadPositions(ctx); err != nil {
			return err
		}
	}
	slot, ok := r.Slot(position)
	if !ok || slot.State != Occupied {
		return fmt.Errorf("position %d is empty", position)
	}
	return r.Remove(ctx, slot.Record.ID, position)
}

// List returns every featured record ordered by position.
func (r *Registry) List(ctx context.Context) ([]models.FeaturedProduct, error) {
	records, err := r.backend.FeaturedProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Position < records[j].Position
	})
	return records, nil
}
