package tree

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/nikbrunner/nt/internal/model"
)

// Repository is the storage boundary the engine reads snapshots from and
// writes batches to.
type Repository interface {
	LoadAll(ctx context.Context) ([]model.Item, error)
	BatchUpsert(ctx context.Context, items []model.Item) error
	DeleteOne(ctx context.Context, id string) error
}

// Engine applies tree operations against a Repository. Every operation
// loads a fresh snapshot, computes the next state in memory and persists it
// with a single batch call.
type Engine struct {
	repo   Repository
	logger *slog.Logger
	policy OrphanPolicy
}

// EngineParams holds parameters for creating a new Engine.
type EngineParams struct {
	Repository   Repository
	Logger       *slog.Logger // optional, discards if nil
	OrphanPolicy OrphanPolicy
}

// NewEngine creates a new Engine with the given parameters.
func NewEngine(params EngineParams) *Engine {
	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		repo:   params.Repository,
		logger: logger,
		policy: params.OrphanPolicy,
	}
}

// OrphanPolicy returns the policy used when building the forest.
func (e *Engine) OrphanPolicy() OrphanPolicy {
	return e.policy
}

// Items loads the collection sorted by order.
func (e *Engine) Items(ctx context.Context) ([]model.Item, error) {
	items, err := e.repo.LoadAll(ctx)
	if err != nil {
		e.logger.Error("load items failed", "err", err)
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return model.SortByOrder(items), nil
}

// Tree loads the collection and builds the forest.
func (e *Engine) Tree(ctx context.Context) ([]*Node, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(items, e.policy), nil
}

// Create persists a new item.
func (e *Engine) Create(ctx context.Context, params model.NewItemParams) (model.Item, error) {
	item := model.NewItem(params)
	if err := e.write(ctx, "create", []model.Item{item}); err != nil {
		return model.Item{}, err
	}
	e.logger.Debug("item created", "id", item.ID, "title", item.Title)
	return item, nil
}

// Move applies a move request and writes every item whose parent or order changed.
// It returns the written items.
func (e *Engine) Move(ctx context.Context, req MoveRequest) ([]model.Item, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}

	next, err := Move(items, req)
	if err != nil {
		e.logger.Warn("move rejected", "ids", req.DraggedIDs, "parent", req.NewParentID, "err", err)
		return nil, err
	}

	changed := Changed(items, next)
	if len(changed) == 0 {
		return nil, nil
	}
	if err := e.write(ctx, "move", changed); err != nil {
		return nil, err
	}
	e.logger.Debug("items moved", "ids", req.DraggedIDs, "parent", req.NewParentID, "index", req.TargetIndex, "written", len(changed))
	return changed, nil
}

// Rename updates one item's title.
func (e *Engine) Rename(ctx context.Context, id, title string) (model.Item, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return model.Item{}, err
	}

	item, err := Rename(items, id, title)
	if err != nil {
		e.logger.Warn("rename skipped", "id", id, "err", err)
		return model.Item{}, err
	}
	if err := e.write(ctx, "rename", []model.Item{item}); err != nil {
		return model.Item{}, err
	}
	return item, nil
}

// Delete removes each id independently. Failures are joined into the
// returned error and never stop the remaining deletions.
// It returns the ids that were removed.
func (e *Engine) Delete(ctx context.Context, ids []string) ([]string, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return nil, err
	}

	toRemove, resolveErr := Delete(items, ids)
	errs := []error{resolveErr}
	if resolveErr != nil {
		e.logger.Warn("delete skipped missing items", "err", resolveErr)
	}

	var removed []string
	for _, id := range toRemove {
		if err := e.repo.DeleteOne(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				errs = append(errs, err)
				continue
			}
			e.logger.Error("delete failed", "id", id, "err", err)
			errs = append(errs, &PersistenceError{Op: "delete " + id, Err: err})
			continue
		}
		removed = append(removed, id)
	}
	return removed, errors.Join(errs...)
}

// Normalize restores dense ordering in every sibling group.
// It returns the number of items written.
func (e *Engine) Normalize(ctx context.Context) (int, error) {
	items, err := e.Items(ctx)
	if err != nil {
		return 0, err
	}
	changed := Changed(items, Normalize(items))
	if len(changed) == 0 {
		return 0, nil
	}
	if err := e.write(ctx, "normalize", changed); err != nil {
		return 0, err
	}
	return len(changed), nil
}

// Import appends a parsed subtree collection after the existing root items.
// Imported items must carry fresh IDs.
func (e *Engine) Import(ctx context.Context, imported []model.Item) (int, error) {
	if len(imported) == 0 {
		return 0, nil
	}
	items, err := e.Items(ctx)
	if err != nil {
		return 0, err
	}

	offset := 0
	for _, it := range items {
		if it.IsRoot() {
			offset = max(offset, it.Order)
		}
	}

	batch := make([]model.Item, len(imported))
	copy(batch, imported)
	for i := range batch {
		if batch[i].IsRoot() {
			batch[i].Order += offset
		}
	}
	if err := e.write(ctx, "import", batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}

func (e *Engine) write(ctx context.Context, op string, items []model.Item) error {
	if err := e.repo.BatchUpsert(ctx, items); err != nil {
		e.logger.Error("batch write failed", "op", op, "count", len(items), "err", err)
		return &PersistenceError{Op: op, Err: err}
	}
	return nil
}
