package storage

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"cart/internal/kv"
	"cart/internal/model"
)

// The whole category list lives under one key; every save rewrites it.
const categoriesKey = "categories"

// Adapter persists full category snapshots to a key-value store.
// Both directions are best-effort: failures are logged, never returned.
// The in-memory list stays the source of truth for the session and the
// next successful save re-persists it.
type Adapter struct {
	kv  kv.Store
	log *zap.Logger
}

func NewAdapter(store kv.Store, log *zap.Logger) *Adapter {
	return &Adapter{kv: store, log: log}
}

// Load reads the persisted category list. A missing key, read failure or
// malformed payload all degrade to an empty list.
func (a *Adapter) Load(ctx context.Context) []model.Category {
	raw, ok, err := a.kv.Get(ctx, categoriesKey)
	if err != nil {
		a.log.Error("load categories", zap.Error(err))
		return []model.Category{}
	}
	if !ok {
		return []model.Category{}
	}
	var cats []model.Category
	if err := json.Unmarshal([]byte(raw), &cats); err != nil {
		a.log.Error("decode categories", zap.Error(err))
		return []model.Category{}
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats
}

// Save writes the full list. Write failures are logged and dropped.
func (a *Adapter) Save(ctx context.Context, cats []model.Category) {
	b, err := json.Marshal(cats)
	if err != nil {
		a.log.Error("encode categories", zap.Error(err))
		return
	}
	if err := a.kv.Set(ctx, categoriesKey, string(b)); err != nil {
		a.log.Error("save categories", zap.Error(err))
	}
}
