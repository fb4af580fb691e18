package store

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"gemba.tools/internal/obs"
)

// Adapter reads and writes JSON documents through a KV backend. It never
// returns errors: reads fall back to the caller's default and corrupt
// entries are cleared, writes report success as a bool. Failures are logged
// as a side channel only.
type Adapter struct {
	kv  KV
	log *zap.Logger
}

// NewAdapter wraps the given backend. A nil logger falls back to the shared one.
func NewAdapter(kv KV, log *zap.Logger) *Adapter {
	if log == nil {
		log = obs.Logger()
	}
	return &Adapter{kv: kv, log: log}
}

// Get decodes the stored document for key into out. Returns false on a
// missing key, leaving out (the caller's default) untouched. A payload that
// fails to decode is deleted so the next read starts clean.
func (a *Adapter) Get(key string, out any) bool {
	raw, err := a.kv.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.log.Warn("store read failed", zap.String("key", key), zap.Error(err))
		}
		obs.StoreReads.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		a.log.Warn("store entry corrupt, clearing", zap.String("key", key), zap.Error(err))
		obs.StoreReads.WithLabelValues("corrupt").Inc()
		if delErr := a.kv.Delete(key); delErr != nil {
			a.log.Warn("store clear failed", zap.String("key", key), zap.Error(delErr))
		}
		return false
	}
	obs.StoreReads.WithLabelValues("hit").Inc()
	return true
}

// Set serializes v and writes it under key. Returns false on failure.
func (a *Adapter) Set(key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		a.log.Error("store marshal failed", zap.String("key", key), zap.Error(err))
		obs.StoreWrites.WithLabelValues("error").Inc()
		return false
	}
	if err := a.kv.Write(key, raw); err != nil {
		a.log.Error("store write failed", zap.String("key", key), zap.Error(err))
		obs.StoreWrites.WithLabelValues("error").Inc()
		return false
	}
	obs.StoreWrites.WithLabelValues("ok").Inc()
	return true
}

// Remove deletes the entry for key. Missing keys count as success.
func (a *Adapter) Remove(key string) bool {
	if err := a.kv.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		a.log.Warn("store delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}
