// Package iocache provides the persistence layer: a keyed result cache
// and a run history store, each backed by SQLite, MySQL, or PostgreSQL.
package iocache

import (
	"sync"

	"github.com/huangsam/polarize/internal/contract"
)

// StoreManagerImpl manages the result cache and run history stores.
type StoreManagerImpl struct {
	sync.RWMutex // Protects the store pointers during initialization
	results      contract.CacheStore
	runs         contract.RunStore
}

var _ contract.StoreManager = &StoreManagerImpl{} // Compile-time check

// GetResultStore returns the result CacheStore.
func (mgr *StoreManagerImpl) GetResultStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.results
}

// GetRunStore returns the run history RunStore.
func (mgr *StoreManagerImpl) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
