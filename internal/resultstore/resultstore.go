// Package resultstore persists analysis runs and their results.
package resultstore

import (
	"sync"

	"github.com/flowspan/flowspan/internal/contract"
)

// ResultStoreManager manages the ResultStore instance.
type ResultStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	result       contract.ResultStore
}

var _ contract.StoreManager = &ResultStoreManager{} // Compile-time check

// GetResultStore returns the configured ResultStore.
func (mgr *ResultStoreManager) GetResultStore() contract.ResultStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.result
}
