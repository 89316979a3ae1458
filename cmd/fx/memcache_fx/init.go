package memcache_fx

import (
	"go.uber.org/fx"
	mem "tabi/pkg/memcache"
)

// Module provides the process-local cache used for short-lived upstream data.
var Module = fx.Provide(provideCache)

func provideCache() *mem.Store {
	return mem.NewStore()
}
