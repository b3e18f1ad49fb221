package memcache_fx

import (
	"go.uber.org/fx"
	mem "sojourn/pkg/memcache"
)

var Module = fx.Provide(provideTTLStore)

func provideTTLStore() mem.TTLStore {
	return mem.NewTTLCache()
}
