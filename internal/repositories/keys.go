package repositories

const (
	overridesKey    = "itinerary_overrides"
	packingStateKey = "pax_state"
	prepTimeKey     = "prep_time"
)

// StoreKeys prefixes every persisted key, so several trips can share one store.
type StoreKeys struct {
	Prefix string
}

func (k StoreKeys) key(name string) string {
	return k.Prefix + name
}
