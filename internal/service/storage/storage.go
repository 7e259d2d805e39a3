package storage

// Storage defines interface for any object storage
type Storage[K comparable, V any] interface {
	Set(key K, value V)
	Get(key K) (V, bool)
	Delete(key K) bool
	ForEach(fn func(key K, value V) bool)
	Count() int
}

// Expirer is a storage that can drop outdated entries on demand
type Expirer interface {
	PurgeExpired() int
}
