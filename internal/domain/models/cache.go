package models

// CacheStats is a snapshot of the backing cache store. Connected is false
// whenever the store is unreachable; the remaining fields are then zero.
type CacheStats struct {
	Connected bool   `json:"connected"`
	Keys      int64  `json:"keys,omitempty"`
	Hits      int64  `json:"hits,omitempty"`
	Misses    int64  `json:"misses,omitempty"`
	Error     string `json:"error,omitempty"`
}
