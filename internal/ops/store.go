package ops

// Medium defines the key-value persistence interface the task store writes
// its blob to. The concrete implementation is storage.Storage, but this
// interface allows in-memory or failing media in tests.
type Medium interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}
