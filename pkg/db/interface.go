package db

// Store is the durable fingerprint store consulted between backup
// runs. Record sets are keyed by collect-directory identity and hold
// one digest per relative path.
type Store interface {
	Init() error
	LoadDigests(dir string) (map[string]string, error)
	SaveDigests(dir string, digests map[string]string) error
	ClearDigests(dir string) error
	ClearAll() error
	Close() error
}
