package storage

// ArchiveInterface persists analysis results as named JSON documents. The
// archive is an optimization outside the pipeline contract: results are
// identical whether or not one is configured.
type ArchiveInterface interface {
	Store(filename string, data []byte) error
	Retrieve(filename string) ([]byte, error)
	List(prefix string) ([]string, error)
	Delete(filename string) error
}
