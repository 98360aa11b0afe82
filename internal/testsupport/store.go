package testsupport

import (
	"testing"

	"quizprep/internal/catalog"
	"quizprep/internal/config"
)

// MustOpenCatalog opens the configured catalog database and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
