package ledger

import (
	"testing"

	"github.com/finchley/coppermint/internal/storage"
	"github.com/finchley/coppermint/internal/testutil"
)

// newTestEngine builds an engine on a migrated temp database.
func newTestEngine(t *testing.T) (*Engine, *storage.SQLiteStorage) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	return New(store), store
}
