package weavetest

import (
	"io/ioutil"
	"os"
	"testing"

	weave "github.com/iov-one/nftsale"
	"github.com/iov-one/nftsale/store/iavl"
)

// CommitKVStore returns a store backed by leveldb in a temporary
// directory. Use it instead of store.MemStore when the test must run
// against the production storage engine.
func CommitKVStore(t testing.TB) (db weave.CommitKVStore, cleanup func()) {
	t.Helper()

	dbpath, err := ioutil.TempDir("", "saletest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	cs, err := iavl.NewCommitStore(dbpath, "db")
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open commit store: %s", err)
	}
	return cs, func() {
		cs.Close()
		os.RemoveAll(dbpath)
	}
}
