package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// MustTempStore returns a Store backed by a temporary file, and a cleanup
// function to call when the Store is no longer used.
func MustTempStore() (Store, func()) {
	dir, err := os.MkdirTemp("", "marlin.test")
	if err != nil {
		panic(fmt.Sprintf("create temp dir: %v", err))
	}
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		os.RemoveAll(dir)
		panic(fmt.Sprintf("create store: %v", err))
	}
	return st, func() {
		st.Close()
		os.RemoveAll(dir)
	}
}
