// Package store provides persistent history of the commands the shell has
// run or foregrounded, backed by a bolt database.
package store

import (
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"
)

// ErrNoCmd is returned when a queried history entry does not exist.
var ErrNoCmd = errors.New("no command with that sequence number")

const bucketCmd = "cmd"

// Store is the set of history operations the shell uses.
type Store interface {
	// NextCmdSeq returns the sequence number the next added command will get.
	NextCmdSeq() (int, error)
	// AddCmd adds a command to the history and returns its sequence number.
	AddCmd(text string) (int, error)
	// Cmd returns the command with the given sequence number.
	Cmd(seq int) (string, error)
	// CmdsWithSeq returns all commands with sequence numbers in [from, upto).
	CmdsWithSeq(from, upto int) ([]Cmd, error)
	Close() error
}

// Cmd is an entry in the command history.
type Cmd struct {
	Text string
	Seq  int
}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the history database at path, creating it if needed.
func NewStore(path string) (Store, error) {
	db, err := bolt.Open(path, 0o644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

func (s *dbStore) Close() error {
	return s.db.Close()
}
