// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store
// API do not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoSuchEntry is the error returned when an entry lookup finds nothing.
var ErrNoSuchEntry = errors.New("no such history entry")

// Store is an interface satisfied by the evaluation history storage.
type Store interface {
	// NextSeq returns the sequence number that the next added entry will
	// get.
	NextSeq() (int, error)
	// Add appends an entry with the given source and result and returns its
	// sequence number.
	Add(source, result string) (int, error)
	// Del deletes the entry with the given sequence number.
	Del(seq int) error
	// Entry returns the entry with the given sequence number.
	Entry(seq int) (Entry, error)
	// Entries lists entries with sequence numbers within [from, upto).
	Entries(from, upto int) ([]Entry, error)
}

// Entry is an entry in the evaluation history.
type Entry struct {
	Seq    int
	Source string
	Result string
}
