package store

import (
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"
	. "src.tally.dev/pkg/store/storedefs"
)

const bucketEval = "eval"

func init() {
	initDB["initialize evaluation history table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketEval))
		return err
	}
}

// entryValue is the JSON value stored for an entry. The sequence number
// lives in the key.
type entryValue struct {
	Source string `json:"source"`
	Result string `json:"result"`
}

// NextSeq returns the sequence number that the next added entry will get.
func (s *dbStore) NextSeq() (int, error) {
	var seq uint64
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEval))
		seq = b.Sequence() + 1
		return nil
	})
	return int(seq), err
}

// Add appends a new entry to the evaluation history.
func (s *dbStore) Add(source, result string) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEval))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		v, err := json.Marshal(entryValue{source, result})
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), v)
	})
	return int(seq), err
}

// Del deletes the entry with the given sequence number.
func (s *dbStore) Del(seq int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEval))
		return b.Delete(marshalSeq(uint64(seq)))
	})
}

// Entry queries the entry with the given sequence number.
func (s *dbStore) Entry(seq int) (Entry, error) {
	var entry Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEval))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoSuchEntry
		}
		return unmarshalEntry(marshalSeq(uint64(seq)), v, &entry)
	})
	return entry, err
}

// Entries lists the entries with sequence numbers within [from, upto), in
// ascending order.
func (s *dbStore) Entries(from, upto int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketEval))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(from))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			var entry Entry
			if err := unmarshalEntry(k, v, &entry); err != nil {
				return err
			}
			entries = append(entries, entry)
		}
		return nil
	})
	return entries, err
}

func unmarshalEntry(k, v []byte, entry *Entry) error {
	var val entryValue
	if err := json.Unmarshal(v, &val); err != nil {
		return err
	}
	*entry = Entry{Seq: int(unmarshalSeq(k)), Source: val.Source, Result: val.Result}
	return nil
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
