// Package seqdb persists named, packed DNA sequences in a local
// LevelDB. Records are XDR-encoded and carry a checksum over the packed
// payload, so silent on-disk corruption surfaces as ErrCorrupt instead
// of a bad sequence.
package seqdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/minio/sha256-simd"
	xdr "github.com/nullstyle/go-xdr/xdr3"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"go.uber.org/zap"

	"github.com/mustafa-guler/packed-dna/dna"
	"github.com/mustafa-guler/packed-dna/internal/logging"
)

var (
	// ErrNotFound is returned when a sequence name is not in the database.
	ErrNotFound = leveldb.ErrNotFound

	// ErrCorrupt is wrapped by errors returned for records that fail
	// decoding or checksum verification.
	ErrCorrupt = errors.New("sequence record corrupted")
)

// record is the stored form of one sequence. Data is the sequence's
// binary encoding, Checksum covers Data, and Length mirrors the base
// count so listings never decode payloads.
type record struct {
	Name     string
	Length   uint32
	Data     []byte
	Checksum [32]byte
}

// Entry names a stored sequence and its length in bases.
type Entry struct {
	Name   string
	Length int
}

// DB is a LevelDB-backed store of packed sequences with an LRU cache in
// front of reads. It is safe for concurrent use: LevelDB serializes
// writes and the cache is internally synchronized.
type DB struct {
	ldb   *leveldb.DB
	cache *lru.Cache
}

// Open opens the database at path, creating it when missing. cacheSize
// bounds how many decoded sequences are kept in memory for reads.
func Open(path string, cacheSize int) (*DB, error) {
	ldb, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open sequence db at %s: %w", path, err)
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		_ = ldb.Close()
		return nil, fmt.Errorf("failed to create sequence cache: %w", err)
	}

	return &DB{ldb: ldb, cache: cache}, nil
}

// Close releases the database. The DB must not be used afterwards.
func (db *DB) Close() error {
	db.cache.Purge()
	return db.ldb.Close()
}

// Put stores seq under name, replacing any existing sequence with that
// name. The write is synced to disk before Put returns.
func (db *DB) Put(ctx context.Context, name string, seq *dna.PackedDna) error {
	if name == "" {
		return errors.New("sequence name must not be empty")
	}

	data, err := seq.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	rec := record{
		Name:     name,
		Length:   uint32(seq.Len()),
		Data:     data,
		Checksum: sha256.Sum256(data),
	}

	var buf bytes.Buffer
	if _, err := xdr.Marshal(&buf, rec); err != nil {
		return fmt.Errorf("failed to serialize %s: %w", name, err)
	}
	if err := db.ldb.Put([]byte(name), buf.Bytes(), &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to store %s: %w", name, err)
	}
	db.cache.Add(name, seq.Clone())

	logging.FromContext(ctx).Debug("stored sequence",
		zap.String("name", name),
		zap.Int("bases", seq.Len()),
	)
	return nil
}

// Get returns the sequence stored under name. The returned sequence is
// the caller's own copy and is safe to mutate. Unknown names report
// ErrNotFound; records that fail validation report ErrCorrupt, both via
// errors.Is.
func (db *DB) Get(ctx context.Context, name string) (*dna.PackedDna, error) {
	if cached, ok := db.cache.Get(name); ok {
		logging.FromContext(ctx).Debug("sequence cache hit", zap.String("name", name))
		return cached.(*dna.PackedDna).Clone(), nil
	}

	data, err := db.ldb.Get([]byte(name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	rec := record{}
	if _, err := xdr.Unmarshal(bytes.NewReader(data), &rec); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	if sum := sha256.Sum256(rec.Data); sum != rec.Checksum {
		return nil, fmt.Errorf("%w: %s: checksum mismatch", ErrCorrupt, name)
	}

	seq := dna.NewPackedDna()
	if err := seq.UnmarshalBinary(rec.Data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, name, err)
	}
	if seq.Len() != int(rec.Length) {
		return nil, fmt.Errorf("%w: %s: length %d does not match record %d", ErrCorrupt, name, seq.Len(), rec.Length)
	}

	db.cache.Add(name, seq)
	logging.FromContext(ctx).Debug("loaded sequence",
		zap.String("name", name),
		zap.Int("bases", seq.Len()),
	)
	return seq.Clone(), nil
}

// Delete removes the sequence stored under name, reporting whether it
// was present. Deleting an absent name is not an error.
func (db *DB) Delete(ctx context.Context, name string) (bool, error) {
	had, err := db.ldb.Has([]byte(name), nil)
	if err != nil {
		return false, fmt.Errorf("failed to check for %s: %w", name, err)
	}
	if err := db.ldb.Delete([]byte(name), &opt.WriteOptions{Sync: true}); err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", name, err)
	}
	db.cache.Remove(name)

	if had {
		logging.FromContext(ctx).Debug("deleted sequence", zap.String("name", name))
	}
	return had, nil
}

// List returns the name and base count of every stored sequence.
// LevelDB iterates in key order, so entries come back sorted by name.
func (db *DB) List(ctx context.Context) ([]Entry, error) {
	iter := db.ldb.NewIterator(nil, nil)
	defer iter.Release()

	entries := []Entry{}
	for iter.Next() {
		rec := record{}
		if _, err := xdr.Unmarshal(bytes.NewReader(iter.Value()), &rec); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, string(iter.Key()), err)
		}
		entries = append(entries, Entry{Name: string(iter.Key()), Length: int(rec.Length)})
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to scan sequence db: %w", err)
	}

	logging.FromContext(ctx).Debug("listed sequences", zap.Int("count", len(entries)))
	return entries, nil
}
