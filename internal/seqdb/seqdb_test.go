package seqdb_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/sync/errgroup"

	"github.com/mustafa-guler/packed-dna/dna"
	"github.com/mustafa-guler/packed-dna/internal/seqdb"
)

func TestPutGetRoundTrip(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seq, err := dna.Parse("acgtACGTgg")
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "plasmid-1", seq))

	got, err := db.Get(ctx, "plasmid-1")
	require.NoError(t, err)
	require.True(t, got.Equal(seq))
	require.Equal(t, "ACGTACGTGG", got.String())
}

func TestGetNotFound(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get(context.Background(), "no-such-sequence")
	require.ErrorIs(t, err, seqdb.ErrNotFound)
}

func TestPutEmptyNameRejected(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	seq, err := dna.Parse("ACGT")
	require.NoError(t, err)
	require.Error(t, db.Put(context.Background(), "", seq))
}

func TestPutReplaces(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	first, err := dna.Parse("AAAA")
	require.NoError(t, err)
	second, err := dna.Parse("TTTTTT")
	require.NoError(t, err)

	require.NoError(t, db.Put(ctx, "probe", first))
	require.NoError(t, db.Put(ctx, "probe", second))

	got, err := db.Get(ctx, "probe")
	require.NoError(t, err)
	require.Equal(t, "TTTTTT", got.String())
}

// Get hands out copies: mutating a returned sequence must not change
// what later reads see.
func TestGetReturnsIndependentCopy(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seq, err := dna.Parse("ACGT")
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "probe", seq))

	first, err := db.Get(ctx, "probe")
	require.NoError(t, err)
	first.Append(dna.T)

	second, err := db.Get(ctx, "probe")
	require.NoError(t, err)
	require.Equal(t, "ACGT", second.String())
}

func TestDelete(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	seq, err := dna.Parse("GATTACA")
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "movie", seq))

	had, err := db.Delete(ctx, "movie")
	require.NoError(t, err)
	require.True(t, had)

	_, err = db.Get(ctx, "movie")
	require.ErrorIs(t, err, seqdb.ErrNotFound)

	had, err = db.Delete(ctx, "movie")
	require.NoError(t, err)
	require.False(t, had)
}

func TestList(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	for name, bases := range map[string]string{
		"gamma": "ACGTACGT",
		"alpha": "TT",
		"beta":  "GATTACA",
	} {
		seq, err := dna.Parse(bases)
		require.NoError(t, err)
		require.NoError(t, db.Put(ctx, name, seq))
	}

	entries, err := db.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []seqdb.Entry{
		{Name: "alpha", Length: 2},
		{Name: "beta", Length: 7},
		{Name: "gamma", Length: 8},
	}, entries)
}

func TestListEmpty(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 8)
	require.NoError(t, err)
	defer db.Close()

	entries, err := db.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, entries)
}

// Sequences survive a close and reopen, which also forces reads past
// the cache and back through checksum verification.
func TestReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := seqdb.Open(dir, 8)
	require.NoError(t, err)
	seq, err := dna.Parse("ACGTACGTACGTA")
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "persisted", seq))
	require.NoError(t, db.Close())

	db, err = seqdb.Open(dir, 8)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(ctx, "persisted")
	require.NoError(t, err)
	require.Equal(t, "ACGTACGTACGTA", got.String())
}

func TestGetCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	db, err := seqdb.Open(dir, 8)
	require.NoError(t, err)
	seq, err := dna.Parse("ACGT")
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "broken", seq))
	require.NoError(t, db.Close())

	// clobber the record underneath the store
	raw, err := leveldb.OpenFile(dir, nil)
	require.NoError(t, err)
	require.NoError(t, raw.Put([]byte("broken"), []byte("not an xdr record"), nil))
	require.NoError(t, raw.Close())

	db, err = seqdb.Open(dir, 8)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Get(ctx, "broken")
	require.ErrorIs(t, err, seqdb.ErrCorrupt)
}

func TestConcurrentPutGet(t *testing.T) {
	db, err := seqdb.Open(t.TempDir(), 4)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		name := fmt.Sprintf("seq-%02d", i)
		eg.Go(func() error {
			seq, err := dna.Parse("ACGTACGT")
			if err != nil {
				return err
			}
			if err := db.Put(ctx, name, seq); err != nil {
				return err
			}
			got, err := db.Get(ctx, name)
			if err != nil {
				return err
			}
			if !got.Equal(seq) {
				return fmt.Errorf("%s: round trip mismatch", name)
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	entries, err := db.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 16)
}
