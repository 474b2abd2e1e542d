package storage

import (
	"context"
	stderrors "errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dgraph-io/badger/v3"

	"github.com/matzehuels/hypergraph/pkg/errors"
)

// docPrefix namespaces document keys inside the badger keyspace.
var docPrefix = []byte("doc/")

// BadgerStore keeps documents in an embedded badger database. Raw bytes
// are stored verbatim, like [FileStore], but writes are transactional and
// a single directory holds the whole library.
type BadgerStore struct {
	db *badger.DB
}

// BadgerConfig configures a [BadgerStore].
type BadgerConfig struct {
	// Dir is the database directory. Ignored when InMemory is set.
	Dir      string
	InMemory bool
	Logger   *log.Logger
}

// NewBadgerStore opens (or creates) the database.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Dir)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	opts = opts.WithLogger(badgerLogger{logger.WithPrefix("badger")})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open badger store %s", cfg.Dir)
	}
	return &BadgerStore{db: db}, nil
}

func docKey(name string) []byte {
	return append(append([]byte{}, docPrefix...), name...)
}

// List returns document names in key order, which is ascending.
func (s *BadgerStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = docPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			key := it.Item().Key()
			names = append(names, string(key[len(docPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list documents")
	}
	return names, nil
}

func (s *BadgerStore) Get(ctx context.Context, name string) ([]byte, error) {
	if err := errors.ValidateDocumentName(name); err != nil {
		return nil, err
	}
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(name))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return nil, errors.New(errors.ErrCodeNotFound, "document %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "get document %q", name)
	}
	return raw, nil
}

func (s *BadgerStore) Put(ctx context.Context, name string, raw []byte) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(name), raw)
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "put document %q", name)
	}
	return nil
}

func (s *BadgerStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateDocumentName(name); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(docKey(name))
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete document %q", name)
	}
	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error { return s.db.Close() }

// badgerLogger routes badger's log output through charmbracelet/log.
type badgerLogger struct{ l *log.Logger }

func (b badgerLogger) Errorf(format string, args ...any)   { b.l.Errorf(format, args...) }
func (b badgerLogger) Warningf(format string, args ...any) { b.l.Warnf(format, args...) }
func (b badgerLogger) Infof(format string, args ...any)    { b.l.Debugf(format, args...) }
func (b badgerLogger) Debugf(format string, args ...any)   { b.l.Debugf(format, args...) }

var _ Store = (*BadgerStore)(nil)
