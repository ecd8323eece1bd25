package journal

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/0xmhha/iceland/pkg/logger"
)

// Bucket and key names.
var (
	bucketJournal = []byte("journal")
	keyPending    = []byte("pending")
)

// journal implements the Journal interface using BoltDB.
type journal struct {
	db     *bolt.DB
	logger logger.Logger
	now    func() time.Time
}

// New opens the journal, taking the exclusive state lock.
//
// Returns ErrLocked if the lock is not acquired within cfg.Timeout.
func New(cfg Config, log logger.Logger) (Journal, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bolt.Open(cfg.Path, 0600, &bolt.Options{
		Timeout: cfg.Timeout,
	})
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		if _, createErr := tx.CreateBucketIfNotExists(bucketJournal); createErr != nil {
			return fmt.Errorf("failed to create journal bucket: %w", createErr)
		}
		return nil
	}); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("failed to close state database after initialization error",
				"error", closeErr)
		}
		return nil, err
	}

	log.Debug("state lock acquired", "db_path", cfg.Path)

	return &journal{
		db:     db,
		logger: log,
		now:    cfg.Now,
	}, nil
}

// Begin implements Journal.Begin.
func (j *journal) Begin(op Op) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJournal)
		if b.Get(keyPending) != nil {
			return ErrPending
		}

		now := j.now()
		op.Step = StepBegun
		op.Started = now
		op.Updated = now

		if err := put(b, &op); err != nil {
			return err
		}

		j.logger.Debug("operation begun", "kind", op.Kind, "from", op.From, "to", op.To)
		return nil
	})
}

// Advance implements Journal.Advance.
func (j *journal) Advance(step Step) error {
	return j.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJournal)
		op, err := get(b)
		if err != nil {
			return err
		}
		if op == nil {
			return ErrNoPending
		}

		op.Step = step
		op.Updated = j.now()
		if err := put(b, op); err != nil {
			return err
		}

		j.logger.Debug("operation advanced", "kind", op.Kind, "step", step)
		return nil
	})
}

// Pending implements Journal.Pending.
func (j *journal) Pending() (*Op, error) {
	var op *Op
	err := j.db.View(func(tx *bolt.Tx) error {
		var getErr error
		op, getErr = get(tx.Bucket(bucketJournal))
		return getErr
	})
	if err != nil {
		return nil, err
	}
	return op, nil
}

// Complete implements Journal.Complete.
func (j *journal) Complete() error {
	return j.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bucketJournal).Delete(keyPending); err != nil {
			return fmt.Errorf("failed to clear journal: %w", err)
		}
		return nil
	})
}

// Close implements Journal.Close.
func (j *journal) Close() error {
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("failed to close state database: %w", err)
	}

	j.logger.Debug("state lock released")
	return nil
}

func get(b *bolt.Bucket) (*Op, error) {
	data := b.Get(keyPending)
	if data == nil {
		return nil, nil
	}

	var op Op
	if err := json.Unmarshal(data, &op); err != nil {
		return nil, fmt.Errorf("failed to unmarshal journal entry: %w", err)
	}
	return &op, nil
}

func put(b *bolt.Bucket, op *Op) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	if err := b.Put(keyPending, data); err != nil {
		return fmt.Errorf("failed to store journal entry: %w", err)
	}
	return nil
}
