package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/transellia/admin-console/internal/admin/models"
	"github.com/transellia/admin-console/internal/admin/repositories/metadata"
	"github.com/transellia/admin-console/internal/cryptox"
	"github.com/transellia/admin-console/internal/dbx"
)

// StorageKey is the metadata key holding the sealed session snapshot.
const StorageKey = "transellia-user-storage"

const updatedAtKey = StorageKey + ".updated_at"

// Persisted is the durable subset of a Snapshot. IsLoading is deliberately absent.
type Persisted struct {
	User            *models.User `json:"user"`
	Token           *string      `json:"token"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

func (p *Persisted) complete() bool {
	return p.User != nil && p.Token != nil && *p.Token != ""
}

func toPersisted(s Snapshot) Persisted {
	p := Persisted{User: s.User, IsAuthenticated: s.IsAuthenticated}
	if s.Token != "" {
		t := s.Token
		p.Token = &t
	}
	return p
}

// Persister reads and writes the durable snapshot. Load returns (nil, nil)
// when nothing has been stored yet.
type Persister interface {
	Load(ctx context.Context) (*Persisted, error)
	Save(ctx context.Context, p Persisted) error
}

// SQLitePersister keeps the snapshot, sealed with key, under StorageKey in the
// local metadata table.
type SQLitePersister struct {
	db  *sql.DB
	key []byte
	now func() time.Time
}

func NewSQLitePersister(db *sql.DB, key []byte) *SQLitePersister {
	return &SQLitePersister{db: db, key: key, now: time.Now}
}

func (p *SQLitePersister) Load(ctx context.Context) (*Persisted, error) {
	raw, err := metadata.NewSQLiteRepository(p.db).Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var out Persisted
	if err := cryptox.OpenJSON(raw, p.key, &out); err != nil {
		return nil, fmt.Errorf("open session snapshot: %w", err)
	}
	return &out, nil
}

func (p *SQLitePersister) Save(ctx context.Context, state Persisted) error {
	sealed, err := cryptox.SealJSON(state, p.key)
	if err != nil {
		return fmt.Errorf("seal session snapshot: %w", err)
	}

	return dbx.WithTx(ctx, p.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, StorageKey, sealed); err != nil {
			return err
		}
		return repo.Set(ctx, updatedAtKey, []byte(p.now().UTC().Format(time.RFC3339)))
	})
}

// Wipe removes everything stored locally, the sealed snapshot and its
// bookkeeping keys alike.
func (p *SQLitePersister) Wipe(ctx context.Context) error {
	if err := metadata.NewSQLiteRepository(p.db).Clear(ctx); err != nil {
		return fmt.Errorf("wipe local data: %w", err)
	}
	return nil
}
