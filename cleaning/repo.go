package cleaning

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Cleanings is the persistence surface the rest of the application uses
// for cleaning jobs. Lookups return (nil, nil) when no record matches.
type Cleanings interface {
	List(ctx context.Context) ([]*Cleaning, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Cleaning, error)
	Create(ctx context.Context, record *Cleaning) (*Cleaning, error)
	Update(ctx context.Context, record *Cleaning) (*Cleaning, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cleanings struct {
	repository.Repository[*Cleaning]
	db *bun.DB
}

var _ Cleanings = (*cleanings)(nil)

func NewRepository(db *bun.DB) Cleanings {
	repo := repository.NewRepository[*Cleaning](db, repository.ModelHandlers[*Cleaning]{
		NewRecord: func() *Cleaning { return &Cleaning{} },
		GetID: func(c *Cleaning) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID: func(c *Cleaning, id uuid.UUID) {
			if c != nil {
				c.ID = id
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
	})

	return &cleanings{
		Repository: repo,
		db:         db,
	}
}

// List returns every cleaning job, newest first.
func (r *cleanings) List(ctx context.Context) ([]*Cleaning, error) {
	var records []*Cleaning

	err := r.db.NewSelect().
		Model(&records).
		Order("created_at DESC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list cleanings")
	}

	return records, nil
}

// GetByID fetches one job. A miss is (nil, nil), not an error.
func (r *cleanings) GetByID(ctx context.Context, id uuid.UUID) (*Cleaning, error) {
	record := &Cleaning{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id.String()).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch cleaning")
	}

	return record, nil
}

func (r *cleanings) Create(ctx context.Context, record *Cleaning) (*Cleaning, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.Type == "" {
		record.Type = DefaultType
	}

	return r.Repository.CreateTx(ctx, r.db, record)
}

func (r *cleanings) Update(ctx context.Context, record *Cleaning) (*Cleaning, error) {
	now := time.Now()
	record.UpdatedAt = &now

	return r.Repository.UpdateTx(ctx, r.db, record, repository.UpdateByID(record.ID.String()))
}

func (r *cleanings) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.NewDelete().
		Model((*Cleaning)(nil)).
		Where("id = ?", id.String()).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete cleaning")
	}

	return nil
}
