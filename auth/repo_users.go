package auth

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun-backed users repository. It satisfies UserStore, which
// is the only surface the auth core depends on.
type Users interface {
	repository.Repository[*User]
	UserStore
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users     = (*users)(nil)
	_ UserStore = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return a.getOne(ctx, "id", id.String())
}

func (a *users) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return a.getOne(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

func (a *users) getOne(ctx context.Context, column, value string) (*User, error) {
	record := &User{}

	err := a.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to fetch user")
	}

	return record, nil
}

func (a *users) CreateUser(ctx context.Context, record *User) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, a.db, record)
}

func (a *users) UpdateUser(ctx context.Context, record *User) (*User, error) {
	now := time.Now()
	record.UpdatedAt = &now

	return a.Repository.UpdateTx(ctx, a.db, record, repository.UpdateByID(record.ID.String()))
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	record.Email = strings.ToLower(strings.TrimSpace(record.Email))

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
