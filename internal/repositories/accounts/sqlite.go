package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/starly/internal/common"
	"github.com/dmitrijs2005/starly/internal/dbx"
	"github.com/dmitrijs2005/starly/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, a *models.Account) (*models.Account, error) {
	query := `INSERT INTO Account (name, login, password) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, a.Name, a.Login, a.Password)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.NewRepositoryError("create account",
				fmt.Errorf("%w: login %q is taken", common.ErrAlreadyExists, a.Login))
		}
		return nil, common.NewRepositoryError("create account", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, common.NewRepositoryError("get account id", err)
	}

	created := *a
	created.ID = id
	return &created, nil
}

func (r *SQLiteRepository) GetByLogin(ctx context.Context, login string) (*models.Account, error) {
	query := `SELECT id, name, login, password FROM Account WHERE login = ?`

	a := &models.Account{}
	err := r.db.QueryRowContext(ctx, query, login).Scan(&a.ID, &a.Name, &a.Login, &a.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewRepositoryError("get account", err)
	}
	return a, nil
}
