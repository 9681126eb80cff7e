package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"github.com/minimart/backend/internal/core/domain"
)

const mysqlErrDuplicateEntry = 1062

// MySQLAdapter is the ownership-domain store: users plus their cart rows.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) CreateUser(ctx context.Context, user domain.User) (int64, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, NOW())`,
		user.Username, user.Email, user.PasswordHash, user.Role,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDuplicateEntry {
			return 0, domain.ErrUserExists
		}
		return 0, storeErr("insert user", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("insert user id", err)
	}

	return id, nil
}

func (m *MySQLAdapter) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(m.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM users WHERE username = ?`, username))
}

func (m *MySQLAdapter) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(m.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, role, created_at
		FROM users WHERE id = ?`, id))
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("query user", err)
	}

	return &u, nil
}

func (m *MySQLAdapter) ListOwnershipRecords(ctx context.Context, userID int64) ([]domain.OwnershipRecord, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, user_id, product_id, quantity, created_at
		FROM cart_items WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, storeErr("query cart items", err)
	}
	defer rows.Close()

	var records []domain.OwnershipRecord
	for rows.Next() {
		var rec domain.OwnershipRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ProductRef, &rec.Quantity, &rec.CreatedAt); err != nil {
			return nil, storeErr("scan cart item", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate cart items", err)
	}

	return records, nil
}

func (m *MySQLAdapter) AddOwnershipRecord(ctx context.Context, rec domain.OwnershipRecord) (int64, error) {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at)
		VALUES (?, ?, ?, NOW())`,
		rec.UserID, rec.ProductRef, rec.Quantity,
	)
	if err != nil {
		return 0, storeErr("insert cart item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, storeErr("insert cart item id", err)
	}

	return id, nil
}

func (m *MySQLAdapter) RemoveOwnershipRecord(ctx context.Context, userID, recordID int64) (bool, error) {
	result, err := m.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE id = ? AND user_id = ?`, recordID, userID)
	if err != nil {
		return false, storeErr("delete cart item", err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, errors.Join(domain.ErrStoreUnavailable, err))
}
