package listings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gmubooktrade/booktrade/internal/client/models"
	"github.com/gmubooktrade/booktrade/internal/common"
	"github.com/gmubooktrade/booktrade/internal/dbx"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const insertQuery = `
	INSERT INTO listings (
		id, book_title, book_author, book_isbn, condition, type, price,
		rent_duration_value, rent_duration_unit, images, description,
		user_display_name, status, fetched_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		book_title = excluded.book_title,
		book_author = excluded.book_author,
		book_isbn = excluded.book_isbn,
		condition = excluded.condition,
		type = excluded.type,
		price = excluded.price,
		rent_duration_value = excluded.rent_duration_value,
		rent_duration_unit = excluded.rent_duration_unit,
		images = excluded.images,
		description = excluded.description,
		user_display_name = excluded.user_display_name,
		status = excluded.status,
		fetched_at = excluded.fetched_at
`

func insertOne(ctx context.Context, tx dbx.DBTX, item models.Listing, now time.Time) error {
	images, err := json.Marshal(item.Images)
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}
	_, err = tx.ExecContext(ctx, insertQuery,
		item.ID, item.BookTitle, item.BookAuthor, item.BookISBN,
		string(item.Condition), string(item.Type), item.Price,
		item.RentDurationValue, item.RentDurationUnit, string(images),
		item.Description, item.UserDisplayName, string(item.Status),
		now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to store listing %s: %w", item.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, items []models.Listing) error {
	now := time.Now()
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM listings`); err != nil {
			return fmt.Errorf("failed to clear listing cache: %w", err)
		}
		for _, item := range items {
			if err := insertOne(ctx, tx, item, now); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Upsert(ctx context.Context, item models.Listing) error {
	return insertOne(ctx, r.db, item, time.Now())
}

const selectColumns = `
	SELECT id, book_title, book_author, book_isbn, condition, type, price,
	       rent_duration_value, rent_duration_unit, images, description,
	       user_display_name, status
	FROM listings
`

func scanListing(scan func(dest ...any) error) (models.Listing, error) {
	var (
		item    models.Listing
		isbn    sql.NullString
		rentVal sql.NullInt64
		rentUn  sql.NullString
		images  sql.NullString
		descr   sql.NullString
		seller  sql.NullString
		status  sql.NullString
	)
	err := scan(
		&item.ID, &item.BookTitle, &item.BookAuthor, &isbn,
		&item.Condition, &item.Type, &item.Price,
		&rentVal, &rentUn, &images, &descr, &seller, &status,
	)
	if err != nil {
		return item, err
	}
	item.BookISBN = isbn.String
	item.RentDurationValue = int(rentVal.Int64)
	item.RentDurationUnit = rentUn.String
	item.Description = descr.String
	item.UserDisplayName = seller.String
	item.Status = models.ListingStatus(status.String)
	if images.Valid && images.String != "" {
		if err := json.Unmarshal([]byte(images.String), &item.Images); err != nil {
			return item, fmt.Errorf("decoding images for %s: %w", item.ID, err)
		}
	}
	return item, nil
}

func (r *SQLiteRepository) List(ctx context.Context, status models.ListingStatus) ([]models.Listing, error) {
	query := selectColumns
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY book_title`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached listings: %w", err)
	}
	defer rows.Close()

	result := make([]models.Listing, 0)
	for rows.Next() {
		item, err := scanListing(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing row: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listing rows: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Listing, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	item, err := scanListing(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached listing %s: %w", id, err)
	}
	return &item, nil
}
