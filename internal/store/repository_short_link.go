package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/models"
)

type shortLinkRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewShortLinkRepository returns a SQL-backed [ShortLinkStore].
func NewShortLinkRepository(db *DB, log *logger.Logger) ShortLinkStore {
	return &shortLinkRepository{db: db, logger: log}
}

func (r *shortLinkRepository) InsertUnique(ctx context.Context, link models.ShortLink) (models.ShortLink, error) {
	query, args, err := r.db.buildInsertShortLinkQuery(link)
	if err != nil {
		r.logger.Err(err).Str("func", "shortLinkRepository.InsertUnique").Msg("error building insert query")
		return models.ShortLink{}, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&link.ID); err != nil {
		err = r.db.wrapError("insert short link", err)
		if !errors.Is(err, ErrConflict) {
			r.logger.Err(err).Str("func", "shortLinkRepository.InsertUnique").Msg("error inserting short link")
		}
		return models.ShortLink{}, err
	}

	return link, nil
}

func (r *shortLinkRepository) FindByCode(ctx context.Context, code string) (models.ShortLink, error) {
	query, args, err := r.db.buildSelectByCodeQuery(code)
	if err != nil {
		return models.ShortLink{}, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	link, err := scanShortLink(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.ShortLink{}, r.db.wrapError("find short link by code", err)
	}

	return link, nil
}

func (r *shortLinkRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (models.ShortLink, error) {
	query, args, err := r.db.buildSelectByIDAndOwnerQuery(id, ownerID)
	if err != nil {
		return models.ShortLink{}, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	link, err := scanShortLink(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return models.ShortLink{}, r.db.wrapError("find short link by id", err)
	}

	return link, nil
}

func (r *shortLinkRepository) IncrementClicks(ctx context.Context, id int64) error {
	query, args, err := r.db.buildIncrementClicksQuery(id)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "increment clicks", query, args)
}

func (r *shortLinkRepository) Update(ctx context.Context, update models.ShortLinkUpdate) error {
	query, args, err := r.db.buildUpdateQuery(update)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	return r.execAffectingOne(ctx, "update short link", query, args)
}

func (r *shortLinkRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	query, args, err := r.db.buildDeleteQuery(id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	return r.execAffectingOne(ctx, "delete short link", query, args)
}

func (r *shortLinkRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]models.ShortLink, int64, error) {
	countQuery, countArgs, err := r.db.buildCountByOwnerQuery(ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, r.db.wrapError("count short links", err)
	}

	query, args, err := r.db.buildListByOwnerQuery(ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, r.db.wrapError("list short links", err)
	}
	defer rows.Close()

	links := make([]models.ShortLink, 0, limit)
	for rows.Next() {
		link, err := scanShortLink(rows)
		if err != nil {
			r.logger.Err(err).Str("func", "shortLinkRepository.ListByOwner").Msg("error scanning row")
			return nil, 0, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrScanningRows, err)
		}
		links = append(links, link)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, r.db.wrapError("iterate short links", err)
	}

	return links, total, nil
}

func (r *shortLinkRepository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := r.db.buildDeleteExpiredQuery(cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.db.wrapError("delete expired short links", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, r.db.wrapError("delete expired short links", err)
	}

	return deleted, nil
}

// execAffectingOne runs a statement that must touch exactly one row.
func (r *shortLinkRepository) execAffectingOne(ctx context.Context, op, query string, args []any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		err = r.db.wrapError(op, err)
		r.logger.Err(err).Str("func", "shortLinkRepository.execAffectingOne").Str("op", op).Msg("error executing statement")
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return r.db.wrapError(op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
