// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-qr-keeper/models"
)

const shortLinksTable = "short_links"

var shortLinkColumns = []string{
	"id",
	"owner_id",
	"code",
	"is_custom_alias",
	"original_url",
	"title",
	"description",
	"tags",
	"click_count",
	"is_active",
	"expires_at",
	"created_at",
	"updated_at",
}

func (db *DB) buildInsertShortLinkQuery(link models.ShortLink) (string, []any, error) {
	tags, err := encodeTags(link.Tags)
	if err != nil {
		return "", nil, err
	}

	return db.builder.
		Insert(shortLinksTable).
		Columns(
			"owner_id",
			"code",
			"is_custom_alias",
			"original_url",
			"title",
			"description",
			"tags",
			"click_count",
			"is_active",
			"expires_at",
			"created_at",
			"updated_at",
		).
		Values(
			nullString(link.OwnerID),
			link.Code,
			link.IsCustomAlias,
			link.OriginalURL,
			link.Title,
			link.Description,
			tags,
			link.ClickCount,
			link.IsActive,
			nullTime(link.ExpiresAt),
			link.CreatedAt,
			link.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
}

func (db *DB) buildSelectByCodeQuery(code string) (string, []any, error) {
	return db.builder.
		Select(shortLinkColumns...).
		From(shortLinksTable).
		Where(sq.Eq{"code": code}).
		ToSql()
}

func (db *DB) buildSelectByIDAndOwnerQuery(id int64, ownerID string) (string, []any, error) {
	return db.builder.
		Select(shortLinkColumns...).
		From(shortLinksTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}

func (db *DB) buildIncrementClicksQuery(id int64) (string, []any, error) {
	return db.builder.
		Update(shortLinksTable).
		Set("click_count", sq.Expr("click_count + 1")).
		Where(sq.Eq{"id": id}).
		ToSql()
}

// buildUpdateQuery sets only the non-nil fields of update.
func (db *DB) buildUpdateQuery(update models.ShortLinkUpdate) (string, []any, error) {
	query := db.builder.
		Update(shortLinksTable).
		Set("updated_at", update.UpdatedAt)

	if update.IsActive != nil {
		query = query.Set("is_active", *update.IsActive)
	}
	if update.Title != nil {
		query = query.Set("title", *update.Title)
	}
	if update.Description != nil {
		query = query.Set("description", *update.Description)
	}
	if update.Tags != nil {
		tags, err := encodeTags(update.Tags)
		if err != nil {
			return "", nil, err
		}
		query = query.Set("tags", tags)
	}

	return query.
		Where(sq.Eq{"id": update.ID, "owner_id": update.OwnerID}).
		ToSql()
}

func (db *DB) buildDeleteQuery(id int64, ownerID string) (string, []any, error) {
	return db.builder.
		Delete(shortLinksTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}

func (db *DB) buildListByOwnerQuery(ownerID string, limit, offset int) (string, []any, error) {
	return db.builder.
		Select(shortLinkColumns...).
		From(shortLinksTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func (db *DB) buildCountByOwnerQuery(ownerID string) (string, []any, error) {
	return db.builder.
		Select("COUNT(*)").
		From(shortLinksTable).
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
}

func (db *DB) buildDeleteExpiredQuery(cutoff time.Time) (string, []any, error) {
	return db.builder.
		Delete(shortLinksTable).
		Where(sq.And{
			sq.NotEq{"expires_at": nil},
			sq.Lt{"expires_at": cutoff},
		}).
		ToSql()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShortLink(row rowScanner) (models.ShortLink, error) {
	var (
		link      models.ShortLink
		ownerID   sql.NullString
		tags      sql.NullString
		expiresAt sql.NullTime
	)

	err := row.Scan(
		&link.ID,
		&ownerID,
		&link.Code,
		&link.IsCustomAlias,
		&link.OriginalURL,
		&link.Title,
		&link.Description,
		&tags,
		&link.ClickCount,
		&link.IsActive,
		&expiresAt,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return models.ShortLink{}, err
	}

	link.OwnerID = ownerID.String
	if expiresAt.Valid {
		t := expiresAt.Time
		link.ExpiresAt = &t
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &link.Tags); err != nil {
			return models.ShortLink{}, fmt.Errorf("decode tags: %w", err)
		}
	}

	return link, nil
}

func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}

	encoded, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("%w: encode tags: %w", ErrBuildingSQLQuery, err)
	}
	return string(encoded), nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
