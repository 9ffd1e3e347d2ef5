package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var registrationColumns = []string{
	"id", "full_name", "sex", "phone", "email", "destination",
	"city", "persons", "travel_time", "message", "created_at",
}

func scanRegistration(row pgx.Row, r *model.Registration) error {
	return row.Scan(
		&r.ID,
		&r.FullName,
		&r.Sex,
		&r.Phone,
		&r.Email,
		&r.Destination,
		&r.City,
		&r.Persons,
		&r.TravelTime,
		&r.Message,
		&r.CreatedAt,
	)
}

// writableFields 是建立與更新時可寫入的欄位，id 與 created_at 不在其中
func writableFields(r *model.Registration) map[string]any {
	return map[string]any{
		"full_name":   r.FullName,
		"sex":         r.Sex,
		"phone":       r.Phone,
		"email":       r.Email,
		"destination": r.Destination,
		"city":        r.City,
		"persons":     r.Persons,
		"travel_time": r.TravelTime,
		"message":     r.Message,
	}
}

// InsertRegistration 新增一筆登記並回填 ID 與 CreatedAt
func InsertRegistration(ctx context.Context, db database.DB, r *model.Registration) (int, error) {
	query, args, err := psql.Insert("registrations").
		SetMap(writableFields(r)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("InsertRegistration: %w", err)
	}
	if err := db.QueryRow(ctx, query, args...).Scan(&r.ID, &r.CreatedAt); err != nil {
		return 0, fmt.Errorf("InsertRegistration: %w", err)
	}
	return r.ID, nil
}

// ListRegistrations 依 created_at 由新到舊列出
func ListRegistrations(ctx context.Context, db database.DB) ([]model.Registration, error) {
	query, args, err := psql.Select(registrationColumns...).
		From("registrations").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ListRegistrations: %w", err)
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListRegistrations: %w", err)
	}
	defer rows.Close()

	list := make([]model.Registration, 0)
	for rows.Next() {
		var r model.Registration
		if err := scanRegistration(rows, &r); err != nil {
			return nil, fmt.Errorf("ListRegistrations: %w", err)
		}
		list = append(list, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRegistrations: %w", err)
	}
	return list, nil
}

// GetRegistration 查無資料時回傳 ErrNotFound
func GetRegistration(ctx context.Context, db database.DB, id int) (*model.Registration, error) {
	query, args, err := psql.Select(registrationColumns...).
		From("registrations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("GetRegistration: %w", err)
	}

	r := &model.Registration{}
	if err := scanRegistration(db.QueryRow(ctx, query, args...), r); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetRegistration: %w", err)
	}
	return r, nil
}

// UpdateRegistration 以 r 的欄位整筆覆寫，回傳受影響筆數 (0 表示不存在)
func UpdateRegistration(ctx context.Context, db database.DB, id int, r *model.Registration) (int64, error) {
	query, args, err := psql.Update("registrations").
		SetMap(writableFields(r)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("UpdateRegistration: %w", err)
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("UpdateRegistration: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteRegistration 回傳受影響筆數 (0 表示不存在)
func DeleteRegistration(ctx context.Context, db database.DB, id int) (int64, error) {
	query, args, err := psql.Delete("registrations").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("DeleteRegistration: %w", err)
	}
	tag, err := db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("DeleteRegistration: %w", err)
	}
	return tag.RowsAffected(), nil
}
