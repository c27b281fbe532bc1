package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation распознает нарушение уникального индекса Postgres.
// Индекс memberships(plan_id, user_id) - последний рубеж инварианта
// "одно участие на план" при гонке между разными группами.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
