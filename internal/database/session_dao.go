package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/task-tracker/internal/model"
)

type SessionDAO struct {
	Logger *slog.Logger
	*DB
}

func NewSessionDAO(logger *slog.Logger, db *DB) *SessionDAO {
	return &SessionDAO{
		Logger: logger.With("dao", "session"),
		DB:     db,
	}
}

// Replace removes any prior sessions for the user and inserts the new one as a
// single transaction, so two concurrent logins cannot both keep a valid row.
func (dao *SessionDAO) Replace(ctx context.Context, sess model.Session) error {
	logger := dao.Logger.With("query", "replace")

	deleteQuery, deleteArgs, err := dao.Builder.
		Delete("sessions").
		Where(squirrel.Eq{"user_id": sess.User}).
		ToSql()
	if err != nil {
		return err
	}

	insertQuery, insertArgs, err := dao.Builder.
		Insert("sessions").
		Columns("id", "user_id", "token", "expires_at").
		Values(sess.ID, sess.User, sess.Token, sess.ExpiresAt).
		ToSql()
	if err != nil {
		return err
	}

	tx, err := dao.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		logger.Warn("failed query execute", "error", err)
		return err
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsUniqueViolation(err) {
			return model.NewError("session", model.ErrExists)
		}

		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.Debug("success query execute", "sessionId", sess.ID, "userId", sess.User)

	return nil
}

// GetByToken looks the presented token up verbatim. The stored row is the
// authoritative validity check.
func (dao *SessionDAO) GetByToken(ctx context.Context, token string) (model.Session, error) {
	logger := dao.Logger.With("query", "getByToken")

	query, args, err := dao.Builder.
		Select("*").
		From("sessions").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Session{}, err
	}

	logger.Debug("build query", "sql", query)

	var sess model.Session
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&sess); err != nil {
		if IsNoRows(err) {
			return model.Session{}, model.NewError("session", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.Session{}, err
	}

	return sess, nil
}

func (dao *SessionDAO) DeleteByUser(ctx context.Context, user model.UserID) (int64, error) {
	logger := dao.Logger.With("query", "deleteByUser")

	query, args, err := dao.Builder.
		Delete("sessions").
		Where(squirrel.Eq{"user_id": user}).
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query)

	result, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	logger.Debug("success query execute", "userId", user, "countDeleted", deleted)

	return deleted, nil
}

func (dao *SessionDAO) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	logger := dao.Logger.With("query", "deleteExpired")

	query, args, err := dao.Builder.
		Delete("sessions").
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, err
	}

	logger.Debug("build query", "sql", query)

	result, err := dao.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Warn("failed query execute", "error", err)
		return 0, err
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	logger.Debug("success query execute", "countDeleted", deleted)

	return deleted, nil
}
