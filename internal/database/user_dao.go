package database

import (
	"context"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/protomem/task-tracker/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	*DB
}

func NewUserDAO(logger *slog.Logger, db *DB) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		DB:     db,
	}
}

// Insert stores a new member. The caller is responsible for generating the ID
// and hashing the credential; a duplicate email maps to model.ErrExists.
func (dao *UserDAO) Insert(ctx context.Context, user model.User) error {
	logger := dao.Logger.With("query", "insert")

	query, args, err := dao.Builder.
		Insert("members").
		Columns("id", "email", "password_hash", "nickname", "gender", "birthday", "relationship").
		Values(user.ID, user.Email, user.PasswordHash, user.Nickname, user.Gender, user.Birthday, user.Relationship).
		ToSql()
	if err != nil {
		return err
	}

	logger.Debug("build query", "sql", query)

	if _, err := dao.ExecContext(ctx, query, args...); err != nil {
		logger.Warn("failed query execute", "error", err)

		if IsUniqueViolation(err) {
			return model.NewError("user", model.ErrExists)
		}

		return err
	}

	logger.Debug("success query execute", "insertId", user.ID)

	return nil
}

func (dao *UserDAO) GetByEmail(ctx context.Context, email string) (model.User, error) {
	logger := dao.Logger.With("query", "getByEmail")

	query, args, err := dao.Builder.
		Select("*").
		From("members").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("build query", "sql", query)

	var user model.User
	row := dao.QueryRowxContext(ctx, query, args...)
	if err := row.StructScan(&user); err != nil {
		if IsNoRows(err) {
			return model.User{}, model.NewError("user", model.ErrNotFound)
		}

		logger.Warn("failed query execute", "error", err)

		return model.User{}, err
	}

	return user, nil
}
