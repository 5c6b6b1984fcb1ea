package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/alfiomartini/nextjs-official-tutorial/infrastructure/database/postgres"
	"github.com/alfiomartini/nextjs-official-tutorial/internal/domain"
	"github.com/pkg/errors"
)

const usersTable = domain.TableUsers

type UserRepository interface {
	InsertUsers(ctx context.Context, users []domain.User) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	conn postgres.Queryer
}

func NewUserRepository(conn postgres.Queryer) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

// InsertUsers insere os usuários ignorando os que já existem, seja pelo id ou pelo email.
// As senhas já devem estar com hash.
func (r *userRepository) InsertUsers(ctx context.Context, users []domain.User) (int64, error) {
	if len(users) == 0 {
		return 0, nil
	}

	queryBuilder := squirrel.
		Insert(usersTable).
		Columns("id", "name", "email", "password").
		Suffix("ON CONFLICT DO NOTHING")

	for _, user := range users {
		queryBuilder = queryBuilder.Values(user.ID, user.Name, user.Email, user.Password)
	}

	inserted, err := execInsert(ctx, r.conn, queryBuilder)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao inserir usuários")
	}

	return inserted, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query, args, err := squirrel.
		Select("id", "name", "email", "password").
		From(usersTable).
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta")
	}

	var user domain.User
	err = r.conn.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Name, &user.Email, &user.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar usuário")
	}

	return &user, nil
}
