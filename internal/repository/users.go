package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertUser = `
INSERT INTO users (email, password, first_name, last_name, shipping_address)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, email, password, first_name, last_name, shipping_address, is_deleted, created_at, updated_at
`

type InsertUserParams struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	ShippingAddress pgtype.Text
}

func (q *Queries) InsertUser(c context.Context, arg InsertUserParams) (User, error) {
	row := q.db.QueryRow(c, insertUser,
		arg.Email,
		arg.Password,
		arg.FirstName,
		arg.LastName,
		arg.ShippingAddress,
	)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.ShippingAddress,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const findUserByEmail = `
SELECT id, email, password, first_name, last_name, shipping_address, is_deleted, created_at, updated_at
FROM users
WHERE email = $1 AND NOT is_deleted
`

func (q *Queries) FindUserByEmail(c context.Context, email string) (User, error) {
	row := q.db.QueryRow(c, findUserByEmail, email)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.ShippingAddress,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const findUserById = `
SELECT id, email, password, first_name, last_name, shipping_address, is_deleted, created_at, updated_at
FROM users
WHERE id = $1 AND NOT is_deleted
`

func (q *Queries) FindUserById(c context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRow(c, findUserById, id)
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.ShippingAddress,
		&u.IsDeleted,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

const insertUserRole = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name = $2
ON CONFLICT DO NOTHING
`

type InsertUserRoleParams struct {
	UserID uuid.UUID
	Role   string
}

func (q *Queries) InsertUserRole(c context.Context, arg InsertUserRoleParams) error {
	_, err := q.db.Exec(c, insertUserRole, arg.UserID, arg.Role)
	return err
}

const findUserRoles = `
SELECT r.name
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
WHERE ur.user_id = $1
ORDER BY r.name
`

func (q *Queries) FindUserRoles(c context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := q.db.Query(c, findUserRoles, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, rows.Err()
}
