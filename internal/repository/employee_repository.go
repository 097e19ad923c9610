package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/theater-staff/internal/model"
	"github.com/iliyamo/theater-staff/internal/utils"
)

// EmployeeRepo looks up staff credentials in the 'employees' table.
type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

var ErrEmailExists = errors.New("email already exists")

// Create inserts an employee with a bcrypt-hashed password and returns its ID.
func (r *EmployeeRepo) Create(ctx context.Context, name, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees (name, email, password_hash, role) VALUES (?,?,?,?)",
		name, email, hash, role)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// Lookup returns the active employees whose email and password match.  An
// empty result means the credentials were rejected.
func (r *EmployeeRepo) Lookup(ctx context.Context, email, password string) ([]model.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,email,role,password_hash FROM employees WHERE email=? AND is_active=1",
		email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Employee{}
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.PasswordHash); err != nil {
			return nil, err
		}
		if utils.VerifyPassword(e.PasswordHash, password) {
			out = append(out, e)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
