package repository

import "github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"

func (r *Repository) GetOperatorByID(id int64) (*domain.Operator, error) {
	query := `
		SELECT username, password_hash, full_name, email, role, is_active, created_at, version
		FROM operators WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	operator := &domain.Operator{
		ID: id,
	}

	dst := []any{&operator.Username, &operator.PasswordHash, &operator.FullName, &operator.Email, &operator.Role, &operator.IsActive, &operator.CreatedAt, &operator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return operator, nil
}

func (r *Repository) GetOperatorByUsername(username string) (*domain.Operator, error) {
	query := `
		SELECT id, password_hash, full_name, email, role, is_active, created_at, version
		FROM operators WHERE username = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	operator := &domain.Operator{
		Username: username,
	}

	dst := []any{&operator.ID, &operator.PasswordHash, &operator.FullName, &operator.Email, &operator.Role, &operator.IsActive, &operator.CreatedAt, &operator.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}

	return operator, nil
}

func (r *Repository) CreateOperator(operator *domain.Operator) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO operators (username, password_hash, full_name, email, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, is_active, created_at, version
	`

	args := []any{operator.Username, operator.PasswordHash, operator.FullName, operator.Email, operator.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&operator.ID, &operator.IsActive, &operator.CreatedAt, &operator.Version); err != nil {
		return err
	}

	return nil
}
