package repository

import (
	"context"
	"database/sql"

	"github.com/sysu-ecnc-dev/guard-scheduler/backend/internal/domain"
)

// GetAllAgents 按 position 顺序返回人员名单，position 决定了人员在排班表中的下标
func (r *Repository) GetAllAgents() ([]domain.Agent, error) {
	query := `
		SELECT a.agent_id, s.skill
		FROM agents a
		LEFT JOIN agent_skills s ON a.id = s.agent_id
		ORDER BY a.position, a.id, s.position
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	indexMap := make(map[string]int) // agentID -> agents 中的下标

	for rows.Next() {
		var agentID string
		var skill sql.NullString
		if err := rows.Scan(&agentID, &skill); err != nil {
			return nil, err
		}

		idx, exists := indexMap[agentID]
		if !exists {
			idx = len(agents)
			indexMap[agentID] = idx
			agents = append(agents, domain.Agent{ID: agentID, Skills: make([]string, 0)})
		}

		if !skill.Valid {
			// 说明这个人没有任何技能，这是允许的
			continue
		}

		agents[idx].Skills = append(agents[idx].Skills, skill.String)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}

func (r *Repository) GetAllShifts() ([]domain.Shift, error) {
	query := `
		SELECT name, start_hour, end_hour FROM shifts ORDER BY position, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := make([]domain.Shift, 0)
	for rows.Next() {
		var shift domain.Shift
		if err := rows.Scan(&shift.Name, &shift.Start, &shift.End); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) GetAllAppointmentTypes() ([]string, error) {
	query := `
		SELECT name FROM appointment_types ORDER BY position, id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		types = append(types, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

// ReplaceCatalog 在一个事务中清空并重新写入整个目录
func (r *Repository) ReplaceCatalog(agents []domain.Agent, shifts []domain.Shift, appointmentTypes []string) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		// agent_skills 通过外键级联删除
		for _, query := range []string{`DELETE FROM agents`, `DELETE FROM shifts`, `DELETE FROM appointment_types`} {
			if _, err := tx.ExecContext(ctx, query); err != nil {
				return err
			}
		}

		for i, t := range appointmentTypes {
			query := `INSERT INTO appointment_types (name, position) VALUES ($1, $2)`
			if _, err := tx.ExecContext(ctx, query, t, i); err != nil {
				return err
			}
		}

		for i, shift := range shifts {
			query := `INSERT INTO shifts (name, start_hour, end_hour, position) VALUES ($1, $2, $3, $4)`
			if _, err := tx.ExecContext(ctx, query, shift.Name, shift.Start, shift.End, i); err != nil {
				return err
			}
		}

		for i, agent := range agents {
			if err := insertAgent(ctx, tx, agent, i); err != nil {
				return err
			}
		}

		return nil
	})
}

// AppendAgents 把人员追加到名单的末尾
func (r *Repository) AppendAgents(agents []domain.Agent) error {
	return r.withTx(func(ctx context.Context, tx *sql.Tx) error {
		var next int
		query := `SELECT COALESCE(MAX(position) + 1, 0) FROM agents`
		if err := tx.QueryRowContext(ctx, query).Scan(&next); err != nil {
			return err
		}

		for i, agent := range agents {
			if err := insertAgent(ctx, tx, agent, next+i); err != nil {
				return err
			}
		}

		return nil
	})
}

func insertAgent(ctx context.Context, tx *sql.Tx, agent domain.Agent, position int) error {
	query := `
		INSERT INTO agents (agent_id, position)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := tx.QueryRowContext(ctx, query, agent.ID, position).Scan(&id); err != nil {
		return err
	}

	for j, skill := range agent.Skills {
		query := `
			INSERT INTO agent_skills (agent_id, skill, position)
			VALUES ($1, $2, $3)
		`
		if _, err := tx.ExecContext(ctx, query, id, skill, j); err != nil {
			return err
		}
	}

	return nil
}
