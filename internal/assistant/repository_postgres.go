package assistant

import "database/sql"

type PostgresRepository struct {
	db *sql.DB
}

const listByParentQuery = `
    SELECT kb_id, parent_id, question, answer
    FROM knowledge_base
    WHERE parent_id = $1
    ORDER BY kb_id
`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByParent(parentID int) ([]Option, error) {
	rows, err := r.db.Query(listByParentQuery, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Option, 0)
	for rows.Next() {
		var o Option
		if err := rows.Scan(&o.ID, &o.ParentID, &o.Question, &o.Answer); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
