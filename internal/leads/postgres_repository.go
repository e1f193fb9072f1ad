package leads

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// db is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores leads in the external relational lead store.
type PostgresRepository struct {
	db db
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db db) *PostgresRepository {
	if db == nil {
		panic("leads: database handle required")
	}
	return &PostgresRepository{db: db}
}

// Create inserts a new row. The store assigns created_at; the id is
// generated here so the caller gets it back even if the row scan is
// ever extended.
func (r *PostgresRepository) Create(ctx context.Context, lead *Lead) (*StoredLead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (id, nombre, email, telefono, mensaje, coche_interes, car_id, page_url, user_agent, client_ip, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, query,
		id,
		lead.Nombre,
		lead.Email,
		lead.Telefono,
		lead.Mensaje,
		lead.CocheInteres,
		lead.CarID,
		lead.PageURL,
		lead.UserAgent,
		lead.ClientIP,
		lead.Status,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", err)
	}

	return &StoredLead{ID: id.String(), CreatedAt: createdAt}, nil
}
