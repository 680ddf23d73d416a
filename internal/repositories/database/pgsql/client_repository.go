package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	"github.com/renteq/rentalcrm/internal/models"
)

type PgxClientRepository struct {
	BaseRepository
}

// NewPgxClientRepository creates a new repository for clients.
func NewPgxClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepository {
	return &PgxClientRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepository
var _ portsrepo.ClientRepository = (*PgxClientRepository)(nil)

// SaveClient inserts a new client.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	query := `
		INSERT INTO clients (client_id, name, phone, email, comment, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		client.ClientID,
		client.Name,
		client.Phone,
		client.Email,
		client.Comment,
		client.IsActive,
		client.CreatedAt,
		client.CreatedBy,
		client.LastUpdatedAt,
		client.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert client "+client.ClientID)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, name, phone, email, comment, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.Pool.QueryRow(ctx, query, clientID).Scan(
		&m.ClientID,
		&m.Name,
		&m.Phone,
		&m.Email,
		&m.Comment,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("client " + clientID + " not found")
		}
		return nil, mapPgError(err, "failed to find client "+clientID)
	}
	client := toDomainClient(m)
	return &client, nil
}

// ListClients returns clients ordered by name.
func (r *PgxClientRepository) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, error) {
	query := `
		SELECT client_id, name, phone, email, comment, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		ORDER BY name
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to query clients")
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(
			&m.ClientID,
			&m.Name,
			&m.Phone,
			&m.Email,
			&m.Comment,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, mapPgError(err, "failed to scan client row")
		}
		clients = append(clients, toDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating client rows")
	}
	return clients, nil
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID: m.ClientID,
		Name:     m.Name,
		Phone:    m.Phone,
		Email:    m.Email,
		Comment:  m.Comment,
		IsActive: m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
