package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/renteq/rentalcrm/internal/apperrors"
	"github.com/renteq/rentalcrm/internal/core/domain"
	portsrepo "github.com/renteq/rentalcrm/internal/core/ports/repositories"
	"github.com/renteq/rentalcrm/internal/models"
)

// querier is the subset of pgxpool.Pool and pgx.Tx the read helpers need, so
// finders can run against either.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgxDealRepository struct {
	BaseRepository
	inventoryRepo *PgxInventoryRepository
}

// NewPgxDealRepository creates a new repository for deals, rentals and billing periods.
func NewPgxDealRepository(pool *pgxpool.Pool, inventoryRepo *PgxInventoryRepository) portsrepo.DealRepository {
	return &PgxDealRepository{
		BaseRepository: BaseRepository{Pool: pool},
		inventoryRepo:  inventoryRepo,
	}
}

// Ensure PgxDealRepository implements portsrepo.DealRepository
var _ portsrepo.DealRepository = (*PgxDealRepository)(nil)

// CreateDealWithRental inserts the deal, rental, accessory lines and first
// billing period, reserves line stock and marks the asset reserved, all in
// one transaction. Any failed reservation aborts the whole write.
func (r *PgxDealRepository) CreateDealWithRental(ctx context.Context, agg portsrepo.DealWithRental, defaultLocation string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := agg.Deal.CreatedAt
	userID := agg.Deal.CreatedBy

	modelDeal := toModelDeal(agg.Deal)
	dealQuery := `
		INSERT INTO deals (deal_id, client_id, type, status, parent_deal_id, source, comment, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, dealQuery,
		modelDeal.DealID,
		modelDeal.ClientID,
		modelDeal.Type,
		modelDeal.Status,
		modelDeal.ParentDealID,
		modelDeal.Source,
		modelDeal.Comment,
		modelDeal.CreatedAt,
		modelDeal.CreatedBy,
		modelDeal.LastUpdatedAt,
		modelDeal.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert deal "+modelDeal.DealID)
	}

	modelRental := toModelRental(agg.Rental)
	rentalQuery := `
		INSERT INTO rentals (
			rental_id, deal_id, asset_id, start_date, end_date, actual_end_date, outcome,
			planned_months, rent_cents, delivery_cents, assembly_cents, deposit_cents, discount_cents, total_cents,
			delivery_address, pickup_address, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, rentalQuery,
		modelRental.RentalID,
		modelRental.DealID,
		modelRental.AssetID,
		modelRental.StartDate,
		modelRental.EndDate,
		modelRental.ActualEndDate,
		modelRental.Outcome,
		modelRental.PlannedMonths,
		modelRental.RentCents,
		modelRental.DeliveryCents,
		modelRental.AssemblyCents,
		modelRental.DepositCents,
		modelRental.DiscountCents,
		modelRental.TotalCents,
		modelRental.DeliveryAddress,
		modelRental.PickupAddress,
		modelRental.CreatedAt,
		modelRental.CreatedBy,
		modelRental.LastUpdatedAt,
		modelRental.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert rental "+modelRental.RentalID)
	}

	if len(agg.Rental.Lines) > 0 {
		batch := &pgx.Batch{}
		lineQuery := `
			INSERT INTO rental_accessory_lines (line_id, rental_id, accessory_id, qty, price_cents, is_included)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, line := range agg.Rental.Lines {
			batch.Queue(lineQuery, line.LineID, line.RentalID, line.AccessoryID, line.Qty, line.PriceCents, line.IsIncluded)
		}
		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return mapPgError(err, "failed to insert accessory lines for rental "+modelRental.RentalID)
		}
	}

	if err := insertPeriod(ctx, tx, agg.Period); err != nil {
		return err
	}

	// Reserve each accessory line at the default location. The inventory
	// repository locks the counter rows, so a concurrent deal racing for the
	// same stock serializes here and the loser fails cleanly.
	reserveEffect, err := domain.MovementReserve.Effect()
	if err != nil {
		return err
	}
	for _, line := range agg.Rental.Lines {
		adj := domain.StockAdjustment{
			AccessoryID: line.AccessoryID,
			Location:    defaultLocation,
			Type:        domain.MovementReserve,
			Qty:         line.Qty,
			Comment:     "reserved for deal " + agg.Deal.DealID,
		}
		if _, err := r.inventoryRepo.AdjustInTx(ctx, tx, adj, reserveEffect, userID); err != nil {
			return err
		}
	}

	if err := updateAssetStatusInTx(ctx, tx, agg.Rental.AssetID, domain.AssetReserved, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ActivateDeal moves a booked deal to active and its asset to rented. The
// deal row is locked and the transition re-verified, so a stale caller gets
// ErrInvalidTransition rather than clobbering a concurrent close or cancel.
func (r *PgxDealRepository) ActivateDeal(ctx context.Context, dealID string, userID string, now time.Time) (*domain.Deal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	deal, err := findDealForUpdate(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}
	if err := deal.CanActivate(); err != nil {
		return nil, err
	}

	if err := updateDealStatusInTx(ctx, tx, dealID, domain.DealActive, userID, now); err != nil {
		return nil, err
	}

	rental, err := findRentalByDealID(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}
	if err := updateAssetStatusInTx(ctx, tx, rental.AssetID, domain.AssetRented, userID, now); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	deal.Status = domain.DealActive
	deal.LastUpdatedAt = now
	deal.LastUpdatedBy = userID
	return deal, nil
}

// CloseRental ends a rental with a terminal outcome and settles its deal,
// asset and reservations accordingly. Return closes release reserved line
// stock and free the asset; buyout closes keep the stock committed and mark
// the asset sold.
func (r *PgxDealRepository) CloseRental(ctx context.Context, rentalID string, kind domain.OutcomeKind, defaultLocation string, userID string, now time.Time) (*domain.Deal, *domain.Rental, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	rental, err := findRentalForUpdate(ctx, tx, rentalID)
	if err != nil {
		return nil, nil, err
	}

	closed, err := rental.Outcome.Close(kind, now)
	if err != nil {
		return nil, nil, err
	}

	deal, err := findDealForUpdate(ctx, tx, rental.DealID)
	if err != nil {
		return nil, nil, err
	}
	if err := deal.CanClose(); err != nil {
		return nil, nil, err
	}

	var dealStatus domain.DealStatus
	var assetStatus domain.AssetStatus
	switch kind {
	case domain.OutcomeClosedReturn:
		dealStatus = domain.DealClosedReturn
		assetStatus = domain.AssetAvailable
	case domain.OutcomeClosedPurchase:
		dealStatus = domain.DealClosedPurchase
		assetStatus = domain.AssetSold
	default:
		return nil, nil, apperrors.NewAppError(422, "unsupported close outcome "+string(kind), apperrors.ErrValidation)
	}

	if err := closeRentalRowInTx(ctx, tx, rentalID, closed, userID, now); err != nil {
		return nil, nil, err
	}
	if err := updateDealStatusInTx(ctx, tx, deal.DealID, dealStatus, userID, now); err != nil {
		return nil, nil, err
	}
	if err := updateAssetStatusInTx(ctx, tx, rental.AssetID, assetStatus, userID, now); err != nil {
		return nil, nil, err
	}

	// A returned rental hands its accessories back: the reservation is
	// released unit for unit. A buyout keeps the units with the client, so
	// both counters stay where issuing left them.
	if kind == domain.OutcomeClosedReturn {
		if err := r.releaseLineReservations(ctx, tx, rental, defaultLocation, userID); err != nil {
			return nil, nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	deal.Status = dealStatus
	deal.LastUpdatedAt = now
	deal.LastUpdatedBy = userID
	rental.Outcome = closed
	rental.LastUpdatedAt = now
	rental.LastUpdatedBy = userID
	return deal, rental, nil
}

// CancelDeal cancels a non-terminal deal. The rental, if any, is closed as
// canceled, its reservations are released and the asset reverts to available.
func (r *PgxDealRepository) CancelDeal(ctx context.Context, dealID string, defaultLocation string, userID string, now time.Time) (*domain.Deal, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	deal, err := findDealForUpdate(ctx, tx, dealID)
	if err != nil {
		return nil, err
	}
	if err := deal.CanCancel(); err != nil {
		return nil, err
	}

	if err := updateDealStatusInTx(ctx, tx, dealID, domain.DealCanceled, userID, now); err != nil {
		return nil, err
	}

	rental, err := findRentalByDealID(ctx, tx, dealID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if rental != nil && rental.Outcome.IsOpen() {
		closed, err := rental.Outcome.Close(domain.OutcomeCanceled, now)
		if err != nil {
			return nil, err
		}
		if err := closeRentalRowInTx(ctx, tx, rental.RentalID, closed, userID, now); err != nil {
			return nil, err
		}
		if err := updateAssetStatusInTx(ctx, tx, rental.AssetID, domain.AssetAvailable, userID, now); err != nil {
			return nil, err
		}
		if err := r.releaseLineReservations(ctx, tx, rental, defaultLocation, userID); err != nil {
			return nil, err
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	deal.Status = domain.DealCanceled
	deal.LastUpdatedAt = now
	deal.LastUpdatedBy = userID
	return deal, nil
}

// CreateExtension inserts the extension deal with its billing period and
// moves the original rental's planned end date forward. Stock reservations
// carry over untouched: the client keeps the same units.
func (r *PgxDealRepository) CreateExtension(ctx context.Context, extension domain.Deal, period domain.RentalPeriod, newEndDate time.Time, userID string) error {
	parentID, ok := extension.Origin.Extension()
	if !ok {
		return apperrors.NewAppError(422, "extension deal has no parent", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	parent, err := findDealForUpdate(ctx, tx, parentID)
	if err != nil {
		return err
	}
	if err := parent.CanExtend(); err != nil {
		return err
	}

	modelDeal := toModelDeal(extension)
	dealQuery := `
		INSERT INTO deals (deal_id, client_id, type, status, parent_deal_id, source, comment, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, dealQuery,
		modelDeal.DealID,
		modelDeal.ClientID,
		modelDeal.Type,
		modelDeal.Status,
		modelDeal.ParentDealID,
		modelDeal.Source,
		modelDeal.Comment,
		modelDeal.CreatedAt,
		modelDeal.CreatedBy,
		modelDeal.LastUpdatedAt,
		modelDeal.LastUpdatedBy,
	)
	if err != nil {
		return mapPgError(err, "failed to insert extension deal "+modelDeal.DealID)
	}

	if err := insertPeriod(ctx, tx, period); err != nil {
		return err
	}

	extendQuery := `
		UPDATE rentals
		SET end_date = $1, last_updated_at = $2, last_updated_by = $3
		WHERE rental_id = $4 AND outcome = $5;
	`
	tag, err := tx.Exec(ctx, extendQuery, newEndDate, time.Now(), userID, period.RentalID, string(domain.OutcomeOpen))
	if err != nil {
		return mapPgError(err, "failed to extend rental "+period.RentalID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "rental "+period.RentalID+" is no longer open", apperrors.ErrInvalidTransition)
	}

	return r.Commit(ctx, tx)
}

// FindDealByID retrieves a deal by its ID.
func (r *PgxDealRepository) FindDealByID(ctx context.Context, dealID string) (*domain.Deal, error) {
	return findDeal(ctx, r.Pool, dealID)
}

// FindRentalByID retrieves a rental with its accessory lines.
func (r *PgxDealRepository) FindRentalByID(ctx context.Context, rentalID string) (*domain.Rental, error) {
	query := rentalSelect + ` WHERE rental_id = $1;`
	rental, err := scanRentalRow(r.Pool.QueryRow(ctx, query, rentalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("rental " + rentalID + " not found")
		}
		return nil, err
	}
	if err := loadLines(ctx, r.Pool, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// FindRentalByDealID retrieves the rental owned by a deal, with its lines.
func (r *PgxDealRepository) FindRentalByDealID(ctx context.Context, dealID string) (*domain.Rental, error) {
	rental, err := findRentalByDealID(ctx, r.Pool, dealID)
	if err != nil {
		return nil, err
	}
	if err := loadLines(ctx, r.Pool, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// ListDeals returns deals newest first, optionally filtered by status.
func (r *PgxDealRepository) ListDeals(ctx context.Context, status *domain.DealStatus, limit, offset int) ([]domain.Deal, error) {
	query := `
		SELECT deal_id, client_id, type, status, parent_deal_id, source, comment, created_at, created_by, last_updated_at, last_updated_by
		FROM deals
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at DESC, deal_id DESC
		LIMIT $2 OFFSET $3;
	`
	var statusArg *string
	if status != nil {
		s := string(*status)
		statusArg = &s
	}

	rows, err := r.Pool.Query(ctx, query, statusArg, limit, offset)
	if err != nil {
		return nil, mapPgError(err, "failed to query deals")
	}
	defer rows.Close()

	var deals []domain.Deal
	for rows.Next() {
		deal, err := scanDealRow(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, *deal)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err, "error iterating deal rows")
	}
	return deals, nil
}

// releaseLineReservations hands every accessory line's reserved units back to
// free stock. The movement is logged as a return so the ledger reads
// naturally even though only the reserved counter moves.
func (r *PgxDealRepository) releaseLineReservations(ctx context.Context, tx pgx.Tx, rental *domain.Rental, defaultLocation, userID string) error {
	lines := rental.Lines
	if len(lines) == 0 {
		if err := loadLines(ctx, tx, rental); err != nil {
			return err
		}
		lines = rental.Lines
	}
	for _, line := range lines {
		adj := domain.StockAdjustment{
			AccessoryID: line.AccessoryID,
			Location:    defaultLocation,
			Type:        domain.MovementReturnItem,
			Qty:         line.Qty,
			Comment:     "released from rental " + rental.RentalID,
		}
		if _, err := r.inventoryRepo.AdjustInTx(ctx, tx, adj, domain.ReservationReleaseEffect(), userID); err != nil {
			return err
		}
	}
	return nil
}

const dealSelect = `
	SELECT deal_id, client_id, type, status, parent_deal_id, source, comment, created_at, created_by, last_updated_at, last_updated_by
	FROM deals`

const rentalSelect = `
	SELECT rental_id, deal_id, asset_id, start_date, end_date, actual_end_date, outcome,
	       planned_months, rent_cents, delivery_cents, assembly_cents, deposit_cents, discount_cents, total_cents,
	       delivery_address, pickup_address, created_at, created_by, last_updated_at, last_updated_by
	FROM rentals`

func findDeal(ctx context.Context, q querier, dealID string) (*domain.Deal, error) {
	deal, err := scanDealRow(q.QueryRow(ctx, dealSelect+` WHERE deal_id = $1;`, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("deal " + dealID + " not found")
		}
		return nil, err
	}
	return deal, nil
}

func findDealForUpdate(ctx context.Context, tx pgx.Tx, dealID string) (*domain.Deal, error) {
	deal, err := scanDealRow(tx.QueryRow(ctx, dealSelect+` WHERE deal_id = $1 FOR UPDATE;`, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("deal " + dealID + " not found")
		}
		return nil, err
	}
	return deal, nil
}

func findRentalForUpdate(ctx context.Context, tx pgx.Tx, rentalID string) (*domain.Rental, error) {
	rental, err := scanRentalRow(tx.QueryRow(ctx, rentalSelect+` WHERE rental_id = $1 FOR UPDATE;`, rentalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("rental " + rentalID + " not found")
		}
		return nil, err
	}
	return rental, nil
}

func findRentalByDealID(ctx context.Context, q querier, dealID string) (*domain.Rental, error) {
	rental, err := scanRentalRow(q.QueryRow(ctx, rentalSelect+` WHERE deal_id = $1;`, dealID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("no rental found for deal " + dealID)
		}
		return nil, err
	}
	return rental, nil
}

func scanDealRow(row pgx.Row) (*domain.Deal, error) {
	var m models.Deal
	err := row.Scan(
		&m.DealID,
		&m.ClientID,
		&m.Type,
		&m.Status,
		&m.ParentDealID,
		&m.Source,
		&m.Comment,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, mapPgError(err, "failed to scan deal row")
	}
	deal := toDomainDeal(m)
	return &deal, nil
}

func scanRentalRow(row pgx.Row) (*domain.Rental, error) {
	var m models.Rental
	err := row.Scan(
		&m.RentalID,
		&m.DealID,
		&m.AssetID,
		&m.StartDate,
		&m.EndDate,
		&m.ActualEndDate,
		&m.Outcome,
		&m.PlannedMonths,
		&m.RentCents,
		&m.DeliveryCents,
		&m.AssemblyCents,
		&m.DepositCents,
		&m.DiscountCents,
		&m.TotalCents,
		&m.DeliveryAddress,
		&m.PickupAddress,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, mapPgError(err, "failed to scan rental row")
	}
	rental := toDomainRental(m)
	return &rental, nil
}

func loadLines(ctx context.Context, q querier, rental *domain.Rental) error {
	query := `
		SELECT line_id, rental_id, accessory_id, qty, price_cents, is_included
		FROM rental_accessory_lines
		WHERE rental_id = $1
		ORDER BY line_id;
	`
	rows, err := q.Query(ctx, query, rental.RentalID)
	if err != nil {
		return mapPgError(err, "failed to query lines for rental "+rental.RentalID)
	}
	defer rows.Close()

	var lines []domain.RentalAccessoryLine
	for rows.Next() {
		var m models.RentalAccessoryLine
		if err := rows.Scan(&m.LineID, &m.RentalID, &m.AccessoryID, &m.Qty, &m.PriceCents, &m.IsIncluded); err != nil {
			return mapPgError(err, "failed to scan accessory line row")
		}
		lines = append(lines, domain.RentalAccessoryLine{
			LineID:      m.LineID,
			RentalID:    m.RentalID,
			AccessoryID: m.AccessoryID,
			Qty:         m.Qty,
			PriceCents:  m.PriceCents,
			IsIncluded:  m.IsIncluded,
		})
	}
	if err := rows.Err(); err != nil {
		return mapPgError(err, "error iterating accessory line rows")
	}
	rental.Lines = lines
	return nil
}

func insertPeriod(ctx context.Context, tx pgx.Tx, period domain.RentalPeriod) error {
	query := `
		INSERT INTO rental_periods (period_id, rental_id, deal_id, start_date, end_date, rent_cents, delivery_cents, discount_cents, total_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		period.PeriodID,
		period.RentalID,
		period.DealID,
		period.StartDate,
		period.EndDate,
		period.RentCents,
		period.DeliveryCents,
		period.DiscountCents,
		period.TotalCents,
		period.CreatedAt,
	)
	if err != nil {
		return mapPgError(err, "failed to insert billing period "+period.PeriodID)
	}
	return nil
}

func updateDealStatusInTx(ctx context.Context, tx pgx.Tx, dealID string, status domain.DealStatus, userID string, now time.Time) error {
	query := `
		UPDATE deals
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE deal_id = $4;
	`
	if _, err := tx.Exec(ctx, query, string(status), now, userID, dealID); err != nil {
		return mapPgError(err, "failed to update status of deal "+dealID)
	}
	return nil
}

func closeRentalRowInTx(ctx context.Context, tx pgx.Tx, rentalID string, outcome domain.RentalOutcome, userID string, now time.Time) error {
	query := `
		UPDATE rentals
		SET outcome = $1, actual_end_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE rental_id = $5;
	`
	if _, err := tx.Exec(ctx, query, string(outcome.Kind), outcome.ClosedAt, now, userID, rentalID); err != nil {
		return mapPgError(err, "failed to close rental "+rentalID)
	}
	return nil
}

func updateAssetStatusInTx(ctx context.Context, tx pgx.Tx, assetID string, status domain.AssetStatus, userID string, now time.Time) error {
	query := `
		UPDATE assets
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE asset_id = $4;
	`
	tag, err := tx.Exec(ctx, query, string(status), now, userID, assetID)
	if err != nil {
		return mapPgError(err, "failed to update status of asset "+assetID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("asset " + assetID + " not found")
	}
	return nil
}

func toModelDeal(d domain.Deal) models.Deal {
	m := models.Deal{
		DealID:   d.DealID,
		ClientID: d.ClientID,
		Type:     string(d.Type),
		Status:   string(d.Status),
		Source:   d.Source,
		Comment:  d.Comment,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if parentID, ok := d.Origin.Extension(); ok {
		m.ParentDealID = &parentID
	}
	return m
}

func toDomainDeal(m models.Deal) domain.Deal {
	origin := domain.FreshDeal()
	if m.ParentDealID != nil && *m.ParentDealID != "" {
		origin = domain.ExtensionOf(*m.ParentDealID)
	}
	return domain.Deal{
		DealID:   m.DealID,
		ClientID: m.ClientID,
		Type:     domain.DealType(m.Type),
		Status:   domain.DealStatus(m.Status),
		Origin:   origin,
		Source:   m.Source,
		Comment:  m.Comment,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toModelRental(r domain.Rental) models.Rental {
	return models.Rental{
		RentalID:        r.RentalID,
		DealID:          r.DealID,
		AssetID:         r.AssetID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		ActualEndDate:   r.Outcome.ClosedAt,
		Outcome:         string(r.Outcome.Kind),
		PlannedMonths:   r.PlannedMonths,
		RentCents:       r.RentCents,
		DeliveryCents:   r.DeliveryCents,
		AssemblyCents:   r.AssemblyCents,
		DepositCents:    r.DepositCents,
		DiscountCents:   r.DiscountCents,
		TotalCents:      r.TotalCents,
		DeliveryAddress: r.DeliveryAddress,
		PickupAddress:   r.PickupAddress,
		AuditFields: models.AuditFields{
			CreatedAt:     r.CreatedAt,
			CreatedBy:     r.CreatedBy,
			LastUpdatedAt: r.LastUpdatedAt,
			LastUpdatedBy: r.LastUpdatedBy,
		},
	}
}

func toDomainRental(m models.Rental) domain.Rental {
	outcome := domain.RentalOutcome{Kind: domain.OutcomeKind(m.Outcome), ClosedAt: m.ActualEndDate}
	return domain.Rental{
		RentalID:        m.RentalID,
		DealID:          m.DealID,
		AssetID:         m.AssetID,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Outcome:         outcome,
		PlannedMonths:   m.PlannedMonths,
		RentCents:       m.RentCents,
		DeliveryCents:   m.DeliveryCents,
		AssemblyCents:   m.AssemblyCents,
		DepositCents:    m.DepositCents,
		DiscountCents:   m.DiscountCents,
		TotalCents:      m.TotalCents,
		DeliveryAddress: m.DeliveryAddress,
		PickupAddress:   m.PickupAddress,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}
