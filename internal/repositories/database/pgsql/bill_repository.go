package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bills and bill shares.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepository {
	return &PgxBillRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.BillRepository = (*PgxBillRepository)(nil)

var FULL_BILL_SELECT_QUERY = `
SELECT
	b.bill_id, b.room_id, b.title, b.category, b.total_amount, b.due_date,
	b.created_at, b.created_by, b.last_updated_at, b.last_updated_by
FROM bills b
`

// billRow mirrors the bills table without the shares association.
type billRow struct {
	BillID      string
	RoomID      string
	Title       string
	Category    string
	TotalAmount decimal.Decimal
	DueDate     time.Time
	domain.AuditFields
}

func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	insertBill := `
		INSERT INTO bills (
			bill_id, room_id, title, category, total_amount, due_date,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, insertBill,
		bill.BillID,
		bill.RoomID,
		bill.Title,
		bill.Category,
		bill.TotalAmount,
		bill.DueDate,
		bill.CreatedAt,
		bill.CreatedBy,
		bill.LastUpdatedAt,
		bill.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return apperrors.NewConflictError("bill ID " + bill.BillID + " already exists")
		}
		return apperrors.NewAppError(500, "failed to save bill "+bill.BillID, err)
	}

	insertShare := `
		INSERT INTO bill_shares (
			bill_id, user_id, user_name, amount, status, paid_from_meal_fund, paid_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, share := range bill.Shares {
		_, err = tx.Exec(ctx, insertShare,
			share.BillID,
			share.UserID,
			share.UserName,
			share.Amount,
			share.Status,
			share.PaidFromMealFund,
			share.PaidAt,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to save share of bill "+bill.BillID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	bills, err := r.getBills(ctx, `WHERE b.bill_id = $1`, billID)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &bills[0], nil
}

func (r *PgxBillRepository) ListBillsByRoom(ctx context.Context, roomID string) ([]domain.Bill, error) {
	return r.getBills(ctx, `WHERE b.room_id = $1 ORDER BY b.due_date DESC`, roomID)
}

// getBills loads bill rows matching the filter, then attaches their shares.
func (r *PgxBillRepository) getBills(ctx context.Context, filterQuery string, args ...any) ([]domain.Bill, error) {
	rows, err := r.Pool.Query(ctx, FULL_BILL_SELECT_QUERY+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bills", err)
	}
	defer rows.Close()

	billRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[billRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Bill{}, nil
		}
		return nil, apperrors.NewAppError(500, "failed to collect bill rows", err)
	}
	if len(billRows) == 0 {
		return []domain.Bill{}, nil
	}

	bills := make([]domain.Bill, len(billRows))
	index := make(map[string]*domain.Bill, len(billRows))
	billIDs := make([]string, len(billRows))
	for i, row := range billRows {
		bills[i] = domain.Bill{
			BillID:      row.BillID,
			RoomID:      row.RoomID,
			Title:       row.Title,
			Category:    row.Category,
			TotalAmount: row.TotalAmount,
			DueDate:     row.DueDate,
			AuditFields: row.AuditFields,
		}
		index[row.BillID] = &bills[i]
		billIDs[i] = row.BillID
	}

	shareQuery := `
		SELECT bill_id, user_id, user_name, amount, status, paid_from_meal_fund, paid_at
		FROM bill_shares
		WHERE bill_id = ANY($1)
		ORDER BY user_name
	`
	shareRows, err := r.Pool.Query(ctx, shareQuery, billIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query bill shares", err)
	}
	defer shareRows.Close()

	shares, err := pgx.CollectRows(shareRows, pgx.RowToStructByName[domain.BillShare])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect bill share rows", err)
	}
	for _, share := range shares {
		if bill, ok := index[share.BillID]; ok {
			bill.Shares = append(bill.Shares, share)
		}
	}

	return bills, nil
}

func (r *PgxBillRepository) UpdateShareStatus(ctx context.Context, billID, userID string, status domain.ShareStatus, paidAt *time.Time) error {
	query := `
		UPDATE bill_shares
		SET status = $3, paid_at = $4
		WHERE bill_id = $1 AND user_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, billID, userID, status, paidAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update share status on bill "+billID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkSharePaid sets the share to PAID and inserts the derived BILL_PAYMENT
// expense in the same transaction. The expense insert uses ON CONFLICT on
// the source share key, so a repeated approval cannot double-charge the
// member's fund.
func (r *PgxBillRepository) MarkSharePaid(ctx context.Context, billID, userID string, paidAt time.Time, expense *domain.Expense) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	update := `
		UPDATE bill_shares
		SET status = 'PAID', paid_at = $3, paid_from_meal_fund = $4
		WHERE bill_id = $1 AND user_id = $2 AND status <> 'PAID';
	`
	tag, err := tx.Exec(ctx, update, billID, userID, paidAt, expense != nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark share paid on bill "+billID, err)
	}
	if tag.RowsAffected() == 0 {
		// Already paid: nothing to do, and no second expense either.
		return r.Commit(ctx, tx)
	}

	if expense != nil {
		insert := `
			INSERT INTO expenses (
				expense_id, room_id, user_id, amount, category, status,
				calculation_period_id, source_share, description,
				created_at, created_by, last_updated_at, last_updated_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			ON CONFLICT (source_share) DO NOTHING;
		`
		_, err = tx.Exec(ctx, insert,
			expense.ExpenseID,
			expense.RoomID,
			expense.UserID,
			expense.Amount,
			expense.Category,
			expense.Status,
			expense.CalculationPeriodID,
			expense.SourceShare,
			expense.Description,
			expense.CreatedAt,
			expense.CreatedBy,
			expense.LastUpdatedAt,
			expense.LastUpdatedBy,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to create bill payment expense for bill "+billID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxBillRepository) MarkOverdueShares(ctx context.Context, roomID string, now time.Time) (int, error) {
	query := `
		UPDATE bill_shares bs
		SET status = 'OVERDUE'
		FROM bills b
		WHERE bs.bill_id = b.bill_id
			AND b.room_id = $1
			AND bs.status = 'UNPAID'
			AND b.due_date < $2;
	`
	tag, err := r.Pool.Exec(ctx, query, roomID, now)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark overdue shares", err)
	}
	return int(tag.RowsAffected()), nil
}
