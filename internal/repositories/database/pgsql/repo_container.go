package pgsql

import (
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all pgsql repositories against one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		RoomRepo:         newPgxRoomRepository(dbPool),
		PeriodRepo:       newPgxPeriodRepository(dbPool),
		DepositRepo:      newPgxDepositRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		MealRepo:         newPgxMealRepository(dbPool),
		BillRepo:         newPgxBillRepository(dbPool),
		SettlementRepo:   newSettlementRepository(dbPool),
		AnalyticsRepo:    newAnalyticsRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
