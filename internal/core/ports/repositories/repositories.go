package repositories

// RepositoryProvider bundles all repository implementations for injection
// into the service container.
type RepositoryProvider struct {
	UserRepo         UserRepository
	RoomRepo         RoomRepository
	PeriodRepo       PeriodRepository
	DepositRepo      DepositRepository
	ExpenseRepo      ExpenseRepository
	MealRepo         MealRepository
	BillRepo         BillRepository
	SettlementRepo   SettlementRepository
	AnalyticsRepo    AnalyticsRepository
	NotificationRepo NotificationRepository
}
