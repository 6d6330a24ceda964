package services

import (
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/platform/config"
)

// NewServiceContainer wires every service against the repository provider.
// The room service doubles as the authorizer every room-scoped service
// checks against.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	roomSvc := NewRoomService(repos.RoomRepo, repos.UserRepo)
	notificationSvc := NewNotificationService(repos.NotificationRepo)
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		User:         userSvc,
		Token:        NewTokenService(cfg, userSvc),
		Room:         roomSvc,
		Period:       NewPeriodService(repos.PeriodRepo, roomSvc, roomSvc, notificationSvc),
		Deposit:      NewDepositService(repos.DepositRepo, repos.PeriodRepo, roomSvc, notificationSvc),
		Expense:      NewExpenseService(repos.ExpenseRepo, repos.PeriodRepo, roomSvc, notificationSvc),
		Meal:         NewMealService(repos.MealRepo, repos.PeriodRepo, roomSvc),
		Bill:         NewBillService(repos.BillRepo, repos.PeriodRepo, roomSvc, roomSvc, notificationSvc),
		Settlement:   NewSettlementService(repos.SettlementRepo, repos.PeriodRepo, roomSvc, roomSvc),
		Analytics:    NewAnalyticsService(repos.AnalyticsRepo, roomSvc, cfg.AnalyticsCacheTTL),
		Notification: notificationSvc,
	}
}
