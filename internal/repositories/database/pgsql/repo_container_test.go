package pgsql_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	"github.com/billkhata/billkhata/internal/repositories/database/pgsql"
)

// The provider must come back as the pointer the service container expects,
// with every repository wired.
func TestNewRepositoryProvider_WiresAllRepositories(t *testing.T) {
	var repos *portsrepo.RepositoryProvider = pgsql.NewRepositoryProvider(nil)

	require.NotNil(t, repos)
	require.NotNil(t, repos.UserRepo)
	require.NotNil(t, repos.RoomRepo)
	require.NotNil(t, repos.PeriodRepo)
	require.NotNil(t, repos.DepositRepo)
	require.NotNil(t, repos.ExpenseRepo)
	require.NotNil(t, repos.MealRepo)
	require.NotNil(t, repos.BillRepo)
	require.NotNil(t, repos.SettlementRepo)
	require.NotNil(t, repos.AnalyticsRepo)
	require.NotNil(t, repos.NotificationRepo)
}
