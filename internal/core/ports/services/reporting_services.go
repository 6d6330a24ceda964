package services

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// SettlementSvcFacade computes per-member balances for a calculation period.
type SettlementSvcFacade interface {
	// GetBalances resolves the target period (explicit periodID, else the
	// room's ACTIVE period) and computes the settlement. A periodID that
	// does not exist or belongs to another room is a validation error. A
	// room with no periods at all yields zero-filled rows per member.
	// Results are never cached.
	GetBalances(ctx context.Context, roomID string, periodID *string, userID string) (*domain.Settlement, error)
}

// AnalyticsSvcFacade computes the cached dashboard bundle.
type AnalyticsSvcFacade interface {
	// GetAnalytics returns the dashboard bundle for the range, memoized per
	// (roomID, range) for the configured TTL. A cache hit returns the prior
	// snapshot verbatim regardless of intervening writes.
	GetAnalytics(ctx context.Context, roomID string, rng domain.AnalyticsRange, userID string) (*domain.Analytics, error)
}
