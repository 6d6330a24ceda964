package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/utils"
)

// analyticsCacheSize bounds the snapshot cache; one entry per (room, range)
// pair, so even a few hundred active rooms stay well under it.
const analyticsCacheSize = 1024

// Fixed trend series names. Bill categories contribute additional series.
const (
	seriesDeposits = "Deposits"
	seriesShopping = "Shopping"
	seriesAllBills = "All Bills"
)

// trendMonths is the fixed depth of the monthly trend, ending at the
// current month.
const trendMonths = 6

// AnalyticsService computes the dashboard bundle. Snapshots are memoized per
// (room, range) with a TTL, so a burst of dashboard loads costs one round of
// aggregate queries. A cache hit returns the prior snapshot verbatim even if
// the ledger changed since; the TTL bounds that staleness.
type AnalyticsService struct {
	BaseService
	analyticsRepo portsrepo.AnalyticsRepository
	cache         *expirable.LRU[string, *domain.Analytics]
}

// NewAnalyticsService creates a new AnalyticsService with the given snapshot
// TTL.
func NewAnalyticsService(ar portsrepo.AnalyticsRepository, authorizer portssvc.RoomAuthorizerSvc, cacheTTL time.Duration) portssvc.AnalyticsSvcFacade {
	return &AnalyticsService{
		BaseService:   BaseService{RoomAuthorizer: authorizer},
		analyticsRepo: ar,
		cache:         expirable.NewLRU[string, *domain.Analytics](analyticsCacheSize, nil, cacheTTL),
	}
}

var _ portssvc.AnalyticsSvcFacade = (*AnalyticsService)(nil)

// GetAnalytics returns the dashboard bundle for the range.
func (s *AnalyticsService) GetAnalytics(ctx context.Context, roomID string, rng domain.AnalyticsRange, userID string) (*domain.Analytics, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !rng.IsValid() {
		return nil, fmt.Errorf("%w: unknown analytics range %q", apperrors.ErrValidation, rng)
	}

	cacheKey := roomID + "|" + string(rng)
	if snapshot, ok := s.cache.Get(cacheKey); ok {
		s.LogDebug(ctx, "Analytics cache hit", slog.String("room_id", roomID), slog.String("range", string(rng)))
		return snapshot, nil
	}

	snapshot, err := s.compute(ctx, roomID, rng)
	if err != nil {
		return nil, err
	}
	s.cache.Add(cacheKey, snapshot)
	return snapshot, nil
}

func (s *AnalyticsService) compute(ctx context.Context, roomID string, rng domain.AnalyticsRange) (*domain.Analytics, error) {
	now := time.Now()
	from, to := rangeWindow(now, rng)

	totalShopping, err := s.analyticsRepo.GetShoppingTotal(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "shopping total")
	}
	totalDeposits, err := s.analyticsRepo.GetDepositTotal(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "deposit total")
	}
	totalMeals, err := s.analyticsRepo.GetMealsTotal(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "meals total")
	}
	totalBills, err := s.analyticsRepo.GetBillTotal(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "bill total")
	}
	categoryTotals, err := s.analyticsRepo.GetBillCategoryTotals(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "bill category totals")
	}

	avgMealCost := decimal.Zero
	if totalMeals > 0 {
		avgMealCost = totalShopping.DivRound(decimal.NewFromInt(int64(totalMeals)), 2)
	}

	// Pie buckets are one per bill category plus a synthetic Shopping bucket
	// so the chart shows where the whole month's money went.
	slices := make([]domain.CategorySlice, 0, len(categoryTotals)+1)
	for _, ct := range categoryTotals {
		slices = append(slices, domain.CategorySlice{
			Name:   ct.Category,
			Amount: ct.Amount,
			Color:  utils.CategoryColor(ct.Category),
		})
	}
	if totalShopping.IsPositive() {
		slices = append(slices, domain.CategorySlice{
			Name:   seriesShopping,
			Amount: totalShopping,
			Color:  utils.CategoryColor(seriesShopping),
		})
	}

	trend, err := s.trendData(ctx, roomID, now)
	if err != nil {
		return nil, err
	}

	return &domain.Analytics{
		RoomID:                roomID,
		Range:                 rng,
		TotalShoppingExpenses: totalShopping,
		TotalBillAmount:       totalBills,
		TotalDeposits:         totalDeposits,
		TotalMealsCount:       totalMeals,
		AvgMealCost:           avgMealCost,
		FundHealth:            totalDeposits.Sub(totalShopping),
		BillCategoryData:      slices,
		TrendData:             trend,
		GeneratedAt:           now,
	}, nil
}

// trendData builds the fixed six-month series ending at the current month.
// Months with no activity appear as zero points so charts stay continuous.
func (s *AnalyticsService) trendData(ctx context.Context, roomID string, now time.Time) ([]domain.TrendPoint, error) {
	from := monthStart(now).AddDate(0, -(trendMonths - 1), 0)
	to := monthStart(now).AddDate(0, 1, 0)

	deposits, err := s.analyticsRepo.GetMonthlyDeposits(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "monthly deposits")
	}
	shopping, err := s.analyticsRepo.GetMonthlyShopping(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "monthly shopping")
	}
	bills, err := s.analyticsRepo.GetMonthlyBillTotals(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "monthly bill totals")
	}
	billCategories, err := s.analyticsRepo.GetMonthlyBillCategoryTotals(ctx, roomID, from, to)
	if err != nil {
		return nil, s.aggregateErr(ctx, err, roomID, "monthly bill category totals")
	}

	index := make(map[string]*domain.TrendPoint, trendMonths)
	points := make([]domain.TrendPoint, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := from.AddDate(0, i, 0)
		values := map[string]decimal.Decimal{
			seriesDeposits: decimal.Zero,
			seriesShopping: decimal.Zero,
			seriesAllBills: decimal.Zero,
		}
		// Every category seen in the window gets a series in every month,
		// so a category active in one month still plots as zero elsewhere.
		for _, m := range billCategories {
			values[m.Category] = decimal.Zero
		}
		points[i] = domain.TrendPoint{
			Month:  month.Format("Jan 2006"),
			Values: values,
		}
		index[monthKey(month.Year(), month.Month())] = &points[i]
	}

	for _, m := range deposits {
		if p, ok := index[monthKey(m.Year, m.Month)]; ok {
			p.Values[seriesDeposits] = m.Amount
		}
	}
	for _, m := range shopping {
		if p, ok := index[monthKey(m.Year, m.Month)]; ok {
			p.Values[seriesShopping] = m.Amount
		}
	}
	for _, m := range bills {
		if p, ok := index[monthKey(m.Year, m.Month)]; ok {
			p.Values[seriesAllBills] = m.Amount
		}
	}
	for _, m := range billCategories {
		if p, ok := index[monthKey(m.Year, m.Month)]; ok {
			p.Values[m.Category] = m.Amount
		}
	}

	return points, nil
}

func (s *AnalyticsService) aggregateErr(ctx context.Context, err error, roomID, what string) error {
	s.LogError(ctx, err, "Failed to aggregate "+what, slog.String("room_id", roomID))
	return fmt.Errorf("failed to compute analytics: %w", err)
}

// rangeWindow maps a range to its [from, to) wall-clock window.
func rangeWindow(now time.Time, rng domain.AnalyticsRange) (time.Time, time.Time) {
	to := monthStart(now).AddDate(0, 1, 0)
	switch rng {
	case domain.RangeLastSixMonths:
		return monthStart(now).AddDate(0, -(trendMonths - 1), 0), to
	default:
		return monthStart(now), to
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, month)
}
