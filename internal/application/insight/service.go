// Package insight serves the read-only dashboards: order statistics and the
// analytics reports.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/erp/ausyexpo/internal/domain/report"
	"github.com/erp/ausyexpo/internal/domain/shared"
	"github.com/erp/ausyexpo/internal/domain/trade"
	"github.com/erp/ausyexpo/internal/infrastructure/api"
)

// Service fetches dashboard documents.
type Service struct {
	client *api.Client
}

// NewService returns a Service using client.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// OrderStatistics returns the order summary counters.
func (s *Service) OrderStatistics(ctx context.Context) (*trade.OrderStatistics, error) {
	var stats trade.OrderStatistics
	if err := s.client.Get(ctx, "orders/statistics", &stats); err != nil {
		return nil, fmt.Errorf("fetch order statistics: %w", err)
	}
	return &stats, nil
}

// Catalog lists the reports the backend offers to the signed-in user.
func (s *Service) Catalog(ctx context.Context) (*report.Catalog, error) {
	var catalog report.Catalog
	if err := s.client.Get(ctx, "reports/available-reports", &catalog); err != nil {
		return nil, fmt.Errorf("fetch report catalog: %w", err)
	}
	return &catalog, nil
}

// Report fetches one report. Unknown types are rejected without a request.
func (s *Service) Report(ctx context.Context, reportType string) (report.Document, error) {
	reportType = strings.ToLower(strings.TrimSpace(reportType))
	if !report.Known(reportType) {
		return nil, fmt.Errorf("%w: unknown report %q (available: %s)",
			shared.ErrInvalidInput, reportType, strings.Join(report.Types, ", "))
	}
	doc := report.Document{}
	if err := s.client.Get(ctx, "reports/"+reportType, &doc); err != nil {
		return nil, fmt.Errorf("fetch %s report: %w", reportType, err)
	}
	return doc, nil
}
