// Package insights derives platform statistics from the investor and startup catalogs.
package insights

import (
	"context"
	"fmt"

	"visnex.global/web/internal/catalog"
	"visnex.global/web/internal/investors"
	"visnex.global/web/internal/startups"
)

// fundingPerDeal is the billions of dollars attributed to each active deal.
const fundingPerDeal = 5.2

// topLocations caps the dashboard location distribution.
const topLocations = 10

// Stats is the headline block on the investors page.
type Stats struct {
	ActiveInvestors    int    `json:"activeInvestors"`
	Incubators         int    `json:"incubators"`
	FundingFacilitated string `json:"fundingFacilitated"`
	ActiveConnections  int    `json:"activeConnections"`
}

// Totals counts records across the platform.
type Totals struct {
	Investors       int `json:"investors"`
	Startups        int `json:"startups"`
	ActiveInvestors int `json:"activeInvestors"`
}

// Dashboard is the full distribution report.
type Dashboard struct {
	Totals           Totals          `json:"totals"`
	FundingStages    []catalog.Facet `json:"fundingStages"`
	Industries       []catalog.Facet `json:"industries"`
	InvestmentStages []catalog.Facet `json:"investmentStages"`
	TopLocations     []catalog.Facet `json:"topLocations"`
}

// Service computes statistics on demand from the catalog services.
type Service struct {
	investors investors.Service
	startups  startups.Service
}

// NewService wires the catalogs the statistics are derived from.
func NewService(inv investors.Service, st startups.Service) *Service {
	return &Service{investors: inv, startups: st}
}

// Stats summarises active investors and their deal flow.
func (s *Service) Stats(context.Context) (Stats, error) {
	var stats Stats
	deals := 0
	for _, inv := range s.investors.AllInvestors() {
		if !inv.Active() {
			continue
		}
		stats.ActiveInvestors++
		deals += inv.ActiveDeals
		stats.ActiveConnections += inv.PortfolioCompanies
	}
	stats.Incubators = len(s.investors.AllIncubators())
	stats.FundingFacilitated = fmt.Sprintf("$%.1fB", float64(deals)*fundingPerDeal)
	return stats, nil
}

// Dashboard builds the distribution report. Investor totals include incubators.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	fundingStages, err := s.startups.Facets(ctx, startups.DimStage)
	if err != nil {
		return Dashboard{}, fmt.Errorf("insights: funding stages: %w", err)
	}
	industries, err := s.startups.Facets(ctx, startups.DimIndustry)
	if err != nil {
		return Dashboard{}, fmt.Errorf("insights: industries: %w", err)
	}
	locations, err := s.startups.Facets(ctx, startups.DimLocation)
	if err != nil {
		return Dashboard{}, fmt.Errorf("insights: locations: %w", err)
	}
	if len(locations) > topLocations {
		locations = locations[:topLocations]
	}
	investmentStages, err := s.investors.InvestorFacets(ctx, investors.DimStage)
	if err != nil {
		return Dashboard{}, fmt.Errorf("insights: investment stages: %w", err)
	}

	return Dashboard{
		Totals: Totals{
			Investors:       len(s.investors.AllInvestors()) + stats.Incubators,
			Startups:        s.startups.Total(),
			ActiveInvestors: stats.ActiveInvestors,
		},
		FundingStages:    fundingStages,
		Industries:       industries,
		InvestmentStages: investmentStages,
		TopLocations:     locations,
	}, nil
}
