package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cargo-entry-service/internal/gateway"
	"cargo-entry-service/internal/lookup"
	"cargo-entry-service/internal/party"
	"cargo-entry-service/internal/repository"
)

// PartyGateway is the backend contract for reference-data lookups.
type PartyGateway interface {
	ListParties(ctx context.Context) ([]party.Record, error)
}

var _ PartyGateway = (*gateway.Client)(nil)

// PartyDisplay is the resolved read-only panel view of a party record.
type PartyDisplay struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Role    string `json:"role"`
}

// PartyService resolves backend party records for the entry screens. Role
// filtering is client-side over GET /parties: the backend exposes no role
// filter. Lists are cached briefly since the reference data changes rarely.
type PartyService struct {
	gateway  PartyGateway
	cache    *repository.ReferenceCache
	searcher *lookup.Searcher
	logger   *logrus.Entry
}

// NewPartyService creates a party service.
func NewPartyService(gw PartyGateway, cache *repository.ReferenceCache, debounce time.Duration, logger *logrus.Logger) *PartyService {
	return &PartyService{
		gateway:  gw,
		cache:    cache,
		searcher: lookup.NewSearcher(debounce),
		logger:   logger.WithField("component", "party-service"),
	}
}

// List returns all parties, read-through cached.
func (s *PartyService) List(ctx context.Context) ([]party.Record, error) {
	if records, ok := s.cache.GetParties(ctx); ok {
		return records, nil
	}
	records, err := s.gateway.ListParties(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetParties(ctx, records)
	return records, nil
}

// ListByRole returns the parties classified exactly as role. Records that
// cannot be classified are excluded rather than guessed into a bucket.
func (s *PartyService) ListByRole(ctx context.Context, role party.Role) ([]party.Record, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return party.FilterByRole(records, role), nil
}

// Display resolves the read-only panel fields for one record.
func (s *PartyService) Display(rec party.Record) PartyDisplay {
	return PartyDisplay{
		Label:   party.LabelOf(rec),
		Address: party.ResolveAddress(rec),
		Phone:   party.ResolvePhone(rec),
		Role:    party.Classify(rec).String(),
	}
}

// Search debounces a typed term and applies only the latest result. The
// term matches case-insensitively against the resolved party label.
func (s *PartyService) Search(ctx context.Context, term string, role party.Role, apply func([]party.Record, error)) {
	s.searcher.Search(term, func(term string) (interface{}, error) {
		records, err := s.ListByRole(ctx, role)
		if err != nil {
			return nil, err
		}
		needle := strings.ToLower(strings.TrimSpace(term))
		if needle == "" {
			return records, nil
		}
		matched := make([]party.Record, 0, len(records))
		for _, rec := range records {
			if strings.Contains(strings.ToLower(party.LabelOf(rec)), needle) {
				matched = append(matched, rec)
			}
		}
		return matched, nil
	}, func(result interface{}, err error) {
		if err != nil {
			apply(nil, err)
			return
		}
		apply(result.([]party.Record), nil)
	})
}

// Close tears down the search session so in-flight results are dropped.
func (s *PartyService) Close() {
	s.searcher.Close()
}
