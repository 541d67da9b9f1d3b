package ephemeris

import (
	"context"
	"fmt"

	"github.com/NikitHamal/flashy-astro-go/internal/astro"
)

// Service resolves birth data into engine-ready positions. The concrete
// implementation wraps the HTTP client; tests substitute mocks.
type Service interface {
	HealthCheck(ctx context.Context) (*HealthResponse, error)
	ResolveChart(ctx context.Context, req *PositionsRequest) (astro.Positions, int, error)
}

type service struct {
	client *Client
}

// NewService wraps a client in the Service interface.
func NewService(client *Client) Service {
	return &service{client: client}
}

func (s *service) HealthCheck(ctx context.Context) (*HealthResponse, error) {
	return s.client.HealthCheck(ctx)
}

// ResolveChart fetches positions and converts them into the engine's types.
// A payload missing any graha surfaces as IncompletePositionData so callers
// treat it exactly like malformed direct input.
func (s *service) ResolveChart(ctx context.Context, req *PositionsRequest) (astro.Positions, int, error) {
	resp, err := s.client.ResolvePositions(ctx, req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to resolve chart: %w", err)
	}

	positions := make(astro.Positions, len(resp.Positions))
	for name, pos := range resp.Positions {
		graha, err := astro.ParseGraha(name)
		if err != nil {
			// Resolvers may report nodes or outer bodies; the engine only
			// tracks the seven classical grahas.
			continue
		}
		positions[graha] = astro.Position{Sign: pos.Sign, Degree: pos.Degree}
	}

	ascendantSign := resp.Ascendant.Sign
	if err := astro.ValidatePositions(positions, ascendantSign); err != nil {
		return nil, 0, err
	}

	return positions, ascendantSign, nil
}
