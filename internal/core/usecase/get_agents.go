package usecase

import (
	"context"

	"listing-feed-service/internal/core/domain"
	"listing-feed-service/internal/core/port"
)

type GetAgents struct {
	properties port.PropertySourcePort
}

func NewGetAgents(properties port.PropertySourcePort) *GetAgents {
	return &GetAgents{properties: properties}
}

func (uc *GetAgents) Execute(ctx context.Context) ([]domain.Agent, error) {
	return uc.properties.FetchAgents(ctx)
}
