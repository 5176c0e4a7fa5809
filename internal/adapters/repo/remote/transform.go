package remote

import (
	"time"

	"github.com/bnema/entitlements-cli/internal/domain"
)

func fromEntitlementsSetSchema(s entitlementsSetSchema) domain.EntitlementsSet {
	return domain.EntitlementsSet{
		Name:         s.Name,
		Description:  deref(s.Description),
		Entitlements: fromEntitlementSchemas(s.Entitlements),
		Version:      s.Version,
		Created:      domain.EpochMillis(s.CreatedAtEpochMs),
		Updated:      domain.EpochMillis(s.UpdatedAtEpochMs),
	}
}

func fromEntitlementSchemas(items []entitlementSchema) []domain.Entitlement {
	entitlements := make([]domain.Entitlement, 0, len(items))
	for _, item := range items {
		entitlements = append(entitlements, domain.Entitlement{
			Name:        item.Name,
			Description: deref(item.Description),
			Value:       item.Value,
		})
	}

	return entitlements
}

func fromEntitlementsConsumptionSchema(s entitlementsConsumptionSchema) domain.EntitlementsConsumption {
	consumption := make([]domain.EntitlementConsumption, 0, len(s.Consumption))
	for _, item := range s.Consumption {
		consumption = append(consumption, fromEntitlementConsumptionSchema(item))
	}

	return domain.EntitlementsConsumption{
		Entitlements: domain.UserEntitlements{
			Version:             s.Entitlements.Version,
			EntitlementsSetName: deref(s.Entitlements.EntitlementsSetName),
			Entitlements:        fromEntitlementSchemas(s.Entitlements.Entitlements),
		},
		Consumption: consumption,
	}
}

func fromEntitlementConsumptionSchema(s entitlementConsumptionSchema) domain.EntitlementConsumption {
	c := domain.EntitlementConsumption{
		Name:            s.Name,
		Value:           s.Value,
		Consumed:        s.Consumed,
		Available:       s.Available,
		FirstConsumedAt: epochMillisPtr(s.FirstConsumedAtEpochMs),
		LastConsumedAt:  epochMillisPtr(s.LastConsumedAtEpochMs),
	}
	if s.Consumer != nil {
		c.Consumer = &domain.EntitlementConsumer{ID: s.Consumer.ID, Issuer: s.Consumer.Issuer}
	}

	return c
}

func epochMillisPtr(ms *float64) *time.Time {
	if ms == nil {
		return nil
	}
	t := domain.EpochMillis(*ms)
	return &t
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
