package remote

type entitlementSchema struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Value       int64   `json:"value"`
}

type entitlementsSetSchema struct {
	CreatedAtEpochMs float64             `json:"createdAtEpochMs"`
	UpdatedAtEpochMs float64             `json:"updatedAtEpochMs"`
	Version          int64               `json:"version"`
	Name             string              `json:"name"`
	Description      *string             `json:"description"`
	Entitlements     []entitlementSchema `json:"entitlements"`
}

type userEntitlementsSchema struct {
	Version             float64             `json:"version"`
	EntitlementsSetName *string             `json:"entitlementsSetName"`
	Entitlements        []entitlementSchema `json:"entitlements"`
}

type entitlementConsumerSchema struct {
	ID     string `json:"id"`
	Issuer string `json:"issuer"`
}

type entitlementConsumptionSchema struct {
	Consumer               *entitlementConsumerSchema `json:"consumer"`
	Name                   string                     `json:"name"`
	Value                  int64                      `json:"value"`
	Consumed               int64                      `json:"consumed"`
	Available              int64                      `json:"available"`
	FirstConsumedAtEpochMs *float64                   `json:"firstConsumedAtEpochMs"`
	LastConsumedAtEpochMs  *float64                   `json:"lastConsumedAtEpochMs"`
}

type entitlementsConsumptionSchema struct {
	Entitlements userEntitlementsSchema         `json:"entitlements"`
	Consumption  []entitlementConsumptionSchema `json:"consumption"`
}

type getEntitlementsConsumptionData struct {
	GetEntitlementsConsumption *entitlementsConsumptionSchema `json:"getEntitlementsConsumption"`
}

type getEntitlementsData struct {
	GetEntitlements *entitlementsSetSchema `json:"getEntitlements"`
}

type getExternalIDData struct {
	GetExternalID *string `json:"getExternalId"`
}

type redeemEntitlementsData struct {
	RedeemEntitlements *entitlementsSetSchema `json:"redeemEntitlements"`
}

type consumeBooleanEntitlementsData struct {
	ConsumeBooleanEntitlements *bool `json:"consumeBooleanEntitlements"`
}
