package domain

import "time"

type Entitlement struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Value       int64  `json:"value"`
}

// EntitlementsSet is a named, versioned bundle of entitlements such as a
// plan tier. It is only ever replaced wholesale.
type EntitlementsSet struct {
	Name         string        `json:"name"`
	Description  string        `json:"description,omitempty"`
	Entitlements []Entitlement `json:"entitlements"`
	Version      int64         `json:"version"`
	Created      time.Time     `json:"createdAt"`
	Updated      time.Time     `json:"updatedAt"`
}

// UserEntitlements is the set of entitlements currently granted to the user.
// Version is the composite version, see SplitUserEntitlementsVersion.
type UserEntitlements struct {
	Version             float64       `json:"version"`
	EntitlementsSetName string        `json:"entitlementsSetName"`
	Entitlements        []Entitlement `json:"entitlements"`
}

// SplitVersion decodes Version into its user and entitlements-set parts.
func (u UserEntitlements) SplitVersion() (userVersion, setVersion int64, err error) {
	return SplitUserEntitlementsVersion(u.Version)
}

// EntitlementConsumer identifies a sub-user resource consuming an entitlement.
type EntitlementConsumer struct {
	ID     string `json:"id"`
	Issuer string `json:"issuer"`
}

type EntitlementConsumption struct {
	Name            string               `json:"name"`
	Consumer        *EntitlementConsumer `json:"consumer"`
	Value           int64                `json:"value"`
	Consumed        int64                `json:"consumed"`
	Available       int64                `json:"available"`
	FirstConsumedAt *time.Time           `json:"firstConsumedAt"`
	LastConsumedAt  *time.Time           `json:"lastConsumedAt"`
}

// Balanced reports whether Available and Consumed add up to Value. The
// service is the source of truth; values are never corrected client side.
func (c EntitlementConsumption) Balanced() bool {
	return c.Available+c.Consumed == c.Value
}

type EntitlementsConsumption struct {
	Entitlements UserEntitlements         `json:"entitlements"`
	Consumption  []EntitlementConsumption `json:"consumption"`
}

// EpochMillis converts a millisecond Unix timestamp into a UTC time.
func EpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(ms)).UTC()
}
