package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementConsumptionBalanced(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    EntitlementConsumption
		want bool
	}{
		{name: "half consumed", c: EntitlementConsumption{Value: 10, Consumed: 5, Available: 5}, want: true},
		{name: "untouched", c: EntitlementConsumption{Value: 3, Available: 3}, want: true},
		{name: "over reported", c: EntitlementConsumption{Value: 10, Consumed: 5, Available: 6}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Balanced())
		})
	}
}

func TestEpochMillis(t *testing.T) {
	t.Parallel()

	assert.True(t, time.Date(1970, 1, 1, 0, 0, 0, int(time.Millisecond), time.UTC).Equal(EpochMillis(1)))
	assert.Equal(t, time.UTC, EpochMillis(1_700_000_000_000).Location())
}

func TestEntitlementsConsumptionJSON(t *testing.T) {
	t.Parallel()

	lastUsed := time.UnixMilli(2000).UTC()
	value := EntitlementsConsumption{
		Entitlements: UserEntitlements{
			Version:             2.00001,
			EntitlementsSetName: "basic",
			Entitlements:        []Entitlement{{Name: "feature.export", Value: 1}},
		},
		Consumption: []EntitlementConsumption{{
			Name:           "feature.export",
			Consumer:       &EntitlementConsumer{ID: "sudo-1", Issuer: "sudoplatform.sudoservice"},
			Value:          1,
			Consumed:       1,
			LastConsumedAt: &lastUsed,
		}},
	}

	encoded, err := json.Marshal(value)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"entitlements": {
			"version": 2.00001,
			"entitlementsSetName": "basic",
			"entitlements": [{"name": "feature.export", "value": 1}]
		},
		"consumption": [{
			"name": "feature.export",
			"consumer": {"id": "sudo-1", "issuer": "sudoplatform.sudoservice"},
			"value": 1,
			"consumed": 1,
			"available": 0,
			"firstConsumedAt": null,
			"lastConsumedAt": "1970-01-01T00:00:02Z"
		}]
	}`, string(encoded))
}

func TestEntitlementsSetJSON(t *testing.T) {
	t.Parallel()

	set := EntitlementsSet{
		Name:         "premium",
		Description:  "Premium plan",
		Entitlements: []Entitlement{{Name: "e.name", Description: "e.description", Value: 42}},
		Version:      7,
		Created:      time.UnixMilli(1000).UTC(),
		Updated:      time.UnixMilli(2000).UTC(),
	}

	encoded, err := json.Marshal(set)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "premium",
		"description": "Premium plan",
		"entitlements": [{"name": "e.name", "description": "e.description", "value": 42}],
		"version": 7,
		"createdAt": "1970-01-01T00:00:01Z",
		"updatedAt": "1970-01-01T00:00:02Z"
	}`, string(encoded))
}
