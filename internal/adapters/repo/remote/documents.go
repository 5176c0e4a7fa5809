package remote

import (
	"context"

	"github.com/bnema/entitlements-cli/internal/ports"
)

const entitlementsSetFields = `createdAtEpochMs
    updatedAtEpochMs
    version
    name
    description
    entitlements {
      name
      description
      value
    }`

const getEntitlementsConsumptionDocument = `query GetEntitlementsConsumption {
  getEntitlementsConsumption {
    entitlements {
      version
      entitlementsSetName
      entitlements {
        name
        description
        value
      }
    }
    consumption {
      consumer {
        id
        issuer
      }
      name
      value
      consumed
      available
      firstConsumedAtEpochMs
      lastConsumedAtEpochMs
    }
  }
}`

const getEntitlementsDocument = `query GetEntitlements {
  getEntitlements {
    ` + entitlementsSetFields + `
  }
}`

const getExternalIDDocument = `query GetExternalId {
  getExternalId
}`

const redeemEntitlementsDocument = `mutation RedeemEntitlements {
  redeemEntitlements {
    ` + entitlementsSetFields + `
  }
}`

const consumeBooleanEntitlementsDocument = `mutation ConsumeBooleanEntitlements($entitlementNames: [String!]!) {
  consumeBooleanEntitlements(entitlementNames: $entitlementNames)
}`

const (
	OperationGetEntitlementsConsumption = "GetEntitlementsConsumption"
	OperationGetEntitlements            = "GetEntitlements"
	OperationGetExternalID              = "GetExternalId"
	OperationRedeemEntitlements         = "RedeemEntitlements"
	OperationConsumeBooleanEntitlements = "ConsumeBooleanEntitlements"
)

// newOperation builds a remote-only operation. Entitlements change on the
// server without the client knowing, so only queries whose caller asked
// through ports.WithCachePolicy may be served from the cache.
func newOperation(name, document string, variables map[string]any) ports.Operation {
	return ports.Operation{
		Name:        name,
		Document:    document,
		Variables:   variables,
		CachePolicy: ports.CachePolicyRemoteOnly,
	}
}

func newQuery(ctx context.Context, name, document string) ports.Operation {
	op := newOperation(name, document, nil)
	op.CachePolicy = ports.CachePolicyFromContext(ctx)
	return op
}
