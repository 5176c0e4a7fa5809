package application

type ConsumeBooleanEntitlementsCommand struct {
	// Names of the boolean entitlements to consume. The service rejects an
	// empty list.
	Names []string
}
