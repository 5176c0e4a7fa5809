package domain

import "math"

// EntitlementsSetVersionScalingFactor is the fixed-point scale of the
// entitlements-set part of a composite version: five decimal digits.
const EntitlementsSetVersionScalingFactor = 100000

// SplitUserEntitlementsVersion decodes a composite version into the user
// entitlements version (integer part) and the entitlements-set version
// (fractional part scaled by EntitlementsSetVersionScalingFactor).
//
// Versions that are negative, not finite, or carry more fractional digits
// than the scale supports fail with KindInvalidArgument.
func SplitUserEntitlementsVersion(version float64) (userVersion, setVersion int64, err error) {
	if math.IsNaN(version) || math.IsInf(version, 0) {
		return 0, 0, NewInvalidArgument("version not finite")
	}
	if version < 0 {
		return 0, 0, NewInvalidArgument("version negative")
	}

	userVersion = int64(math.Floor(version))
	setVersion = int64(math.Round(version*EntitlementsSetVersionScalingFactor)) % EntitlementsSetVersionScalingFactor

	if ComposeUserEntitlementsVersion(userVersion, setVersion) != version {
		return 0, 0, NewInvalidArgument("version too precise")
	}

	return userVersion, setVersion, nil
}

// ComposeUserEntitlementsVersion is the inverse of SplitUserEntitlementsVersion.
func ComposeUserEntitlementsVersion(userVersion, setVersion int64) float64 {
	return float64(userVersion) + float64(setVersion)/EntitlementsSetVersionScalingFactor
}
