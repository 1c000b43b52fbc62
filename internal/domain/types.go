package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Address represents an externally-controlled account identity used for
// authorization. Addresses are stored in EIP-55 checksummed form.
type Address string

// ZeroAddress is the null identity; it is never a valid caller or owner
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// TreasuryAddress is the marketplace's own ledger account. Value held here is
// whatever the platform has retained but not yet withdrawn. It is not an
// externally-controlled identity: the vault rejects unsolicited deposits to
// it. Kept in checksummed form so it compares equal to normalized input.
var TreasuryAddress = Address(common.HexToAddress("0x00000000000000000000000000000000f0f0f0f0").String())

// Marketplace constants. Percentages are whole-number percentages applied
// with truncating integer division, matching on-chain fee arithmetic.
const (
	// MaxRoyaltyPct is the ceiling for an artwork's royalty percentage,
	// fixed at mint and immutable thereafter
	MaxRoyaltyPct uint64 = 30
	// MaxPlatformFeePct is the ceiling the platform fee can ever be set to
	MaxPlatformFeePct uint64 = 10
	// ReputationMintBonus is credited to an artist on each of their mints
	ReputationMintBonus uint64 = 10
	// ReputationSaleBonus is credited to an artwork's artist on each sale
	// of that artwork, primary or secondary
	ReputationSaleBonus uint64 = 5
)

// String returns the string representation of the address
func (a Address) String() string {
	return string(a)
}

// IsZero reports whether the address is empty or the null identity
func (a Address) IsZero() bool {
	return a == "" || a == ZeroAddress
}

// Valid checks if the address is a well-formed, non-null account identity
func (a Address) Valid() bool {
	return !a.IsZero() && common.IsHexAddress(string(a))
}

// NormalizeAddress normalizes a hex account address to its checksummed form
func NormalizeAddress(address string) Address {
	if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
		return Address(address)
	}
	return Address(common.HexToAddress(address).String())
}
