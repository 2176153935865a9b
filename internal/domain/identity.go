package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Identity is the authenticated caller/owner identity the environment hands
// to the ledger: an Ethereum-style 20-byte address. The zero value is the
// "null identity" used transiently during mint and rejected as a recipient.
type Identity = common.Address

// ZeroIdentity is the null identity.
var ZeroIdentity = Identity{}

// ParseIdentity parses a hex address string into an Identity.
func ParseIdentity(s string) (Identity, error) {
	if !common.IsHexAddress(s) {
		return ZeroIdentity, fmt.Errorf("invalid identity %q", s)
	}
	return common.HexToAddress(s), nil
}

// NormalizeAddress normalizes a hex address to its checksummed form.
// Non-address input is returned unchanged; validation is the caller's job.
func NormalizeAddress(address string) string {
	if strings.HasPrefix(address, "0x") && common.IsHexAddress(address) {
		return common.HexToAddress(address).String()
	}
	return address
}
