package ledger

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// InterfaceID is a 4-byte capability tag in the ERC-165 style: the XOR of
// the keccak-256 selectors of an interface's canonical operation signatures.
// Derived at init from constant signature strings, so the values are
// byte-stable across builds.
type InterfaceID [4]byte

// String returns the 0x-prefixed hex form of the identifier.
func (id InterfaceID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

// ParseInterfaceID parses a 0x-prefixed or bare 8-hex-digit identifier.
func ParseInterfaceID(s string) (InterfaceID, error) {
	var id InterfaceID
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return id, fmt.Errorf("invalid interface id %q: %w", s, err)
	}
	if len(b) != 4 {
		return id, fmt.Errorf("invalid interface id %q: want 4 bytes, got %d", s, len(b))
	}
	copy(id[:], b)
	return id, nil
}

func selector(signature string) InterfaceID {
	var id InterfaceID
	copy(id[:], crypto.Keccak256([]byte(signature))[:4])
	return id
}

func xorIDs(ids ...InterfaceID) InterfaceID {
	var out InterfaceID
	for _, id := range ids {
		for i := range out {
			out[i] ^= id[i]
		}
	}
	return out
}

var (
	// InterfaceIDCapabilities tags the capability-discovery interface itself
	InterfaceIDCapabilities = selector("supportsInterface(bytes4)")

	// InterfaceIDOwnership tags the ownership-ledger interface
	InterfaceIDOwnership = xorIDs(
		selector("totalSupply()"),
		selector("balanceOf(address)"),
		selector("ownerOf(uint256)"),
		selector("transfer(address,uint256)"),
		selector("transferFrom(address,address,uint256)"),
		selector("approve(address,uint256)"),
		selector("tokensOfOwner(address)"),
		selector("getToken(uint256)"),
	)
)
