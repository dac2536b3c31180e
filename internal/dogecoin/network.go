package dogecoin

// NetworkProfile is a runtime value carrying the version bytes and
// proof-of-work parameters for one Dogecoin network. The source
// specializes most operations at compile time over a network-config trait;
// there is no correctness benefit to that here, so profiles are ordinary
// values selected once at processor construction and threaded through as
// configuration, never as a type parameter.
type NetworkProfile struct {
	Name string

	// Version bytes for base58check, carried through for completeness; the
	// settlement engine's core validator never consults them (address
	// string encoding is out of scope).
	P2PKHVersionByte   byte
	P2SHVersionByte    byte
	PrivKeyVersionByte byte

	// Proof-of-work parameters. Carried through, never consulted by the
	// settlement engine (PoW/chain-state validation is a Non-goal).
	AllowMinDifficultyBlocks bool
	PowTargetTimespan        uint32
	PowTargetSpacing         uint32
	StrictChainID            bool
	AuxPowChainID            uint32
	MinValidHeight           uint32
}

// Mainnet is the production Dogecoin network profile.
var Mainnet = NetworkProfile{
	Name:               "mainnet",
	P2PKHVersionByte:   0x1E,
	P2SHVersionByte:    0x16,
	PrivKeyVersionByte: 0x9E,
	PowTargetTimespan:  4 * 60 * 60,
	PowTargetSpacing:   60,
	StrictChainID:      true,
	AuxPowChainID:      0x0062,
}

// Testnet is the Dogecoin test network profile.
var Testnet = NetworkProfile{
	Name:                     "testnet",
	P2PKHVersionByte:         0x71,
	P2SHVersionByte:          0xC4,
	PrivKeyVersionByte:       0xF1,
	AllowMinDifficultyBlocks: true,
	PowTargetTimespan:        4 * 60 * 60,
	PowTargetSpacing:         60,
	StrictChainID:            false,
	AuxPowChainID:            0x0062,
}

// Regtest is the Dogecoin local regression-test network profile.
var Regtest = NetworkProfile{
	Name:                     "regtest",
	P2PKHVersionByte:         0x6F,
	P2SHVersionByte:          0xC4,
	PrivKeyVersionByte:       0xEF,
	AllowMinDifficultyBlocks: true,
	PowTargetTimespan:        4 * 60 * 60,
	PowTargetSpacing:         60,
	StrictChainID:            false,
	AuxPowChainID:            0x0062,
}

// NetworkProfileByName resolves one of the three defined profiles by its
// lowercase name ("mainnet", "testnet", "regtest").
func NetworkProfileByName(name string) (NetworkProfile, bool) {
	switch name {
	case "mainnet":
		return Mainnet, true
	case "testnet":
		return Testnet, true
	case "regtest":
		return Regtest, true
	default:
		return NetworkProfile{}, false
	}
}
