package tiprouter

import (
	"encoding/json"

	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/utils/fast"
)

const (
	ncnConfigReserved = 127
	// NcnConfigSize is the size of the NcnConfig layout.
	NcnConfigSize = 3*solana.PublicKeyLength + inter.FeesSize + 1 + ncnConfigReserved
)

// NcnConfig is the per-NCN configuration record. It owns the fee schedule.
type NcnConfig struct {
	// Ncn is the NCN this config belongs to. Its admin, as recorded by the
	// restaking registry, creates and updates the config.
	Ncn             solana.PublicKey
	TieBreakerAdmin solana.PublicKey
	FeeAdmin        solana.PublicKey
	Fees            inter.Fees
	// Bump is the bump seed of the config address.
	Bump uint8
}

// NewNcnConfig returns a config with the given admins and fees.
func NewNcnConfig(ncn, tieBreakerAdmin, feeAdmin solana.PublicKey, fees inter.Fees, bump uint8) *NcnConfig {
	return &NcnConfig{
		Ncn:             ncn,
		TieBreakerAdmin: tieBreakerAdmin,
		FeeAdmin:        feeAdmin,
		Fees:            fees,
		Bump:            bump,
	}
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c *NcnConfig) MarshalBinary() ([]byte, error) {
	fees, err := c.Fees.MarshalBinary()
	if err != nil {
		return nil, err
	}

	w := fast.NewWriter(make([]byte, 0, NcnConfigSize))
	w.Write(c.Ncn[:])
	w.Write(c.TieBreakerAdmin[:])
	w.Write(c.FeeAdmin[:])
	w.Write(fees)
	w.WriteByte(c.Bump)
	w.Zeros(ncnConfigReserved)
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *NcnConfig) UnmarshalBinary(raw []byte) error {
	if len(raw) != NcnConfigSize {
		return inter.ErrMalformedLayout
	}

	r := fast.NewReader(raw)
	copy(c.Ncn[:], r.Read(solana.PublicKeyLength))
	copy(c.TieBreakerAdmin[:], r.Read(solana.PublicKeyLength))
	copy(c.FeeAdmin[:], r.Read(solana.PublicKeyLength))
	if err := c.Fees.UnmarshalBinary(r.Read(inter.FeesSize)); err != nil {
		return err
	}
	c.Bump = r.ReadByte()
	return nil
}

// String returns the config as JSON, for logs and the CLI.
func (c *NcnConfig) String() string {
	b, _ := json.Marshal(c)
	return string(b)
}
