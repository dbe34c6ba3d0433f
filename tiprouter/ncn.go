package tiprouter

import (
	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/utils/fast"
)

// NcnSize is the size of the Ncn layout.
const NcnSize = 3 * solana.PublicKeyLength

// Ncn is the registry record of a node consensus network. It carries the two
// authorities the tip router checks: Admin owns the NCN config and
// WeightTableAdmin maintains the weight tables.
type Ncn struct {
	Address          solana.PublicKey
	Admin            solana.PublicKey
	WeightTableAdmin solana.PublicKey
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (n *Ncn) MarshalBinary() ([]byte, error) {
	w := fast.NewWriter(make([]byte, 0, NcnSize))
	w.Write(n.Address[:])
	w.Write(n.Admin[:])
	w.Write(n.WeightTableAdmin[:])
	return w.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (n *Ncn) UnmarshalBinary(raw []byte) error {
	if len(raw) != NcnSize {
		return inter.ErrMalformedLayout
	}
	r := fast.NewReader(raw)
	copy(n.Address[:], r.Read(solana.PublicKeyLength))
	copy(n.Admin[:], r.Read(solana.PublicKeyLength))
	copy(n.WeightTableAdmin[:], r.Read(solana.PublicKeyLength))
	return nil
}
