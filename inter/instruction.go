package inter

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/utils/cser"
)

// InstructionTag is the first byte of an instruction payload.
type InstructionTag uint8

const (
	InitializeConfigTag InstructionTag = iota
	SetConfigFeesTag
	SetNewAdminTag
	InitializeWeightTableTag
	AdminUpdateWeightTableTag
	FinalizeWeightTableTag
	RegisterNcnTag
)

func (t InstructionTag) String() string {
	switch t {
	case InitializeConfigTag:
		return "InitializeConfig"
	case SetConfigFeesTag:
		return "SetConfigFees"
	case SetNewAdminTag:
		return "SetNewAdmin"
	case InitializeWeightTableTag:
		return "InitializeWeightTable"
	case AdminUpdateWeightTableTag:
		return "AdminUpdateWeightTable"
	case FinalizeWeightTableTag:
		return "FinalizeWeightTable"
	case RegisterNcnTag:
		return "RegisterNcn"
	}
	return fmt.Sprintf("InstructionTag(%d)", uint8(t))
}

// Instruction is a decoded instruction payload.
type Instruction interface {
	Tag() InstructionTag
	MarshalCSER(w *cser.Writer) error
	UnmarshalCSER(r *cser.Reader) error
}

// AdminRole selects which config admin SetNewAdmin replaces.
type AdminRole uint8

const (
	FeeAdminRole AdminRole = iota
	TieBreakerAdminRole
)

func (r AdminRole) String() string {
	switch r {
	case FeeAdminRole:
		return "fee"
	case TieBreakerAdminRole:
		return "tie-breaker"
	}
	return fmt.Sprintf("AdminRole(%d)", uint8(r))
}

// ParseAdminRole is the inverse of AdminRole.String.
func ParseAdminRole(s string) (AdminRole, error) {
	switch s {
	case "fee":
		return FeeAdminRole, nil
	case "tie-breaker":
		return TieBreakerAdminRole, nil
	}
	return 0, fmt.Errorf("unknown admin role %q", s)
}

type (
	// RegisterNcn records an NCN with its admins.
	RegisterNcn struct {
		Ncn              solana.PublicKey
		Admin            solana.PublicKey
		WeightTableAdmin solana.PublicKey
	}

	// InitializeConfig creates the NCN config with its initial fees.
	InitializeConfig struct {
		Ncn               solana.PublicKey
		FeeWallet         solana.PublicKey
		TieBreakerAdmin   solana.PublicKey
		DaoFeeBps         uint64
		NcnFeeBps         uint64
		BlockEngineFeeBps uint64
	}

	// SetConfigFees schedules a fee change for the next epoch.
	SetConfigFees struct {
		Ncn                  solana.PublicKey
		NewDaoFeeBps         *uint64
		NewNcnFeeBps         *uint64
		NewBlockEngineFeeBps *uint64
		NewFeeWallet         *solana.PublicKey
	}

	// SetNewAdmin replaces one of the config admins.
	SetNewAdmin struct {
		Ncn      solana.PublicKey
		Role     AdminRole
		NewAdmin solana.PublicKey
	}

	// InitializeWeightTable creates the empty table of an epoch.
	InitializeWeightTable struct {
		Ncn   solana.PublicKey
		Epoch uint64
	}

	// AdminUpdateWeightTable sets the weight of one mint.
	AdminUpdateWeightTable struct {
		Ncn    solana.PublicKey
		Epoch  uint64
		Mint   solana.PublicKey
		Weight Share
	}

	// FinalizeWeightTable seals a table once the caller has confirmed its mints.
	FinalizeWeightTable struct {
		Ncn       solana.PublicKey
		Epoch     uint64
		MintHash  uint64
		MintCount uint8
	}
)

func (*RegisterNcn) Tag() InstructionTag            { return RegisterNcnTag }
func (*InitializeConfig) Tag() InstructionTag       { return InitializeConfigTag }
func (*SetConfigFees) Tag() InstructionTag          { return SetConfigFeesTag }
func (*SetNewAdmin) Tag() InstructionTag            { return SetNewAdminTag }
func (*InitializeWeightTable) Tag() InstructionTag  { return InitializeWeightTableTag }
func (*AdminUpdateWeightTable) Tag() InstructionTag { return AdminUpdateWeightTableTag }
func (*FinalizeWeightTable) Tag() InstructionTag    { return FinalizeWeightTableTag }

func writeKey(w *cser.Writer, k solana.PublicKey) {
	w.FixedBytes(k[:])
}

func readKey(r *cser.Reader) (k solana.PublicKey) {
	r.FixedBytes(k[:])
	return k
}

func writeOptionalKey(w *cser.Writer, k *solana.PublicKey) {
	w.Bool(k != nil)
	if k != nil {
		writeKey(w, *k)
	}
}

func readOptionalKey(r *cser.Reader) *solana.PublicKey {
	if !r.Bool() {
		return nil
	}
	k := readKey(r)
	return &k
}

func (i *RegisterNcn) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	writeKey(w, i.Admin)
	writeKey(w, i.WeightTableAdmin)
	return nil
}

func (i *RegisterNcn) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.Admin = readKey(r)
	i.WeightTableAdmin = readKey(r)
	return nil
}

func (i *InitializeConfig) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	writeKey(w, i.FeeWallet)
	writeKey(w, i.TieBreakerAdmin)
	w.U64(i.DaoFeeBps)
	w.U64(i.NcnFeeBps)
	w.U64(i.BlockEngineFeeBps)
	return nil
}

func (i *InitializeConfig) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.FeeWallet = readKey(r)
	i.TieBreakerAdmin = readKey(r)
	i.DaoFeeBps = r.U64()
	i.NcnFeeBps = r.U64()
	i.BlockEngineFeeBps = r.U64()
	return nil
}

func (i *SetConfigFees) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	w.OptionalU64(i.NewDaoFeeBps)
	w.OptionalU64(i.NewNcnFeeBps)
	w.OptionalU64(i.NewBlockEngineFeeBps)
	writeOptionalKey(w, i.NewFeeWallet)
	return nil
}

func (i *SetConfigFees) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.NewDaoFeeBps = r.OptionalU64()
	i.NewNcnFeeBps = r.OptionalU64()
	i.NewBlockEngineFeeBps = r.OptionalU64()
	i.NewFeeWallet = readOptionalKey(r)
	return nil
}

// Update converts the arguments into a fee update.
func (i *SetConfigFees) Update() FeeUpdate {
	return FeeUpdate{
		DaoFeeBps:         i.NewDaoFeeBps,
		NcnFeeBps:         i.NewNcnFeeBps,
		BlockEngineFeeBps: i.NewBlockEngineFeeBps,
		Wallet:            i.NewFeeWallet,
	}
}

func (i *SetNewAdmin) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	w.U8(uint8(i.Role))
	writeKey(w, i.NewAdmin)
	return nil
}

func (i *SetNewAdmin) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.Role = AdminRole(r.U8())
	if i.Role > TieBreakerAdminRole {
		return fmt.Errorf("%w: admin role %d", cser.ErrMalformedEncoding, i.Role)
	}
	i.NewAdmin = readKey(r)
	return nil
}

func (i *InitializeWeightTable) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	w.U64(i.Epoch)
	return nil
}

func (i *InitializeWeightTable) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.Epoch = r.U64()
	return nil
}

func (i *AdminUpdateWeightTable) MarshalCSER(w *cser.Writer) error {
	weight := i.Weight.Bytes()
	writeKey(w, i.Ncn)
	w.U64(i.Epoch)
	writeKey(w, i.Mint)
	w.FixedBytes(weight[:])
	return nil
}

func (i *AdminUpdateWeightTable) UnmarshalCSER(r *cser.Reader) error {
	var weight [ShareSize]byte
	i.Ncn = readKey(r)
	i.Epoch = r.U64()
	i.Mint = readKey(r)
	r.FixedBytes(weight[:])
	i.Weight = ShareFromBytes(weight)
	return nil
}

func (i *FinalizeWeightTable) MarshalCSER(w *cser.Writer) error {
	writeKey(w, i.Ncn)
	w.U64(i.Epoch)
	w.U64(i.MintHash)
	w.U8(i.MintCount)
	return nil
}

func (i *FinalizeWeightTable) UnmarshalCSER(r *cser.Reader) error {
	i.Ncn = readKey(r)
	i.Epoch = r.U64()
	i.MintHash = r.U64()
	i.MintCount = r.U8()
	return nil
}

// EncodeInstruction serializes ix as its tag byte followed by the cser frame
// of its arguments.
func EncodeInstruction(ix Instruction) ([]byte, error) {
	body, err := cser.MarshalBinaryAdapter(ix.MarshalCSER)
	if err != nil {
		return nil, err
	}
	return append([]byte{byte(ix.Tag())}, body...), nil
}

// NewInstruction returns an empty instruction for tag.
func NewInstruction(tag InstructionTag) (Instruction, error) {
	switch tag {
	case InitializeConfigTag:
		return &InitializeConfig{}, nil
	case SetConfigFeesTag:
		return &SetConfigFees{}, nil
	case SetNewAdminTag:
		return &SetNewAdmin{}, nil
	case InitializeWeightTableTag:
		return &InitializeWeightTable{}, nil
	case AdminUpdateWeightTableTag:
		return &AdminUpdateWeightTable{}, nil
	case FinalizeWeightTableTag:
		return &FinalizeWeightTable{}, nil
	case RegisterNcnTag:
		return &RegisterNcn{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownInstruction, tag)
}

// DecodeInstruction is the inverse of EncodeInstruction.
func DecodeInstruction(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, cser.ErrMalformedEncoding
	}
	ix, err := NewInstruction(InstructionTag(data[0]))
	if err != nil {
		return nil, err
	}
	if err := cser.UnmarshalBinaryAdapter(data[1:], ix.UnmarshalCSER); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ix.Tag(), err)
	}
	return ix, nil
}
