package tiprouter

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// Record kinds, stored as the first byte of every record.
const (
	ConfigDiscriminator      byte = 1
	WeightTableDiscriminator byte = 2
	NcnDiscriminator         byte = 3
)

var (
	configSeed      = []byte("config")
	weightTableSeed = []byte("WEIGHT_TABLE")
)

// ConfigSeeds returns the address seeds of the config of ncn.
func ConfigSeeds(ncn solana.PublicKey) [][]byte {
	return [][]byte{configSeed, ncn.Bytes()}
}

// WeightTableSeeds returns the address seeds of the weight table of ncn for
// ncnEpoch.
func WeightTableSeeds(ncn solana.PublicKey, ncnEpoch uint64) [][]byte {
	epoch := make([]byte, 8)
	binary.LittleEndian.PutUint64(epoch, ncnEpoch)
	return [][]byte{weightTableSeed, ncn.Bytes(), epoch}
}

// FindConfigAddress derives the config address of ncn and its bump seed.
func FindConfigAddress(programID, ncn solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(ConfigSeeds(ncn), programID)
}

// FindWeightTableAddress derives the weight table address of ncn for ncnEpoch
// and its bump seed.
func FindWeightTableAddress(programID, ncn solana.PublicKey, ncnEpoch uint64) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(WeightTableSeeds(ncn, ncnEpoch), programID)
}
