package tiprouter

import (
	"crypto/ed25519"
	"math/rand"

	"github.com/gagliardetto/solana-go"
)

// FakeKey returns the n-th deterministic keypair of the fake network.
// The same n always yields the same key.
func FakeKey(n int) solana.PrivateKey {
	reader := rand.New(rand.NewSource(int64(n)))

	seed := make([]byte, ed25519.SeedSize)
	if _, err := reader.Read(seed); err != nil {
		panic(err)
	}
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed))
}
