package inter

import "github.com/gagliardetto/solana-go"

// testKey returns a key whose bytes are all b.
func testKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

func u64(v uint64) *uint64 {
	return &v
}
