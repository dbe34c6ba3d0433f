// Package store keeps tip router records in a key-value database.
//
// Every record is stored as a discriminator byte followed by its fixed
// layout. Configs and weight tables are keyed by their program derived
// address, NCN registry records by the NCN address.
package store

import (
	"encoding"
	"errors"
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/kvdb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/memorydb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/table"
	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrInvalidDiscriminator = errors.New("invalid account discriminator")
)

// Store is a tip router record database.
type Store struct {
	mainDB kvdb.Store
	table  struct {
		Configs      kvdb.Store `table:"c"`
		WeightTables kvdb.Store `table:"w"`
		Ncns         kvdb.Store `table:"n"`
	}
}

// New creates a store on top of db.
func New(db kvdb.Store) *Store {
	s := &Store{
		mainDB: db,
	}
	table.MigrateTables(&s.table, s.mainDB)
	return s
}

// NewMemStore creates a store backed by memory, for tests and dry runs.
func NewMemStore() *Store {
	return New(memorydb.New())
}

// Close leaves the underlying database closed.
func (s *Store) Close() error {
	table.MigrateTables(&s.table, nil)
	return s.mainDB.Close()
}

func has(db kvdb.Store, key solana.PublicKey) (bool, error) {
	return db.Has(key.Bytes())
}

func get(db kvdb.Store, key solana.PublicKey, discriminator byte, v encoding.BinaryUnmarshaler) error {
	ok, err := db.Has(key.Bytes())
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccountNotFound
	}
	raw, err := db.Get(key.Bytes())
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return ErrAccountNotFound
	}
	if raw[0] != discriminator {
		return ErrInvalidDiscriminator
	}
	return v.UnmarshalBinary(raw[1:])
}

func put(db kvdb.Store, key solana.PublicKey, discriminator byte, v encoding.BinaryMarshaler) error {
	body, err := v.MarshalBinary()
	if err != nil {
		return err
	}
	return db.Put(key.Bytes(), append([]byte{discriminator}, body...))
}

// HasConfig reports whether a config is stored at addr.
func (s *Store) HasConfig(addr solana.PublicKey) (bool, error) {
	return has(s.table.Configs, addr)
}

// GetConfig loads the config stored at addr.
func (s *Store) GetConfig(addr solana.PublicKey) (*tiprouter.NcnConfig, error) {
	cfg := new(tiprouter.NcnConfig)
	if err := get(s.table.Configs, addr, tiprouter.ConfigDiscriminator, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", addr, err)
	}
	return cfg, nil
}

// SetConfig stores cfg at addr.
func (s *Store) SetConfig(addr solana.PublicKey, cfg *tiprouter.NcnConfig) error {
	return put(s.table.Configs, addr, tiprouter.ConfigDiscriminator, cfg)
}

// HasWeightTable reports whether a weight table is stored at addr.
func (s *Store) HasWeightTable(addr solana.PublicKey) (bool, error) {
	return has(s.table.WeightTables, addr)
}

// GetWeightTable loads the weight table stored at addr.
func (s *Store) GetWeightTable(addr solana.PublicKey) (*inter.WeightTable, error) {
	wt := new(inter.WeightTable)
	if err := get(s.table.WeightTables, addr, tiprouter.WeightTableDiscriminator, wt); err != nil {
		return nil, fmt.Errorf("weight table %s: %w", addr, err)
	}
	return wt, nil
}

// SetWeightTable stores wt at addr.
func (s *Store) SetWeightTable(addr solana.PublicKey, wt *inter.WeightTable) error {
	return put(s.table.WeightTables, addr, tiprouter.WeightTableDiscriminator, wt)
}

// GetNcn loads the registry record of the NCN at addr.
func (s *Store) GetNcn(addr solana.PublicKey) (*tiprouter.Ncn, error) {
	ncn := new(tiprouter.Ncn)
	if err := get(s.table.Ncns, addr, tiprouter.NcnDiscriminator, ncn); err != nil {
		return nil, fmt.Errorf("ncn %s: %w", addr, err)
	}
	return ncn, nil
}

// SetNcn stores the registry record of ncn under its address.
func (s *Store) SetNcn(ncn *tiprouter.Ncn) error {
	return put(s.table.Ncns, ncn.Address, tiprouter.NcnDiscriminator, ncn)
}

// ForEachNcn calls fn for every registered NCN in key order until fn returns
// false.
func (s *Store) ForEachNcn(fn func(*tiprouter.Ncn) bool) error {
	it := s.table.Ncns.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		raw := it.Value()
		if len(raw) == 0 || raw[0] != tiprouter.NcnDiscriminator {
			return fmt.Errorf("ncn %x: %w", it.Key(), ErrInvalidDiscriminator)
		}
		ncn := new(tiprouter.Ncn)
		if err := ncn.UnmarshalBinary(raw[1:]); err != nil {
			return fmt.Errorf("ncn %x: %w", it.Key(), err)
		}
		if !fn(ncn) {
			break
		}
	}
	return it.Error()
}
