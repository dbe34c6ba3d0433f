// Package processor applies tip router instructions to the record store.
//
// Every instruction works on copies of the records it touches and writes them
// back only when it fully succeeded. Instructions are serialized; the
// ordering guarantees of the fee schedule come from epoch numbers, not from
// the order in which instructions arrive.
package processor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/store"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

// Processor executes instructions against a Store.
type Processor struct {
	mu sync.Mutex

	store *store.Store
	rules tiprouter.Rules
	clock Clock
	log   logrus.FieldLogger
}

// New creates a processor. Records are addressed under rules.ProgramID.
func New(s *store.Store, rules tiprouter.Rules, clock Clock, log logrus.FieldLogger) *Processor {
	return &Processor{
		store: s,
		rules: rules,
		clock: clock,
		log:   log,
	}
}

// Execute decodes data and applies the instruction on behalf of signer.
func (p *Processor) Execute(signer solana.PublicKey, data []byte) error {
	ix, err := inter.DecodeInstruction(data)
	if err != nil {
		return err
	}

	switch ix := ix.(type) {
	case *inter.RegisterNcn:
		return p.RegisterNcn(signer, ix)
	case *inter.InitializeConfig:
		return p.InitializeConfig(signer, ix)
	case *inter.SetConfigFees:
		return p.SetConfigFees(signer, ix)
	case *inter.SetNewAdmin:
		return p.SetNewAdmin(signer, ix)
	case *inter.InitializeWeightTable:
		return p.InitializeWeightTable(signer, ix)
	case *inter.AdminUpdateWeightTable:
		return p.AdminUpdateWeightTable(signer, ix)
	case *inter.FinalizeWeightTable:
		return p.FinalizeWeightTable(signer, ix)
	}
	return fmt.Errorf("%w: %s", inter.ErrUnknownInstruction, ix.Tag())
}

// RegisterNcn adds an NCN to the registry. The signer must be the admin it
// registers.
func (p *Processor) RegisterNcn(signer solana.PublicKey, ix *inter.RegisterNcn) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if signer != ix.Admin {
		return ErrIncorrectNcnAdmin
	}
	if ix.Ncn.IsZero() {
		return ErrIncorrectNcn
	}
	if _, err := p.store.GetNcn(ix.Ncn); err == nil {
		return fmt.Errorf("ncn %s: %w", ix.Ncn, ErrAccountAlreadyInitialized)
	} else if !errors.Is(err, store.ErrAccountNotFound) {
		return err
	}

	ncn := &tiprouter.Ncn{
		Address:          ix.Ncn,
		Admin:            ix.Admin,
		WeightTableAdmin: ix.WeightTableAdmin,
	}
	if err := p.store.SetNcn(ncn); err != nil {
		return err
	}
	p.log.WithField("ncn", ix.Ncn).Info("NCN registered")
	return nil
}

// InitializeConfig creates the config of an NCN. The NCN admin signs and
// becomes the fee admin. Fees are active from the current epoch.
func (p *Processor) InitializeConfig(signer solana.PublicKey, ix *inter.InitializeConfig) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ncn, err := p.store.GetNcn(ix.Ncn)
	if err != nil {
		return err
	}
	if signer != ncn.Admin {
		return ErrIncorrectNcnAdmin
	}
	for _, bps := range []uint64{ix.DaoFeeBps, ix.NcnFeeBps, ix.BlockEngineFeeBps} {
		if bps > inter.MaxFeeBps {
			return inter.ErrFeeCapExceeded
		}
	}

	addr, bump, err := tiprouter.FindConfigAddress(p.rules.ProgramID, ix.Ncn)
	if err != nil {
		return err
	}
	if ok, err := p.store.HasConfig(addr); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("config %s: %w", addr, ErrAccountAlreadyInitialized)
	}

	_, epoch := p.clock.Now()
	fees := inter.NewFees(ix.FeeWallet, ix.DaoFeeBps, ix.NcnFeeBps, ix.BlockEngineFeeBps, epoch)
	cfg := tiprouter.NewNcnConfig(ix.Ncn, ix.TieBreakerAdmin, signer, fees, bump)
	if err := p.store.SetConfig(addr, cfg); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"ncn":   ix.Ncn,
		"epoch": epoch,
	}).Info("NCN config initialized")
	return nil
}

// SetConfigFees schedules a fee change for the next epoch. Either the NCN
// admin or the fee admin may sign.
func (p *Processor) SetConfigFees(signer solana.PublicKey, ix *inter.SetConfigFees) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ncn, addr, cfg, err := p.loadConfig(ix.Ncn)
	if err != nil {
		return err
	}
	if signer != ncn.Admin && signer != cfg.FeeAdmin {
		return ErrIncorrectFeeAdmin
	}

	_, epoch := p.clock.Now()
	if err := cfg.Fees.SetNewFees(ix.Update(), epoch); err != nil {
		return err
	}
	if err := p.store.SetConfig(addr, cfg); err != nil {
		return err
	}

	next := cfg.Fees.CurrentFee(epoch + 1)
	p.log.WithFields(logrus.Fields{
		"ncn":         ix.Ncn,
		"epoch":       epoch,
		"dao":         next.DaoShareBps,
		"ncnShare":    next.NcnShareBps,
		"blockEngine": next.BlockEngineFeeBps,
		"wallet":      next.Wallet,
	}).Info("Fees scheduled")
	return nil
}

// SetNewAdmin replaces the fee admin or the tie-breaker admin. Only the NCN
// admin may sign.
func (p *Processor) SetNewAdmin(signer solana.PublicKey, ix *inter.SetNewAdmin) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ncn, addr, cfg, err := p.loadConfig(ix.Ncn)
	if err != nil {
		return err
	}
	if signer != ncn.Admin {
		return ErrIncorrectNcnAdmin
	}

	switch ix.Role {
	case inter.FeeAdminRole:
		cfg.FeeAdmin = ix.NewAdmin
	case inter.TieBreakerAdminRole:
		cfg.TieBreakerAdmin = ix.NewAdmin
	default:
		return fmt.Errorf("unknown admin role %d", ix.Role)
	}
	if err := p.store.SetConfig(addr, cfg); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"ncn":   ix.Ncn,
		"role":  ix.Role,
		"admin": ix.NewAdmin,
	}).Info("Admin changed")
	return nil
}

// InitializeWeightTable creates the empty weight table of an NCN for an epoch
// that has already started.
func (p *Processor) InitializeWeightTable(signer solana.PublicKey, ix *inter.InitializeWeightTable) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := p.store.GetNcn(ix.Ncn); err != nil {
		return err
	}

	slot, epoch := p.clock.Now()
	if ix.Epoch > epoch {
		return fmt.Errorf("%w: epoch %d, current %d", ErrCannotCreateFutureWeightTables, ix.Epoch, epoch)
	}

	addr, bump, err := tiprouter.FindWeightTableAddress(p.rules.ProgramID, ix.Ncn, ix.Epoch)
	if err != nil {
		return err
	}
	if ok, err := p.store.HasWeightTable(addr); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("weight table %s: %w", addr, ErrAccountAlreadyInitialized)
	}

	wt := inter.NewWeightTable(ix.Ncn, ix.Epoch, slot, bump)
	if err := p.store.SetWeightTable(addr, wt); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"ncn":    ix.Ncn,
		"epoch":  ix.Epoch,
		"slot":   slot,
		"signer": signer,
	}).Info("Weight table initialized")
	return nil
}

// AdminUpdateWeightTable sets the weight of one mint. Only the weight table
// admin of the NCN may sign.
func (p *Processor) AdminUpdateWeightTable(signer solana.PublicKey, ix *inter.AdminUpdateWeightTable) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	addr, wt, err := p.loadWeightTableAsAdmin(signer, ix.Ncn, ix.Epoch)
	if err != nil {
		return err
	}
	if err := wt.SetWeight(ix.Mint, ix.Weight); err != nil {
		return err
	}
	if err := p.store.SetWeightTable(addr, wt); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"ncn":    ix.Ncn,
		"epoch":  ix.Epoch,
		"mint":   ix.Mint,
		"weight": ix.Weight,
	}).Debug("Weight set")
	return nil
}

// FinalizeWeightTable seals a weight table at the current slot once the
// signer has confirmed the mints it holds.
func (p *Processor) FinalizeWeightTable(signer solana.PublicKey, ix *inter.FinalizeWeightTable) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	addr, wt, err := p.loadWeightTableAsAdmin(signer, ix.Ncn, ix.Epoch)
	if err != nil {
		return err
	}
	if wt.EntryCount() == 0 {
		return inter.ErrNoMintsInTable
	}
	if err := wt.CheckMintsOkay(ix.MintHash, ix.MintCount); err != nil {
		return err
	}

	slot, _ := p.clock.Now()
	if err := wt.Finalize(slot); err != nil {
		return err
	}
	if err := p.store.SetWeightTable(addr, wt); err != nil {
		return err
	}

	p.log.WithFields(logrus.Fields{
		"ncn":   ix.Ncn,
		"epoch": ix.Epoch,
		"slot":  slot,
		"mints": wt.EntryCount(),
		"hash":  wt.Hash().String(),
	}).Info("Weight table finalized")
	return nil
}

func (p *Processor) loadConfig(ncnAddr solana.PublicKey) (*tiprouter.Ncn, solana.PublicKey, *tiprouter.NcnConfig, error) {
	ncn, err := p.store.GetNcn(ncnAddr)
	if err != nil {
		return nil, solana.PublicKey{}, nil, err
	}
	addr, _, err := tiprouter.FindConfigAddress(p.rules.ProgramID, ncnAddr)
	if err != nil {
		return nil, solana.PublicKey{}, nil, err
	}
	cfg, err := p.store.GetConfig(addr)
	if err != nil {
		return nil, solana.PublicKey{}, nil, err
	}
	return ncn, addr, cfg, nil
}

func (p *Processor) loadWeightTableAsAdmin(signer, ncnAddr solana.PublicKey, epoch uint64) (solana.PublicKey, *inter.WeightTable, error) {
	ncn, err := p.store.GetNcn(ncnAddr)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	if signer != ncn.WeightTableAdmin {
		return solana.PublicKey{}, nil, ErrIncorrectWeightTableAdmin
	}
	addr, _, err := tiprouter.FindWeightTableAddress(p.rules.ProgramID, ncnAddr, epoch)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	wt, err := p.store.GetWeightTable(addr)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	return addr, wt, nil
}
