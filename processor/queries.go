package processor

import (
	"github.com/gagliardetto/solana-go"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

// Config returns the config of an NCN.
func (p *Processor) Config(ncn solana.PublicKey) (*tiprouter.NcnConfig, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	addr, _, err := tiprouter.FindConfigAddress(p.rules.ProgramID, ncn)
	if err != nil {
		return nil, err
	}
	return p.store.GetConfig(addr)
}

// CurrentFee returns the fee of an NCN in the current epoch.
func (p *Processor) CurrentFee(ncn solana.PublicKey) (inter.Fee, error) {
	cfg, err := p.Config(ncn)
	if err != nil {
		return inter.Fee{}, err
	}
	_, epoch := p.clock.Now()
	return cfg.Fees.CurrentFee(epoch), nil
}

// DaoFee returns the re-based DAO fee of an NCN in the current epoch.
func (p *Processor) DaoFee(ncn solana.PublicKey) (uint64, error) {
	cfg, err := p.Config(ncn)
	if err != nil {
		return 0, err
	}
	_, epoch := p.clock.Now()
	return cfg.Fees.DaoFee(epoch)
}

// NcnFee returns the re-based NCN fee of an NCN in the current epoch.
func (p *Processor) NcnFee(ncn solana.PublicKey) (uint64, error) {
	cfg, err := p.Config(ncn)
	if err != nil {
		return 0, err
	}
	_, epoch := p.clock.Now()
	return cfg.Fees.NcnFee(epoch)
}

// WeightTable returns the weight table of an NCN for epoch.
func (p *Processor) WeightTable(ncn solana.PublicKey, epoch uint64) (*inter.WeightTable, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	addr, _, err := tiprouter.FindWeightTableAddress(p.rules.ProgramID, ncn, epoch)
	if err != nil {
		return nil, err
	}
	return p.store.GetWeightTable(addr)
}

// Ncn returns the registry record of an NCN.
func (p *Processor) Ncn(ncn solana.PublicKey) (*tiprouter.Ncn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.store.GetNcn(ncn)
}

// Now returns the current slot and epoch as seen by the processor.
func (p *Processor) Now() (slot, epoch uint64) {
	return p.clock.Now()
}
