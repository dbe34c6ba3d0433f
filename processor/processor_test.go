package processor

import (
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/logger"
	"github.com/rony4d/go-tiprouter/store"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

type testEnv struct {
	p     *Processor
	clock *FixedClock

	ncn        solana.PublicKey
	admin      solana.PublicKey
	wtAdmin    solana.PublicKey
	feeWallet  solana.PublicKey
	tieBreaker solana.PublicKey
	stranger   solana.PublicKey
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := store.NewMemStore()
	t.Cleanup(func() { _ = s.Close() })

	clock := &FixedClock{Slot: 5 * 32, Epoch: 5}
	return &testEnv{
		p:          New(s, tiprouter.FakeNetRules(), clock, logger.Discard()),
		clock:      clock,
		ncn:        tiprouter.FakeKey(1).PublicKey(),
		admin:      tiprouter.FakeKey(2).PublicKey(),
		wtAdmin:    tiprouter.FakeKey(3).PublicKey(),
		feeWallet:  tiprouter.FakeKey(4).PublicKey(),
		tieBreaker: tiprouter.FakeKey(5).PublicKey(),
		stranger:   tiprouter.FakeKey(9).PublicKey(),
	}
}

func (e *testEnv) register(t *testing.T) {
	t.Helper()
	require.NoError(t, e.p.RegisterNcn(e.admin, &inter.RegisterNcn{
		Ncn:              e.ncn,
		Admin:            e.admin,
		WeightTableAdmin: e.wtAdmin,
	}))
}

func (e *testEnv) initConfig(t *testing.T) {
	t.Helper()
	e.register(t)
	require.NoError(t, e.p.InitializeConfig(e.admin, &inter.InitializeConfig{
		Ncn:               e.ncn,
		FeeWallet:         e.feeWallet,
		TieBreakerAdmin:   e.tieBreaker,
		DaoFeeBps:         100,
		NcnFeeBps:         200,
		BlockEngineFeeBps: 50,
	}))
}

func u64(v uint64) *uint64 {
	return &v
}

func TestRegisterNcn(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	ix := &inter.RegisterNcn{Ncn: e.ncn, Admin: e.admin, WeightTableAdmin: e.wtAdmin}
	require.ErrorIs(e.p.RegisterNcn(e.stranger, ix), ErrIncorrectNcnAdmin)
	require.ErrorIs(e.p.RegisterNcn(e.admin, &inter.RegisterNcn{Admin: e.admin}), ErrIncorrectNcn)

	require.NoError(e.p.RegisterNcn(e.admin, ix))
	require.ErrorIs(e.p.RegisterNcn(e.admin, ix), ErrAccountAlreadyInitialized)

	ncn, err := e.p.Ncn(e.ncn)
	require.NoError(err)
	require.Equal(e.wtAdmin, ncn.WeightTableAdmin)
}

func TestInitializeConfig(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	ix := &inter.InitializeConfig{
		Ncn:               e.ncn,
		FeeWallet:         e.feeWallet,
		TieBreakerAdmin:   e.tieBreaker,
		DaoFeeBps:         100,
		NcnFeeBps:         200,
		BlockEngineFeeBps: 50,
	}
	require.ErrorIs(e.p.InitializeConfig(e.admin, ix), store.ErrAccountNotFound)

	e.register(t)
	require.ErrorIs(e.p.InitializeConfig(e.stranger, ix), ErrIncorrectNcnAdmin)

	capped := *ix
	capped.BlockEngineFeeBps = inter.MaxFeeBps + 1
	require.ErrorIs(e.p.InitializeConfig(e.admin, &capped), inter.ErrFeeCapExceeded)

	require.NoError(e.p.InitializeConfig(e.admin, ix))
	require.ErrorIs(e.p.InitializeConfig(e.admin, ix), ErrAccountAlreadyInitialized)

	cfg, err := e.p.Config(e.ncn)
	require.NoError(err)
	require.Equal(e.ncn, cfg.Ncn)
	require.Equal(e.admin, cfg.FeeAdmin)
	require.Equal(e.tieBreaker, cfg.TieBreakerAdmin)
	require.Equal(inter.NewFee(e.feeWallet, 100, 200, 50, 5), cfg.Fees.CurrentFee(5))

	_, bump, err := tiprouter.FindConfigAddress(tiprouter.FakeNetRules().ProgramID, e.ncn)
	require.NoError(err)
	require.Equal(bump, cfg.Bump)
}

func TestSetConfigFees(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	e.initConfig(t)

	ix := &inter.SetConfigFees{Ncn: e.ncn, NewDaoFeeBps: u64(150)}
	require.ErrorIs(e.p.SetConfigFees(e.stranger, ix), ErrIncorrectFeeAdmin)
	require.NoError(e.p.SetConfigFees(e.admin, ix))

	fee, err := e.p.CurrentFee(e.ncn)
	require.NoError(err)
	require.Equal(uint64(100), fee.DaoShareBps, "change must wait for the next epoch")

	e.clock.Epoch, e.clock.Slot = 6, 6*32
	fee, err = e.p.CurrentFee(e.ncn)
	require.NoError(err)
	require.Equal(uint64(150), fee.DaoShareBps)
	require.Equal(uint64(200), fee.NcnShareBps)
	require.Equal(uint64(50), fee.BlockEngineFeeBps)

	dao, err := e.p.DaoFee(e.ncn)
	require.NoError(err)
	require.Equal(uint64(150*10000/9950), dao)
	ncnFee, err := e.p.NcnFee(e.ncn)
	require.NoError(err)
	require.Equal(uint64(200*10000/9950), ncnFee)

	// a rejected update leaves the stored config alone
	before, err := e.p.Config(e.ncn)
	require.NoError(err)
	err = e.p.SetConfigFees(e.admin, &inter.SetConfigFees{
		Ncn:          e.ncn,
		NewDaoFeeBps: u64(1),
		NewNcnFeeBps: u64(inter.MaxFeeBps + 1),
	})
	require.ErrorIs(err, inter.ErrFeeCapExceeded)
	after, err := e.p.Config(e.ncn)
	require.NoError(err)
	require.Equal(before, after)

	_, err = e.p.CurrentFee(e.stranger)
	require.ErrorIs(err, store.ErrAccountNotFound)
}

func TestSetNewAdmin(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	e.initConfig(t)

	feeAdmin := tiprouter.FakeKey(7).PublicKey()
	ix := &inter.SetNewAdmin{Ncn: e.ncn, Role: inter.FeeAdminRole, NewAdmin: feeAdmin}
	require.ErrorIs(e.p.SetNewAdmin(feeAdmin, ix), ErrIncorrectNcnAdmin)
	require.NoError(e.p.SetNewAdmin(e.admin, ix))

	tieBreaker := tiprouter.FakeKey(8).PublicKey()
	require.NoError(e.p.SetNewAdmin(e.admin, &inter.SetNewAdmin{Ncn: e.ncn, Role: inter.TieBreakerAdminRole, NewAdmin: tieBreaker}))

	cfg, err := e.p.Config(e.ncn)
	require.NoError(err)
	require.Equal(feeAdmin, cfg.FeeAdmin)
	require.Equal(tieBreaker, cfg.TieBreakerAdmin)

	// the new fee admin may now change fees
	require.NoError(e.p.SetConfigFees(feeAdmin, &inter.SetConfigFees{Ncn: e.ncn, NewNcnFeeBps: u64(300)}))
}

func TestWeightTableLifecycle(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	initIx := &inter.InitializeWeightTable{Ncn: e.ncn, Epoch: 5}
	require.ErrorIs(e.p.InitializeWeightTable(e.wtAdmin, initIx), store.ErrAccountNotFound)
	e.register(t)

	require.ErrorIs(e.p.InitializeWeightTable(e.wtAdmin, &inter.InitializeWeightTable{Ncn: e.ncn, Epoch: 6}),
		ErrCannotCreateFutureWeightTables)
	require.NoError(e.p.InitializeWeightTable(e.wtAdmin, initIx))
	require.ErrorIs(e.p.InitializeWeightTable(e.wtAdmin, initIx), ErrAccountAlreadyInitialized)

	wt, err := e.p.WeightTable(e.ncn, 5)
	require.NoError(err)
	require.Equal(uint64(5*32), wt.SlotCreated())
	require.False(wt.Finalized())

	mintA, mintB := tiprouter.FakeKey(20).PublicKey(), tiprouter.FakeKey(21).PublicKey()
	update := func(mint solana.PublicKey, weight uint64) *inter.AdminUpdateWeightTable {
		return &inter.AdminUpdateWeightTable{Ncn: e.ncn, Epoch: 5, Mint: mint, Weight: inter.NewShare(weight)}
	}
	require.ErrorIs(e.p.AdminUpdateWeightTable(e.admin, update(mintA, 1)), ErrIncorrectWeightTableAdmin)
	require.NoError(e.p.AdminUpdateWeightTable(e.wtAdmin, update(mintA, 1)))
	require.NoError(e.p.AdminUpdateWeightTable(e.wtAdmin, update(mintB, 2)))
	require.NoError(e.p.AdminUpdateWeightTable(e.wtAdmin, update(mintA, 3)))

	hash := inter.MintHash([]solana.PublicKey{mintB, mintA})
	finalize := &inter.FinalizeWeightTable{Ncn: e.ncn, Epoch: 5, MintHash: hash, MintCount: 2}

	require.ErrorIs(e.p.FinalizeWeightTable(e.stranger, finalize), ErrIncorrectWeightTableAdmin)
	require.ErrorIs(e.p.FinalizeWeightTable(e.wtAdmin, &inter.FinalizeWeightTable{Ncn: e.ncn, Epoch: 5, MintHash: hash, MintCount: 3}),
		inter.ErrWeightMintsDoNotMatchLength)
	require.ErrorIs(e.p.FinalizeWeightTable(e.wtAdmin, &inter.FinalizeWeightTable{Ncn: e.ncn, Epoch: 5, MintHash: hash + 1, MintCount: 2}),
		inter.ErrWeightMintsDoNotMatchMintHash)

	e.clock.Slot = 5*32 + 7
	require.NoError(e.p.FinalizeWeightTable(e.wtAdmin, finalize))

	e.clock.Slot = 5*32 + 9
	require.ErrorIs(e.p.FinalizeWeightTable(e.wtAdmin, finalize), inter.ErrWeightTableFinalized)
	require.ErrorIs(e.p.AdminUpdateWeightTable(e.wtAdmin, update(mintA, 4)), inter.ErrWeightTableFinalized)

	wt, err = e.p.WeightTable(e.ncn, 5)
	require.NoError(err)
	require.True(wt.Finalized())
	require.Equal(uint64(5*32+7), wt.SlotFinalized())
	w, ok := wt.FindWeight(mintA)
	require.True(ok)
	require.Equal(inter.NewShare(3), w)
}

func TestFinalizeWeightTable_Empty(t *testing.T) {
	e := newTestEnv(t)
	e.register(t)
	require.NoError(t, e.p.InitializeWeightTable(e.wtAdmin, &inter.InitializeWeightTable{Ncn: e.ncn, Epoch: 4}))

	err := e.p.FinalizeWeightTable(e.wtAdmin, &inter.FinalizeWeightTable{Ncn: e.ncn, Epoch: 4})
	require.ErrorIs(t, err, inter.ErrNoMintsInTable)
}

func TestExecute(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)

	exec := func(signer solana.PublicKey, ix inter.Instruction) error {
		data, err := inter.EncodeInstruction(ix)
		require.NoError(err)
		return e.p.Execute(signer, data)
	}

	require.NoError(exec(e.admin, &inter.RegisterNcn{Ncn: e.ncn, Admin: e.admin, WeightTableAdmin: e.wtAdmin}))
	require.NoError(exec(e.admin, &inter.InitializeConfig{Ncn: e.ncn, FeeWallet: e.feeWallet, TieBreakerAdmin: e.tieBreaker, DaoFeeBps: 1}))
	require.NoError(exec(e.admin, &inter.SetConfigFees{Ncn: e.ncn, NewDaoFeeBps: u64(2)}))
	require.NoError(exec(e.admin, &inter.SetNewAdmin{Ncn: e.ncn, Role: inter.FeeAdminRole, NewAdmin: e.stranger}))
	require.NoError(exec(e.wtAdmin, &inter.InitializeWeightTable{Ncn: e.ncn, Epoch: 5}))
	require.NoError(exec(e.wtAdmin, &inter.AdminUpdateWeightTable{Ncn: e.ncn, Epoch: 5, Mint: e.feeWallet, Weight: inter.NewShare(1)}))
	require.NoError(exec(e.wtAdmin, &inter.FinalizeWeightTable{
		Ncn:       e.ncn,
		Epoch:     5,
		MintHash:  inter.MintHash([]solana.PublicKey{e.feeWallet}),
		MintCount: 1,
	}))

	cfg, err := e.p.Config(e.ncn)
	require.NoError(err)
	require.Equal(e.stranger, cfg.FeeAdmin)
	require.Equal(uint64(2), cfg.Fees.CurrentFee(6).DaoShareBps)

	require.ErrorIs(e.p.Execute(e.admin, []byte{0xee, 0x80}), inter.ErrUnknownInstruction)
	require.Error(e.p.Execute(e.admin, nil))
}

func TestSetConfigFees_Concurrent(t *testing.T) {
	require := require.New(t)
	e := newTestEnv(t)
	e.initConfig(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = e.p.SetConfigFees(e.admin, &inter.SetConfigFees{Ncn: e.ncn, NewDaoFeeBps: u64(uint64(1000 + i))})
		}(i)
	}
	wg.Wait()

	cfg, err := e.p.Config(e.ncn)
	require.NoError(err)
	require.Equal(uint64(100), cfg.Fees.CurrentFee(5).DaoShareBps)
	next := cfg.Fees.CurrentFee(6).DaoShareBps
	require.True(next >= 1000 && next < 1016, "got %d", next)
}
