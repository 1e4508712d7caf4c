package app

import (
	"context"
	"encoding/json"
	"os"

	"cosmossdk.io/math"
	"github.com/pkg/errors"

	"github.com/pushchain/tl-lottery/config"
	sdk "github.com/pushchain/tl-lottery/types"
	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
	tokentypes "github.com/pushchain/tl-lottery/x/tltoken/types"
)

// GenesisState is the state of every module.
type GenesisState struct {
	Token   *tokentypes.GenesisState   `json:"tltoken"`
	Lottery *lotterytypes.GenesisState `json:"lottery"`
}

// DefaultGenesis returns the default genesis of every module.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Token:   tokentypes.DefaultGenesis(),
		Lottery: lotterytypes.DefaultGenesis(),
	}
}

// Validate validates every module genesis.
func (gs GenesisState) Validate() error {
	if gs.Token == nil || gs.Lottery == nil {
		return errors.New("genesis must contain tltoken and lottery state")
	}
	if err := gs.Token.Validate(); err != nil {
		return errors.Wrap(err, "tltoken genesis")
	}
	if err := gs.Lottery.Validate(); err != nil {
		return errors.Wrap(err, "lottery genesis")
	}
	if gs.Lottery.Params.Token != gs.Token.Metadata.Symbol {
		return errors.Errorf("lottery token %q does not match tltoken symbol %q", gs.Lottery.Params.Token, gs.Token.Metadata.Symbol)
	}
	return nil
}

// GenesisFromConfig builds a fresh genesis from the node config.
func GenesisFromConfig(cfg config.GenesisConfig) (*GenesisState, error) {
	gs := DefaultGenesis()

	gs.Token.Metadata = tokentypes.Metadata{
		Name:     cfg.TokenName,
		Symbol:   cfg.TokenSymbol,
		Decimals: cfg.TokenDecimals,
	}
	for _, acc := range cfg.Accounts {
		addr, err := sdk.ParseAddress(acc.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "genesis account %q", acc.Address)
		}
		amount, ok := math.NewIntFromString(acc.Amount)
		if !ok {
			return nil, errors.Errorf("genesis account %s has invalid amount %q", acc.Address, acc.Amount)
		}
		gs.Token.Balances = append(gs.Token.Balances, tokentypes.Balance{Address: addr, Amount: amount})
	}

	price, ok := math.NewIntFromString(cfg.TicketPrice)
	if !ok {
		return nil, errors.Errorf("invalid ticket price %q", cfg.TicketPrice)
	}
	gs.Lottery.Params = lotterytypes.Params{
		RoundZeroStart:   cfg.RoundZeroStart,
		PurchaseDuration: cfg.PurchaseDurationSeconds,
		RevealDuration:   cfg.RevealDurationSeconds,
		TicketPrice:      price,
		Token:            cfg.TokenSymbol,
	}

	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return gs, nil
}

// LoadGenesisFile reads a genesis previously written by ExportGenesis.
func LoadGenesisFile(path string) (*GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read genesis file")
	}

	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, errors.Wrap(err, "failed to decode genesis file")
	}
	if err := gs.Validate(); err != nil {
		return nil, err
	}
	return &gs, nil
}

// InitChain imports gs into an empty store as block 1.
func (a *App) InitChain(ctx context.Context, gs *GenesisState) error {
	if a.Initialized() {
		return errors.New("state database is already initialized")
	}
	if err := gs.Validate(); err != nil {
		return err
	}

	res, err := a.store.Update(ctx, a.clock.Now(), func(ctx context.Context) error {
		if err := a.TokenKeeper.InitGenesis(ctx, gs.Token); err != nil {
			return errors.Wrap(err, "tltoken")
		}
		if err := a.LotteryKeeper.InitGenesis(ctx, gs.Lottery); err != nil {
			return errors.Wrap(err, "lottery")
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to init chain")
	}

	a.metrics.Height.Set(float64(res.Header.Height))
	a.logger.Info("Chain initialized",
		"height", res.Header.Height,
		"accounts", len(gs.Token.Balances),
		"ticket_price", gs.Lottery.Params.TicketPrice.String(),
	)
	return nil
}

// ExportGenesis dumps the committed state of every module.
func (a *App) ExportGenesis(ctx context.Context) (*GenesisState, error) {
	var gs GenesisState
	err := a.Query(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = errors.Errorf("export failed: %v", r)
			}
		}()
		gs.Token = a.TokenKeeper.ExportGenesis(ctx)
		gs.Lottery = a.LotteryKeeper.ExportGenesis(ctx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &gs, nil
}
