package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pushchain/tl-lottery/api"
	"github.com/pushchain/tl-lottery/app"
	"github.com/pushchain/tl-lottery/config"
	"github.com/pushchain/tl-lottery/indexer"
	"github.com/pushchain/tl-lottery/indexer/db"
	"github.com/pushchain/tl-lottery/ledger"
	"github.com/pushchain/tl-lottery/logger"
	sdk "github.com/pushchain/tl-lottery/types"
	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
)

// Set at build time with -ldflags "-X main.Version=... -X main.Commit=...".
var (
	Version = "dev"
	Commit  = ""
)

const (
	dataSubdir     = "data"
	stateDBName    = "state"
	receiptsDBName = "receipts.db"

	flagOverwrite = "overwrite"
	flagDev       = "dev"
	flagAccount   = "account"
	flagGenesis   = "genesis"
	flagOutput    = "output"
)

func InitRootCmd(rootCmd *cobra.Command, v *viper.Viper) {
	rootCmd.AddCommand(initCmd(v))
	rootCmd.AddCommand(startCmd(v))
	rootCmd.AddCommand(exportCmd(v))
	rootCmd.AddCommand(commitmentCmd())
	rootCmd.AddCommand(versionCmd())
}

func initCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default node config into the home directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := v.GetString(flagHome)
			if _, err := os.Stat(config.Path(home)); err == nil && !v.GetBool(flagOverwrite) {
				return fmt.Errorf("config already exists at %s (use --%s)", config.Path(home), flagOverwrite)
			}

			cfg, err := config.LoadDefaultConfig()
			if err != nil {
				return err
			}
			cfg.NodeHome = home
			cfg.DevMode = v.GetBool(flagDev)

			accounts, err := cmd.Flags().GetStringArray(flagAccount)
			if err != nil {
				return err
			}
			for _, raw := range accounts {
				addr, amount, ok := strings.Cut(raw, "=")
				if !ok {
					return fmt.Errorf("invalid --%s %q, expected <address>=<amount>", flagAccount, raw)
				}
				if _, err := sdk.ParseAddress(addr); err != nil {
					return err
				}
				cfg.Genesis.Accounts = append(cfg.Genesis.Accounts, config.GenesisAccount{Address: addr, Amount: amount})
			}

			if err := config.Save(cfg, home); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "config written to %s\n", config.Path(home))
			return nil
		},
	}
	cmd.Flags().Bool(flagOverwrite, false, "overwrite an existing config")
	cmd.Flags().Bool(flagDev, false, "enable dev mode (time travel endpoints, invariant checks)")
	cmd.Flags().StringArray(flagAccount, nil, "pre-funded TL account as <address>=<amount> (repeatable)")
	return cmd
}

// node is a running lottery node and the resources it owns.
type node struct {
	app     *app.App
	clock   *app.OffsetClock
	indexer *indexer.Indexer
	cleaner *db.ReceiptCleaner
	closers []func() error
}

func (n *node) Close() error {
	var errs []string
	for i := len(n.closers) - 1; i >= 0; i-- {
		if err := n.closers[i](); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to close node: %s", strings.Join(errs, "; "))
	}
	return nil
}

// openNode opens the state and receipt databases under the node home and
// imports genesis when the state is empty. genesisFile, if set, replaces the
// genesis section of the config.
func openNode(ctx context.Context, cfg config.Config, log zerolog.Logger, genesisFile string) (*node, error) {
	n := &node{}
	dataDir := filepath.Join(cfg.NodeHome, dataSubdir)

	stateDB, err := ledger.OpenDB(stateDBName, cfg.DBBackend, dataDir)
	if err != nil {
		return nil, err
	}
	store, err := ledger.NewStore(stateDB)
	if err != nil {
		_ = stateDB.Close()
		return nil, err
	}
	n.closers = append(n.closers, store.Close)

	opts := []app.Option{app.WithInvariantChecks(cfg.DevMode)}
	if cfg.DevMode {
		n.clock = app.NewOffsetClock()
		opts = append(opts, app.WithClock(n.clock))
	}

	if cfg.Indexer.Enabled {
		database, err := db.OpenFileDB(dataDir, receiptsDBName, true)
		if err != nil {
			_ = n.Close()
			return nil, err
		}
		n.closers = append(n.closers, database.Close)
		n.indexer = indexer.New(database, log)
		n.cleaner = db.NewReceiptCleaner(database, cfg.Indexer, log)
		opts = append(opts, app.WithReceiptSink(n.indexer))
	}

	n.app = app.New(store, logger.Keeper(log), opts...)

	if !n.app.Initialized() {
		var gs *app.GenesisState
		if genesisFile != "" {
			gs, err = app.LoadGenesisFile(genesisFile)
		} else {
			gs, err = app.GenesisFromConfig(cfg.Genesis)
		}
		if err == nil {
			err = n.app.InitChain(ctx, gs)
		}
		if err != nil {
			_ = n.Close()
			return nil, err
		}
	}
	return n, nil
}

func startCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the lottery node and its HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(v)
			if err != nil {
				return err
			}
			log := logger.Init(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := openNode(ctx, cfg, log, v.GetString(flagGenesis))
			if err != nil {
				return err
			}
			defer func() {
				if err := n.Close(); err != nil {
					log.Error().Err(err).Msg("shutdown")
				}
			}()

			if n.cleaner != nil {
				if err := n.cleaner.Start(ctx); err != nil {
					return err
				}
				defer n.cleaner.Stop()
			}

			var apiOpts []api.Option
			if n.indexer != nil {
				apiOpts = append(apiOpts, api.WithReceipts(n.indexer))
			}
			if n.clock != nil {
				apiOpts = append(apiOpts, api.WithTimeMachine(n.clock))
			}
			server := api.NewServer(log, cfg.APIPort, n.app, apiOpts...)
			if err := server.Start(); err != nil {
				return errors.Wrap(err, "failed to start API server")
			}

			header := n.app.LastHeader()
			log.Info().
				Int64("height", header.Height).
				Int("api_port", cfg.APIPort).
				Bool("dev_mode", cfg.DevMode).
				Str("home", cfg.NodeHome).
				Msg("lottery node started")

			<-ctx.Done()
			log.Info().Msg("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Stop(shutdownCtx)
		},
	}
	cmd.Flags().String(flagGenesis, "", "exported genesis file to import instead of the config genesis")
	return cmd
}

func exportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the committed state as genesis JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(v)
			if err != nil {
				return err
			}
			// the receipt index plays no part in the export; logs go to
			// stderr so stdout stays valid JSON
			cfg.Indexer.Enabled = false
			log := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat, cfg.LogSampler)

			n, err := openNode(cmd.Context(), cfg, log, "")
			if err != nil {
				return err
			}
			defer n.Close()

			gs, err := n.app.ExportGenesis(cmd.Context())
			if err != nil {
				return err
			}
			bz, err := json.MarshalIndent(gs, "", "  ")
			if err != nil {
				return err
			}

			if out := v.GetString(flagOutput); out != "" {
				return os.WriteFile(out, bz, 0o600)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagOutput, "", "write to this file instead of stdout")
	return cmd
}

func commitmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commitment <secret> <owner>",
		Short: "Compute the commitment to submit with buyTicket",
		Long: "Computes keccak256(uint256(secret) ++ owner) offline. The secret is a decimal or " +
			"0x-prefixed hex 256-bit number; keep it until the reveal phase.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := lotterytypes.ParseSecret(args[0])
			if err != nil {
				return err
			}
			owner, err := sdk.ParseAddress(args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), lotterytypes.ComputeCommitment(secret, owner))
			return err
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print lotteryd version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "Name:       %s\n", app.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Version:    %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "Commit:     %s\n", Commit)
		},
	}
}
