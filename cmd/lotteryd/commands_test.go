package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pushchain/tl-lottery/app"
	"github.com/pushchain/tl-lottery/config"
	sdk "github.com/pushchain/tl-lottery/types"
	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitCmd(t *testing.T) {
	home := t.TempDir()
	alice := sdk.BytesToAddress([]byte{0xa1})

	out, err := execute(t, "init", "--home", home, "--dev", "--account", alice.String()+"=1000")
	require.NoError(t, err)
	assert.Contains(t, out, config.Path(home))

	cfg, err := config.Load(home)
	require.NoError(t, err)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, home, cfg.NodeHome)
	require.Len(t, cfg.Genesis.Accounts, 1)
	assert.Equal(t, alice.String(), cfg.Genesis.Accounts[0].Address)
	assert.Equal(t, "1000", cfg.Genesis.Accounts[0].Amount)

	t.Run("refuses to overwrite", func(t *testing.T) {
		_, err := execute(t, "init", "--home", home)
		require.ErrorContains(t, err, "already exists")

		_, err = execute(t, "init", "--home", home, "--overwrite")
		require.NoError(t, err)
		cfg, err := config.Load(home)
		require.NoError(t, err)
		assert.False(t, cfg.DevMode)
	})

	t.Run("rejects malformed accounts", func(t *testing.T) {
		_, err := execute(t, "init", "--home", t.TempDir(), "--account", "0x01")
		require.ErrorContains(t, err, "expected <address>=<amount>")
	})
}

func TestExportCmd(t *testing.T) {
	home := t.TempDir()
	alice := sdk.BytesToAddress([]byte{0xa1})

	_, err := execute(t, "init", "--home", home, "--account", alice.String()+"=250")
	require.NoError(t, err)

	out, err := execute(t, "export", "--home", home)
	require.NoError(t, err)

	var gs app.GenesisState
	require.NoError(t, json.Unmarshal([]byte(out), &gs))
	require.NoError(t, gs.Validate())
	require.Len(t, gs.Token.Balances, 1)
	assert.Equal(t, alice, gs.Token.Balances[0].Address)
	assert.Equal(t, math.NewInt(250), gs.Token.Balances[0].Amount)
	assert.Equal(t, lotterytypes.DefaultParams().RoundZeroStart, gs.Lottery.Params.RoundZeroStart)

	// the second export reads the state committed by the first
	file := home + "/genesis.json"
	_, err = execute(t, "export", "--home", home, "--output", file)
	require.NoError(t, err)
	bz, err := os.ReadFile(file)
	require.NoError(t, err)
	require.JSONEq(t, strings.TrimSpace(out), string(bz))
}

func TestExportCmd_MissingConfig(t *testing.T) {
	_, err := execute(t, "export", "--home", t.TempDir())
	require.ErrorContains(t, err, "failed to read config file")
}

func TestCommitmentCmd(t *testing.T) {
	owner := sdk.BytesToAddress([]byte{0x01})

	out, err := execute(t, "commitment", "12345", owner.String())
	require.NoError(t, err)
	assert.Equal(t, lotterytypes.ComputeCommitment(uint256.NewInt(12345), owner).String(), strings.TrimSpace(out))

	hexOut, err := execute(t, "commitment", "0x3039", owner.String())
	require.NoError(t, err)
	assert.Equal(t, out, hexOut)

	_, err = execute(t, "commitment", "not-a-number", owner.String())
	require.Error(t, err)

	_, err = execute(t, "commitment", "1")
	require.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, app.Name)
	assert.Contains(t, out, Version)
}

func TestLoadConfigOverrides(t *testing.T) {
	home := t.TempDir()
	_, err := execute(t, "init", "--home", home)
	require.NoError(t, err)

	newViper := func() *viper.Viper {
		v := viper.New()
		v.SetEnvPrefix(envPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
		v.AutomaticEnv()
		return v
	}

	t.Run("home from environment", func(t *testing.T) {
		t.Setenv("LOTTERYD_HOME", home)
		t.Setenv("LOTTERYD_LOG_LEVEL", "4")
		t.Setenv("LOTTERYD_LOG_FORMAT", "json")

		cfg, gotHome, err := loadConfig(newViper())
		require.NoError(t, err)
		assert.Equal(t, home, gotHome)
		assert.Equal(t, 4, cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("invalid override", func(t *testing.T) {
		t.Setenv("LOTTERYD_HOME", home)
		t.Setenv("LOTTERYD_LOG_LEVEL", "9")

		_, _, err := loadConfig(newViper())
		require.ErrorContains(t, err, "log level")
	})
}
