package config

// Supported state database backends.
const (
	BackendGoLevelDB = "goleveldb"
	BackendPebbleDB  = "pebbledb"
	BackendMemDB     = "memdb"
)

type Config struct {
	// Log Config
	LogLevel   int    `json:"log_level"`   // e.g., 0 = debug, 1 = info, etc.
	LogFormat  string `json:"log_format"`  // "json" or "console"
	LogSampler bool   `json:"log_sampler"` // if true, samples logs (e.g., 1 in 5)

	// Node Config
	NodeHome  string `json:"node_home"`  // Node home directory (default: ~/.lotteryd)
	DBBackend string `json:"db_backend"` // goleveldb, pebbledb or memdb

	// API Server Config
	APIPort int  `json:"api_port"` // Port for the HTTP API (default: 8545)
	DevMode bool `json:"dev_mode"` // Enables the time travel endpoints

	Indexer IndexerConfig `json:"indexer"`
	Genesis GenesisConfig `json:"genesis"`
}

// IndexerConfig controls the SQLite receipt index.
type IndexerConfig struct {
	Enabled                bool `json:"enabled"`
	RetentionPeriodSeconds int  `json:"retention_period_seconds"` // How long receipts are kept (default: 7 days)
	CleanupIntervalSeconds int  `json:"cleanup_interval_seconds"` // How often old receipts are pruned (default: 1 hour)
}

// GenesisConfig seeds an empty state database. Amounts are base-10 strings.
type GenesisConfig struct {
	RoundZeroStart          int64  `json:"round_zero_start"`
	PurchaseDurationSeconds int64  `json:"purchase_duration_seconds"`
	RevealDurationSeconds   int64  `json:"reveal_duration_seconds"`
	TicketPrice             string `json:"ticket_price"`

	TokenName     string `json:"token_name"`
	TokenSymbol   string `json:"token_symbol"`
	TokenDecimals uint32 `json:"token_decimals"`

	Accounts []GenesisAccount `json:"accounts"` // pre-funded TL holders
}

type GenesisAccount struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}
