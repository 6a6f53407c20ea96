package config

// this holds the resolved configuration values from CLI
var (
	DB                 string // connection string for the database
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	LogFormat          string // text vs json
	LogFilter          string // zapfilter rules for per-logger levels
	MigrationSourceURL string // location of migration files
	NatsURL            string // if set, race results are published here

	// race engine knobs, see pkg/race
	PotPerTeam           bool // sum the prize pot once per team instead of per entry
	SplitTiedPrize       bool // divide a podium share among tied entries
	LenientBudgetUpdates bool // legacy: log failed budget updates instead of aborting
)
