package survivalmaze

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	log "github.com/sirupsen/logrus"
)

// Config is the full game configuration. Zero values are not defaults; start
// from DefaultConfig.
type Config struct {
	Rows     int     `toml:"rows"`
	Cols     int     `toml:"cols"`
	TileSize float32 `toml:"tile_size"`
	// EnemyChance is the probability a carved cell spawns an enemy. Zero
	// disables enemies.
	EnemyChance float64 `toml:"enemy_chance"`
	// Seed drives generation. Zero seeds from the clock.
	Seed uint64 `toml:"seed"`
	// LayoutFile loads a fixed level instead of generating one.
	LayoutFile string `toml:"layout_file"`

	// TimeLimit is the time to reach the exit, in seconds.
	TimeLimit      float32 `toml:"time_limit"`
	MaxProjectiles int     `toml:"max_projectiles"`
	PlayerSpeed    float32 `toml:"player_speed"`
	PlayerHealth   float32 `toml:"player_health"`
	// EnemyDamage is the health lost per second of enemy contact.
	EnemyDamage float32 `toml:"enemy_damage"`

	Window WindowConfig `toml:"window"`
	Log    LogConfig    `toml:"log"`
	Debug  bool         `toml:"debug"`
}

// WindowConfig controls the game window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is a logrus level name: trace, debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "text" or "json".
	Format string `toml:"format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Rows:           15,
		Cols:           15,
		TileSize:       10,
		EnemyChance:    DefaultEnemyChance,
		TimeLimit:      120,
		MaxProjectiles: DefaultMaxProjectiles,
		PlayerSpeed:    DefaultPlayerSpeed,
		PlayerHealth:   DefaultPlayerHealth,
		EnemyDamage:    25,
		Window: WindowConfig{
			Title:  "Survival Maze",
			Width:  1280,
			Height: 720,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys missing from the file
// keep their defaults. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		logger.WithField("keys", strings.Join(keys, ",")).Warn("unknown config keys ignored")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig parses TOML text over DefaultConfig and validates the result.
func DecodeConfig(data string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first invalid value.
func (c Config) Validate() error {
	switch {
	case c.LayoutFile == "" && (c.Rows < 3 || c.Cols < 3):
		return fmt.Errorf("rows %d, cols %d: %w", c.Rows, c.Cols, ErrMazeTooSmall)
	case c.TileSize < 1:
		return fmt.Errorf("tile_size %v: %w", c.TileSize, ErrTileSize)
	case c.MaxProjectiles <= 0:
		return fmt.Errorf("max_projectiles %d: %w", c.MaxProjectiles, ErrPoolSize)
	case c.EnemyChance < 0 || c.EnemyChance > 1:
		return fmt.Errorf("enemy_chance %v not in [0, 1]: %w", c.EnemyChance, ErrConfig)
	case c.TimeLimit <= 0:
		return fmt.Errorf("time_limit %v must be positive: %w", c.TimeLimit, ErrConfig)
	case c.PlayerSpeed <= 0:
		return fmt.Errorf("player_speed %v must be positive: %w", c.PlayerSpeed, ErrConfig)
	case c.PlayerHealth <= 0:
		return fmt.Errorf("player_health %v must be positive: %w", c.PlayerHealth, ErrConfig)
	case c.EnemyDamage < 0:
		return fmt.Errorf("enemy_damage %v must not be negative: %w", c.EnemyDamage, ErrConfig)
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window %dx%d: %w", c.Window.Width, c.Window.Height, ErrConfig)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Log.Level, ErrConfig)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log format %q: %w", c.Log.Format, ErrConfig)
	}
	return nil
}

// Apply configures l with the level and formatter.
func (c LogConfig) Apply(l *log.Logger) error {
	level, err := log.ParseLevel(c.Level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", c.Level, ErrConfig)
	}
	l.SetLevel(level)
	switch c.Format {
	case "json":
		l.SetFormatter(&log.JSONFormatter{})
	default:
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
