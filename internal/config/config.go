// Package config loads server settings from defaults, configs/config.yml,
// a .env file, the environment and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"airquality_dashboard/internal/models"
	"airquality_dashboard/internal/publish"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Room is one configured room with its startup reading.
type Room struct {
	Name    string         `mapstructure:"name"`
	Reading models.Reading `mapstructure:"reading"`
}

type Simulator struct {
	Enabled bool
	Tick    time.Duration
}

// Config is the resolved server configuration.
type Config struct {
	Port           string
	LogLevel       string
	DBPath         string
	AllowedOrigins []string
	Simulator      Simulator
	Publish        publish.Config
	Global         models.Reading
	Rooms          []Room
}

var defaultRooms = []map[string]any{
	{"name": "livingRoom", "reading": map[string]any{"pm25": 12, "co2": 450, "voc": 20, "humidity": 55, "temp": 28.0}},
	{"name": "bedroom", "reading": map[string]any{"pm25": 10, "co2": 400, "voc": 15, "humidity": 52, "temp": 26.0}},
	{"name": "kitchen", "reading": map[string]any{"pm25": 18, "co2": 600, "voc": 35, "humidity": 60, "temp": 29.0}},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("db.path", ":memory:")
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("simulator.enabled", false)
	v.SetDefault("simulator.tick", "5s")
	v.SetDefault("publish.driver", publish.DriverNone)
	v.SetDefault("publish.topic", "airquality/snapshot")
	v.SetDefault("publish.mqtt.broker", "tcp://localhost:1883")
	v.SetDefault("publish.mqtt.client_id", "airquality-dashboard")
	v.SetDefault("publish.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("defaults.global", map[string]any{"pm25": 12, "co2": 450, "voc": 20, "humidity": 55, "temp": 28.0})
	v.SetDefault("rooms", defaultRooms)
}

// Flags returns the flag set understood by Load.
func Flags(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "", "path to config file (default: configs/config.yml if present)")
	flags.String("env-file", ".env", "dotenv file loaded into the environment if present")
	flags.String("port", "", "HTTP listen port, overrides PORT")
	flags.String("log-level", "", "debug | info | warn | error, overrides LOG_LEVEL")
	flags.Bool("simulate", false, "run the random-walk simulator")
	return flags
}

// Load parses args with Flags and resolves the configuration.
func Load(name string, args []string) (*Config, error) {
	flags := Flags(name)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return FromFlags(flags)
}

// FromFlags resolves the configuration for an already parsed flag set.
func FromFlags(flags *pflag.FlagSet) (*Config, error) {
	envFile, _ := flags.GetString("env-file")
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := readConfigFile(v, flags); err != nil {
		return nil, err
	}

	for key, flag := range map[string]string{
		"port":              "port",
		"log.level":         "log-level",
		"simulator.enabled": "simulate",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	return build(v)
}

func readConfigFile(v *viper.Viper, flags *pflag.FlagSet) error {
	path, _ := flags.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.AddConfigPath("configs") // configs/config.yml
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func build(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("port"),
		LogLevel:       v.GetString("log.level"),
		DBPath:         v.GetString("db.path"),
		AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
		Simulator: Simulator{
			Enabled: v.GetBool("simulator.enabled"),
			Tick:    v.GetDuration("simulator.tick"),
		},
		Publish: publish.Config{
			Driver:       v.GetString("publish.driver"),
			Topic:        v.GetString("publish.topic"),
			MQTTBroker:   v.GetString("publish.mqtt.broker"),
			MQTTClientID: v.GetString("publish.mqtt.client_id"),
			KafkaBrokers: v.GetStringSlice("publish.kafka.brokers"),
		},
	}
	if err := v.UnmarshalKey("defaults.global", &cfg.Global); err != nil {
		return nil, fmt.Errorf("defaults.global: %w", err)
	}
	if err := v.UnmarshalKey("rooms", &cfg.Rooms); err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Simulator.Enabled && c.Simulator.Tick <= 0 {
		return fmt.Errorf("simulator.tick must be positive, got %s", c.Simulator.Tick)
	}
	if len(c.Rooms) == 0 {
		return errors.New("at least one room must be configured")
	}
	seen := make(map[string]bool, len(c.Rooms))
	for _, r := range c.Rooms {
		switch {
		case r.Name == "":
			return errors.New("room name must not be empty")
		case r.Name == string(models.ScopeAll):
			return fmt.Errorf("room name %q is reserved", r.Name)
		case seen[r.Name]:
			return fmt.Errorf("duplicate room %q", r.Name)
		}
		seen[r.Name] = true
	}
	return nil
}

// InitialSnapshot is the store content at startup: every device off, every
// rule on, all rooms selected.
func (c *Config) InitialSnapshot(now time.Time) models.Snapshot {
	rooms := make(map[models.RoomName]models.Reading, len(c.Rooms))
	for _, r := range c.Rooms {
		rooms[models.RoomName(r.Name)] = r.Reading
	}
	return models.Snapshot{
		Reading:     c.Global,
		Rooms:       rooms,
		CurrentRoom: models.ScopeAll,
		Devices:     models.AllOff(),
		Rules:       models.AllRules(),
		Timestamp:   now.UTC(),
	}
}
