// Package config holds the typed configuration for a LinkLog instance.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration. Everything is fixed at startup; runtime
// control (quiet toggle, log reopen, stats) goes through the control channel
// and never mutates this struct.
type Config struct {
	Listen  ListenConfig  `yaml:"listen"`
	Filters FiltersConfig `yaml:"filters"`
	Resolve ResolveConfig `yaml:"resolve"`
	Display DisplayConfig `yaml:"display"`
	Output  OutputConfig  `yaml:"output"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
}

type ListenConfig struct {
	// UDPAddr is where routers send their log datagrams. Linksys firmware
	// uses the SNMP trap port, hence the privileged default.
	UDPAddr string `yaml:"udp_addr"`
	// TCPAddr accepts newline-delimited log lines from syslog relays.
	// Empty disables the TCP listener.
	TCPAddr string `yaml:"tcp_addr"`
}

// FiltersConfig selects which events are shown. Direction and protocol take
// enum values (in/out, TCP/UDP, case-insensitive); the rest are wildcard
// patterns where * matches any run of characters and the whole pattern must
// cover the candidate. Empty means unset.
type FiltersConfig struct {
	Direction  string `yaml:"direction"`
	Protocol   string `yaml:"protocol"`
	IP         string `yaml:"ip"`
	SourceIP   string `yaml:"source_ip"`
	DestIP     string `yaml:"dest_ip"`
	Host       string `yaml:"host"`
	SourceHost string `yaml:"source_host"`
	DestHost   string `yaml:"dest_host"`
}

type ResolveConfig struct {
	// Cache memoizes reverse lookups for the life of the process.
	Cache   bool     `yaml:"cache"`
	Timeout Duration `yaml:"timeout"`
	// SuppressSource/SuppressDest show the raw IP instead of the hostname
	// for that side. When a side is suppressed and no host filter needs it,
	// the reverse lookup is skipped entirely.
	SuppressSource bool `yaml:"suppress_source"`
	SuppressDest   bool `yaml:"suppress_dest"`
}

type DisplayConfig struct {
	// NumericPorts shows port numbers instead of service names.
	NumericPorts bool   `yaml:"numeric_ports"`
	Template     string `yaml:"template"`
}

type OutputConfig struct {
	// Quiet suppresses console output; file and network outputs still run.
	Quiet   bool   `yaml:"quiet"`
	LogFile string `yaml:"log_file"`
	// HTTPURL posts each batch of rendered lines to a collector.
	HTTPURL string `yaml:"http_url"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// ControlChannel carries runtime commands; PublishChannel receives a copy
	// of every rendered event. Either can be empty to disable that side.
	ControlChannel string `yaml:"control_channel"`
	PublishChannel string `yaml:"publish_channel"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Listen: ListenConfig{
			UDPAddr: ":162",
		},
		Resolve: ResolveConfig{
			Cache:   true,
			Timeout: Duration(2 * time.Second),
		},
		Display: DisplayConfig{
			Template: "%t [%i, %p] %s:%S -> %d:%D",
		},
		Redis: RedisConfig{
			Address:        "localhost:6379",
			ControlChannel: "linklog_control",
			PublishChannel: "linklog_events",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file over the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	c := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// Duration accepts Go duration strings in YAML ("2s", "500ms").
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
