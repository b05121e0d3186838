package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultLogLevel         = "info"
	defaultLogFormat        = "line"
	defaultServerListen     = "0.0.0.0:50051"
	defaultServerQueueSize  = 1024
	defaultServerWorkers    = 2
	defaultMaxRecvBytes     = 4 << 20
	defaultHTTPListen       = "127.0.0.1:8080"
	defaultLedgerBackend    = LedgerBackendMemory
	defaultLedgerMaxEntries = 100000
	defaultLedgerTTL        = 24 * time.Hour
	defaultLedgerKeyPrefix  = "eventagg:dropped:"
	defaultRedisDialTimeout = 5 * time.Second
	defaultUpstreamTO       = 5 * time.Second
	defaultUpstreamRetry    = 3 * time.Second
	defaultUpstreamBatchN   = 1000
	defaultUpstreamBatchA   = 2 * time.Second
	defaultPprofListen      = "127.0.0.1:6060"
	defaultLogMaxSizeMB     = 100
	defaultLogMaxBackups    = 5
)

// Ledger backends.
const (
	LedgerBackendMemory = "memory"
	LedgerBackendRedis  = "redis"
)

// Duration wraps time.Duration for TOML parsing.
// Params: text duration string (e.g. "5s", "1m").
// Returns: parse error on invalid duration.
type Duration struct {
	time.Duration
}

// UnmarshalText parses TOML duration values.
// Params: text is raw duration bytes from TOML.
// Returns: error when value is not a valid Go duration.
func (d *Duration) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	if value == "" {
		d.Duration = 0
		return nil
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", value, err)
	}

	d.Duration = parsed
	return nil
}

// Config represents the root aggregator configuration.
// Params: TOML document sections.
// Returns: validated runtime configuration.
type Config struct {
	Global   GlobalConfig     `toml:"global"`
	Log      LogConfig        `toml:"log"`
	Pprof    PprofConfig      `toml:"pprof"`
	Server   ServerConfig     `toml:"server"`
	HTTP     HTTPConfig       `toml:"http"`
	Filter   FilterConfig     `toml:"filter"`
	Ledger   LedgerConfig     `toml:"ledger"`
	Upstream []UpstreamConfig `toml:"upstream"`
}

// GlobalConfig identifies this aggregator instance.
type GlobalConfig struct {
	Cluster string `toml:"cluster"`
	Node    string `toml:"node"`
}

// LogConfig contains console/file logging configuration.
// Params: console and file sink options.
// Returns: logger sink settings.
type LogConfig struct {
	Console LogSinkConfig `toml:"console"`
	File    LogSinkConfig `toml:"file"`
}

// LogSinkConfig defines one logging sink.
// Params: sink options from TOML.
// Returns: sink setup.
type LogSinkConfig struct {
	Enabled    bool   `toml:"enabled"`
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Path       string `toml:"path"`
	MaxSize    int    `toml:"max_size"` // megabytes before the file rotates
	MaxBackups int    `toml:"max_backups"`
}

// PprofConfig defines optional runtime pprof HTTP endpoint.
type PprofConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
}

// ServerConfig defines the gRPC ingestion endpoint and admission policy.
// Params: listen address, batch limits, and pipeline sizing.
// Returns: AddEvents server settings.
type ServerConfig struct {
	Listen         string `toml:"listen"`
	PortRetries    int    `toml:"port_retries"`
	MaxRecvBytes   int    `toml:"max_recv_bytes"`
	MaxBatchEvents int    `toml:"max_batch_events"`
	RejectEmpty    bool   `toml:"reject_empty"`
	QueueSize      int    `toml:"queue_size"`
	Workers        int    `toml:"workers"`
}

// HTTPConfig defines the side HTTP endpoint (metrics, health, JSON ingest).
type HTTPConfig struct {
	Enabled     bool   `toml:"enabled"`
	Listen      string `toml:"listen"`
	PortRetries int    `toml:"port_retries"`
}

// FilterConfig lists drop_event expressions applied before admission.
type FilterConfig struct {
	DropEvent []string `toml:"drop_event"`
}

// LedgerConfig selects where dropped task attempts are recorded.
// Params: backend name plus backend-specific options.
// Returns: ledger settings.
type LedgerConfig struct {
	Enabled    bool              `toml:"enabled"`
	Backend    string            `toml:"backend"`
	MaxEntries int               `toml:"max_entries"`
	Redis      RedisLedgerConfig `toml:"redis"`
}

// RedisLedgerConfig contains redis connection options for the shared ledger.
type RedisLedgerConfig struct {
	Addr        string   `toml:"addr"`
	Password    string   `toml:"password"`
	DB          int      `toml:"db"`
	KeyPrefix   string   `toml:"key_prefix"`
	TTL         Duration `toml:"ttl"`
	DialTimeout Duration `toml:"dial_timeout"`
}

// UpstreamConfig defines one upstream aggregator that receives forwarded batches.
// Params: endpoints, retry/batch/queue settings.
// Returns: one upstream runtime config.
type UpstreamConfig struct {
	Name          string              `toml:"name"`
	Addr          []string            `toml:"addr"`
	Timeout       Duration            `toml:"timeout"`
	RetryInterval Duration            `toml:"retry_interval"`
	Queue         UpstreamQueueConfig `toml:"queue"`
	Batch         UpstreamBatchConfig `toml:"batch"`
}

// UpstreamQueueConfig defines disk spool limits.
type UpstreamQueueConfig struct {
	Enabled    bool     `toml:"enabled"`
	Dir        string   `toml:"dir"`
	MaxBatches uint64   `toml:"max_batches"`
	MaxAge     Duration `toml:"max_age"`
}

// UpstreamBatchConfig defines in-memory merge limits.
type UpstreamBatchConfig struct {
	MaxEvents uint64   `toml:"max_events"`
	MaxAge    Duration `toml:"max_age"`
}

// Load reads, expands, validates, and returns config from path.
// Params: path to TOML config file or directory with *.toml files.
// Returns: validated config pointer or error.
func Load(path string) (*Config, error) {
	raw, err := readConfigSource(path)
	if err != nil {
		return nil, err
	}

	return Parse(raw, path)
}

// Parse decodes, defaults, and validates TOML content.
// Params: raw TOML bytes; source name used in errors.
// Returns: validated config pointer or error.
func Parse(raw []byte, source string) (*Config, error) {
	expanded := os.ExpandEnv(string(raw))

	var cfg Config
	if err := toml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("decode TOML %q: %w", source, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// readConfigSource reads one TOML file or concatenates *.toml files from directory.
// Params: path to config file or directory.
// Returns: raw TOML bytes or error.
func readConfigSource(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat config %q: %w", path, err)
	}

	if !info.IsDir() {
		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read config %q: %w", path, readErr)
		}
		return raw, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("read config dir %q: %w", path, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".toml") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("read config dir %q: no *.toml files", path)
	}

	var builder strings.Builder
	for _, name := range files {
		filePath := filepath.Join(path, name)
		raw, readErr := os.ReadFile(filePath)
		if readErr != nil {
			return nil, fmt.Errorf("read config %q: %w", filePath, readErr)
		}
		builder.Write(raw)
		if len(raw) == 0 || raw[len(raw)-1] != '\n' {
			builder.WriteByte('\n')
		}
		builder.WriteByte('\n')
	}

	return []byte(builder.String()), nil
}

// applyDefaults fills defaults for optional configuration fields.
// Params: receiver config pointer.
// Returns: error if defaulting needs host lookup and it fails.
func (c *Config) applyDefaults() error {
	c.Log.Console.Level = lowerOrDefault(c.Log.Console.Level, defaultLogLevel)
	c.Log.Console.Format = lowerOrDefault(c.Log.Console.Format, defaultLogFormat)
	c.Log.File.Level = lowerOrDefault(c.Log.File.Level, defaultLogLevel)
	c.Log.File.Format = lowerOrDefault(c.Log.File.Format, "json")
	if c.Log.File.MaxSize == 0 {
		c.Log.File.MaxSize = defaultLogMaxSizeMB
	}
	if c.Log.File.MaxBackups == 0 {
		c.Log.File.MaxBackups = defaultLogMaxBackups
	}
	if !c.Log.Console.Enabled && !c.Log.File.Enabled {
		c.Log.Console.Enabled = true
	}

	if strings.TrimSpace(c.Global.Node) == "" {
		host, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("resolve hostname: %w", err)
		}
		c.Global.Node = host
	}

	if strings.TrimSpace(c.Server.Listen) == "" {
		c.Server.Listen = defaultServerListen
	}
	if c.Server.MaxRecvBytes == 0 {
		c.Server.MaxRecvBytes = defaultMaxRecvBytes
	}
	if c.Server.QueueSize == 0 {
		c.Server.QueueSize = defaultServerQueueSize
	}
	if c.Server.Workers == 0 {
		c.Server.Workers = defaultServerWorkers
	}

	if c.HTTP.Enabled && strings.TrimSpace(c.HTTP.Listen) == "" {
		c.HTTP.Listen = defaultHTTPListen
	}
	if c.Pprof.Enabled && strings.TrimSpace(c.Pprof.Listen) == "" {
		c.Pprof.Listen = defaultPprofListen
	}

	c.Ledger.Backend = lowerOrDefault(c.Ledger.Backend, defaultLedgerBackend)
	if c.Ledger.MaxEntries == 0 {
		c.Ledger.MaxEntries = defaultLedgerMaxEntries
	}
	if strings.TrimSpace(c.Ledger.Redis.KeyPrefix) == "" {
		c.Ledger.Redis.KeyPrefix = defaultLedgerKeyPrefix
	}
	if c.Ledger.Redis.TTL.Duration == 0 {
		c.Ledger.Redis.TTL.Duration = defaultLedgerTTL
	}
	if c.Ledger.Redis.DialTimeout.Duration <= 0 {
		c.Ledger.Redis.DialTimeout.Duration = defaultRedisDialTimeout
	}

	for i := range c.Upstream {
		upstream := &c.Upstream[i]
		if strings.TrimSpace(upstream.Name) == "" {
			upstream.Name = fmt.Sprintf("upstream-%d", i)
		}
		if upstream.Timeout.Duration <= 0 {
			upstream.Timeout.Duration = defaultUpstreamTO
		}
		if upstream.RetryInterval.Duration <= 0 {
			upstream.RetryInterval.Duration = defaultUpstreamRetry
		}
		if upstream.Batch.MaxEvents == 0 {
			upstream.Batch.MaxEvents = defaultUpstreamBatchN
		}
		if upstream.Batch.MaxAge.Duration <= 0 {
			upstream.Batch.MaxAge.Duration = defaultUpstreamBatchA
		}
	}

	return nil
}

// validate checks config consistency and required fields.
// Params: receiver config pointer.
// Returns: validation error for invalid or incomplete config.
func (c *Config) validate() error {
	if strings.TrimSpace(c.Global.Node) == "" {
		return fmt.Errorf("global.node resolved to empty value")
	}

	if err := validateSink("log.console", c.Log.Console, false); err != nil {
		return err
	}
	if err := validateSink("log.file", c.Log.File, true); err != nil {
		return err
	}
	if err := validateListen("pprof", c.Pprof.Enabled, c.Pprof.Listen); err != nil {
		return err
	}
	if err := validateListen("http", c.HTTP.Enabled, c.HTTP.Listen); err != nil {
		return err
	}
	if c.HTTP.PortRetries < 0 {
		return fmt.Errorf("http.port_retries cannot be negative")
	}
	if err := c.Server.validate("server"); err != nil {
		return err
	}

	for idx, expression := range c.Filter.DropEvent {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter.drop_event[%d] cannot be empty", idx)
		}
	}

	if err := c.Ledger.validate("ledger"); err != nil {
		return err
	}

	names := make(map[string]struct{}, len(c.Upstream))
	for idx, upstream := range c.Upstream {
		path := fmt.Sprintf("upstream[%d]", idx)
		if _, exists := names[upstream.Name]; exists {
			return fmt.Errorf("%s.name %q is duplicated", path, upstream.Name)
		}
		names[upstream.Name] = struct{}{}

		if err := upstream.validate(path); err != nil {
			return err
		}
	}

	return nil
}

// validate checks server listen address and admission limits.
// Params: path config path prefix.
// Returns: validation error or nil.
func (s ServerConfig) validate(path string) error {
	if _, _, err := net.SplitHostPort(s.Listen); err != nil {
		return fmt.Errorf("%s.listen must be host:port: %w", path, err)
	}
	if s.MaxRecvBytes < 0 {
		return fmt.Errorf("%s.max_recv_bytes cannot be negative", path)
	}
	if s.MaxBatchEvents < 0 {
		return fmt.Errorf("%s.max_batch_events cannot be negative", path)
	}
	if s.QueueSize < 0 {
		return fmt.Errorf("%s.queue_size cannot be negative", path)
	}
	if s.Workers < 0 {
		return fmt.Errorf("%s.workers cannot be negative", path)
	}
	if s.PortRetries < 0 {
		return fmt.Errorf("%s.port_retries cannot be negative", path)
	}
	return nil
}

// validate checks ledger backend selection and backend options.
// Params: path config path prefix.
// Returns: validation error or nil.
func (l LedgerConfig) validate(path string) error {
	if !l.Enabled {
		return nil
	}
	switch l.Backend {
	case LedgerBackendMemory:
		if l.MaxEntries < 0 {
			return fmt.Errorf("%s.max_entries cannot be negative", path)
		}
	case LedgerBackendRedis:
		if strings.TrimSpace(l.Redis.Addr) == "" {
			return fmt.Errorf("%s.redis.addr is required for redis backend", path)
		}
		if l.Redis.TTL.Duration < 0 {
			return fmt.Errorf("%s.redis.ttl cannot be negative", path)
		}
	default:
		return fmt.Errorf("%s.backend must be one of: %s, %s", path, LedgerBackendMemory, LedgerBackendRedis)
	}
	return nil
}

// validate checks one upstream section.
// Params: path config path prefix.
// Returns: validation error or nil.
func (u UpstreamConfig) validate(path string) error {
	if len(u.Addr) == 0 {
		return fmt.Errorf("%s.addr must contain at least one host:port", path)
	}
	for addrIdx, addr := range u.Addr {
		if strings.TrimSpace(addr) == "" {
			return fmt.Errorf("%s.addr[%d] cannot be empty", path, addrIdx)
		}
	}
	if u.Timeout.Duration <= 0 {
		return fmt.Errorf("%s.timeout must be > 0", path)
	}
	if u.RetryInterval.Duration <= 0 {
		return fmt.Errorf("%s.retry_interval must be > 0", path)
	}
	if u.Queue.Enabled {
		if strings.TrimSpace(u.Queue.Dir) == "" {
			return fmt.Errorf("%s.queue.dir is required when queue is enabled", path)
		}
		if u.Queue.MaxBatches == 0 && u.Queue.MaxAge.Duration <= 0 {
			return fmt.Errorf("%s.queue requires max_batches > 0 or max_age > 0", path)
		}
	}
	return nil
}

// validateSink validates one logging sink configuration.
// Params: name is sink path for errors; sink is sink config; requirePath means path required when enabled.
// Returns: validation error or nil.
func validateSink(name string, sink LogSinkConfig, requirePath bool) error {
	if sink.Enabled && requirePath && strings.TrimSpace(sink.Path) == "" {
		return fmt.Errorf("%s.path is required when sink is enabled", name)
	}

	switch sink.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%s.level: unsupported value %q", name, sink.Level)
	}
	switch sink.Format {
	case "line", "json":
	default:
		return fmt.Errorf("%s.format: unsupported value %q", name, sink.Format)
	}
	if sink.MaxSize < 0 {
		return fmt.Errorf("%s.max_size cannot be negative", name)
	}
	if sink.MaxBackups < 0 {
		return fmt.Errorf("%s.max_backups cannot be negative", name)
	}

	return nil
}

// validateListen validates an optional host:port endpoint.
// Params: path config path prefix; enabled toggle; listen address.
// Returns: validation error for invalid listen endpoint.
func validateListen(path string, enabled bool, listen string) error {
	if !enabled {
		return nil
	}
	if strings.TrimSpace(listen) == "" {
		return fmt.Errorf("%s.listen cannot be empty when enabled", path)
	}
	if _, _, err := net.SplitHostPort(listen); err != nil {
		return fmt.Errorf("%s.listen must be host:port: %w", path, err)
	}
	return nil
}

// lowerOrDefault returns a trimmed lower-case value or default fallback.
// Params: value to normalize; fallback value when empty.
// Returns: normalized value.
func lowerOrDefault(value, fallback string) string {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return fallback
	}
	return normalized
}
