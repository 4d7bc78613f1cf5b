package contract

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"

	"github.com/StephanieJJ/jupiter-audit/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 1
	MaxTopIndustries = 50
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ThresholdsRawInput holds health gate thresholds from the YAML config file.
type ThresholdsRawInput struct {
	Contacts  *float64 `mapstructure:"contacts"`
	Companies *float64 `mapstructure:"companies"`
	Tickets   *float64 `mapstructure:"tickets"`
	Overall   *float64 `mapstructure:"overall"`
	Post      *float64 `mapstructure:"post"`
}

// RulesRawInput holds recommendation trigger overrides from the YAML config file.
// Use pointers so that absent keys keep their defaults.
type RulesRawInput struct {
	DuplicateMin    *int     `mapstructure:"duplicate-min"`
	MissingRatio    *float64 `mapstructure:"missing-ratio"`
	OrphanMin       *int     `mapstructure:"orphan-min"`
	GhostMin        *int     `mapstructure:"ghost-min"`
	InvalidEmailMin *int     `mapstructure:"invalid-email-min"`
	ColdPct         *float64 `mapstructure:"cold-pct"`
	CriticalMin     *int     `mapstructure:"critical-min"`
	AtRiskMin       *int     `mapstructure:"at-risk-min"`
}

// Config holds the runtime configuration for an audit.
// This struct remains the "final, validated" config.
type Config struct {
	Paths         map[schema.DatasetKind]string // Export file per dataset kind
	Now           time.Time                     // Evaluation instant injected into temporal analyzers
	ColdDays      int
	CriticalHours int
	TopIndustries int
	MaxRows       int // 0 = unlimited
	Precision     int
	Output        schema.OutputMode
	OutputFile    string
	Width         int // Terminal width override (0 = auto-detect)
	Detail        bool

	// Thresholds is a mapping of [GateKey] = minimum health score
	Thresholds map[string]float64

	// Rules holds the recommendation trigger levels
	Rules schema.RuleThresholds

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Contacts      string `mapstructure:"contacts"`
	Companies     string `mapstructure:"companies"`
	Tickets       string `mapstructure:"tickets"`
	Now           string `mapstructure:"now"`
	ColdDays      int    `mapstructure:"cold-days"`
	CriticalHours int    `mapstructure:"critical-hours"`
	TopIndustries int    `mapstructure:"top-industries"`
	MaxRows       int    `mapstructure:"max-rows"`
	Precision     int    `mapstructure:"precision"`
	Output        string `mapstructure:"output"`
	OutputFile    string `mapstructure:"output-file"`
	Width         int    `mapstructure:"width"`
	Detail        bool   `mapstructure:"detail"`
	Color         string `mapstructure:"color"`

	// --- Fields from checkCmd.Flags() ---
	ThresholdsStr string `mapstructure:"thresholds-override"`

	// --- Gate thresholds from config file ---
	Thresholds ThresholdsRawInput `mapstructure:"thresholds"`

	// --- Recommendation triggers from config file ---
	Rules RulesRawInput `mapstructure:"rules"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Paths != nil {
		clone.Paths = maps.Clone(c.Paths)
	}
	if c.Thresholds != nil {
		clone.Thresholds = maps.Clone(c.Thresholds)
	}
	return &clone
}

// HasInputs reports whether at least one export path is configured.
func (c *Config) HasInputs() bool {
	return len(c.Paths) > 0
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct. The wall clock is only read when no
// evaluation instant is configured.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	processPaths(cfg, input)
	if err := processNow(cfg, input, time.Now().UTC()); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	return processRules(cfg, input)
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.ColdDays <= 0 {
		return fmt.Errorf("cold-days must be greater than 0 (received %d)", input.ColdDays)
	}
	cfg.ColdDays = input.ColdDays

	if input.CriticalHours <= 0 {
		return fmt.Errorf("critical-hours must be greater than 0 (received %d)", input.CriticalHours)
	}
	cfg.CriticalHours = input.CriticalHours

	if input.TopIndustries <= 0 || input.TopIndustries > MaxTopIndustries {
		return fmt.Errorf("top-industries must be greater than 0 and cannot exceed %d (received %d)", MaxTopIndustries, input.TopIndustries)
	}
	cfg.TopIndustries = input.TopIndustries

	if input.MaxRows < 0 {
		return fmt.Errorf("max-rows cannot be negative (received %d)", input.MaxRows)
	}
	cfg.MaxRows = input.MaxRows

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processPaths collects the non-empty export paths.
func processPaths(cfg *Config, input *ConfigRawInput) {
	cfg.Paths = make(map[schema.DatasetKind]string)
	for kind, p := range map[schema.DatasetKind]string{
		schema.ContactsKind:  input.Contacts,
		schema.CompaniesKind: input.Companies,
		schema.TicketsKind:   input.Tickets,
	} {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Paths[kind] = p
		}
	}
}

// processNow resolves the evaluation instant.
func processNow(cfg *Config, input *ConfigRawInput, wall time.Time) error {
	now, err := ParseNow(input.Now, wall)
	if err != nil {
		return err
	}
	cfg.Now = now
	return nil
}

// ParseNow parses an evaluation instant given as ISO8601, a plain date or
// 'N [units] ago' relative to wall. An empty string yields wall.
func ParseNow(s string, wall time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return wall, nil
	}
	for _, layout := range []string{DateTimeFormat, "2006-01-02T15:04:05", time.DateTime, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	t, err := ParseRelativeTime(s, wall)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid now format for '%s'. Expected absolute ISO8601, YYYY-MM-DD or 'N [units] ago': %w", s, err)
	}
	return t, nil
}

// defaultThresholds returns the stock gate thresholds.
func defaultThresholds() map[string]float64 {
	return map[string]float64{
		string(schema.ContactsKind):  schema.DefaultHealthThreshold,
		string(schema.CompaniesKind): schema.DefaultHealthThreshold,
		string(schema.TicketsKind):   schema.DefaultHealthThreshold,
		schema.OverallGate:           schema.DefaultHealthThreshold,
		schema.PostGate:              schema.DefaultHealthThreshold,
	}
}

// processThresholds converts the raw threshold input into cfg.Thresholds.
// Command-line --thresholds-override takes precedence over config file settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	thresholds := defaultThresholds()

	for gate, v := range map[string]*float64{
		string(schema.ContactsKind):  input.Thresholds.Contacts,
		string(schema.CompaniesKind): input.Thresholds.Companies,
		string(schema.TicketsKind):   input.Thresholds.Tickets,
		schema.OverallGate:           input.Thresholds.Overall,
		schema.PostGate:              input.Thresholds.Post,
	} {
		if v != nil {
			thresholds[gate] = *v
		}
	}

	if input.ThresholdsStr != "" {
		parsed, err := ParseThresholdsString(input.ThresholdsStr)
		if err != nil {
			return fmt.Errorf("invalid --thresholds-override format: %w", err)
		}
		maps.Copy(thresholds, parsed)
	}

	for gate, threshold := range thresholds {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("health threshold for %s must be between 0.0 and 100.0 (received %.2f)", gate, threshold)
		}
	}
	cfg.Thresholds = thresholds
	return nil
}

// processRules overlays config file trigger levels on the defaults.
func processRules(cfg *Config, input *ConfigRawInput) error {
	rules := schema.DefaultRuleThresholds()
	r := input.Rules
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setInt(&rules.DuplicateMin, r.DuplicateMin)
	setFloat(&rules.MissingRatio, r.MissingRatio)
	setInt(&rules.OrphanMin, r.OrphanMin)
	setInt(&rules.GhostMin, r.GhostMin)
	setInt(&rules.InvalidEmailMin, r.InvalidEmailMin)
	setFloat(&rules.ColdPct, r.ColdPct)
	setInt(&rules.CriticalMin, r.CriticalMin)
	setInt(&rules.AtRiskMin, r.AtRiskMin)

	if rules.MissingRatio < 0 {
		return fmt.Errorf("rules.missing-ratio cannot be negative (received %.2f)", rules.MissingRatio)
	}
	if rules.ColdPct < 0 || rules.ColdPct > 100 {
		return fmt.Errorf("rules.cold-pct must be between 0 and 100 (received %.2f)", rules.ColdPct)
	}
	cfg.Rules = rules
	return nil
}

// ParseThresholdsString parses a string like "contacts:70,overall:65"
// into a map of gate key to minimum score.
func ParseThresholdsString(s string) (map[string]float64, error) {
	thresholds := make(map[string]float64)

	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'gate:value'", part)
		}

		gate := strings.ToLower(strings.TrimSpace(keyValue[0]))
		valueStr := strings.TrimSpace(keyValue[1])

		switch gate {
		case string(schema.ContactsKind), string(schema.CompaniesKind), string(schema.TicketsKind), schema.OverallGate, schema.PostGate:
		default:
			return nil, fmt.Errorf("invalid gate '%s', must be contacts, companies, tickets, overall, or post", keyValue[0])
		}

		value, err := strconv.ParseFloat(valueStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for gate %s: %w", valueStr, gate, err)
		}
		thresholds[gate] = value
	}

	return thresholds, nil
}

// RevalidateAudit applies per-request export paths and evaluation instant on
// top of an already validated config. Empty values keep the config's own.
func RevalidateAudit(cfg *Config, paths map[schema.DatasetKind]string, nowStr string) error {
	if cfg.Paths == nil {
		cfg.Paths = make(map[schema.DatasetKind]string)
	}
	for kind, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			cfg.Paths[kind] = p
		}
	}
	if !cfg.HasInputs() {
		return fmt.Errorf("at least one of contacts, companies or tickets is required")
	}
	if strings.TrimSpace(nowStr) == "" {
		return nil
	}
	now, err := ParseNow(nowStr, time.Now().UTC())
	if err != nil {
		return err
	}
	cfg.Now = now
	return nil
}

// RevalidateThresholds merges a "gate:value" list into cfg.Thresholds.
func RevalidateThresholds(cfg *Config, s string) error {
	parsed, err := ParseThresholdsString(s)
	if err != nil {
		return fmt.Errorf("invalid --thresholds-override format: %w", err)
	}
	merged := defaultThresholds()
	maps.Copy(merged, cfg.Thresholds)
	maps.Copy(merged, parsed)
	for gate, threshold := range merged {
		if threshold < 0.0 || threshold > 100.0 {
			return fmt.Errorf("health threshold for %s must be between 0.0 and 100.0 (received %.2f)", gate, threshold)
		}
	}
	cfg.Thresholds = merged
	return nil
}
