package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/recordlens/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// CategoryWeightsRaw holds custom category weights. Pointers mark fields left unset.
type CategoryWeightsRaw struct {
	Academic  *float64 `mapstructure:"academic"`
	Career    *float64 `mapstructure:"career"`
	Community *float64 `mapstructure:"community"`
}

// CriterionWeightsRaw holds custom intra-category criterion weights.
type CriterionWeightsRaw struct {
	Achievement *float64 `mapstructure:"achievement"`
	Attitude    *float64 `mapstructure:"attitude"`
	Relevance   *float64 `mapstructure:"relevance"`
	Exploration *float64 `mapstructure:"exploration"`
	Cooperation *float64 `mapstructure:"cooperation"`
	Sharing     *float64 `mapstructure:"sharing"`
}

// RubricRawInput holds the rubric overrides of the YAML config file.
type RubricRawInput struct {
	CategoryWeights  *CategoryWeightsRaw  `mapstructure:"category_weights"`
	CriterionWeights *CriterionWeightsRaw `mapstructure:"criterion_weights"`
	MajorKeywords    map[string][]string  `mapstructure:"major_keywords"`
	FallbackMajor    string               `mapstructure:"fallback_major"`
	PlanThreshold    *float64             `mapstructure:"plan_threshold"`
}

// ReferencesRawInput is the shape of a reference profile file.
type ReferencesRawInput struct {
	Profiles       []schema.ReferenceProfile `mapstructure:"profiles"`
	ReadinessTable *schema.GradeTable        `mapstructure:"readiness_table"`
}

// Config holds the runtime configuration for an evaluation.
// This struct is the "final, validated" config.
type Config struct {
	RecordPaths []string
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	Detail      bool
	UseColors   bool

	College        string
	Major          string
	ReferencesPath string

	Rubric     *schema.RubricConfig
	References *schema.ReferenceProfileSet // nil when no profiles are configured

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string

	// Now stamps runs and output envelopes. The engine itself never reads a clock.
	Now func() time.Time
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RecordPaths []string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Detail           bool   `mapstructure:"detail"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFormat        string `mapstructure:"log-format"`
	References       string `mapstructure:"references"`

	// --- Fields from benchmarkCmd.Flags() ---
	College string `mapstructure:"college"`
	Major   string `mapstructure:"major"`

	// --- Rubric overrides from config file ---
	Rubric RubricRawInput `mapstructure:"rubric"`

	// --- Inline reference profiles from config file ---
	ReferenceProfiles []schema.ReferenceProfile `mapstructure:"reference_profiles"`
	ReadinessTable    *schema.GradeTable        `mapstructure:"readiness_table"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processRubric(cfg, input); err != nil {
		return err
	}
	return processReferences(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
// An empty backend disables history tracking.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all flag-level fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.RecordPaths = input.RecordPaths
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.College = strings.TrimSpace(input.College)
	cfg.Major = strings.TrimSpace(input.Major)
	cfg.ReferencesPath = strings.TrimSpace(input.References)
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	cfg.LogLevel = strings.ToLower(input.LogLevel)
	switch cfg.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'. must be debug, info, warn, error", input.LogLevel)
	}
	cfg.LogFormat = strings.ToLower(input.LogFormat)
	switch cfg.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format '%s'. must be text, json", input.LogFormat)
	}
	return nil
}

// ProcessCategoryWeights converts the raw category weights into a weight map.
// If validateSum is true, provided weights must sum to 1.0.
func ProcessCategoryWeights(raw *CategoryWeightsRaw, validateSum bool) (map[schema.Category]float64, error) {
	if raw == nil {
		return nil, nil
	}
	result := collectWeights(map[schema.Category]*float64{
		schema.AcademicCategory:  raw.Academic,
		schema.CareerCategory:    raw.Career,
		schema.CommunityCategory: raw.Community,
	})
	if validateSum && len(result) > 0 {
		if err := checkSum(result, "category weights"); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ProcessCriterionWeights converts the raw criterion weights into a weight map.
// If validateSum is true, the provided weights of every touched category must sum to 1.0.
func ProcessCriterionWeights(raw *CriterionWeightsRaw, validateSum bool) (map[schema.Criterion]float64, error) {
	if raw == nil {
		return nil, nil
	}
	result := collectWeights(map[schema.Criterion]*float64{
		schema.AchievementCriterion: raw.Achievement,
		schema.AttitudeCriterion:    raw.Attitude,
		schema.RelevanceCriterion:   raw.Relevance,
		schema.ExplorationCriterion: raw.Exploration,
		schema.CooperationCriterion: raw.Cooperation,
		schema.SharingCriterion:     raw.Sharing,
	})
	if !validateSum {
		return result, nil
	}
	for _, cat := range schema.AllCategories {
		touched := make(map[schema.Criterion]float64)
		for _, crit := range schema.CategoryCriteria[cat] {
			if w, ok := result[crit]; ok {
				touched[crit] = w
			}
		}
		if len(touched) == 0 {
			continue
		}
		if err := checkSum(touched, fmt.Sprintf("criterion weights for category %s", cat)); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func collectWeights[K comparable](raw map[K]*float64) map[K]float64 {
	out := make(map[K]float64)
	for k, v := range raw {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func checkSum[K comparable](weights map[K]float64, what string) error {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if sum < 1-schema.WeightTolerance || sum > 1+schema.WeightTolerance {
		return fmt.Errorf("%w: custom %s must sum to 1.0, got %.3f", schema.ErrInvalidWeights, what, sum)
	}
	return nil
}

// RubricOptions turns the raw rubric overrides into rubric options.
func RubricOptions(raw RubricRawInput) ([]schema.RubricOption, error) {
	var opts []schema.RubricOption

	catWeights, err := ProcessCategoryWeights(raw.CategoryWeights, true)
	if err != nil {
		return nil, err
	}
	if len(catWeights) > 0 {
		opts = append(opts, schema.WithCategoryWeights(catWeights))
	}

	critWeights, err := ProcessCriterionWeights(raw.CriterionWeights, true)
	if err != nil {
		return nil, err
	}
	if len(critWeights) > 0 {
		opts = append(opts, schema.WithCriterionWeights(critWeights))
	}

	for major, keywords := range raw.MajorKeywords {
		opts = append(opts, schema.WithMajorKeywords(major, keywords))
	}
	if raw.FallbackMajor != "" {
		opts = append(opts, schema.WithFallbackMajor(raw.FallbackMajor))
	}
	if raw.PlanThreshold != nil {
		opts = append(opts, schema.WithPlanThreshold(*raw.PlanThreshold))
	}
	return opts, nil
}

// processRubric merges the config file overrides over the default rubric.
func processRubric(cfg *Config, input *ConfigRawInput) error {
	opts, err := RubricOptions(input.Rubric)
	if err != nil {
		return err
	}
	rubric, err := schema.NewRubricConfig(opts...)
	if err != nil {
		return fmt.Errorf("invalid rubric: %w", err)
	}
	cfg.Rubric = rubric
	return nil
}

// processReferences loads reference profiles from --references, falling back
// to profiles inlined in the config file. Having neither is not an error here;
// only the benchmark flow requires references.
func processReferences(cfg *Config, input *ConfigRawInput) error {
	if cfg.ReferencesPath != "" {
		refs, err := LoadReferenceProfiles(cfg.ReferencesPath)
		if err != nil {
			return err
		}
		cfg.References = refs
		return nil
	}
	if len(input.ReferenceProfiles) == 0 {
		return nil
	}
	refs, err := schema.NewReferenceProfileSet(input.ReferenceProfiles, input.ReadinessTable)
	if err != nil {
		return fmt.Errorf("invalid reference_profiles: %w", err)
	}
	cfg.References = refs
	return nil
}
