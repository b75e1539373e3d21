package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/askov/ladepris-go/fees"
	"github.com/askov/ladepris-go/logging"
	"github.com/spf13/viper"
)

type AppConfigApi struct {
	Address string
	Port    int
	// Directory where rendered chart artifacts are written and served from.
	ArtifactsDir *string `mapstructure:"artifacts_dir"`
	// If not assigned, the server will serve embedded templates.
	// If assigned, templates are loaded from the directory and
	// reloaded on change. This is useful for development.
	WwwDir *string `mapstructure:"www_dir"`
}

func (a AppConfigApi) GetArtifactsDir() string {
	if a.ArtifactsDir == nil {
		return "artifacts"
	}
	return *a.ArtifactsDir
}

type AppConfigTime struct {
	// Offset from the system clock in whole hours, used when timezone
	// configuration isn't available on the host.
	OffsetHours int `mapstructure:"offset_hours"`
}

type AppConfigTariff struct {
	Summer   float64 `mapstructure:"summer"`
	Winter   float64 `mapstructure:"winter"`
	FromHour int     `mapstructure:"from_hour"`
	ToHour   int     `mapstructure:"to_hour"`
}

type AppConfigFees struct {
	// VAT as a fraction of the raw price, default 0.25
	VatRate *float64 `mapstructure:"vat_rate"`
	// Electricity tax paid to the state in DKK/kWh (elafgift), default 0.871
	StateFee *float64 `mapstructure:"state_fee"`
	// Transmission grid fee in DKK/kWh (Energinet), default 0.140
	GridFee *float64 `mapstructure:"grid_fee"`
	// Retailer margin in DKK/kWh, default 0
	RetailMargin float64 `mapstructure:"retail_margin"`
	// Transport tariffs per load band. High covers all hours the low
	// and peak ranges don't. Low defaults to [0, 6), peak to [17, 21).
	TariffHigh AppConfigTariff  `mapstructure:"tariff_high"`
	TariffLow  *AppConfigTariff `mapstructure:"tariff_low"`
	TariffPeak *AppConfigTariff `mapstructure:"tariff_peak"`
	// Summer tariff period, from month inclusive to month exclusive.
	// Defaults: April through September.
	SummerFromMonth *int `mapstructure:"summer_from_month"`
	SummerToMonth   *int `mapstructure:"summer_to_month"`
}

func (f AppConfigFees) GetVatRate() float64 {
	if f.VatRate == nil {
		return 0.25
	}
	return *f.VatRate
}

func (f AppConfigFees) GetStateFee() float64 {
	if f.StateFee == nil {
		return 0.871
	}
	return *f.StateFee
}

func (f AppConfigFees) GetGridFee() float64 {
	if f.GridFee == nil {
		return 0.140
	}
	return *f.GridFee
}

func (f AppConfigFees) GetTariffLow() AppConfigTariff {
	if f.TariffLow == nil {
		return AppConfigTariff{FromHour: 0, ToHour: 6}
	}
	return *f.TariffLow
}

func (f AppConfigFees) GetTariffPeak() AppConfigTariff {
	if f.TariffPeak == nil {
		return AppConfigTariff{FromHour: 17, ToHour: 21}
	}
	return *f.TariffPeak
}

func (f AppConfigFees) GetSummerFromMonth() time.Month {
	if f.SummerFromMonth == nil {
		return time.April
	}
	return time.Month(*f.SummerFromMonth)
}

func (f AppConfigFees) GetSummerToMonth() time.Month {
	if f.SummerToMonth == nil {
		return time.October
	}
	return time.Month(*f.SummerToMonth)
}

// Schedule assembles the immutable fee schedule used by the pipeline.
func (f AppConfigFees) Schedule() fees.Schedule {
	low := f.GetTariffLow()
	peak := f.GetTariffPeak()
	return fees.Schedule{
		VatRate:      f.GetVatRate(),
		StateFee:     f.GetStateFee(),
		GridFee:      f.GetGridFee(),
		RetailMargin: f.RetailMargin,
		High:         fees.Tariff{Summer: f.TariffHigh.Summer, Winter: f.TariffHigh.Winter},
		Low:          fees.Tariff{Summer: low.Summer, Winter: low.Winter, FromHour: low.FromHour, ToHour: low.ToHour},
		Peak:         fees.Tariff{Summer: peak.Summer, Winter: peak.Winter, FromHour: peak.FromHour, ToHour: peak.ToHour},
		SummerPeriod: fees.MonthRange{FromMonth: f.GetSummerFromMonth(), ToMonth: f.GetSummerToMonth()},
	}
}

type AppConfigEnergyPrice struct {
	// Price area for the Elspotprices dataset, default "DK1"
	Area *string `mapstructure:"area"`
	// Hour of day the source publishes the next day's prices, default 13
	PublishHour *int `mapstructure:"publish_hour"`
	// Upper bound on a single fetch in seconds, default 10
	FetchTimeoutSec *int `mapstructure:"fetch_timeout_sec"`
}

func (e AppConfigEnergyPrice) GetArea() string {
	if e.Area == nil {
		return "DK1"
	}
	return *e.Area
}

func (e AppConfigEnergyPrice) GetPublishHour() int {
	if e.PublishHour == nil {
		return 13
	}
	return *e.PublishHour
}

func (e AppConfigEnergyPrice) GetFetchTimeout() time.Duration {
	if e.FetchTimeoutSec == nil {
		return 10 * time.Second
	}
	return time.Duration(*e.FetchTimeoutSec) * time.Second
}

type AppConfigStation struct {
	// Fixed per-kWh surcharge for the charging station operator, default 0.74
	Surcharge *float64 `mapstructure:"surcharge"`
}

func (s AppConfigStation) GetSurcharge() float64 {
	if s.Surcharge == nil {
		return 0.74
	}
	return *s.Surcharge
}

type AppConfigDatabase struct {
	Path string
}

func (d AppConfigDatabase) GetPath() string {
	if d.Path == "" {
		return "ladepris.db"
	}
	return d.Path
}

type AppConfigMaintenance struct {
	// Cron expression for the nightly cleanup, default "30 2 * * *"
	RunAt *string `mapstructure:"run_at"`
}

func (m AppConfigMaintenance) GetRunAt() string {
	if m.RunAt == nil {
		return "30 2 * * *"
	}
	return *m.RunAt
}

type AppConfigLogging struct {
	// Min log level for database: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	DbLevel *string `mapstructure:"db_level"`
	// Log attributes format: "TEXT", "JSON", default: "JSON"
	DbAttrsFormat *string `mapstructure:"db_attrs_format"`
	// Maximum number of log entries in the database, default: 10000
	DbMaxEntries *int `mapstructure:"db_max_entries"`
	// Min log level for the console: "DEBUG", "INFO", "WARN", "ERROR", default: "INFO"
	ConsoleLevel *string `mapstructure:"console_level"`
}

// levelFromString maps a config value like "DEBUG" or "warn" onto a
// slog level, falling back to INFO for nil or unparseable input.
func levelFromString(str *string) slog.Level {
	if str == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(*str)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (l AppConfigLogging) GetDbLevel() slog.Level {
	return levelFromString(l.DbLevel)
}

func (l AppConfigLogging) GetDbAttrsFormat() logging.LogAttrFormat {
	if l.DbAttrsFormat == nil {
		return logging.LogAttrFormatJSON
	}
	if strings.EqualFold(*l.DbAttrsFormat, "text") {
		return logging.LogAttrFormatText
	}
	return logging.LogAttrFormatJSON
}

func (l AppConfigLogging) GetDbMaxEntries() int {
	if l.DbMaxEntries == nil {
		return 10000
	}
	return *l.DbMaxEntries
}

func (l AppConfigLogging) GetConsoleLevel() slog.Level {
	return levelFromString(l.ConsoleLevel)
}

type AppConfig struct {
	Api         AppConfigApi
	Time        AppConfigTime
	Fees        AppConfigFees
	EnergyPrice AppConfigEnergyPrice `mapstructure:"energy_price"`
	Station     AppConfigStation
	Database    AppConfigDatabase
	Maintenance AppConfigMaintenance
	Logging     AppConfigLogging
}

func Load(path string) (*AppConfig, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c AppConfig

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	if err := viper.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %w", err)
	}

	return &c, nil
}
