package module

import (
	"strings"
	"time"

	"laborreport/internal/adapters/fieldservice"
	"laborreport/internal/core/labor"
	"laborreport/internal/core/odata"
	"laborreport/internal/platform/config"
	"laborreport/internal/platform/credentials"
	"laborreport/internal/platform/logger"
	phttp "laborreport/internal/platform/net/http"
	"laborreport/internal/services/reports/repo"
)

// Options holds configuration for the reports pipeline, store and view
type Options struct {
	API        fieldservice.Options
	ChunkSize  int
	Average    labor.AverageMode
	ReportFile string
	KeyFile    string
	NoColor    bool

	HTTPAddr    string
	HTTPOrigins []string
}

// FromConfig reads the report options from config with the LABOR_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("LABOR_")
	api := c.Prefix("API_")
	avg, err := labor.ParseAverageMode(strings.ToLower(c.MayString("PPLH_AVERAGE", "")))
	if err != nil {
		logger.Get().Panic().Err(err).Str("key", c.Key("PPLH_AVERAGE")).Msg("invalid average mode")
	}
	return Options{
		API: fieldservice.Options{
			BaseURL:    api.MayURL("URL", "https://rest.method.me/api/v1"),
			Timeout:    api.MayDuration("TIMEOUT", 30*time.Second),
			PageSize:   api.MayPositiveInt("PAGE_SIZE", 100),
			MaxRetries: api.MayPositiveInt("RETRIES", 3),
			RetryBase:  api.MayDuration("RETRY_BASE", 500*time.Millisecond),
			RetryMax:   api.MayDuration("RETRY_MAX", 30*time.Second),
		},
		ChunkSize:   c.MayPositiveInt("CHUNK_SIZE", odata.DefaultChunkSize),
		Average:     avg,
		ReportFile:  c.MayString("REPORT_FILE", repo.DefaultPath),
		KeyFile:     c.MayString("KEY_FILE", credentials.DefaultPath),
		NoColor:     c.MayBool("NO_COLOR", false),
		HTTPAddr:    c.MayString("HTTP_ADDR", phttp.DefaultAddr),
		HTTPOrigins: splitCSV(c.MayString("HTTP_ORIGINS", "")),
	}
}

func splitCSV(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
