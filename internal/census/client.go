// Package census fetches demographic records from the US Census Bureau's
// American Community Survey 5-year estimates API.
package census

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"doppel/internal/twin/models"
	"doppel/pkg/domain"
	"doppel/pkg/platform/sentinel"
)

// ACS variable codes queried per ZIP code tabulation area. The set mirrors the
// dashboard contract: population and age structure, income, home values,
// race, education, housing tenure, and commuting.
var acsVariables = []string{
	"NAME", "B01003_001E", "B01002_001E", "B09001_001E", "B01001_020E",
	"B01001_021E", "B01001_022E", "B01001_023E", "B01001_024E", "B01001_025E",
	"B01001_044E", "B01001_045E", "B01001_046E", "B01001_047E", "B01001_048E",
	"B01001_049E", "B19013_001E", "B25077_001E", "B25064_001E", "B02001_002E",
	"B02001_003E", "B02001_004E", "B02001_005E", "B15003_001E", "B15003_022E",
	"B15003_023E", "B15003_024E", "B15003_025E", "B25002_001E", "B25002_002E",
	"B25002_003E", "B08301_001E", "B08301_002E", "B08301_010E", "B08301_021E",
}

// Male 65+ cohorts plus female 65+ cohorts; the ACS only publishes the split.
var age65PlusVariables = []string{
	"B01001_020E", "B01001_021E", "B01001_022E", "B01001_023E", "B01001_024E", "B01001_025E",
	"B01001_044E", "B01001_045E", "B01001_046E", "B01001_047E", "B01001_048E", "B01001_049E",
}

const (
	defaultBaseURL = "https://api.census.gov/data"
	defaultVintage = "2022"
	defaultTimeout = 30 * time.Second
)

// Config holds Census client settings. The vintage selects the ACS snapshot
// year and is fixed per deployment so all identifiers share one statistical
// baseline.
type Config struct {
	BaseURL string
	Vintage string
	Timeout time.Duration
}

// Client queries the ACS 5-year estimates endpoint. One call per lookup; no
// retries here, the caller owns retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	vintage    string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	vintage := cfg.Vintage
	if vintage == "" {
		vintage = defaultVintage
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		vintage:    vintage,
		logger:     logger,
	}
}

// Fetch retrieves the demographic record for one ZIP code.
//
// Errors: sentinel.ErrNotFound when the ACS has no row for the ZCTA (normal
// for unassigned or unpopulated codes), sentinel.ErrUnavailable for transport
// failures and non-200 responses, sentinel.ErrBadUpstream when the payload
// cannot be parsed.
func (c *Client) Fetch(ctx context.Context, zip domain.ZIPCode) (*models.Demographics, error) {
	url := fmt.Sprintf("%s/%s/acs/acs5?get=%s&for=zip%%20code%%20tabulation%%20area:%s",
		c.baseURL, c.vintage, strings.Join(acsVariables, ","), zip)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build census request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("census request %s: %w", zip, errors.Join(sentinel.ErrUnavailable, err))
	}
	defer resp.Body.Close()

	// The API answers 204 for ZCTAs that exist in no vintage.
	if resp.StatusCode == http.StatusNoContent {
		return nil, sentinel.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("census status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(body)), sentinel.ErrUnavailable)
	}

	var rows [][]any
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode census response: %w", errors.Join(sentinel.ErrBadUpstream, err))
	}
	if len(rows) < 2 {
		c.logger.DebugContext(ctx, "no census data", "zip", zip.String())
		return nil, sentinel.ErrNotFound
	}

	record := newRow(rows[0], rows[1])
	return record.demographics(zip), nil
}

// row pairs the header row with the first data row. The ACS wire format is an
// array of arrays: headers first, then one row of string-encoded values.
type row struct {
	values map[string]string
}

func newRow(headers, values []any) *row {
	m := make(map[string]string, len(headers))
	for i, h := range headers {
		name, ok := h.(string)
		if !ok || i >= len(values) {
			continue
		}
		switch v := values[i].(type) {
		case string:
			m[name] = v
		case float64:
			m[name] = strconv.FormatFloat(v, 'f', -1, 64)
		case nil:
			// Missing value; leave it absent rather than storing zero.
		}
	}
	return &row{values: m}
}

func (r *row) text(field string) string {
	return r.values[field]
}

// count returns a population count, treating missing and ACS suppression
// sentinels (large negative values) as zero.
func (r *row) count(field string) int64 {
	v, err := strconv.ParseInt(r.values[field], 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// median returns a median-style figure, or nil when the ACS omitted or
// suppressed it. Suppressed medians arrive as negative sentinels such as
// -666666666 and must stay absent so similarity prompts never see them.
func (r *row) median(field string) *float64 {
	s, ok := r.values[field]
	if !ok {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func (r *row) demographics(zip domain.ZIPCode) *models.Demographics {
	population := r.count("B01003_001E")
	under18 := r.count("B09001_001E")

	var age65 int64
	for _, field := range age65PlusVariables {
		age65 += r.count(field)
	}
	age18to64 := population - under18 - age65
	if age18to64 < 0 {
		age18to64 = 0
	}

	zipCode := r.text("zip code tabulation area")
	if zipCode == "" {
		zipCode = zip.String()
	}

	return &models.Demographics{
		ZipCode: zipCode,
		Name:    r.text("NAME"),

		Population: population,

		MedianIncome:    r.median("B19013_001E"),
		MedianAge:       r.median("B01002_001E"),
		MedianHomeValue: r.median("B25077_001E"),
		MedianRent:      r.median("B25064_001E"),

		RaceWhite:  r.count("B02001_002E"),
		RaceBlack:  r.count("B02001_003E"),
		RaceNative: r.count("B02001_004E"),
		RaceAsian:  r.count("B02001_005E"),

		EducationPopulation: r.count("B15003_001E"),
		EducationBachelors:  r.count("B15003_022E"),
		EducationGraduate:   r.count("B15003_023E") + r.count("B15003_024E") + r.count("B15003_025E"),

		HousingUnits:   r.count("B25002_001E"),
		OwnerOccupied:  r.count("B25002_002E"),
		RenterOccupied: r.count("B25002_003E"),

		AgeUnder18: under18,
		Age18to64:  age18to64,
		Age65plus:  age65,

		CommuteTotal:  r.count("B08301_001E"),
		CommuteDrive:  r.count("B08301_002E"),
		CommutePublic: r.count("B08301_010E"),
		CommuteWfh:    r.count("B08301_021E"),
	}
}
