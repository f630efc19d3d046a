package gemini

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"doppel/internal/twin/models"
	"doppel/pkg/platform/sentinel"
)

type fakeModels struct {
	text       string
	err        error
	lastModel  string
	lastPrompt string
	lastConfig *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.lastModel = model
	f.lastConfig = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastPrompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.text}}}},
		},
	}, nil
}

func newTestAnalyzer(fake *fakeModels) *Analyzer {
	return &Analyzer{
		models:     fake,
		model:      defaultModel,
		matchCount: defaultMatchCount,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func record() *models.Demographics {
	income := 153811.0
	age := 47.1
	return &models.Demographics{
		ZipCode:             "90210",
		Name:                "ZCTA5 90210",
		Population:          20575,
		MedianIncome:        &income,
		MedianAge:           &age,
		EducationPopulation: 15234,
		EducationBachelors:  5120,
		EducationGraduate:   3740,
		HousingUnits:        9526,
		OwnerOccupied:       5103,
		CommuteTotal:        8100,
		CommuteWfh:          2200,
		AgeUnder18:          3404,
		Age65plus:           4120,
		RaceWhite:           16200,
		RaceBlack:           410,
		RaceAsian:           1900,
	}
}

func TestProfileParsesStructuredOutput(t *testing.T) {
	fake := &fakeModels{text: `{
		"whoAreWe": "An affluent, established community.",
		"ourNeighborhood": ["Low-density single family housing", "Majority owner-occupied"],
		"socioeconomicTraits": ["High educational attainment", "Significant remote work share"]
	}`}
	a := newTestAnalyzer(fake)

	profile, err := a.Profile(context.Background(), record())
	require.NoError(t, err)

	assert.Equal(t, "An affluent, established community.", profile.WhoAreWe)
	assert.Len(t, profile.OurNeighborhood, 2)
	assert.Len(t, profile.SocioeconomicTraits, 2)

	assert.Equal(t, defaultModel, fake.lastModel)
	assert.Equal(t, "application/json", fake.lastConfig.ResponseMIMEType)
	require.NotNil(t, fake.lastConfig.ResponseSchema)
	assert.Equal(t, genai.TypeObject, fake.lastConfig.ResponseSchema.Type)

	assert.Contains(t, fake.lastPrompt, "ZIP code 90210")
	assert.Contains(t, fake.lastPrompt, "$153,811")
	assert.Contains(t, fake.lastPrompt, "47.1 years")
}

func TestProfileAbsentMediansSurfaceAsNotReported(t *testing.T) {
	fake := &fakeModels{text: `{"whoAreWe":"A small rural area.","ourNeighborhood":[],"socioeconomicTraits":[]}`}
	a := newTestAnalyzer(fake)

	d := record()
	d.MedianIncome = nil
	d.MedianHomeValue = nil

	_, err := a.Profile(context.Background(), d)
	require.NoError(t, err)

	assert.Contains(t, fake.lastPrompt, "Median Household Income: not reported")
	assert.NotContains(t, fake.lastPrompt, "$0")
}

func TestProfileEmptyNarrativeIsBadUpstream(t *testing.T) {
	fake := &fakeModels{text: `{"whoAreWe":"","ourNeighborhood":[],"socioeconomicTraits":[]}`}
	a := newTestAnalyzer(fake)

	_, err := a.Profile(context.Background(), record())
	require.ErrorIs(t, err, sentinel.ErrBadUpstream)
}

func TestProfileTransportFailureIsUnavailable(t *testing.T) {
	fake := &fakeModels{err: errors.New("rpc error: unavailable")}
	a := newTestAnalyzer(fake)

	_, err := a.Profile(context.Background(), record())
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestDoppelgangersSortsAndValidates(t *testing.T) {
	fake := &fakeModels{text: `[
		{"zipCode":"33109","city":"Miami Beach","state":"FL","similarityReason":"Comparable wealth","similarityPercentage":91},
		{"zipCode":"10007","city":"New York","state":"NY","similarityReason":"Comparable incomes","similarityPercentage":96},
		{"zipCode":"94027","city":"Atherton","state":"CA","similarityReason":"Comparable home values","similarityPercentage":96}
	]`}
	a := newTestAnalyzer(fake)

	matches, err := a.Doppelgangers(context.Background(), record())
	require.NoError(t, err)
	require.Len(t, matches, 3)

	// Ranked by similarity descending, equal scores by ascending ZIP.
	assert.Equal(t, "10007", matches[0].ZipCode)
	assert.Equal(t, "94027", matches[1].ZipCode)
	assert.Equal(t, "33109", matches[2].ZipCode)

	require.NotNil(t, fake.lastConfig.ResponseSchema)
	assert.Equal(t, genai.TypeArray, fake.lastConfig.ResponseSchema.Type)
	assert.Contains(t, fake.lastPrompt, "Do not include the original ZIP code (90210)")
}

func TestDoppelgangersOutOfRangeScoreIsBadUpstream(t *testing.T) {
	fake := &fakeModels{text: `[{"zipCode":"33109","city":"Miami Beach","state":"FL","similarityReason":"r","similarityPercentage":104.2}]`}
	a := newTestAnalyzer(fake)

	_, err := a.Doppelgangers(context.Background(), record())
	require.ErrorIs(t, err, sentinel.ErrBadUpstream)
}

func TestDoppelgangersMalformedJSONIsBadUpstream(t *testing.T) {
	fake := &fakeModels{text: `oops, not json`}
	a := newTestAnalyzer(fake)

	_, err := a.Doppelgangers(context.Background(), record())
	require.ErrorIs(t, err, sentinel.ErrBadUpstream)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", formatNumber(0))
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1,000", formatNumber(1000))
	assert.Equal(t, "20,575", formatNumber(20575))
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "-12,345", formatNumber(-12345))
}
