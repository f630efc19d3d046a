package gemini

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"doppel/internal/twin/models"
)

// formatNumber renders an integer with thousands separators ("1,234,567").
func formatNumber(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// formatCurrency renders a dollar figure ("$45,000"), or "not reported" when
// the ACS suppressed the value. Prompts must surface the absence instead of a
// fake zero, or the model would match against phantom poverty.
func formatCurrency(v *float64) string {
	if v == nil {
		return "not reported"
	}
	return "$" + formatNumber(int64(*v+0.5))
}

// formatPercent renders a ratio as a percentage with one decimal ("45.3%").
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// formatYears renders a median age ("47.1 years") or "not reported".
func formatYears(v *float64) string {
	if v == nil {
		return "not reported"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + " years"
}

func ratioPercent(part, whole int64) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// profilePrompt asks for a market-research style community profile built from
// the demographic record.
func profilePrompt(d *models.Demographics) string {
	higherEd := ratioPercent(d.EducationBachelors+d.EducationGraduate, d.EducationPopulation)
	ownerOccupied := ratioPercent(d.OwnerOccupied, d.HousingUnits)
	wfh := ratioPercent(d.CommuteWfh, d.CommuteTotal)
	under18 := ratioPercent(d.AgeUnder18, d.Population)
	over65 := ratioPercent(d.Age65plus, d.Population)

	return fmt.Sprintf(`Analyze the following demographic data for ZIP code %s to create a detailed community profile.
Generate a response in the persona of a market research analyst describing the area to a business or someone considering moving there.
The response must be structured as a JSON object that adheres to the provided schema.

Data for Analysis:
- Total Population: %s
- Median Age: %s
- Age Distribution: %s under 18, %s 65+
- Median Household Income: %s
- Median Home Value: %s
- Median Rent: %s
- Housing Occupancy: %s owner-occupied
- Education: %s of adults (25+) have a Bachelor's degree or higher
- Commute: %s of workers work from home
- Racial Composition: Population is approximately %s White, %s Black, and %s Asian.`,
		d.ZipCode,
		formatNumber(d.Population),
		formatYears(d.MedianAge),
		formatPercent(under18), formatPercent(over65),
		formatCurrency(d.MedianIncome),
		formatCurrency(d.MedianHomeValue),
		formatCurrency(d.MedianRent),
		formatPercent(ownerOccupied),
		formatPercent(higherEd),
		formatPercent(wfh),
		formatNumber(d.RaceWhite), formatNumber(d.RaceBlack), formatNumber(d.RaceAsian),
	)
}

// doppelgangerPrompt asks for similar ZIP codes within the configured
// similarity band.
func doppelgangerPrompt(d *models.Demographics, count int, thresholdMin, thresholdMax float64) string {
	higherEd := ratioPercent(d.EducationBachelors+d.EducationGraduate, d.EducationPopulation)
	ownerOccupied := ratioPercent(d.OwnerOccupied, d.HousingUnits)

	return fmt.Sprintf(`Analyze the provided demographic data for ZIP code %s and act as a backend data service.
Your task is to find %d other US ZIP codes that are its "doppelganger" - meaning they are remarkably similar across key metrics.

Prioritize areas with a similar blend of:
1.  Median Household Income (around %s)
2.  Median Home Value (around %s)
3.  Population size (around %s)
4.  Education level (approx. %s with Bachelor's degree or higher)
5.  Housing tenure (approx. %s owner-occupied)
6.  Median Age (around %s)

For each match, you must provide a 'similarityPercentage' score between %.0f and %.0f, where 100 is a perfect match.
Return the results as a JSON array of objects that strictly follows the provided schema. Do not include the original ZIP code (%s) in the results.`,
		d.ZipCode,
		count,
		formatCurrency(d.MedianIncome),
		formatCurrency(d.MedianHomeValue),
		formatNumber(d.Population),
		formatPercent(higherEd),
		formatPercent(ownerOccupied),
		formatYears(d.MedianAge),
		thresholdMin, thresholdMax,
		d.ZipCode,
	)
}

func profileSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"whoAreWe": {
				Type:        genai.TypeString,
				Description: "A narrative paragraph summarizing the area's character, lifestyle, and key traits of the population.",
			},
			"ourNeighborhood": {
				Type:        genai.TypeArray,
				Description: "A list of 3-5 key facts about the neighborhood, focusing on housing, density, and household composition.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"socioeconomicTraits": {
				Type:        genai.TypeArray,
				Description: "A list of 3-5 key facts about the population's socioeconomic status, including education, employment, and financial habits.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"whoAreWe", "ourNeighborhood", "socioeconomicTraits"},
	}
}

func doppelgangerSchema(count int, thresholdMin, thresholdMax float64) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: fmt.Sprintf("A list of %d US ZIP codes with very similar demographics.", count),
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"zipCode": {
					Type:        genai.TypeString,
					Description: "The 5-digit ZIP code.",
				},
				"city": {
					Type:        genai.TypeString,
					Description: "The primary city for the ZIP code.",
				},
				"state": {
					Type:        genai.TypeString,
					Description: "The 2-letter state abbreviation.",
				},
				"similarityReason": {
					Type:        genai.TypeString,
					Description: "A brief, one-sentence explanation of why this ZIP code is a good match.",
				},
				"similarityPercentage": {
					Type:        genai.TypeNumber,
					Description: fmt.Sprintf("A numerical score from %.0f to %.0f.", thresholdMin, thresholdMax),
				},
			},
			Required: []string{"zipCode", "city", "state", "similarityReason", "similarityPercentage"},
		},
	}
}
