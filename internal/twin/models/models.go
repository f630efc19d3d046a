package models

import "sort"

// Demographics is one ZIP code's record from the Census ACS 5-year estimates.
// Immutable once fetched. Median figures use pointers because the ACS omits
// them for sparsely populated areas; an absent median must never read as zero
// or it would skew the similarity matching downstream.
type Demographics struct {
	ZipCode string `json:"zipCode"`
	Name    string `json:"name"`

	Population int64 `json:"population"`

	MedianIncome    *float64 `json:"medianIncome"`
	MedianAge       *float64 `json:"medianAge"`
	MedianHomeValue *float64 `json:"medianHomeValue"`
	MedianRent      *float64 `json:"medianRent"`

	RaceWhite  int64 `json:"raceWhite"`
	RaceBlack  int64 `json:"raceBlack"`
	RaceNative int64 `json:"raceNative"`
	RaceAsian  int64 `json:"raceAsian"`

	EducationPopulation int64 `json:"educationPopulation"`
	EducationBachelors  int64 `json:"educationBachelors"`
	EducationGraduate   int64 `json:"educationGraduate"`

	HousingUnits   int64 `json:"housingUnits"`
	OwnerOccupied  int64 `json:"ownerOccupied"`
	RenterOccupied int64 `json:"renterOccupied"`

	AgeUnder18 int64 `json:"ageUnder18"`
	Age18to64  int64 `json:"age18to64"`
	Age65plus  int64 `json:"age65plus"`

	CommuteTotal  int64 `json:"commuteTotal"`
	CommuteDrive  int64 `json:"commuteDrive"`
	CommutePublic int64 `json:"commutePublic"`
	CommuteWfh    int64 `json:"commuteWfh"`
}

// CommunityProfile is the generated narrative description of one area.
type CommunityProfile struct {
	WhoAreWe            string   `json:"whoAreWe"`
	OurNeighborhood     []string `json:"ourNeighborhood"`
	SocioeconomicTraits []string `json:"socioeconomicTraits"`
}

// DoppelgangerMatch is one ZIP code judged demographically similar to the
// queried one.
type DoppelgangerMatch struct {
	ZipCode              string  `json:"zipCode"`
	City                 string  `json:"city"`
	State                string  `json:"state"`
	SimilarityReason     string  `json:"similarityReason"`
	SimilarityPercentage float64 `json:"similarityPercentage"`
}

// CompositeResult is the unit of caching and the unit returned to callers:
// demographics plus profile plus ranked matches for one ZIP code. Assembled
// only when all three upstream calls succeed; never partially populated.
type CompositeResult struct {
	ZipCode       string              `json:"zipCode"`
	Demographics  *Demographics       `json:"demographics"`
	Profile       *CommunityProfile   `json:"profile"`
	Doppelgangers []DoppelgangerMatch `json:"doppelgangers"`
}

// SortMatches orders matches by similarity percentage descending. Equal
// percentages fall back to ascending ZIP code so the ranking is deterministic
// across runs.
func SortMatches(matches []DoppelgangerMatch) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].SimilarityPercentage != matches[j].SimilarityPercentage {
			return matches[i].SimilarityPercentage > matches[j].SimilarityPercentage
		}
		return matches[i].ZipCode < matches[j].ZipCode
	})
}
