// Package quiz implements the rule-based sport recommender used by the
// onboarding questionnaire. It is a pure function over the answers: no
// profile data, no similarity matrix, no I/O.
package quiz

// GroupStyle is the answer to "do you prefer team or individual sports".
type GroupStyle int

const (
	GroupStyleUnspecified GroupStyle = iota
	GroupStyleTeam
	GroupStyleIndividual
)

// Activity is one enjoyed-activity category from the questionnaire.
type Activity int

const (
	ActivityRunning Activity = iota + 1
	ActivityStrengthAndEndurance
	ActivityStrategicPlanning
	ActivityBalanceAndAgility
	ActivityMartialArts
	ActivitySwimmingAndWater
	ActivityDanceAndRhythm
	ActivityBall

	// ActivityOther is a valid answer that, like swimming and dance,
	// contributes to no sport's score.
	ActivityOther
)

// AgeGroup is the respondent's age band.
type AgeGroup int

const (
	AgeGroupPreschool AgeGroup = iota + 1
	AgeGroupPrimarySchool
	AgeGroupJuniors
	AgeGroupAdults
	AgeGroupVeterans
)

// sport identifies one entry of the fixed questionnaire catalog.
type sport int

const (
	sportFieldHockey sport = iota
	sportRugby
	sportChess
	sportFootball
	sportVolleyball
	sportCount
)

// sportIDs maps each catalog sport to its external id, in declaration
// order. Declaration order is also the tie-break: on equal scores the
// earlier sport wins.
var sportIDs = [sportCount]string{
	sportFieldHockey: "recGfphnFce1DEBhE",
	sportRugby:       "recUmMssS0H4uzmgT",
	sportChess:       "recj8YX9QFNCQitNX",
	sportFootball:    "rechBDkyGTVt63HkC",
	sportVolleyball:  "rec4Q3FEtoheO51gX",
}

// DefaultSportID is returned when the winning sport has no id mapping.
// With the fixed catalog above that cannot happen, but the fallback is
// part of the contract.
const DefaultSportID = "recGfphnFce1DEBhE"

// Recommend scores the fixed sport catalog against the questionnaire
// answers and returns the id of the top-scoring sport. All rule
// contributions are additive and non-exclusive: group style, every
// activity present, and age group each add their deltas independently.
func Recommend(style GroupStyle, activities []Activity, age AgeGroup) string {
	var scores [sportCount]int

	switch style {
	case GroupStyleTeam:
		scores[sportFieldHockey] += 2
		scores[sportRugby] += 2
		scores[sportFootball] += 2
		scores[sportVolleyball] += 2
		scores[sportChess]--
	case GroupStyleIndividual:
		scores[sportChess] += 3
	}

	for _, a := range activities {
		switch a {
		case ActivityRunning:
			scores[sportFieldHockey] += 2
			scores[sportFootball] += 2
			scores[sportRugby]++
		case ActivityStrengthAndEndurance:
			scores[sportRugby] += 3
			scores[sportFootball]++
			scores[sportFieldHockey]++
		case ActivityStrategicPlanning:
			scores[sportChess] += 3
			scores[sportFieldHockey]++
			scores[sportFootball]++
			scores[sportVolleyball]++
		case ActivityBalanceAndAgility:
			scores[sportFootball] += 2
			scores[sportVolleyball] += 2
			scores[sportFieldHockey]++
		case ActivityMartialArts:
			scores[sportVolleyball]++
		case ActivityBall:
			scores[sportFieldHockey]++
			scores[sportRugby]++
			scores[sportVolleyball] += 3
			scores[sportFootball] += 3
		case ActivitySwimmingAndWater, ActivityDanceAndRhythm, ActivityOther:
			// No catalog sport maps to these.
		}
	}

	switch age {
	case AgeGroupPreschool:
		scores[sportFieldHockey]--
		scores[sportRugby] -= 2
	case AgeGroupVeterans:
		scores[sportRugby] -= 2
		scores[sportFieldHockey]--
		scores[sportChess] += 3
	}

	winner := sportFieldHockey
	for s := sport(1); s < sportCount; s++ {
		if scores[s] > scores[winner] {
			winner = s
		}
	}

	id := sportIDs[winner]
	if id == "" {
		return DefaultSportID
	}
	return id
}
