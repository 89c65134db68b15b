package pricecharting

import "strings"

// the grade a completed-auction container belongs to is encoded in its
// css class name
const gradeMarkerPrefix = "completed-auctions-"

// GradeVocabulary maps a container class marker to a human readable
// condition grade label. the table is a closed vocabulary, supporting a
// new grading service means adding an entry here.
type GradeVocabulary map[string]string

func DefaultGrades() GradeVocabulary {
	return GradeVocabulary{
		"completed-auctions-used":             "Ungraded",
		"completed-auctions-grade-nineteen":   "CGC 10 Prist.",
		"completed-auctions-manual-only":      "PSA 10",
		"completed-auctions-grade-seventeen":  "CGC 10",
		"completed-auctions-grade-twenty-one": "TAG 10",
		"completed-auctions-grade-twenty-two": "ACE 10",
		"completed-auctions-box-only":         "Grade 9.5",
		"completed-auctions-graded":           "Grade 9",
		"completed-auctions-new":              "Grade 8",
		"completed-auctions-cib":              "Grade 7",
		"completed-auctions-grade-six":        "Grade 6",
		"completed-auctions-grade-five":       "Grade 5",
		"completed-auctions-grade-four":       "Grade 4",
		"completed-auctions-grade-three":      "Grade 3",
		"completed-auctions-box-and-manual":   "Grade 2",
		"completed-auctions-loose-and-manual": "Grade 1",
	}
}

// Classify resolves a container class marker to its grade label.
func (v GradeVocabulary) Classify(marker string) (string, bool) {
	label, ok := v[marker]
	return label, ok
}

// gradeMarker picks the first class token carrying the auction-result
// prefix out of a class attribute.
func gradeMarker(classAttr string) (string, bool) {
	for _, token := range strings.Fields(classAttr) {
		if strings.HasPrefix(token, gradeMarkerPrefix) {
			return token, true
		}
	}
	return "", false
}
