package curve

// Offsets for the two textual date conventions used across the pipeline.
// A DateKey is the 8-digit yyyymmdd release token; a label is the
// dd-mm-yyyy form shown to users. Both converters are pure slicing over
// well-formed input — callers only ever feed them DateKeys produced by the
// link extractor or labels taken from a list selection.
const (
	// DateKeyLen is the length of a yyyymmdd release token.
	DateKeyLen = 8
	// LabelLen is the length of a dd-mm-yyyy display label.
	LabelLen = 10
)

// KeyToLabel converts a yyyymmdd DateKey to its dd-mm-yyyy display form.
func KeyToLabel(key string) string {
	return key[6:8] + "-" + key[4:6] + "-" + key[0:4]
}

// LabelToKey converts a dd-mm-yyyy label back to its yyyymmdd DateKey.
func LabelToKey(label string) string {
	return label[6:10] + label[3:5] + label[0:2]
}

// IsDateKey reports whether s is structurally a DateKey: 8 ASCII digits.
// No calendar validation is done beyond the shape check.
func IsDateKey(s string) bool {
	if len(s) != DateKeyLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
