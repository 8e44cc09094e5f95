package sentiment

import "strings"

// OverridePolarity is the polarity forced onto any review containing a fraud
// indicator. Strongly negative but deliberately short of -1.0 so overridden
// reviews stay distinguishable from the extreme end of the scale.
const OverridePolarity = -0.8

// ContainsFraudIndicator reports whether text contains any entry of the
// fraud-indicator vocabulary as a case-insensitive substring. No word
// boundary checking is done; containment is the whole contract.
func ContainsFraudIndicator(text string) bool {
	lower := strings.ToLower(text)
	for _, indicator := range fraudIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}
