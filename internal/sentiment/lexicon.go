package sentiment

// fraudIndicators are the terms that force a strongly negative polarity no
// matter what the polarity model would score. Matching is case-insensitive
// substring containment, so multi-word entries match inside longer sentences
// and "scams" matches via "scam".
var fraudIndicators = []string{
	"scam", "scum", "useless", "fraud", "fake", "deceptive", "ripoff",
	"unresponsive", "broken", "glitch", "buggy", "crash", "malware",
	"phishing", "steal", "stolen", "lie", "lying", "cheat", "cheating",
	"misleading", "unreliable", "waste of time", "terrible", "horrible",
	"worst", "bad experience", "do not install", "uninstall", "delete",
	"warning", "beware", "deceitful", "untrustworthy",
}

// valences maps review vocabulary to polarity contributions. Scores of
// matched words are averaged into the final polarity, so a single mild word
// keeps its own value rather than being diluted by unmatched text.
var valences = map[string]float64{
	// positive
	"excellent":   1.0,
	"perfect":     1.0,
	"amazing":     0.9,
	"awesome":     0.9,
	"fantastic":   0.9,
	"wonderful":   0.9,
	"best":        0.9,
	"outstanding": 0.9,
	"brilliant":   0.9,
	"love":        0.8,
	"loved":       0.8,
	"great":       0.8,
	"superb":      0.8,
	"impressive":  0.7,
	"reliable":    0.7,
	"good":        0.7,
	"helpful":     0.6,
	"smooth":      0.6,
	"easy":        0.6,
	"fast":        0.6,
	"nice":        0.6,
	"enjoy":       0.6,
	"enjoyable":   0.6,
	"recommend":   0.6,
	"recommended": 0.6,
	"useful":      0.6,
	"intuitive":   0.5,
	"convenient":  0.5,
	"simple":      0.4,
	"works":       0.4,
	"fine":        0.3,
	"decent":      0.3,
	"okay":        0.2,
	"ok":          0.2,

	// negative (terms on the fraud list never reach the model, so this side
	// carries the ordinary-complaint vocabulary)
	"unusable":      -0.9,
	"garbage":       -0.9,
	"trash":         -0.9,
	"hate":          -0.8,
	"hated":         -0.8,
	"disgusting":    -0.8,
	"pathetic":      -0.8,
	"bad":           -0.7,
	"awful":         -0.7,
	"refund":        -0.6,
	"poor":          -0.6,
	"annoying":      -0.6,
	"frustrating":   -0.6,
	"disappointing": -0.6,
	"disappointed":  -0.6,
	"freezes":       -0.6,
	"freeze":        -0.6,
	"stuck":         -0.5,
	"spam":          -0.5,
	"intrusive":     -0.5,
	"slow":          -0.5,
	"laggy":         -0.5,
	"lag":           -0.4,
	"confusing":     -0.4,
	"expensive":     -0.3,
	"ads":           -0.3,
	"mediocre":      -0.3,
}

// negators flip the valence of the word that follows them.
var negators = map[string]bool{
	"not":     true,
	"no":      true,
	"never":   true,
	"dont":    true,
	"doesnt":  true,
	"didnt":   true,
	"cant":    true,
	"couldnt": true,
	"wont":    true,
	"isnt":    true,
	"wasnt":   true,
	"arent":   true,
	"nothing": true,
	"hardly":  true,
	"barely":  true,
}
