package pipeline

// Break priorities, best first.
const (
	priorityHigh = iota
	priorityMedium
	priorityLow
	priorityNone
)

var breakPriority = map[rune]int{
	'.': priorityHigh, '!': priorityHigh, '?': priorityHigh, '…': priorityHigh,
	'。': priorityHigh, '！': priorityHigh, '？': priorityHigh,

	';': priorityMedium, ':': priorityMedium, ')': priorityMedium,
	'；': priorityMedium, '：': priorityMedium, '）': priorityMedium, '」': priorityMedium,

	',': priorityLow, '-': priorityLow,
	'，': priorityLow, '、': priorityLow,
}

// getPriority returns the break priority of a rune.
func getPriority(r rune) int {
	if p, ok := breakPriority[r]; ok {
		return p
	}
	return priorityNone
}

// findSplitPosition picks the rune index at which to break runes so the
// first line holds at most maxLen runes. Breaks after punctuation beat breaks
// at spaces; among equals the rightmost wins. Only the right half of the
// line is searched so the first line is never much shorter than the second.
func findSplitPosition(runes []rune, maxLen int) int {
	if len(runes) <= maxLen {
		return len(runes)
	}

	best, bestPriority := -1, priorityNone+1
	for i := maxLen; i >= maxLen/2 && i > 0; i-- {
		var p int
		switch {
		case getPriority(runes[i-1]) != priorityNone:
			p = getPriority(runes[i-1])
		case runes[i] == ' ':
			p = priorityNone
		default:
			continue
		}
		if p < bestPriority {
			best, bestPriority = i, p
		}
	}

	if best > 0 {
		return best
	}
	return maxLen
}
