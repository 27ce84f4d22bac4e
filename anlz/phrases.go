package anlz

// phraseName implements the mood-dependent phrase-kind naming table from
// spec §4.5. Presentation-only: it never affects parsing.
func phraseName(mood Mood, kind uint16) string {
	switch mood {
	case MoodHigh:
		switch kind {
		case 1:
			return "Intro"
		case 2:
			return "Up"
		case 3:
			return "Down"
		case 5:
			return "Chorus"
		case 6:
			return "Outro"
		}
	case MoodMid:
		switch {
		case kind == 1:
			return "Intro"
		case kind >= 2 && kind <= 7:
			return "Verse " + verseNumber(kind-1)
		case kind == 8:
			return "Bridge"
		case kind == 9:
			return "Chorus"
		case kind == 10:
			return "Outro"
		}
	case MoodLow:
		switch {
		case kind == 1:
			return "Intro"
		case kind >= 2 && kind <= 4:
			return "Verse 1" + variantLetter(kind-2)
		case kind >= 5 && kind <= 7:
			return "Verse 2" + variantLetter(kind-5)
		case kind == 8:
			return "Bridge"
		case kind == 9:
			return "Chorus"
		case kind == 10:
			return "Outro"
		}
	}
	return ""
}

func verseNumber(n uint16) string {
	digits := "0123456789"
	if n < 10 {
		return string(digits[n])
	}
	return ""
}

func variantLetter(n uint16) string {
	letters := "abc"
	if int(n) < len(letters) {
		return string(letters[n])
	}
	return ""
}
