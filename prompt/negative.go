package prompt

import "strings"

const negativeBlockHeader = `Never include any of the following:
- rendered text, captions, watermarks, or logos that are not printed on the product itself
- malformed hands, extra fingers, or distorted limbs
- compositing artifacts, halos, or visible cut-out edges
- plastic-looking, over-smoothed, or airbrushed skin
- collage, split-screen, or multi-panel layouts`

const negativeBlurNatural = "- blur of any kind anywhere in the frame: no bokeh, no depth-of-field falloff, every plane sharp"
const negativeBlurPro = "- unintentional blur or accidental soft focus"

// NegativeBlock is the fixed "never include" clause list. Only the blur rule
// changes with the camera-rendering style: under natural it becomes an
// absolute prohibition, under pro it is relaxed.
func NegativeBlock(style CameraStyle) string {
	if style == CameraStyleNatural {
		return negativeBlockHeader + "\n" + negativeBlurNatural
	}
	return negativeBlockHeader + "\n" + negativeBlurPro
}

// DedupExclusions flattens user and brand exclusion lists into one
// order-stable list, deduplicated case-insensitively.
func DedupExclusions(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, term := range group {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			lowered := strings.ToLower(term)
			if seen[lowered] {
				continue
			}
			seen[lowered] = true
			out = append(out, term)
		}
	}
	return out
}

// negativeTail renders the always-final layer: the fixed block plus any
// deduplicated user/brand exclusion terms.
func negativeTail(r *Request) string {
	block := NegativeBlock(r.CameraStyle)
	var brandRules []string
	if r.Brand != nil {
		brandRules = r.Brand.DoNotRules
	}
	terms := DedupExclusions(r.UserNegatives, brandRules)
	if len(terms) > 0 {
		block += "\nAlso avoid: " + strings.Join(terms, ", ") + "."
	}
	return block
}
