package prompt

import "strings"

// selfieVocabulary is matched with a plain case-insensitive substring scan.
// There is no stemming and no negation handling: a prompt saying "not a
// selfie" still classifies as selfie intent. Known limitation, kept on
// purpose because intent is ambiguous either way.
var selfieVocabulary = []string{
	"selfie",
	"ugc",
	"mirror shot",
	"mirror pic",
	"front camera",
	"front-facing camera",
	"arm-length",
	"arm's length",
	"vlog",
	"facecam",
	"face cam",
	"pov shot",
	"point-of-view shot",
	"holding the camera",
	"holding my phone",
}

// IsSelfieIntent depends on the prompt text alone, never on which reference
// images are attached.
func IsSelfieIntent(rawPrompt string) bool {
	lowered := strings.ToLower(rawPrompt)
	for _, word := range selfieVocabulary {
		if strings.Contains(lowered, word) {
			return true
		}
	}
	return false
}
