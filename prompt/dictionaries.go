package prompt

var toneDescriptions = map[string]string{
	"luxury":       "refined, elegant, premium presentation",
	"minimal":      "clean, uncluttered, restrained presentation",
	"playful":      "vibrant, energetic, fun-forward presentation",
	"bold":         "high-contrast, confident, statement-making presentation",
	"natural":      "organic, honest, down-to-earth presentation",
	"professional": "polished, trustworthy, corporate-clean presentation",
	"vintage":      "nostalgic, timeworn, analog-inspired presentation",
	"edgy":         "moody, unconventional, high-attitude presentation",
}

var colorFeelDescriptions = map[string]string{
	"warm":    "warm golden tones",
	"cool":    "cool blue-leaning tones",
	"neutral": "balanced neutral tones",
	"vibrant": "saturated, punchy color",
	"muted":   "soft, desaturated color",
	"earthy":  "grounded, natural earth tones",
	"pastel":  "light, airy pastel color",
	"mono":    "near-monochrome palette",
}

// ToneDescription returns the catalog wording for a brand tone. Unknown keys
// fall through as-is so user-defined tones still land in the prompt.
func ToneDescription(key string) string {
	if desc, ok := toneDescriptions[key]; ok {
		return desc
	}
	return key
}

func ColorFeelDescription(key string) string {
	if desc, ok := colorFeelDescriptions[key]; ok {
		return desc
	}
	return key
}
