package prompt

import (
	"fmt"
	"strings"
)

type CameraStyle string

const (
	CameraStylePro     CameraStyle = "pro"
	CameraStyleNatural CameraStyle = "natural"
)

type Mode string

const (
	ModeSelfie    Mode = "selfie"
	ModeCondensed Mode = "condensed-multi-ref"
	ModeLayered   Mode = "layered-single-ref"
)

type BrandContext struct {
	Tone           string
	ColorFeel      string
	DoNotRules     []string
	BrandKeywords  []string
	ColorPalette   []string
	TargetAudience string
}

// Request carries everything the composition engine needs. It never holds
// image bytes, only presence flags; the payload assembler owns the images.
type Request struct {
	Prompt              string
	HasProduct          bool
	HasModel            bool
	HasScene            bool
	ModelTextContext    string
	StylePresetKeywords []string
	Brand               *BrandContext
	UserNegatives       []string
	CameraStyle         CameraStyle
	Polish              bool
}

type Compiled struct {
	Text string
	Mode Mode
}

// FallbackPrompt replaces an empty raw prompt when at least one reference
// image is present. Callers substitute it before compilation.
const FallbackPrompt = "Professional commercial photography of the provided subject"

const naturalOneLiner = "Shot on a modern phone camera: natural, unretouched look with deep focus and no blur."

func (r *Request) refCount() int {
	count := 0
	for _, present := range []bool{r.HasProduct, r.HasModel, r.HasScene} {
		if present {
			count++
		}
	}
	return count
}

// DetectMode selects the composition strategy. Selfie intent wins over
// everything; two or more references without it means condensed.
func DetectMode(r *Request) Mode {
	if IsSelfieIntent(r.Prompt) {
		return ModeSelfie
	}
	if r.refCount() >= 2 {
		return ModeCondensed
	}
	return ModeLayered
}

// Compile deterministically turns a request into one instruction string.
// Compiling the same request twice yields byte-identical output.
func Compile(r *Request) Compiled {
	mode := DetectMode(r)
	if !r.Polish {
		return Compiled{Text: compileUnpolished(r), Mode: mode}
	}
	var text string
	switch mode {
	case ModeCondensed:
		text = compileCondensed(r)
	case ModeSelfie:
		text = compileLayered(r, true)
	default:
		text = compileLayered(r, false)
	}
	return Compiled{Text: text, Mode: mode}
}

// compileCondensed builds the numbered-clause strategy for multi-reference
// requests. Short unambiguous directives beat expressive nuance here: with
// several references in play the backend otherwise tends to cross-wire them,
// e.g. a model appearing twice.
func compileCondensed(r *Request) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.Prompt))
	b.WriteString("\n\nStrict requirements:")
	n := 0
	if r.HasProduct {
		n++
		fmt.Fprintf(&b, "\n%d. Reproduce the exact product from [PRODUCT IMAGE] with full fidelity: same shape, colors, materials, and markings. Skip any person or mannequin that appears in the product photo.", n)
	}
	if r.HasModel {
		n++
		fmt.Fprintf(&b, "\n%d. The person shown must be the exact individual from [MODEL IMAGE], not a lookalike. Ignore any person visible in the product photo.", n)
		if mtc := strings.TrimSpace(r.ModelTextContext); mtc != "" {
			fmt.Fprintf(&b, " Identity notes for matching only: %s.", mtc)
		}
	}
	if r.HasScene {
		n++
		fmt.Fprintf(&b, "\n%d. Use [SCENE IMAGE] as the environment: same location, consistent lighting and perspective.", n)
	}
	b.WriteString("\n\nProfessional commercial quality: accurate color, coherent shadows and reflections, realistic scale.")
	if clause := condensedBrandClause(r.Brand); clause != "" {
		b.WriteString("\n" + clause)
	}
	if r.CameraStyle == CameraStyleNatural {
		b.WriteString("\n" + naturalOneLiner)
	}
	b.WriteString("\n\n" + negativeTail(r))
	return b.String()
}

func condensedBrandClause(brand *BrandContext) string {
	if brand == nil {
		return ""
	}
	var parts []string
	if brand.Tone != "" {
		parts = append(parts, ToneDescription(brand.Tone))
	}
	if brand.ColorFeel != "" {
		parts = append(parts, ColorFeelDescription(brand.ColorFeel))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Brand style: " + strings.Join(parts, "; ") + "."
}

type layer struct {
	when bool
	text func() string
}

// compileLayered builds the default strategy from fixed-order conditional
// layers. The order never changes with reference presence, only inclusion
// toggles, so identical input shapes produce diffable output. The negative
// block is always last; the natural-camera layer relies on that ordering to
// override any earlier depth-of-field wording.
func compileLayered(r *Request, selfie bool) string {
	layers := []layer{
		{true, func() string { return baseLayer(r, selfie) }},
		{r.Brand != nil, func() string { return brandLayer(r.Brand) }},
		{len(r.StylePresetKeywords) > 0, func() string {
			return "Style preset: " + strings.Join(r.StylePresetKeywords, ", ") + "."
		}},
		{r.HasProduct, func() string { return productLayer(r, selfie) }},
		{r.HasModel, func() string { return modelLayer(r, selfie) }},
		{r.HasScene, func() string { return sceneLayer() }},
		{r.CameraStyle == CameraStyleNatural, func() string { return naturalLayer(selfie) }},
	}
	parts := []string{strings.TrimSpace(r.Prompt)}
	for _, l := range layers {
		if l.when {
			if text := l.text(); text != "" {
				parts = append(parts, text)
			}
		}
	}
	parts = append(parts, negativeTail(r))
	return strings.Join(parts, "\n\n")
}

func baseLayer(r *Request, selfie bool) string {
	if selfie {
		text := "Casual selfie framing: first-person point of view, as if the subject holds the camera at arm's length. " +
			"The subject looks directly into the lens. The phone-holding arm may enter the frame, but the phone itself is never visible. " +
			"Full head and hair in frame with comfortable headroom, composition from mid-chest up, face sitting in the upper third."
		if r.CameraStyle == CameraStyleNatural {
			text += " Everything stays in sharp focus from face to background, even if other directions call for bokeh."
		} else {
			text += " Gentle, flattering falloff behind the subject."
		}
		return text
	}
	return "Professional commercial photography. " +
		"Photography DNA: full-frame sensor character with an 85mm prime, soft directional key light, true-to-life color, and a whisper of film grain."
}

func brandLayer(brand *BrandContext) string {
	var parts []string
	if brand.Tone != "" {
		parts = append(parts, "Brand style guide: "+ToneDescription(brand.Tone))
	}
	if brand.ColorFeel != "" {
		parts = append(parts, "Color mood: "+ColorFeelDescription(brand.ColorFeel))
	}
	if len(brand.BrandKeywords) > 0 {
		parts = append(parts, "Keywords: "+strings.Join(brand.BrandKeywords, ", "))
	}
	if len(brand.ColorPalette) > 0 {
		parts = append(parts, "Accent colors: "+strings.Join(brand.ColorPalette, ", "))
	}
	if brand.TargetAudience != "" {
		parts = append(parts, "Target audience: "+brand.TargetAudience)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ". ") + "."
}

func productLayer(r *Request, selfie bool) string {
	text := "Show the exact product from [PRODUCT IMAGE]: identical shape, colors, materials, labels, and proportions. Never redesign, idealize, or replace it."
	if selfie {
		text += " The product is held or worn naturally within the selfie frame."
	}
	if !r.HasModel {
		text += " Frame the product as the hero subject with generous negative space."
	}
	return text
}

func modelLayer(r *Request, selfie bool) string {
	text := "The person must be the exact individual from [MODEL IMAGE]: identical face, hairstyle, skin tone, and build. Do not substitute a similar-looking person."
	if mtc := strings.TrimSpace(r.ModelTextContext); mtc != "" {
		text += fmt.Sprintf(" Identity descriptors (%s) are for matching the referenced person only, never for generating a different one.", mtc)
	}
	if r.CameraStyle == CameraStyleNatural {
		text += " Honest, unretouched portrait rendering with true skin texture."
	} else {
		text += " Editorial portrait finish: crisp detail under flattering studio light."
	}
	if !selfie {
		text += " Composition: comfortable headroom with the subject on a rule-of-thirds line."
	}
	return text
}

func sceneLayer() string {
	return "Recreate the exact location from [SCENE IMAGE]: same architecture, surfaces, lighting direction, and perspective, with the subject integrated naturally."
}

func naturalLayer(selfie bool) string {
	text := "Rendering style: contemporary phone camera with a 26mm-equivalent lens. " +
		"Natural color science, wide dynamic range, true-to-life texture, deep focus from foreground to background, no artificial background separation."
	if selfie {
		text += " Keep every plane sharp even in the selfie framing."
	}
	return text
}

// compileUnpolished is the degraded path for polish=false callers: no
// layering, just the raw prompt with a brand one-liner, a flat exclusion
// line, and the natural-camera note when applicable.
func compileUnpolished(r *Request) string {
	parts := []string{strings.TrimSpace(r.Prompt)}
	if clause := condensedBrandClause(r.Brand); clause != "" {
		parts = append(parts, clause)
	}
	var brandRules []string
	if r.Brand != nil {
		brandRules = r.Brand.DoNotRules
	}
	terms := DedupExclusions(r.UserNegatives, brandRules)
	if len(terms) == 0 {
		terms = []string{"text", "watermarks", "logos"}
	}
	parts = append(parts, "Do NOT include: "+strings.Join(terms, ", ")+".")
	if r.CameraStyle == CameraStyleNatural {
		parts = append(parts, naturalOneLiner)
	}
	return strings.Join(parts, "\n")
}
