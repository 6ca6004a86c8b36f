package prompt

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMode(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want Mode
	}{
		{"no refs", &Request{Prompt: "coffee cup on table"}, ModeLayered},
		{"one ref", &Request{Prompt: "coffee cup", HasProduct: true}, ModeLayered},
		{"two refs", &Request{Prompt: "coffee cup", HasProduct: true, HasModel: true}, ModeCondensed},
		{"three refs", &Request{Prompt: "coffee cup", HasProduct: true, HasModel: true, HasScene: true}, ModeCondensed},
		{"selfie beats refs", &Request{Prompt: "selfie with cup", HasProduct: true, HasModel: true}, ModeSelfie},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMode(tt.req))
		})
	}
}

func TestCompileIdempotent(t *testing.T) {
	r := &Request{
		Prompt:        "model wearing the jacket downtown",
		HasProduct:    true,
		HasModel:      true,
		CameraStyle:   CameraStyleNatural,
		Polish:        true,
		UserNegatives: []string{"glare"},
		Brand:         &BrandContext{Tone: "luxury", ColorFeel: "warm"},
	}
	first := Compile(r)
	second := Compile(r)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Mode, second.Mode)
}

// clause numbering must stay contiguous from 1 whichever references are present
func TestCondensedNumberingContiguous(t *testing.T) {
	combos := []struct {
		name                  string
		product, model, scene bool
		wantClauses           int
	}{
		{"product+model", true, true, false, 2},
		{"product+scene", true, false, true, 2},
		{"model+scene", false, true, true, 2},
		{"all three", true, true, true, 3},
	}
	for _, tt := range combos {
		t.Run(tt.name, func(t *testing.T) {
			r := &Request{
				Prompt:     "lifestyle shot",
				HasProduct: tt.product,
				HasModel:   tt.model,
				HasScene:   tt.scene,
				Polish:     true,
			}
			compiled := Compile(r)
			require.Equal(t, ModeCondensed, compiled.Mode)
			for n := 1; n <= tt.wantClauses; n++ {
				assert.Contains(t, compiled.Text, fmt.Sprintf("\n%d. ", n))
			}
			assert.NotContains(t, compiled.Text, fmt.Sprintf("\n%d. ", tt.wantClauses+1))
		})
	}
}

func TestNaturalStyleNeverImpliesShallowDepthOfField(t *testing.T) {
	reqs := []*Request{
		{Prompt: "coffee cup", CameraStyle: CameraStyleNatural, Polish: true},
		{Prompt: "coffee cup", HasProduct: true, HasModel: true, CameraStyle: CameraStyleNatural, Polish: true},
		{Prompt: "quick selfie", HasModel: true, CameraStyle: CameraStyleNatural, Polish: true},
	}
	for _, r := range reqs {
		text := strings.ToLower(Compile(r).Text)
		assert.NotContains(t, text, "shallow depth")
		assert.NotContains(t, text, "creamy bokeh")
		assert.Contains(t, text, "no bokeh")
	}
}

func TestCompileLayeredScenario(t *testing.T) {
	r := &Request{
		Prompt:      "girl holding coffee cup",
		CameraStyle: CameraStylePro,
		Polish:      true,
	}
	compiled := Compile(r)
	require.Equal(t, ModeLayered, compiled.Mode)
	assert.True(t, strings.HasPrefix(compiled.Text, "girl holding coffee cup"))
	assert.Contains(t, compiled.Text, "Photography DNA")
	assert.NotContains(t, compiled.Text, "selfie")
	assert.NotContains(t, compiled.Text, "arm's length")
	assert.True(t, strings.HasSuffix(compiled.Text, NegativeBlock(CameraStylePro)))
}

func TestCompileCondensedScenario(t *testing.T) {
	r := &Request{
		Prompt:      FallbackPrompt,
		HasProduct:  true,
		HasModel:    true,
		HasScene:    true,
		CameraStyle: CameraStyleNatural,
		Polish:      true,
	}
	compiled := Compile(r)
	require.Equal(t, ModeCondensed, compiled.Mode)

	iProduct := strings.Index(compiled.Text, "1. Reproduce the exact product")
	iModel := strings.Index(compiled.Text, "2. The person shown must be the exact individual")
	iScene := strings.Index(compiled.Text, "3. Use [SCENE IMAGE] as the environment")
	require.True(t, iProduct >= 0 && iModel >= 0 && iScene >= 0)
	assert.True(t, iProduct < iModel && iModel < iScene)

	assert.Contains(t, compiled.Text, naturalOneLiner)
	assert.NotContains(t, compiled.Text, "Also avoid:")
}

func TestCompileSelfieMode(t *testing.T) {
	r := &Request{
		Prompt:      "casual selfie with the serum bottle",
		HasProduct:  true,
		CameraStyle: CameraStylePro,
		Polish:      true,
	}
	compiled := Compile(r)
	require.Equal(t, ModeSelfie, compiled.Mode)
	assert.Contains(t, compiled.Text, "first-person point of view")
	assert.Contains(t, compiled.Text, "the phone itself is never visible")
	assert.Contains(t, compiled.Text, "held or worn naturally within the selfie frame")
}

func TestCompileUnpolished(t *testing.T) {
	r := &Request{
		Prompt:        "coffee cup on marble",
		HasProduct:    true,
		HasModel:      true,
		CameraStyle:   CameraStylePro,
		Polish:        false,
		UserNegatives: []string{"glare"},
	}
	compiled := Compile(r)
	assert.NotContains(t, compiled.Text, "Strict requirements:")
	assert.NotContains(t, compiled.Text, "Never include any of the following:")
	assert.Contains(t, compiled.Text, "Do NOT include: glare.")
}

func TestCompileUnpolishedDefaultExclusions(t *testing.T) {
	compiled := Compile(&Request{Prompt: "coffee cup", Polish: false})
	assert.Contains(t, compiled.Text, "Do NOT include: text, watermarks, logos.")
}

func TestModelTextContextOnlyWithModelRef(t *testing.T) {
	base := Request{
		Prompt:           "editorial portrait",
		ModelTextContext: "short dark hair, freckles",
		Polish:           true,
	}

	withModel := base
	withModel.HasModel = true
	assert.Contains(t, Compile(&withModel).Text, "short dark hair, freckles")

	withoutModel := base
	assert.NotContains(t, Compile(&withoutModel).Text, "short dark hair, freckles")
}

func TestBrandLayerContent(t *testing.T) {
	r := &Request{
		Prompt: "hero shot of the bottle",
		Brand: &BrandContext{
			Tone:           "luxury",
			ColorFeel:      "muted",
			BrandKeywords:  []string{"artisanal", "heritage"},
			ColorPalette:   []string{"#0A1F44", "cream"},
			TargetAudience: "young professionals",
		},
		Polish: true,
	}
	text := Compile(r).Text
	assert.Contains(t, text, "refined, elegant, premium presentation")
	assert.Contains(t, text, "soft, desaturated color")
	assert.Contains(t, text, "Keywords: artisanal, heritage")
	assert.Contains(t, text, "Accent colors: #0A1F44, cream")
	assert.Contains(t, text, "Target audience: young professionals")
}

func TestUnknownToneFallsThroughAsIs(t *testing.T) {
	r := &Request{
		Prompt: "hero shot",
		Brand:  &BrandContext{Tone: "cottagecore"},
		Polish: true,
	}
	assert.Contains(t, Compile(r).Text, "cottagecore")
}
