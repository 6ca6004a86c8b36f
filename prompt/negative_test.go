package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupExclusionsCaseInsensitive(t *testing.T) {
	out := DedupExclusions([]string{"Watermarks", "watermarks", "WATERMARKS"})
	assert.Equal(t, []string{"Watermarks"}, out)
}

func TestDedupExclusionsOrderStable(t *testing.T) {
	out := DedupExclusions([]string{"text", "logos"}, []string{"Logos", "glare", "text"})
	assert.Equal(t, []string{"text", "logos", "glare"}, out)
}

func TestDedupExclusionsSkipsEmptyTerms(t *testing.T) {
	out := DedupExclusions([]string{" ", "", "glare", "  glare  "})
	assert.Equal(t, []string{"glare"}, out)
}

func TestNegativeBlockBlurRule(t *testing.T) {
	natural := NegativeBlock(CameraStyleNatural)
	assert.Contains(t, natural, "no bokeh")
	assert.Contains(t, natural, "every plane sharp")

	pro := NegativeBlock(CameraStylePro)
	assert.Contains(t, pro, "unintentional blur")
	assert.NotContains(t, pro, "no bokeh")
}

func TestNegativeTailAppendsUserAndBrandTerms(t *testing.T) {
	r := &Request{
		CameraStyle:   CameraStylePro,
		UserNegatives: []string{"glare"},
		Brand:         &BrandContext{DoNotRules: []string{"neon colors", "Glare"}},
	}
	tail := negativeTail(r)
	assert.True(t, strings.HasSuffix(tail, "Also avoid: glare, neon colors."))
}

func TestNegativeTailWithoutTerms(t *testing.T) {
	tail := negativeTail(&Request{CameraStyle: CameraStylePro})
	assert.NotContains(t, tail, "Also avoid:")
}
