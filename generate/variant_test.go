package generate

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/brandlens/photogen/common/config"
)

func TestSelectModel(t *testing.T) {
	Convey("model variant selection", t, func() {
		Convey("a model reference always escalates to the high variant", func() {
			So(SelectModel(true, false, "standard", 1), ShouldEqual, config.ModelVariantHigh)
			So(SelectModel(true, true, "standard", 3), ShouldEqual, config.ModelVariantHigh)
			So(SelectModel(true, false, "high", 2), ShouldEqual, config.ModelVariantHigh)
		})

		Convey("queue-relayed calls without a model ref stay on the fast variant", func() {
			So(SelectModel(false, true, "high", 0), ShouldEqual, config.ModelVariantFast)
			So(SelectModel(false, true, "standard", 1), ShouldEqual, config.ModelVariantFast)
		})

		Convey("high quality escalates only below two references", func() {
			So(SelectModel(false, false, "high", 0), ShouldEqual, config.ModelVariantHigh)
			So(SelectModel(false, false, "high", 1), ShouldEqual, config.ModelVariantHigh)
			So(SelectModel(false, false, "high", 2), ShouldEqual, config.ModelVariantFast)
		})

		Convey("standard quality defaults to the fast variant", func() {
			So(SelectModel(false, false, "standard", 0), ShouldEqual, config.ModelVariantFast)
			So(SelectModel(false, false, "", 1), ShouldEqual, config.ModelVariantFast)
		})
	})
}
