package config_test

import (
	"testing"

	"github.com/okian/hiredw/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Delimiter, convey.ShouldEqual, ";")
			convey.So(cfg.DelimiterRune(), convey.ShouldEqual, ';')
			convey.So(cfg.BatchSize, convey.ShouldEqual, 500)
			convey.So(cfg.Workers, convey.ShouldEqual, 0)
			convey.So(cfg.Workbook, convey.ShouldBeTrue)
			convey.So(cfg.DateLayouts, convey.ShouldBeEmpty)
			convey.So(cfg.WatchCountries, convey.ShouldResemble, []string{"United States", "Brazil", "Colombia", "Ecuador"})
			convey.So(cfg.StrictDates, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_AliasMap(t *testing.T) {
	convey.Convey("Given configured country aliases", t, func() {
		cfg := config.New()
		cfg.CountryAliases = []config.CountryAlias{
			{Alias: " Perú ", Country: "Peru"},
			{Alias: "", Country: "Ignored"},
			{Alias: "col", Country: ""},
		}

		convey.Convey("Then only complete pairs are kept, keyed lower-case", func() {
			convey.So(cfg.AliasMap(), convey.ShouldResemble, map[string]string{"perú": "Peru"})
		})
	})
}
