package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zoomgrab-cli/zoomgrab/filesystem"
	"github.com/zoomgrab-cli/zoomgrab/key"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			err := Setup()
			So(err, ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(Setup(), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Scraper timings should default to the documented bounds", func() {
			So(Setup(), ShouldBeNil)
			So(viper.GetInt(key.ScraperPollInterval), ShouldEqual, 3)
			So(viper.GetInt(key.ScraperMaxWait), ShouldEqual, 300)
			So(viper.GetInt(key.ScraperNavigationTimeout), ShouldEqual, 60)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			result := EnvKeyReplacer.Replace("scraper.poll.interval")
			So(result, ShouldEqual, "scraper_poll_interval")
		})
	})
}
