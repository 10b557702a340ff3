package config_test

import (
	"errors"
	"testing"

	"github.com/okian/ratingdesk/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://127.0.0.1:5000")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given configs with bad api_base_url values", t, func() {
		for _, base := range []string{"", "127.0.0.1:5000", "ftp://example.com", "http://", "::bad"} {
			cfg := config.New()
			cfg.APIBaseURL = base

			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		}
	})

	convey.Convey("Given an https base URL with a path", t, func() {
		cfg := config.New()
		cfg.APIBaseURL = "https://ratings.example.com/api/"

		convey.So(cfg.Validate(), convey.ShouldBeNil)
	})
}
