package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/aakritiieee7/hrmanagementsystem/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.StoreDriver, convey.ShouldEqual, config.DriverSQLite)
			convey.So(cfg.AllowReassign, convey.ShouldBeTrue)
			convey.So(cfg.MaxResumeBytes, convey.ShouldEqual, int64(5<<20))
			convey.So(cfg.CollegesTimeoutMS, convey.ShouldEqual, 0)
			convey.So(cfg.CollegesTimeout(), convey.ShouldEqual, time.Duration(0))
			convey.So(cfg.AMQPExchange, convey.ShouldEqual, "hrms.interns")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an invalid config", t, func() {
		cfg := config.New()
		cfg.Addr = " "
		cfg.StoreDriver = "mongo"
		cfg.SkillsFile = "skills.yaml"
		cfg.MaxSuggestions = -1
		cfg.IntakeBurst = -2

		err := cfg.Validate()

		convey.Convey("Then every problem should be reported", func() {
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
			convey.So(err.Error(), convey.ShouldContainSubstring, `unknown store_driver "mongo"`)
			convey.So(err.Error(), convey.ShouldContainSubstring, "set together")
			convey.So(err.Error(), convey.ShouldContainSubstring, "max_suggestions")
			convey.So(err.Error(), convey.ShouldContainSubstring, "intake_burst")
		})
	})

	convey.Convey("Given a postgres config without a DSN", t, func() {
		cfg := config.New()
		cfg.StoreDriver = config.DriverPostgres
		cfg.StoreDSN = ""

		convey.Convey("Then it should be rejected", func() {
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "store_dsn is required")
		})
	})
}
