package settings_test

import (
	"context"
	"testing"

	"github.com/emberwatch/emberwatch/internal/settings"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStaticStore(t *testing.T) {
	Convey("Given the static settings store", t, func() {
		store := settings.NewStaticStore()

		Convey("When reading settings", func() {
			s, err := store.Get(context.Background())

			Convey("Then the documented defaults are returned", func() {
				So(err, ShouldBeNil)
				So(s.Thresholds.SleepMinHours, ShouldEqual, 7)
				So(s.Thresholds.WorkMaxHours, ShouldEqual, 8)
				So(s.Thresholds.ScreenMaxHours, ShouldEqual, 6)
				So(s.Notifications.Enabled, ShouldBeTrue)
			})

			Convey("And repeated reads are stable", func() {
				again, err := store.Get(context.Background())
				So(err, ShouldBeNil)
				So(again, ShouldResemble, s)
			})
		})
	})
}
