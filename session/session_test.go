package session

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestIsLoggedIn(t *testing.T) {
	Convey("Given cookie lists of varying provenance", t, func() {
		Convey("An httpOnly cookie on a zoom domain should count as a session", func() {
			cookies := []Cookie{
				{Name: "cred", Value: "x", Domain: ".zoom.us", HTTPOnly: true},
			}
			So(IsLoggedIn(cookies), ShouldBeTrue)
		})

		Convey("Tracking cookies without httpOnly should not", func() {
			cookies := []Cookie{
				{Name: "_ga", Value: "x", Domain: ".zoom.us"},
				{Name: "pref", Value: "y", Domain: "zoom.us"},
			}
			So(IsLoggedIn(cookies), ShouldBeFalse)
		})

		Convey("httpOnly cookies on foreign domains should not", func() {
			cookies := []Cookie{
				{Name: "sid", Value: "x", Domain: "example.com", HTTPOnly: true},
			}
			So(IsLoggedIn(cookies), ShouldBeFalse)
		})

		Convey("An empty list should not", func() {
			So(IsLoggedIn(nil), ShouldBeFalse)
		})
	})
}

func TestJar(t *testing.T) {
	Convey("Given a cookie list", t, func() {
		cookies := []Cookie{
			{Name: "_zm_ssid", Value: "abc", Domain: ".zoom.us", HTTPOnly: true},
			{Name: "_zm_chtaid", Value: "42", Domain: ".zoom.us"},
		}

		Convey("Jar should flatten it to name-value pairs", func() {
			jar := Jar(cookies)
			So(jar, ShouldHaveLength, 2)
			So(jar["_zm_ssid"], ShouldEqual, "abc")
			So(jar["_zm_chtaid"], ShouldEqual, "42")
		})
	})
}

func TestSealRoundTrip(t *testing.T) {
	Convey("Given a random key", t, func() {
		key := make([]byte, 32)
		for i := range key {
			key[i] = byte(i)
		}

		Convey("Sealing and opening should round-trip the payload", func() {
			sealed, err := seal(key, []byte(`[{"name":"a"}]`))
			So(err, ShouldBeNil)

			plaintext, err := open(key, sealed)
			So(err, ShouldBeNil)
			So(string(plaintext), ShouldEqual, `[{"name":"a"}]`)
		})

		Convey("Opening with a different key should fail", func() {
			sealed, err := seal(key, []byte("secret"))
			So(err, ShouldBeNil)

			other := make([]byte, 32)
			_, err = open(other, sealed)
			So(err, ShouldNotBeNil)
		})

		Convey("Opening garbage should fail cleanly", func() {
			_, err := open(key, "not base64!!!")
			So(err, ShouldNotBeNil)

			_, err = open(key, "c2hvcnQ=")
			So(err, ShouldNotBeNil)
		})
	})
}
