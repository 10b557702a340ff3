package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/okian/ratingdesk/internal/config"
	"github.com/okian/ratingdesk/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainWiring(t *testing.T) {
	convey.Convey("Given the console application", t, func() {
		convey.Convey("When configuration comes from the environment", func() {
			_ = os.Setenv("RATINGDESK_ADDR", ":9090")
			_ = os.Setenv("RATINGDESK_API_BASE_URL", "http://ratings.internal:5000")
			defer func() {
				_ = os.Unsetenv("RATINGDESK_ADDR")
				_ = os.Unsetenv("RATINGDESK_API_BASE_URL")
			}()

			convey.Convey("Then it should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://ratings.internal:5000")
			})
		})

		convey.Convey("When the mux is built against a fake rating API", func() {
			api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = io.WriteString(w, `{"status":"ratings rebuilt","event_key":"2025nyrr"}`)
			}))
			defer api.Close()

			cfg := config.New()
			cfg.APIBaseURL = api.URL
			srv := httptest.NewServer(newMux(context.Background(), cfg, logger.Nop()))
			defer srv.Close()

			convey.Convey("Then the page shows the configured base URL", func() {
				resp, err := http.Get(srv.URL + "/")
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				convey.So(string(body), convey.ShouldContainSubstring, api.URL)
			})

			convey.Convey("Then a submission round-trips to the API", func() {
				resp, err := http.PostForm(srv.URL+"/", url.Values{"action": {"update"}, "event_key": {"2025nyrr"}})
				convey.So(err, convey.ShouldBeNil)
				defer resp.Body.Close()
				body, _ := io.ReadAll(resp.Body)
				convey.So(string(body), convey.ShouldContainSubstring, `class="log ok"`)
				convey.So(string(body), convey.ShouldContainSubstring, "ratings rebuilt")
			})

			convey.Convey("Then the stylesheet and metrics are served", func() {
				for _, path := range []string{"/static/console.css", "/healthz"} {
					resp, err := http.Get(srv.URL + path)
					convey.So(err, convey.ShouldBeNil)
					_ = resp.Body.Close()
					convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusOK)
				}
			})
		})

		convey.Convey("When system metrics are refreshed", func() {
			convey.So(func() { updateSystemMetrics() }, convey.ShouldNotPanic)
		})
	})
}
