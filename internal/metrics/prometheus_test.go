package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/nutri-api/internal/metrics"
	"github.com/smartystreets/goconvey/convey"
)

// counterValue returns the value of the counter named name whose labels
// include every pair in labels.
func counterValue(m *metrics.Manager, name string, labels map[string]string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		return -1
	}

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metric:
		for _, sample := range family.GetMetric() {
			got := map[string]string{}
			for _, pair := range sample.GetLabel() {
				got[pair.GetName()] = pair.GetValue()
			}
			for k, v := range labels {
				if got[k] != v {
					continue metric
				}
			}
			return sample.GetCounter().GetValue()
		}
	}
	return 0
}

func TestManager(t *testing.T) {
	convey.Convey("Given a metrics manager", t, func() {
		m := metrics.NewManager(metrics.WithConstLabels(map[string]string{"environment": "test"}))

		convey.Convey("HTTP requests are counted by route, method and status", func() {
			m.RecordHTTPRequest("/food", http.MethodPost, http.StatusCreated, 5*time.Millisecond)
			m.RecordHTTPRequest("/food", http.MethodPost, http.StatusCreated, 5*time.Millisecond)
			m.RecordHTTPRequest("/food", http.MethodPost, http.StatusBadRequest, time.Millisecond)

			convey.So(counterValue(m, "nutri_api_http_requests_total", map[string]string{
				"route": "/food", "method": "POST", "status": "201", "environment": "test",
			}), convey.ShouldEqual, 2)
			convey.So(counterValue(m, "nutri_api_http_requests_total", map[string]string{
				"status": "400",
			}), convey.ShouldEqual, 1)
		})

		convey.Convey("Store operations are counted by outcome", func() {
			m.RecordStoreOperation("food", "delete", metrics.OutcomeNotFound, time.Millisecond)

			convey.So(counterValue(m, "nutri_api_store_operations_total", map[string]string{
				"entity": "food", "operation": "delete", "outcome": "not_found",
			}), convey.ShouldEqual, 1)
		})

		convey.Convey("Job enqueues and rate limited requests are counted", func() {
			m.RecordJobEnqueued("email:welcome", metrics.OutcomeError)
			m.RecordRateLimited("/user")

			convey.So(counterValue(m, "nutri_api_jobs_enqueued_total", map[string]string{"outcome": "error"}), convey.ShouldEqual, 1)
			convey.So(counterValue(m, "nutri_api_rate_limited_requests_total", map[string]string{"route": "/user"}), convey.ShouldEqual, 1)
		})

		convey.Convey("The handler exposes the registry", func() {
			m.RecordStoreOperation("user", "create", metrics.OutcomeSuccess, time.Millisecond)

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
			body, _ := io.ReadAll(rec.Body)

			convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(string(body), convey.ShouldContainSubstring, "nutri_api_store_operations_total")
			convey.So(string(body), convey.ShouldContainSubstring, "go_goroutines")
		})

		convey.Convey("Two managers do not collide", func() {
			convey.So(func() { metrics.NewManager() }, convey.ShouldNotPanic)
		})
	})

	convey.Convey("Given a nil manager", t, func() {
		var m *metrics.Manager

		convey.Convey("Recording is a no-op", func() {
			convey.So(func() {
				m.RecordHTTPRequest("/food", "GET", 200, time.Millisecond)
				m.RecordStoreOperation("food", "list", metrics.OutcomeSuccess, time.Millisecond)
				m.RecordJobEnqueued("email:welcome", metrics.OutcomeSuccess)
				m.RecordRateLimited("/food")
			}, convey.ShouldNotPanic)
		})
	})
}
