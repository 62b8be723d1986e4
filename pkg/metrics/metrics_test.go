package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithPrometheusRegistry(registry),
			)
			manager.internsAdded.Inc()

			Convey("Then metric names should use the namespace and subsystem", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_interns_added_total" {
						found = true
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics", t, func() {
		Convey("When recording intake metrics", func() {
			before := testutil.ToFloat64(globalManager.internsAdded)
			RecordInternAdded()
			RecordInternAdded()

			Convey("Then the counter should advance", func() {
				So(testutil.ToFloat64(globalManager.internsAdded), ShouldEqual, before+2)
			})

			Convey("And the remaining recorders should not panic", func() {
				So(func() {
					RecordIntakeRejected("duplicate_email")
					RecordSkillsExtracted(3)
					RecordResumeExtraction("pdf", "ok")
					RecordSuggestions(2)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording assignment outcomes", func() {
			before := testutil.ToFloat64(globalManager.assignments.WithLabelValues("assigned"))
			RecordAssignment("assigned")

			Convey("Then the labelled counter should advance", func() {
				So(testutil.ToFloat64(globalManager.assignments.WithLabelValues("assigned")), ShouldEqual, before+1)
			})
		})

		Convey("When updating store gauges", func() {
			UpdateStoreInterns(4, 6)
			UpdateStoreMentors(3)

			Convey("Then the gauges should hold the values", func() {
				So(testutil.ToFloat64(globalManager.storeInterns.WithLabelValues("unassigned")), ShouldEqual, 4)
				So(testutil.ToFloat64(globalManager.storeInterns.WithLabelValues("assigned")), ShouldEqual, 6)
				So(testutil.ToFloat64(globalManager.storeMentors), ShouldEqual, 3)
			})
		})

		Convey("When recording collaborator and HTTP metrics", func() {
			So(func() {
				RecordCollegeFetch("error")
				RecordConfigurationError("empty_taxonomy")
				RecordNotification("intern.assigned", "ok")
				RecordStoreLatency("memory", "add_intern", 0.2)
				RecordHTTPRequest("interns", "POST", "201")
				RecordHTTPRequestDuration("interns", "POST", "201", 1.5)
				RecordHTTPError("assignments", "POST", "not_found")
			}, ShouldNotPanic)

			Convey("Then the registry should expose them", func() {
				families, err := GetRegistry().Gather()
				So(err, ShouldBeNil)
				names := make([]string, 0, len(families))
				for _, f := range families {
					names = append(names, f.GetName())
				}
				joined := strings.Join(names, ",")
				So(joined, ShouldContainSubstring, "hrms_internships_college_fetches_total")
				So(joined, ShouldContainSubstring, "hrms_internships_http_requests_total")
			})
		})
	})
}
