package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func TestManagerCreation(t *testing.T) {
	convey.Convey("Given manager construction", t, func() {
		convey.Convey("When creating with a private registry", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(WithPrometheusRegistry(registry))

			convey.Convey("Then it is usable and registered", func() {
				convey.So(m, convey.ShouldNotBeNil)
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				convey.So(families, convey.ShouldNotBeEmpty)
			})
		})

		convey.Convey("When creating with custom naming", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("testns"),
				WithSubsystem("testsub"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithPrometheusRegistry(registry),
			)
			convey.So(m, convey.ShouldNotBeNil)

			convey.Convey("Then metric names carry the namespace and subsystem", func() {
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				convey.So(families, convey.ShouldNotBeEmpty)
				for _, f := range families {
					convey.So(f.GetName(), convey.ShouldStartWith, "testns_testsub_")
				}
			})
		})

		convey.Convey("When options receive zero values", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(registry),
			)

			convey.Convey("Then the defaults are kept", func() {
				convey.So(m, convey.ShouldNotBeNil)
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				for _, f := range families {
					convey.So(f.GetName(), convey.ShouldStartWith, "ringside_judge_")
				}
			})
		})
	})
}

func TestRecordingHelpers(t *testing.T) {
	convey.Convey("Given the package-level recording helpers", t, func() {
		convey.Convey("Then none of them panic", func() {
			convey.So(func() {
				RecordDetectionProcessed()
				RecordDetectionDuplicate()
				RecordDetectionDropped("invalid")
				RecordEventAppended()
				RecordValidationFailure("match")
				UpdateStoreShardCount(8)
				RecordMatchRegistered()
				RecordStandingsUpdate()
				RecordStandingsSnapshotRebuild(3 * time.Millisecond)
				UpdateQueueSize(10)
				UpdateQueueCapacity(100)
				UpdateQueueUtilization(0.1)
				RecordQueueEnqueue()
				RecordQueueDequeue()
				RecordQueueRejection()
				UpdateWorkerCount(4)
				RecordWorkerProcessingLatency(1.5)
				RecordWorkerError()
				RecordHTTPRequest("/matches", "POST", "201")
				RecordHTTPRequestDuration("/matches", "POST", "201", 12.5)
				UpdateSystemMemoryUsage(1 << 20)
				UpdateSystemGoroutineCount(42)
				RecordSystemGCPauseTime(0.3)
			}, convey.ShouldNotPanic)
		})

		convey.Convey("Then the custom registry serves the recorded series", func() {
			families, err := GetRegistry().Gather()
			convey.So(err, convey.ShouldBeNil)

			names := make(map[string]struct{}, len(families))
			for _, f := range families {
				names[f.GetName()] = struct{}{}
			}
			convey.So(names, convey.ShouldContainKey, "ringside_judge_detections_processed_total")
			convey.So(names, convey.ShouldContainKey, "ringside_judge_queue_size")
			convey.So(names, convey.ShouldContainKey, "ringside_judge_http_requests_total")
		})
	})
}
