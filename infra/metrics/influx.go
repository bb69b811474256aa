package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/skyopshq/skyops/core/logger"
	coremetrics "github.com/skyopshq/skyops/core/metrics"
	infralogger "github.com/skyopshq/skyops/infra/logger"
)

// InfluxSink writes engine events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAssignment writes the assignment decision as a point.
func (s *InfluxSink) RecordAssignment(rec coremetrics.AssignmentRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("assignment").
		AddTag("project_id", rec.MissionID).
		AddTag("pilot_id", rec.PilotID).
		AddTag("drone_id", rec.DroneID).
		AddField("days", rec.Days).
		AddField("projected_cost", rec.ProjectedCost).
		AddField("blocking_conflicts", rec.BlockingConflicts).
		AddField("advisory_conflicts", rec.AdvisoryConflicts).
		SetTime(rec.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordConflicts writes one point per detected conflict.
func (s *InfluxSink) RecordConflicts(recs []coremetrics.ConflictRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("conflict").
			AddTag("scope", r.Scope).
			AddTag("kind", r.Kind).
			AddTag("severity", r.Severity).
			AddTag("project_id", r.MissionID).
			AddField("count", 1).
			SetTime(r.Timestamp)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordRosterSize writes the roster gauge values after a bulk load.
func (s *InfluxSink) RecordRosterSize(pilots, drones, missions int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("roster_size").
		AddField("pilots", pilots).
		AddField("drones", drones).
		AddField("missions", missions).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close flushes and closes the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
