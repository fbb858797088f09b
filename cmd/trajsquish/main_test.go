package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/trajsquish/track"
)

type fixedHeader time.Time

func (h fixedHeader) LastHeader() time.Time { return time.Time(h) }

func TestStatusMux(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"})
	reg.MustRegister(c)
	c.Inc()

	srv := httptest.NewServer(statusMux(reg, fixedHeader(time.Unix(1717000000, 0))))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	var health healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, healthResponse{Status: "ok", LatestGTFSRealtimeEpoch: 1717000000}, health)

	resp2, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer func() { _ = resp2.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestDedupe(t *testing.T) {
	t0 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	a := track.NewFix("a", 0.1, 0.2, t0)
	again := track.NewFix("a", 0.1, 0.2, t0)
	moved := track.NewFix("a", 0.1, 0.3, t0.Add(time.Minute))
	other := track.NewFix("b", 0.1, 0.2, t0)

	got := dedupe([]track.Fix{a, again, moved, other})
	require.Len(t, got, 3)
	assert.Equal(t, a.Seq, got[0].Seq)
	assert.Equal(t, moved.Seq, got[1].Seq)
	assert.Equal(t, other.Seq, got[2].Seq)
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["replay"])
	assert.True(t, names["watch"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, watchCmd.Flags().Lookup("metrics-addr"))
}

func writeFeed(t *testing.T, dir, name string, header uint64, lat, lon float32) string {
	t.Helper()
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0"), Timestamp: proto.Uint64(header)},
		Entity: []*gtfsrtpb.FeedEntity{{
			Id: proto.String("1"),
			Vehicle: &gtfsrtpb.VehiclePosition{
				Vehicle:   &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-1")},
				Position:  &gtfsrtpb.Position{Latitude: proto.Float32(lat), Longitude: proto.Float32(lon)},
				Timestamp: proto.Uint64(header),
			},
		}},
	}
	data, err := proto.Marshal(fm)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestReplay(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
strategies:
  - {name: every, kind: uniform-sampling, every: 1}
logging: {level: error}
`), 0o600))

	first := writeFeed(t, dir, "1.pb", 1717000000, 42.60, 23.30)
	second := writeFeed(t, dir, "2.pb", 1717000030, 42.61, 23.31)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", cfgPath, "--format", "polyline", "replay", first, second, first})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	line := strings.TrimSpace(out.String())
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 4, line)
	assert.Equal(t, "bus-1", fields[1])
	assert.Equal(t, "every", fields[2])
	assert.NotEmpty(t, fields[3])
}
