package metrics_test

import (
	"context"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-codex/internal/entities/hero"
	"github.com/KirkDiggler/rpg-codex/internal/errors"
	"github.com/KirkDiggler/rpg-codex/internal/metrics"
	"github.com/KirkDiggler/rpg-codex/internal/testutils"
)

type MetricsTestSuite struct {
	suite.Suite
	ctx context.Context
}

func TestMetricsSuite(t *testing.T) {
	suite.Run(t, new(MetricsTestSuite))
}

func (s *MetricsTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *MetricsTestSuite) TestObserveOperation() {
	success := metrics.ProfileOperationsTotal.WithLabelValues("test_op", metrics.OutcomeSuccess)
	failure := metrics.ProfileOperationsTotal.WithLabelValues("test_op", metrics.OutcomeError)
	beforeSuccess := testutil.ToFloat64(success)
	beforeFailure := testutil.ToFloat64(failure)

	metrics.ObserveOperation("test_op", time.Now(), nil)
	metrics.ObserveOperation("test_op", time.Now(), errors.Internal("boom"))
	metrics.ObserveOperation("test_op", time.Now(), nil)

	s.Assert().Equal(beforeSuccess+2, testutil.ToFloat64(success))
	s.Assert().Equal(beforeFailure+1, testutil.ToFloat64(failure))
}

func (s *MetricsTestSuite) TestCollectorCountsSyncEvents() {
	bus := events.NewBus()
	collector := metrics.NewEventMetricsCollector()
	collector.Register(bus)

	synced := metrics.RemoteSyncTotal.WithLabelValues(metrics.SyncStatusSynced)
	deferred := metrics.RemoteSyncTotal.WithLabelValues(metrics.SyncStatusDeferred)
	persisted := metrics.EventsPublished.WithLabelValues(hero.EventProfilePersisted)
	beforeSynced := testutil.ToFloat64(synced)
	beforeDeferred := testutil.ToFloat64(deferred)
	beforePersisted := testutil.ToFloat64(persisted)

	p := testutils.CreateTestProfile("hero-metrics", 1)
	publish := func(eventType string) {
		s.Require().NoError(bus.Publish(s.ctx, events.NewGameEvent(eventType, p.Hero, p)))
	}

	publish(hero.EventProfilePersisted)
	publish(hero.EventProfileSynced)
	publish(hero.EventProfilePersisted)
	publish(hero.EventProfileSyncDeferred)

	s.Assert().Equal(beforeSynced+1, testutil.ToFloat64(synced))
	s.Assert().Equal(beforeDeferred+1, testutil.ToFloat64(deferred))
	s.Assert().Equal(beforePersisted+2, testutil.ToFloat64(persisted))

	collector.Unregister(bus)
	publish(hero.EventProfileSynced)
	s.Assert().Equal(beforeSynced+1, testutil.ToFloat64(synced))
}
