package registry_test

//go:generate mockgen -source=registry.go -destination=mocks/registry_mock.go -package=mocks Registry,HealthChecker
//go:generate mockgen -source=cached.go -destination=mocks/cache_mock.go -package=mocks Cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"healthsphere/internal/verification/metrics"
	"healthsphere/internal/verification/models"
	"healthsphere/internal/verification/registry"
	"healthsphere/internal/verification/registry/cache"
	"healthsphere/internal/verification/registry/mocks"
	id "healthsphere/pkg/domain"
	"healthsphere/pkg/platform/circuit"
)

type DecoratorSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	inner   *mocks.MockRegistry
	metrics *metrics.Metrics
	ctx     context.Context
}

func TestDecoratorSuite(t *testing.T) {
	suite.Run(t, new(DecoratorSuite))
}

func (s *DecoratorSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.inner = mocks.NewMockRegistry(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.ctx = context.Background()
}

func (s *DecoratorSuite) TearDownTest() {
	s.ctrl.Finish()
}

func registered(license id.LicenseNumber) *models.LookupResult {
	return &models.LookupResult{LicenseNumber: license, Registered: true, MatchedName: "Dr. Mock User", Registry: "PMDC"}
}

func (s *DecoratorSuite) TestCachedServesRepeatLookups() {
	c := registry.NewCached(s.inner, cache.NewMemory(time.Minute), s.metrics, nil)
	s.inner.EXPECT().Lookup(gomock.Any(), id.LicenseNumber("PMC-12345")).Return(registered("PMC-12345"), nil).Times(1)

	first, err := c.Lookup(s.ctx, "PMC-12345")
	s.Require().NoError(err)
	second, err := c.Lookup(s.ctx, "PMC-12345")
	s.Require().NoError(err)

	s.Equal(first, second)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheHitsTotal))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheMissesTotal))
}

func (s *DecoratorSuite) TestCachedStoresNegativeAnswers() {
	c := registry.NewCached(s.inner, cache.NewMemory(time.Minute), s.metrics, nil)
	notFound := &models.LookupResult{LicenseNumber: "FAKE-000", Registry: "PMDC"}
	s.inner.EXPECT().Lookup(gomock.Any(), id.LicenseNumber("FAKE-000")).Return(notFound, nil).Times(1)

	for range 3 {
		res, err := c.Lookup(s.ctx, "FAKE-000")
		s.Require().NoError(err)
		s.False(res.Registered)
	}
}

func (s *DecoratorSuite) TestCachedNeverStoresErrors() {
	c := registry.NewCached(s.inner, cache.NewMemory(time.Minute), s.metrics, nil)
	outage := registry.NewLookupError(registry.CategoryOutage, "PMDC", "down", nil)

	gomock.InOrder(
		s.inner.EXPECT().Lookup(gomock.Any(), id.LicenseNumber("PMC-12345")).Return(nil, outage),
		s.inner.EXPECT().Lookup(gomock.Any(), id.LicenseNumber("PMC-12345")).Return(registered("PMC-12345"), nil),
	)

	_, err := c.Lookup(s.ctx, "PMC-12345")
	s.ErrorIs(err, outage)

	res, err := c.Lookup(s.ctx, "PMC-12345")
	s.Require().NoError(err)
	s.True(res.Registered)
}

func (s *DecoratorSuite) TestCachedDegradesOnCacheFailure() {
	store := mocks.NewMockCache(s.ctrl)
	c := registry.NewCached(s.inner, store, s.metrics, nil)

	store.EXPECT().Get(gomock.Any(), id.LicenseNumber("PMC-12345")).Return(nil, errors.New("redis down"))
	s.inner.EXPECT().Lookup(gomock.Any(), id.LicenseNumber("PMC-12345")).Return(registered("PMC-12345"), nil)
	store.EXPECT().Set(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	res, err := c.Lookup(s.ctx, "PMC-12345")
	s.Require().NoError(err)
	s.True(res.Registered)
}

func (s *DecoratorSuite) TestGuardedOpensAfterConsecutiveFailures() {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("PMDC",
		circuit.WithFailureThreshold(2),
		circuit.WithSuccessThreshold(1),
		circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }),
	)
	g := registry.NewGuarded(s.inner, breaker, s.metrics, nil)
	timeout := registry.NewLookupError(registry.CategoryTimeout, "PMDC", "slow", nil)

	s.inner.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, timeout).Times(2)
	for range 2 {
		_, err := g.Lookup(s.ctx, "PMC-12345")
		s.Equal(registry.CategoryTimeout, registry.CategoryOf(err))
	}
	s.True(breaker.IsOpen())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BreakerTransitions.WithLabelValues("open")))

	// Open: fails fast without calling the registry, and never reports "not registered".
	res, err := g.Lookup(s.ctx, "PMC-12345")
	s.Nil(res)
	s.Equal(registry.CategoryOutage, registry.CategoryOf(err))

	// After the cooldown one probe goes through and closes the circuit.
	now = now.Add(2 * time.Minute)
	s.inner.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(registered("PMC-12345"), nil)
	res, err = g.Lookup(s.ctx, "PMC-12345")
	s.Require().NoError(err)
	s.True(res.Registered)
	s.False(breaker.IsOpen())
	s.Equal(1.0, testutil.ToFloat64(s.metrics.BreakerTransitions.WithLabelValues("closed")))
}

func (s *DecoratorSuite) TestGuardedIgnoresPermanentFailures() {
	breaker := circuit.New("PMDC", circuit.WithFailureThreshold(1))
	g := registry.NewGuarded(s.inner, breaker, s.metrics, nil)
	denied := registry.NewLookupError(registry.CategoryAuthentication, "PMDC", "bad key", nil)

	s.inner.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, denied).Times(2)
	_, err := g.Lookup(s.ctx, "PMC-12345")
	s.ErrorIs(err, denied)
	_, err = g.Lookup(s.ctx, "PMC-12345")
	s.ErrorIs(err, denied)
	s.False(breaker.IsOpen())
}
