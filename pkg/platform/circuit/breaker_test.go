package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BreakerSuite struct {
	suite.Suite
	now     time.Time
	breaker *Breaker
}

func TestBreakerSuite(t *testing.T) {
	suite.Run(t, new(BreakerSuite))
}

func (s *BreakerSuite) SetupTest() {
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.breaker = New("pmdc",
		WithFailureThreshold(3),
		WithSuccessThreshold(2),
		WithCooldown(10*time.Second),
		WithClock(func() time.Time { return s.now }),
	)
}

func (s *BreakerSuite) trip() {
	for range 3 {
		s.breaker.RecordFailure()
	}
}

func (s *BreakerSuite) TestOpensAfterThreshold() {
	s.Run("stays closed below threshold", func() {
		s.breaker.RecordFailure()
		useFallback, change := s.breaker.RecordFailure()
		s.False(useFallback)
		s.False(change.Opened)
		s.Equal(StateClosed, s.breaker.State())
	})

	s.Run("opens on the threshold failure", func() {
		useFallback, change := s.breaker.RecordFailure()
		s.True(useFallback)
		s.True(change.Opened)
		s.True(s.breaker.IsOpen())
		s.Equal("open", s.breaker.State().String())
	})
}

func (s *BreakerSuite) TestSuccessResetsFailureCount() {
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.breaker.RecordSuccess()
	s.breaker.RecordFailure()
	s.False(s.breaker.IsOpen())
}

func (s *BreakerSuite) TestAllow() {
	s.Run("closed circuit allows", func() {
		s.True(s.breaker.Allow())
	})

	s.Run("open circuit rejects within cooldown", func() {
		s.trip()
		s.now = s.now.Add(5 * time.Second)
		s.False(s.breaker.Allow())
	})

	s.Run("one probe per cooldown window", func() {
		s.now = s.now.Add(6 * time.Second)
		s.True(s.breaker.Allow())
		s.False(s.breaker.Allow())

		s.now = s.now.Add(10 * time.Second)
		s.True(s.breaker.Allow())
	})
}

func (s *BreakerSuite) TestClosesAfterSuccessThreshold() {
	s.trip()

	usePrimary, change := s.breaker.RecordSuccess()
	s.False(usePrimary)
	s.False(change.Closed)

	usePrimary, change = s.breaker.RecordSuccess()
	s.True(usePrimary)
	s.True(change.Closed)
	s.Equal(StateClosed, s.breaker.State())
	s.True(s.breaker.Allow())
}

func (s *BreakerSuite) TestReset() {
	s.trip()
	s.breaker.Reset()
	s.False(s.breaker.IsOpen())
	s.True(s.breaker.Allow())
}
