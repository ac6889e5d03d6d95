package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/protocasual/internal/dependencies/mocks"
	"github.com/mcoot/protocasual/internal/model"
	"github.com/mcoot/protocasual/internal/testutil"
)

type BusSuite struct {
	suite.Suite
	clock *mocks.MockClock
	bus   *Bus
}

func TestBusSuite(t *testing.T) {
	suite.Run(t, new(BusSuite))
}

func (s *BusSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.bus = NewBus(s.clock, testutil.NopLogger())
}

func (s *BusSuite) TestPublishInSubscriptionOrder() {
	var order []int
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { order = append(order, 1) })
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { order = append(order, 2) })
	s.bus.SubscribeAll(func(model.Event) { order = append(order, 3) })

	s.bus.Publish(model.EventCurrencyChanged, nil)

	s.Equal([]int{1, 2, 3}, order)
}

func (s *BusSuite) TestPublishStampsTimestampAndPayload() {
	var got model.Event
	s.bus.Subscribe(model.EventCurrencyChanged, func(ev model.Event) { got = ev })

	s.bus.Publish(model.EventCurrencyChanged, model.CurrencyChangedPayload{Soft: 5})

	s.Equal(model.EventCurrencyChanged, got.Type)
	s.Equal(s.clock.Now(), got.Timestamp)
	s.Equal(model.CurrencyChangedPayload{Soft: 5}, got.Payload)
}

func (s *BusSuite) TestOnlyMatchingTypeReceives() {
	calls := 0
	s.bus.Subscribe(model.EventInventoryChanged, func(model.Event) { calls++ })

	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.Equal(0, calls)
}

func (s *BusSuite) TestUnsubscribe() {
	calls := 0
	unsub := s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { calls++ })
	s.bus.Publish(model.EventCurrencyChanged, nil)
	unsub()
	s.bus.Publish(model.EventCurrencyChanged, nil)

	s.Equal(1, calls)
	s.Equal(0, s.bus.SubscriberCount(model.EventCurrencyChanged))
}

func (s *BusSuite) TestReentrantUnsubscribeUsesSnapshot() {
	secondCalls := 0
	var unsubSecond func()
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { unsubSecond() })
	unsubSecond = s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { secondCalls++ })

	// Snapshot taken before dispatch still includes the second handler
	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.Equal(1, secondCalls)

	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.Equal(1, secondCalls)
}

func (s *BusSuite) TestReentrantSubscribeAppliesToNextPublish() {
	lateCalls := 0
	subscribed := false
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) {
		if !subscribed {
			subscribed = true
			s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { lateCalls++ })
		}
	})

	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.Equal(0, lateCalls)

	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.Equal(1, lateCalls)
}

func (s *BusSuite) TestPanickingHandlerDoesNotStopDispatch() {
	calls := 0
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { panic("boom") })
	s.bus.Subscribe(model.EventCurrencyChanged, func(model.Event) { calls++ })

	s.NotPanics(func() { s.bus.Publish(model.EventCurrencyChanged, nil) })
	s.Equal(1, calls)
}

func (s *BusSuite) TestRecorder() {
	rec := NewRecorder(s.bus)
	s.bus.Publish(model.EventCurrencyChanged, nil)
	s.bus.Publish(model.EventInventoryChanged, nil)

	s.Len(rec.Events(), 2)
	s.Len(rec.OfType(model.EventInventoryChanged), 1)

	rec.Reset()
	s.Empty(rec.Events())
}
