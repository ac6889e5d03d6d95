package factory

import (
	"context"
	"testing"
	"time"

	"github.com/mcoot/protocasual/internal/config"
	"github.com/mcoot/protocasual/internal/dependencies/mocks"
	"github.com/mcoot/protocasual/internal/storage/memory"
	"github.com/mcoot/protocasual/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockAnalytics *mocks.MockSink
	Memory        *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies
// and the built-in content. The event hub is shut down when tb finishes.
func NewTestApp(tb testing.TB) *TestApp {
	return NewTestAppWithContent(tb, config.DefaultContent())
}

// NewTestAppWithContent is NewTestApp over custom content
func NewTestAppWithContent(tb testing.TB, content *config.Content) *TestApp {
	logger := testutil.NopLogger()
	content.Validate(logger)

	backend := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockRandom.UUIDResults = []string{testutil.FixedPlayerID}
	sink := mocks.NewMockSink()

	app := newWithDependencies(context.Background(), "", content, Dependencies{
		Backend:   backend,
		Clock:     mockClock,
		Random:    mockRandom,
		Analytics: sink,
		Logger:    logger,
	})
	tb.Cleanup(app.Events.Close)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockAnalytics: sink,
		Memory:        backend,
	}
}
