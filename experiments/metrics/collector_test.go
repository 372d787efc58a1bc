package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	ctx := context.Background()
	clock := quartz.NewMock(t)
	c := NewCollector(clock)

	c.Start("flatmc", "bid", 3, 1, 4)
	c.AddTrial()
	c.AddTrial()
	clock.Advance(250 * time.Millisecond).MustWait(ctx)
	got := c.Complete("2", 60)

	require.Equal(t, "flatmc", got.Algorithm)
	require.Equal(t, "bid", got.Phase)
	require.Equal(t, 3, got.Round)
	require.Equal(t, 1, got.Player)
	require.Equal(t, 4, got.Candidates)
	require.Equal(t, 2, got.Trials, "Should count the trials of this decision")
	require.Equal(t, "2", got.BestMove)
	require.Equal(t, 60, got.BestScore)
	require.Equal(t, 250*time.Millisecond, got.Duration, "Duration should follow the injected clock")

	c.Start("puremcts", "play_card", 3, 1, 2)
	c.SetTreeNodes(57)
	second := c.Complete("pirate", 0)
	require.Zero(t, second.Trials, "Trials reset between decisions")
	require.Equal(t, 57, second.TreeNodes)

	require.Equal(t, []SearchMetric{got, second}, c.Drain())
	require.Empty(t, c.Drain(), "Drain should empty the collector")
}

func TestDummyCollector(t *testing.T) {
	c := NewDummyCollector()
	c.Start("flatmc", "bid", 1, 0, 2)
	c.AddTrial()
	require.Equal(t, SearchMetric{}, c.Complete("0", 10))
	require.Nil(t, c.Drain())
}
