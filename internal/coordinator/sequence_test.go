package coordinator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/venue-tabs/internal/coordinator/tablog"
)

func TestSequence_RunsAllSteps(t *testing.T) {
	repo := tablog.NewMemoryRepository()
	var ran []string
	step := func(name string) Step {
		return NewStep(name, func(context.Context) error {
			ran = append(ran, name)
			return nil
		})
	}

	err := NewSequence("4", "add_item", []Step{step("mutate"), step("refresh")}, repo).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mutate", "refresh"}, ran)

	var statuses []tablog.Status
	for _, e := range repo.Entries() {
		assert.Equal(t, "4", e.TableID)
		assert.Equal(t, "add_item", e.Operation)
		statuses = append(statuses, e.Status)
	}
	assert.Equal(t, []tablog.Status{
		tablog.StatusStarted, tablog.StatusStepDone, tablog.StatusStepDone, tablog.StatusCompleted,
	}, statuses)
}

func TestSequence_StopsAtFirstFailure(t *testing.T) {
	repo := tablog.NewMemoryRepository()
	boom := errors.New("boom")
	refreshed := false

	err := NewSequence("4", "close", []Step{
		NewStep("mutate", func(context.Context) error { return boom }),
		NewStep("refresh", func(context.Context) error { refreshed = true; return nil }),
	}, repo).Run(context.Background())

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "mutate", stepErr.Step)
	assert.ErrorIs(t, err, boom)
	assert.False(t, refreshed)

	entries := repo.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, tablog.StatusFailed, entries[1].Status)
	assert.Equal(t, `["boom"]`, entries[1].ErrorMessages)
}

func TestSequence_NilRepository(t *testing.T) {
	err := NewSequence("1", "add_item", []Step{
		NewStep("mutate", func(context.Context) error { return nil }),
	}, nil).Run(context.Background())
	assert.NoError(t, err)
}
