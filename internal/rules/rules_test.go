package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func boolPtr(v bool) *bool    { return &v }
func strPtr(v string) *string { return &v }

func TestValidateRewardOrLink(t *testing.T) {
	tests := []struct {
		name    string
		c       Candidate
		wantMsg string
	}{
		{
			name:    "neither reward nor link",
			c:       Candidate{Periodicity: 1, ExecutionTime: 60},
			wantMsg: "habit must have a reward or a linked pleasant habit",
		},
		{
			name: "reward only is accepted",
			c:    Candidate{Periodicity: 1, ExecutionTime: 60, Reward: "tea"},
		},
		{
			name: "link only is accepted",
			c:    Candidate{Periodicity: 1, ExecutionTime: 60, LinkedHabitID: intPtr(5), LinkedIsPleasure: true},
		},
		{
			name:    "both reward and link",
			c:       Candidate{Periodicity: 1, ExecutionTime: 60, Reward: "tea", LinkedHabitID: intPtr(5), LinkedIsPleasure: true},
			wantMsg: "habit cannot have both a reward and a linked pleasant habit at once",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.c)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var v *Violation
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.wantMsg, v.Msg)
		})
	}
}

func TestValidateBounds(t *testing.T) {
	base := Candidate{Reward: "tea", Periodicity: 1, ExecutionTime: 60}

	t.Run("periodicity above 7 rejected", func(t *testing.T) {
		c := base
		c.Periodicity = 8
		err := Validate(c)
		require.Error(t, err)
		assert.Equal(t, "habit cannot be performed less often than once in 7 days", err.Error())
	})

	t.Run("periodicity boundary accepted", func(t *testing.T) {
		c := base
		c.Periodicity = 7
		assert.NoError(t, Validate(c))
	})

	t.Run("execution time above 120 rejected", func(t *testing.T) {
		c := base
		c.ExecutionTime = 121
		err := Validate(c)
		require.Error(t, err)
		assert.Equal(t, "execution time must not exceed 120 seconds", err.Error())
	})

	t.Run("execution time boundary accepted", func(t *testing.T) {
		c := base
		c.ExecutionTime = 120
		assert.NoError(t, Validate(c))
	})
}

func TestValidateLinkedMustBePleasant(t *testing.T) {
	c := Candidate{Periodicity: 1, ExecutionTime: 60, LinkedHabitID: intPtr(9), LinkedIsPleasure: false}
	err := Validate(c)
	require.Error(t, err)
	assert.Equal(t, "only a habit marked as pleasant can be linked", err.Error())

	c.LinkedIsPleasure = true
	assert.NoError(t, Validate(c))
}

func TestValidatePleasureHabit(t *testing.T) {
	t.Run("clean pleasant habit accepted", func(t *testing.T) {
		c := Candidate{IsPleasure: true, Periodicity: 1, ExecutionTime: 60}
		assert.NoError(t, Validate(c))
	})

	t.Run("pleasant habit with reward rejected", func(t *testing.T) {
		c := Candidate{IsPleasure: true, Periodicity: 1, ExecutionTime: 60, Reward: "tea"}
		err := Validate(c)
		require.Error(t, err)
		assert.Equal(t, "a pleasant habit cannot have a reward or a linked habit", err.Error())
	})

	t.Run("pleasant habit with link rejected", func(t *testing.T) {
		c := Candidate{IsPleasure: true, Periodicity: 1, ExecutionTime: 60, LinkedHabitID: intPtr(3), LinkedIsPleasure: true}
		err := Validate(c)
		require.Error(t, err)
		assert.Equal(t, "a pleasant habit cannot have a reward or a linked habit", err.Error())
	})
}

func TestValidateFirstViolationWins(t *testing.T) {
	// Missing reward/link and oversized periodicity at once: the reward rule
	// is reported first.
	c := Candidate{Periodicity: 30, ExecutionTime: 200}
	err := Validate(c)
	require.Error(t, err)
	assert.Equal(t, "habit must have a reward or a linked pleasant habit", err.Error())
}

func TestValidatePatch(t *testing.T) {
	tests := []struct {
		name     string
		existing Candidate
		patch    Patch
		wantMsg  string
	}{
		{
			name:     "toggle pleasant with existing reward",
			existing: Candidate{Reward: "tea"},
			patch:    Patch{IsPleasure: boolPtr(true)},
			wantMsg:  "habit already has a reward or a linked habit and cannot be marked as pleasant",
		},
		{
			name:     "toggle pleasant with existing link",
			existing: Candidate{LinkedHabitID: intPtr(4)},
			patch:    Patch{IsPleasure: boolPtr(true)},
			wantMsg:  "habit already has a reward or a linked habit and cannot be marked as pleasant",
		},
		{
			name:     "toggle pleasant off is fine",
			existing: Candidate{Reward: "tea"},
			patch:    Patch{IsPleasure: boolPtr(false)},
		},
		{
			name:     "set link over existing reward",
			existing: Candidate{Reward: "tea"},
			patch:    Patch{LinkedHabitID: intPtr(4)},
			wantMsg:  "habit has a reward and cannot take a linked habit",
		},
		{
			name:     "set reward over existing link",
			existing: Candidate{LinkedHabitID: intPtr(4)},
			patch:    Patch{Reward: strPtr("coffee")},
			wantMsg:  "habit has a linked habit and cannot take a reward",
		},
		{
			name:     "clearing reward on linked habit is fine",
			existing: Candidate{LinkedHabitID: intPtr(4)},
			patch:    Patch{Reward: strPtr("")},
		},
		{
			name:     "unrelated patch is fine",
			existing: Candidate{Reward: "tea"},
			patch:    Patch{Periodicity: intPtr(3), ExecutionTime: intPtr(90)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePatch(tt.existing, tt.patch)
			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
