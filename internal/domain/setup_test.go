package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backendCategory() *Category {
	return &Category{
		ID:        "cat-backend",
		Title:     "Backend Dev",
		Level:     LevelAvailability{Junior: true, Middle: true},
		Published: true,
	}
}

func frontendCategory() *Category {
	return &Category{
		ID:        "cat-frontend",
		Title:     "Frontend Dev",
		Level:     LevelAvailability{Junior: true, Senior: true},
		Published: true,
	}
}

func premiumTier() *Tier {
	return &Tier{ID: "tier-premium", Title: "Premium", Price: 10, Quota: 20}
}

func freeTier() *Tier {
	return &Tier{ID: "tier-free", Title: "Free Trial", Price: 0, Quota: 5}
}

func newTestSetup() *Setup {
	return NewSetup("setup-1", "user-1", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
}

func TestSetup_SelectLevel(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *Setup)
		level   Level
		wantErr error
	}{
		{
			name:    "no category selected",
			prepare: func(s *Setup) {},
			level:   LevelJunior,
			wantErr: ErrLevelUnavailable,
		},
		{
			name: "level disabled for category",
			prepare: func(s *Setup) {
				s.SelectCategory(backendCategory())
			},
			level:   LevelSenior,
			wantErr: ErrLevelUnavailable,
		},
		{
			name: "level enabled for category",
			prepare: func(s *Setup) {
				s.SelectCategory(backendCategory())
			},
			level: LevelMiddle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSetup()
			tt.prepare(s)
			err := s.SelectLevel(tt.level)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, s.Level)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.level, s.Level)
		})
	}
}

// Switching to a category that does not enable the selected level must reset
// both the level and the tier, never keep an inconsistent combination.
func TestSetup_CategorySwitchInvalidatesLevel(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelMiddle))
	require.True(t, s.ApplyCount(s.CountGen, 20))
	require.NoError(t, s.SelectTier(premiumTier()))

	// Frontend enables junior and senior only.
	s.SelectCategory(frontendCategory())

	assert.Empty(t, s.Level)
	assert.Nil(t, s.Tier)
	assert.Nil(t, s.Count, "count for the old key must not survive the switch")
}

// After any sequence of category/level selections, the level is either empty
// or enabled under the current category.
func TestSetup_CascadingInvariant(t *testing.T) {
	s := newTestSetup()
	categories := []*Category{backendCategory(), frontendCategory(), backendCategory()}
	levels := []Level{LevelJunior, LevelMiddle, LevelSenior}

	for _, c := range categories {
		s.SelectCategory(c)
		for _, l := range levels {
			_ = s.SelectLevel(l)
			if s.Level != "" {
				assert.True(t, s.Category.Level.Enabled(s.Level),
					"level %q inconsistent with category %q", s.Level, s.Category.ID)
			}
		}
	}
}

func TestSetup_SelectCategoryIdempotent(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelJunior))
	require.True(t, s.ApplyCount(s.CountGen, 10))
	require.NoError(t, s.SelectTier(freeTier()))

	before := *s
	s.SelectCategory(backendCategory())
	s.SelectCategory(backendCategory())

	assert.Equal(t, before.Level, s.Level)
	assert.Equal(t, before.Tier, s.Tier)
	assert.Equal(t, before.CountGen, s.CountGen, "re-selecting the same category must not trigger a refetch")
	require.NotNil(t, s.Count)
	assert.Equal(t, 10, *s.Count)
}

func TestSetup_SelectTier(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *Setup)
		tier    *Tier
		wantErr error
	}{
		{
			name:    "no level selected",
			prepare: func(s *Setup) { s.SelectCategory(backendCategory()) },
			tier:    freeTier(),
			wantErr: ErrSetupIncomplete,
		},
		{
			name: "count unknown",
			prepare: func(s *Setup) {
				s.SelectCategory(backendCategory())
				_ = s.SelectLevel(LevelJunior)
			},
			tier:    freeTier(),
			wantErr: ErrCountUnknown,
		},
		{
			name: "quota exceeds count",
			prepare: func(s *Setup) {
				s.SelectCategory(backendCategory())
				_ = s.SelectLevel(LevelJunior)
				s.ApplyCount(s.CountGen, 3)
			},
			tier:    premiumTier(),
			wantErr: ErrTierUnavailable,
		},
		{
			name: "quota within count",
			prepare: func(s *Setup) {
				s.SelectCategory(backendCategory())
				_ = s.SelectLevel(LevelJunior)
				s.ApplyCount(s.CountGen, 20)
			},
			tier: premiumTier(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSetup()
			tt.prepare(s)
			err := s.SelectTier(tt.tier)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s.Tier)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s.Tier)
			assert.Equal(t, tt.tier.ID, s.Tier.ID)
		})
	}
}

// A count that resolves only after the key changed again must be discarded;
// a stale count must never overwrite the newer key's count.
func TestSetup_StaleCountDiscarded(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelJunior))
	_, _, staleGen, ok := s.CountKey()
	require.True(t, ok)

	// Key changes before the first fetch resolves.
	require.NoError(t, s.SelectLevel(LevelMiddle))
	_, _, freshGen, ok := s.CountKey()
	require.True(t, ok)
	require.NotEqual(t, staleGen, freshGen)

	require.True(t, s.ApplyCount(freshGen, 20))
	assert.False(t, s.ApplyCount(staleGen, 3), "stale response must be discarded")
	require.NotNil(t, s.Count)
	assert.Equal(t, 20, *s.Count)
}

// A count arriving after a tier was already chosen re-validates the tier,
// covering the race where the user picks a tier while the fetch is in flight.
func TestSetup_LateCountResetsInfeasibleTier(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelJunior))
	require.True(t, s.ApplyCount(s.CountGen, 20))
	require.NoError(t, s.SelectTier(premiumTier()))
	require.NoError(t, s.Confirm())

	// A refreshed count for the same key comes back smaller than the quota.
	require.True(t, s.ApplyCount(s.CountGen, 3))

	assert.Nil(t, s.Tier)
	assert.False(t, s.Confirmed)
}

// Tier feasibility invariant: whenever tier and count are both known,
// quota <= count.
func TestSetup_TierFeasibilityInvariant(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelJunior))

	counts := []int{3, 20, 5, 0, 50}
	tiers := []*Tier{freeTier(), premiumTier()}
	for _, c := range counts {
		s.ApplyCount(s.CountGen, c)
		for _, tier := range tiers {
			_ = s.SelectTier(tier)
			if s.Tier != nil && s.Count != nil {
				assert.LessOrEqual(t, s.Tier.Quota, *s.Count)
			}
		}
	}
}

func TestSetup_ConfirmRequiresCompleteSelection(t *testing.T) {
	s := newTestSetup()
	require.ErrorIs(t, s.Confirm(), ErrSetupIncomplete)

	s.SelectCategory(backendCategory())
	require.ErrorIs(t, s.Confirm(), ErrSetupIncomplete)

	require.NoError(t, s.SelectLevel(LevelMiddle))
	require.True(t, s.ApplyCount(s.CountGen, 20))
	require.NoError(t, s.SelectTier(premiumTier()))
	require.NoError(t, s.Confirm())
	assert.True(t, s.Confirmed)
}

func TestSetup_Config(t *testing.T) {
	s := newTestSetup()
	s.SelectCategory(backendCategory())
	require.NoError(t, s.SelectLevel(LevelMiddle))
	require.True(t, s.ApplyCount(s.CountGen, 20))
	require.NoError(t, s.SelectTier(premiumTier()))

	_, err := s.Config()
	require.ErrorIs(t, err, ErrSetupNotConfirmed)

	require.NoError(t, s.Confirm())
	cfg, err := s.Config()
	require.NoError(t, err)
	assert.Equal(t, InterviewConfig{
		CategoryID:    "cat-backend",
		CategoryTitle: "Backend Dev",
		Level:         LevelMiddle,
		Tier:          "premium",
		TokenUsage:    10,
	}, cfg)
}

func TestTier_Kind(t *testing.T) {
	tests := []struct {
		name string
		tier Tier
		want string
	}{
		{name: "zero price", tier: Tier{Title: "Starter", Price: 0}, want: "free"},
		{name: "free in title", tier: Tier{Title: "Free Trial", Price: 5}, want: "free"},
		{name: "paid", tier: Tier{Title: "Premium", Price: 10}, want: "premium"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tier.Kind())
		})
	}
}
