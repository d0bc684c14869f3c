package console

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/sellerdesk/internal/kvstore"
	"github.com/mesh-intelligence/sellerdesk/internal/seed"
	"github.com/mesh-intelligence/sellerdesk/pkg/types"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	titles []string
	descs  []string
}

func (n *recordingNotifier) Success(title, description string) {
	n.titles = append(n.titles, title)
	n.descs = append(n.descs, description)
}

func setupConsole(t *testing.T) (*Console, *recordingNotifier) {
	t.Helper()
	notifier := &recordingNotifier{}
	c, err := Open(Config{
		Store:    kvstore.Config{Backend: kvstore.BackendFile, DataDir: t.TempDir()},
		Notifier: notifier,
		Clock:    func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) },
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	// Keep tests fast and deterministic.
	require.True(t, c.Simulation().Update(func(s *types.SimulationConfig) {
		s.LeadsDelayMs = 0
		s.OpportunitiesDelayMs = 0
		s.SimulateErrors = false
	}))
	require.NoError(t, c.LoadAll(context.Background()))
	return c, notifier
}

func TestLoadAllSeedsBothCollections(t *testing.T) {
	c, _ := setupConsole(t)

	assert.Equal(t, seed.Leads(), c.Leads().Data())
	assert.Equal(t, seed.Opportunities(), c.Opportunities().Data())
}

func TestSaveLeadValid(t *testing.T) {
	c, notifier := setupConsole(t)

	lead, err := c.Leads().Get(2)
	require.NoError(t, err)
	lead.Status = types.LeadStatusQualified
	lead.Email = "a@b.com"

	require.NoError(t, c.SaveLead(lead))

	got, err := c.Leads().Get(2)
	require.NoError(t, err)
	assert.Equal(t, types.LeadStatusQualified, got.Status)
	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Lead Updated Successfully!", notifier.titles[0])
}

func TestSaveLeadInvalidEmailRejectedBeforePersistence(t *testing.T) {
	c, notifier := setupConsole(t)

	lead, err := c.Leads().Get(1)
	require.NoError(t, err)
	before := c.StorageInfo().KeyBytes[types.KeyLeadsData]

	lead.Email = "a@b"
	require.ErrorIs(t, c.SaveLead(lead), types.ErrInvalidEmail)

	// No persistence call happened and no notification fired.
	assert.Equal(t, before, c.StorageInfo().KeyBytes[types.KeyLeadsData])
	assert.Empty(t, notifier.titles)

	got, err := c.Leads().Get(1)
	require.NoError(t, err)
	assert.NotEqual(t, "a@b", got.Email)
}

func TestSaveLeadUnknownStatusRejected(t *testing.T) {
	c, _ := setupConsole(t)

	lead, err := c.Leads().Get(1)
	require.NoError(t, err)
	lead.Status = "Dormant"
	assert.ErrorIs(t, c.SaveLead(lead), types.ErrInvalidStatus)
}

func TestConvertLeadAssignsSequentialIDs(t *testing.T) {
	c, notifier := setupConsole(t)

	first, err := c.ConvertLead(1)
	require.NoError(t, err)
	assert.Equal(t, 13, first.ID, "first conversion goes one past the seed floor")

	second, err := c.ConvertLead(2)
	require.NoError(t, err)
	assert.Equal(t, 14, second.ID, "conversion before reload still increments")

	assert.Len(t, notifier.titles, 2)
	assert.Equal(t, "Lead Converted Successfully!", notifier.titles[0])
}

func TestConvertLeadShape(t *testing.T) {
	c, _ := setupConsole(t)

	opp, err := c.ConvertLead(1)
	require.NoError(t, err)

	lead, _ := c.Leads().Get(1)
	assert.Equal(t, lead.Name+" - "+lead.Company, opp.Name)
	assert.Equal(t, types.StageProspecting, opp.Stage)
	assert.Nil(t, opp.Amount, "converted opportunities start with no amount")
	assert.Equal(t, lead.Company, opp.AccountName)

	require.NotNil(t, opp.Conversion)
	assert.Equal(t, lead.ID, opp.Conversion.LeadID)
	assert.Equal(t, lead.Name, opp.Conversion.LeadName)
	assert.Equal(t, types.ConversionSource, opp.Conversion.Source)
	assert.Equal(t, time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC), opp.Conversion.ConvertedAt)

	// The conversion is persisted with the collection.
	found := false
	for _, o := range c.Opportunities().Data() {
		if o.ID == opp.ID {
			found = true
		}
	}
	assert.True(t, found)
}

func TestConvertUnknownLead(t *testing.T) {
	c, _ := setupConsole(t)

	_, err := c.ConvertLead(999)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestVisibleLeadsUsesPersistedFilters(t *testing.T) {
	c, _ := setupConsole(t)

	require.True(t, c.LeadFilters().Update(func(f *types.LeadFilters) {
		f.StatusFilter = types.LeadStatusNew
		f.SortBy = types.SortScoreDesc
	}))

	visible := c.VisibleLeads("")
	require.NotEmpty(t, visible)
	for _, l := range visible {
		assert.Equal(t, types.LeadStatusNew, l.Status)
	}
	for i := 1; i < len(visible); i++ {
		assert.GreaterOrEqual(t, visible[i-1].Score, visible[i].Score)
	}

	// The transient search term narrows further without persisting.
	bySearch := c.VisibleLeads("techcorp")
	for _, l := range bySearch {
		assert.Contains(t, l.Company, "TechCorp")
	}
}

func TestResetAllDataPreservesSimulationConfig(t *testing.T) {
	c, _ := setupConsole(t)

	require.True(t, c.Simulation().Update(func(s *types.SimulationConfig) {
		s.ErrorChance = 0.42
	}))
	require.True(t, c.LeadFilters().Update(func(f *types.LeadFilters) {
		f.StatusFilter = types.LeadStatusQualified
	}))

	require.NoError(t, c.ResetAllData(context.Background()))

	assert.Equal(t, 0.42, c.Simulation().Read().ErrorChance, "simulation config survives a data reset")
	assert.Equal(t, types.DefaultLeadFilters(), c.LeadFilters().Read())
	assert.Equal(t, seed.Leads(), c.Leads().Data())
	assert.Equal(t, seed.Opportunities(), c.Opportunities().Data())
}

func TestErrorInjectionAlwaysFails(t *testing.T) {
	notifier := &recordingNotifier{}
	c, err := Open(Config{
		Store:    kvstore.Config{Backend: kvstore.BackendFile, DataDir: t.TempDir()},
		Notifier: notifier,
	})
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	require.True(t, c.Simulation().Update(func(s *types.SimulationConfig) {
		s.SimulateErrors = true
		s.ErrorChance = 1
		s.LeadsDelayMs = 0
		s.OpportunitiesDelayMs = 0
	}))

	ctx := context.Background()
	require.ErrorIs(t, c.Leads().Load(ctx), types.ErrSimulatedTransport)
	require.ErrorIs(t, c.Leads().Refresh(ctx), types.ErrSimulatedTransport)
	require.ErrorIs(t, c.Leads().Reset(ctx), types.ErrSimulatedTransport)

	assert.Empty(t, c.Leads().Data(), "data never populates while every call fails")
	assert.NotEmpty(t, c.Leads().Err())
}

func TestStorageInfo(t *testing.T) {
	c, _ := setupConsole(t)

	info := c.StorageInfo()
	assert.Contains(t, info.KeyBytes, types.KeyLeadsData)
	assert.Contains(t, info.KeyBytes, types.KeyOpportunitiesData)
	assert.Positive(t, info.TotalBytes)
	assert.Equal(t, int64(kvstore.MaxStoreBytes), info.MaxBytes)
	assert.InDelta(t, float64(info.TotalBytes)/float64(info.MaxBytes)*100, info.UsedPercent, 1e-9)
	assert.Equal(t, len(info.KeyBytes), info.KeyCount)
}

func TestStoredKeys(t *testing.T) {
	c, _ := setupConsole(t)

	keys := c.StoredKeys()
	assert.Contains(t, keys, types.KeyLeadsData)
	assert.Contains(t, keys, types.KeyOpportunitiesData)
	assert.Contains(t, keys, types.KeySimulationConfig)
}
