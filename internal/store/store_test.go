// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadiyati/biorefinery/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testRecord() types.RunRecord {
	return types.RunRecord{
		CreatedAt:  time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
		ConfigYAML: "production:\n  annual_target_mt: 50000\n",
		KPIs: types.KPISet{
			LAProductionKgH:    5625.1,
			AnnualProductionMT: 44550.8,
			TCI:                21_500_000,
			NPV:                4_200_000,
			IRR:                0.145,
			MSPPerKg:           1.21,
		},
		Units: []types.UnitResult{
			{
				ID:            "R201",
				Kind:          "Fermentation",
				Design:        map[string]float64{"Reactor volume": 1630.2, "Number of reactors": 17},
				PurchaseCost:  2_900_000,
				InstalledCost: 8_120_000,
			},
			{
				ID:            "E301",
				Kind:          "Evaporation",
				Design:        map[string]float64{"Heat transfer area": 527.1},
				PurchaseCost:  480_000,
				InstalledCost: 1_536_000,
				Utilities: []types.UtilityDemand{
					{Agent: types.AgentLPSteam, DutyKW: 7906.1, SupplyTempK: 423.15},
				},
			},
		},
		Streams: []types.StreamSnapshot{
			{Name: "lactic_acid_product", Phase: "l", TempK: 298.15, MassKgH: 11000},
		},
	}
}

func TestSaveAndGetRoundtrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	id, err := s.Save(ctx, testRecord())
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)

	want := testRecord()
	assert.Equal(t, id, got.ID)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, want.ConfigYAML, got.ConfigYAML)
	assert.InDelta(t, want.KPIs.MSPPerKg, got.KPIs.MSPPerKg, 1e-12)

	require.Len(t, got.Units, 2)
	assert.Equal(t, "R201", got.Units[0].ID)
	assert.InDelta(t, 1630.2, got.Units[0].Design["Reactor volume"], 1e-9)
	require.Len(t, got.Units[1].Utilities, 1)
	assert.Equal(t, types.AgentLPSteam, got.Units[1].Utilities[0].Agent)

	require.Len(t, got.Streams, 1)
	assert.Equal(t, "lactic_acid_product", got.Streams[0].Name)
}

func TestGetMissingRun(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := testRecord()
		rec.CreatedAt = rec.CreatedAt.Add(time.Duration(i) * time.Hour)
		_, err := s.Save(ctx, rec)
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Greater(t, runs[0].ID, runs[1].ID)
	assert.Greater(t, runs[1].ID, runs[2].ID)
}

func TestListHonorsLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.Save(ctx, testRecord())
		require.NoError(t, err)
	}

	runs, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestSaveFillsZeroTimestamp(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := testRecord()
	rec.CreatedAt = time.Time{}
	id, err := s.Save(ctx, rec)
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.False(t, got.CreatedAt.IsZero())
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedAt, time.Minute)
}

func TestExportWritesFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.Save(ctx, testRecord())
	require.NoError(t, err)

	require.NoError(t, s.ExportYAML(ctx))
	require.NoError(t, s.ExportJSON(ctx))

	yamlData, err := os.ReadFile(filepath.Join(dir, "export.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(yamlData), "lactic_acid_product")

	jsonData, err := os.ReadFile(filepath.Join(dir, "export.json"))
	require.NoError(t, err)
	assert.Contains(t, string(jsonData), "R201")
}
