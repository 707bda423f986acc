package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/athul0622-dotcom/local-service/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedSource_LoadsSeedCatalog(t *testing.T) {
	source := NewEmbeddedSource()
	ctx := context.Background()

	providers, err := source.LoadProviders(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, providers)

	assert.Equal(t, "1", providers[0].ID)
	assert.Equal(t, "Manoj Kumar", providers[0].Name)
	assert.Equal(t, "Plumber", providers[0].Profession)
	assert.Equal(t, 4.5, providers[0].Rating)
	require.NotNil(t, providers[0].Email)
	assert.Nil(t, providers[0].PhotoURL)
	assert.Equal(t, 8, providers[0].ExperienceYears)

	ids := make(map[string]bool)
	for _, p := range providers {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}

	reviews, err := source.LoadReviews(ctx)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "rev1", reviews[0].ID)
	assert.Equal(t, "1", reviews[0].ProviderID)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), reviews[0].CreatedAt.UTC())
	assert.Equal(t, "Deepa K.", reviews[1].CustomerName)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	doc := `{"providers":[{"id":"a","name":"A","profession":"Painter","location":"Pune","phone":"1","rating":3.5,"skills":["Walls"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	source := NewFileSource(path)
	providers, err := source.LoadProviders(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, []string{"Walls"}, providers[0].Skills)

	reviews, err := source.LoadReviews(context.Background())
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestFileSource_MissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "missing.json"))
	_, err := source.LoadProviders(context.Background())
	require.Error(t, err)
	assert.False(t, retry.IsPermanent(err))
}

func TestBytesSource_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"providers": [`},
		{"missing providers", `{"reviews": []}`},
		{"rating above range", `{"providers":[{"id":"a","name":"A","profession":"P","location":"L","phone":"1","rating":5.5}]}`},
		{"empty id", `{"providers":[{"id":"","name":"A","profession":"P","location":"L","phone":"1","rating":4}]}`},
		{"review rating out of range", `{"providers":[],"reviews":[{"id":"r","provider_id":"a","rating":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBytesSource([]byte(tt.doc)).LoadProviders(context.Background())
			require.Error(t, err)
			assert.True(t, retry.IsPermanent(err))
		})
	}
}
