package places

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ingoa/internal/quiz"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []quiz.PlaceRecord
		wantErr error
	}{
		{
			name:  "valid records",
			input: `[{"Placename":"Rotorua","Meaning":"Second lake","Components":"roto: lake"},{"Placename":"Taupō","Meaning":"Cloak"}]`,
			want: []quiz.PlaceRecord{
				{Placename: "Rotorua", Meaning: "Second lake", Components: "roto: lake"},
				{Placename: "Taupō", Meaning: "Cloak"},
			},
		},
		{
			name:  "trims and skips invalid",
			input: `[{"Placename":"  Rotorua ","Meaning":" Second lake "},{"Placename":"","Meaning":"nameless"},{"Placename":"Taupō","Meaning":"   "}]`,
			want: []quiz.PlaceRecord{
				{Placename: "Rotorua", Meaning: "Second lake"},
			},
		},
		{
			name:  "keeps first duplicate",
			input: `[{"Placename":"Rotorua","Meaning":"Second lake"},{"Placename":"Rotorua","Meaning":"Other"}]`,
			want: []quiz.PlaceRecord{
				{Placename: "Rotorua", Meaning: "Second lake"},
			},
		},
		{
			name:    "empty array",
			input:   `[]`,
			wantErr: ErrEmptyDataset,
		},
		{
			name:    "nothing usable",
			input:   `[{"Placename":"","Meaning":""}]`,
			wantErr: ErrEmptyDataset,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`{"Placename":`))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyDataset)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "places.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Placename":"Rotorua","Meaning":"Second lake"}]`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []quiz.PlaceRecord{{Placename: "Rotorua", Meaning: "Second lake"}}, got)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BundledDataset(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join("..", "..", "data", "places.json"))
	require.NoError(t, err)
	assert.NotEmpty(t, got)
	for _, r := range got {
		assert.NotEmpty(t, r.Placename)
		assert.NotEmpty(t, r.Meaning)
	}
}
