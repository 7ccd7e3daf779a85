// Package places loads the quiz dataset of Māori place names.
package places

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"ingoa/internal/quiz"
	"ingoa/internal/validator"
)

// ErrEmptyDataset is returned when a dataset holds no usable records.
var ErrEmptyDataset = errors.New("places: dataset has no usable records")

// Load reads a JSON array of place records from path.
func Load(path string) ([]quiz.PlaceRecord, error) {
	log.Info().Str("path", path).Msg("Loading places")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read places: %w", err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Int("count", len(records)).Msg("Successfully loaded places")
	return records, nil
}

// Parse decodes a JSON array of place records. Fields are trimmed, records
// without a name or meaning are skipped, and only the first record for a
// given name is kept.
func Parse(data []byte) ([]quiz.PlaceRecord, error) {
	var raw []quiz.PlaceRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode places: %w", err)
	}

	records := lo.FilterMap(raw, func(r quiz.PlaceRecord, i int) (quiz.PlaceRecord, bool) {
		r = quiz.PlaceRecord{
			Placename:  strings.TrimSpace(r.Placename),
			Meaning:    strings.TrimSpace(r.Meaning),
			Components: strings.TrimSpace(r.Components),
		}
		if err := validator.ValidateStruct(r); err != nil {
			log.Warn().Int("index", i).Err(err).Msg("Skipping invalid place record")
			return r, false
		}
		return r, true
	})

	seen := make(map[string]struct{}, len(records))
	records = lo.Filter(records, func(r quiz.PlaceRecord, _ int) bool {
		if _, dup := seen[r.Placename]; dup {
			log.Warn().Str("placename", r.Placename).Msg("Skipping duplicate place name")
			return false
		}
		seen[r.Placename] = struct{}{}
		return true
	})

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}
