package playerdata

import (
	"encoding/json"
	"fmt"

	"github.com/mcoot/protocasual/internal/dependencies/random"
	"github.com/mcoot/protocasual/internal/model"
)

// document is the raw top-level shape of a save record
type document map[string]json.RawMessage

// knownFields are the top-level keys PlayerData decodes itself
var knownFields = map[string]struct{}{
	"version":      {},
	"profile":      {},
	"currency":     {},
	"inventory":    {},
	"equipment":    {},
	"daily_reward": {},
	"tutorial":     {},
	"progress":     {},
	"leaderboards": {},
	"achievements": {},
}

// Decode parses a save record of any supported version, migrating it forward.
// Top-level subtrees this build does not know about are kept in Unknown.
func Decode(raw []byte, rnd random.Random) (*model.PlayerData, error) {
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode save record: %w", err)
	}
	if doc == nil {
		doc = document{}
	}

	version, err := doc.version()
	if err != nil {
		return nil, err
	}
	if version > model.CurrentSchemaVersion {
		return nil, fmt.Errorf("%w: record is v%d, this build reads up to v%d",
			model.ErrUnsupportedSchema, version, model.CurrentSchemaVersion)
	}

	if err := migrate(doc, version, rnd); err != nil {
		return nil, err
	}

	known := make(document, len(knownFields))
	unknown := make(map[string]json.RawMessage)
	for k, v := range doc {
		if _, ok := knownFields[k]; ok {
			known[k] = v
		} else {
			unknown[k] = v
		}
	}

	body, err := json.Marshal(known)
	if err != nil {
		return nil, fmt.Errorf("re-encode known fields: %w", err)
	}

	data := &model.PlayerData{}
	if err := json.Unmarshal(body, data); err != nil {
		return nil, fmt.Errorf("decode player data: %w", err)
	}
	if len(unknown) > 0 {
		data.Unknown = unknown
	}
	data.Version = model.CurrentSchemaVersion
	if data.Profile.PlayerID == "" {
		data.Profile.PlayerID = model.PlayerID(rnd.UUID())
	}
	data.Normalize()
	return data, nil
}

// Encode serializes the aggregate, merging back any preserved unknown subtrees
func Encode(data *model.PlayerData) ([]byte, error) {
	body, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode player data: %w", err)
	}
	if len(data.Unknown) == 0 {
		return body, nil
	}

	var doc document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("encode player data: %w", err)
	}
	for k, v := range data.Unknown {
		if _, ok := doc[k]; !ok {
			doc[k] = v
		}
	}
	return json.Marshal(doc)
}

func (d document) version() (int, error) {
	raw, ok := d["version"]
	if !ok {
		return 0, nil
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: version %s", model.ErrUnsupportedSchema, string(raw))
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: negative version %d", model.ErrUnsupportedSchema, v)
	}
	return v, nil
}

// setIfMissing stores value under key when the document lacks it
func (d document) setIfMissing(key string, value any) error {
	if _, ok := d[key]; ok {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	d[key] = raw
	return nil
}
