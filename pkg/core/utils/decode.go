package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// DecodeLenient unmarshals data into v, tolerating the irregularities of
// hand-written files and loosely produced payloads. Strategies run from
// strictest to loosest:
//
//  1. standard JSON
//  2. repaired JSON (trailing commas, single quotes, unclosed brackets)
//  3. Hjson (comments, unquoted keys, optional commas)
//
// The first strategy that both parses and unmarshals wins. The returned
// error wraps the strict parser's complaint, which is usually the most
// actionable one.
func DecodeLenient(data []byte, v interface{}) error {
	strictErr := json.Unmarshal(data, v)
	if strictErr == nil {
		return nil
	}

	if repaired, err := jsonrepair.RepairJSON(string(data)); err == nil {
		if err := json.Unmarshal([]byte(repaired), v); err == nil {
			return nil
		}
	}

	if err := hjson.Unmarshal(data, v); err == nil {
		return nil
	}

	return fmt.Errorf("no decode strategy accepted the input: %w", strictErr)
}
