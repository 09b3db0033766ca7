package output

import (
	"encoding/json"

	"sqlalign/internal/core"
)

type jsonFormatter struct{}

type statsPayload struct {
	Format string     `json:"format"`
	Stats  core.Stats `json:"stats"`
}

type batchSummary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

type batchPayload struct {
	Format  string            `json:"format"`
	Summary batchSummary      `json:"summary"`
	Report  *core.BatchReport `json:"report,omitempty"`
}

type tablePayload struct {
	Format string          `json:"format"`
	Table  *core.TableInfo `json:"table"`
}

type Payload interface {
	statsPayload | batchPayload | tablePayload
}

func (jsonFormatter) FormatStats(s core.Stats) (string, error) {
	return marshalJSON(statsPayload{Format: string(FormatJSON), Stats: s})
}

func (jsonFormatter) FormatBatch(r *core.BatchReport) (string, error) {
	payload := batchPayload{Format: string(FormatJSON)}
	if r != nil {
		ok := r.Succeeded()
		payload.Report = r
		payload.Summary = batchSummary{
			Total:     len(r.Files),
			Succeeded: ok,
			Failed:    len(r.Files) - ok,
		}
	}
	return marshalJSON(payload)
}

func (jsonFormatter) FormatTableInfo(t *core.TableInfo) (string, error) {
	return marshalJSON(tablePayload{Format: string(FormatJSON), Table: t})
}

func marshalJSON[T Payload](payload T) (string, error) {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
