// Package rawstore persists raw profile captures and decodes their
// loosely-structured payloads into engine records. Keeping raw responses on
// disk means extraction logic can be rerun at any time without spending
// API credits.
package rawstore

// Capture is one raw acquisition result: the source URL, the payload
// exactly as the provider returned it (object or JSON string), and the
// per-record outcome. Failures are recorded, never thrown: a failed
// capture keeps its place in the batch with an error message attached.
type Capture struct {
	URL     string `json:"url"`
	RawData any    `json:"raw_data"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
