package main

import "encoding/json"

// Envelope is the top-level JSON document printed by the scan subcommand.
type Envelope struct {
	Errors            []string           `json:"errors"`
	FilesScanned      []string           `json:"files_scanned"`
	DetectorResponses []DetectorResponse `json:"detector_responses"`
}

// DetectorResponse wraps one detector's findings under its id, matching
// `{ "<detector-id>": { "finding": {...} }, "errors": null }`.
type DetectorResponse struct {
	Result map[string]DetectorResult
	Errors []string
}

// MarshalJSON flattens Result's single entry alongside errors, since the
// detector id is itself a dynamic object key in the wire format.
func (d DetectorResponse) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Result)+1)
	for id, result := range d.Result {
		out[id] = result
	}
	out["errors"] = d.Errors
	return json.Marshal(out)
}

// DetectorResult is the `finding` object nested under a detector's id.
type DetectorResult struct {
	Finding FindingList `json:"finding"`
}

// FindingList wraps the instances array.
type FindingList struct {
	Instances []Instance `json:"instances"`
}

// Instance is a single reported occurrence in the wire format: field
// names follow the CLI envelope, not the in-process Finding type.
type Instance struct {
	FilePath       string            `json:"file_path"`
	OffsetStart    uint32            `json:"offset_start"`
	OffsetEnd      uint32            `json:"offset_end"`
	SuggestedFixes []string          `json:"suggested_fixes"`
	Extras         map[string]string `json:"extras"`
}
