// Package detect defines the detector contract that analyzes a sealed
// codebase and reports findings, plus the metadata a detector carries for
// rendering human-facing reports.
package detect

import (
	"fmt"

	"github.com/OpenZeppelin/compact-security-detectors-sdk/codebase"
)

// Finding is a single reported occurrence of whatever a Detector looks
// for, anchored to a byte range in one file.
type Finding struct {
	FilePath    string            `json:"file_path" yaml:"filePath"`
	OffsetStart uint32            `json:"offset_start" yaml:"offsetStart"`
	OffsetEnd   uint32            `json:"offset_end" yaml:"offsetEnd"`
	Extras      map[string]string `json:"extras,omitempty" yaml:"extras,omitempty"`
	// Fingerprint identifies the finding's underlying source text, stable
	// across scans even after node ids shift.
	Fingerprint uint64 `json:"-" yaml:"-"`
}

// Detector inspects a sealed codebase and reports any findings. A nil
// slice with no error means nothing was found.
type Detector interface {
	Metadata() Metadata
	Check(sealed *codebase.Sealed) ([]Finding, error)
}

// Metadata describes a detector for reporting purposes: its identity,
// severity and tags, and the title/body templates used to render a
// report entry in the various singular/plural shapes a scan result can
// take.
type Metadata struct {
	UID         string   `yaml:"uid"`
	Description string   `yaml:"description"`
	Severity    string   `yaml:"severity"`
	Tags        []string `yaml:"tags,omitempty"`

	Opening                          string `yaml:"opening"`
	TitleSingleInstance              string `yaml:"titleSingleInstance"`
	TitleMultipleInstance            string `yaml:"titleMultipleInstance"`
	BodySingleFileSingleInstance     string `yaml:"bodySingleFileSingleInstance"`
	BodySingleFileMultipleInstance   string `yaml:"bodySingleFileMultipleInstance"`
	BodyMultipleFileMultipleInstance string `yaml:"bodyMultipleFileMultipleInstance"`
	BodyListItemSingleFile           string `yaml:"bodyListItemSingleFile"`
	BodyListItemMultipleFile         string `yaml:"bodyListItemMultipleFile"`
	Closing                          string `yaml:"closing"`
	Template                         string `yaml:"template"`
}

// ID returns the detector's uid, the name used on the CLI's --detectors
// flag.
func (m Metadata) ID() string { return m.UID }

// String renders the detector identity, matching how the original
// report template renders a detector by its id.
func (m Metadata) String() string {
	return fmt.Sprintf("%s (%s)", m.UID, m.Severity)
}

// Registry is an ordered collection of detectors, keyed by UID.
type Registry struct {
	order     []string
	detectors map[string]Detector
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{detectors: make(map[string]Detector)}
}

// Register adds d to the registry. Registering the same UID twice
// replaces the previous entry but keeps its original position.
func (r *Registry) Register(d Detector) {
	uid := d.Metadata().UID
	if _, exists := r.detectors[uid]; !exists {
		r.order = append(r.order, uid)
	}
	r.detectors[uid] = d
}

// All returns every registered detector, in registration order.
func (r *Registry) All() []Detector {
	out := make([]Detector, 0, len(r.order))
	for _, uid := range r.order {
		out = append(out, r.detectors[uid])
	}
	return out
}

// Select returns the detectors named, in the order named is given. An
// unknown name is skipped silently -- callers that want strictness
// should cross-check names against All first.
func (r *Registry) Select(names []string) []Detector {
	if len(names) == 0 {
		return r.All()
	}
	out := make([]Detector, 0, len(names))
	for _, name := range names {
		if d, ok := r.detectors[name]; ok {
			out = append(out, d)
		}
	}
	return out
}
