package detect

import (
	"embed"

	"gopkg.in/yaml.v3"
)

//go:embed metadata/*.yaml
var metadataFiles embed.FS

// loadMetadata reads and unmarshals the embedded metadata file for name
// (without its .yaml suffix). It panics on a malformed embedded file,
// since that is a packaging bug, not a runtime condition callers can
// recover from.
func loadMetadata(name string) Metadata {
	data, err := metadataFiles.ReadFile("metadata/" + name + ".yaml")
	if err != nil {
		panic(err)
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		panic(err)
	}
	return m
}
