// Package schemas embeds the JSON Schemas for the files the CLI reads.
package schemas

import "embed"

// Schema file names.
const (
	RawQuestions = "raw_questions.schema.json"
	Profile      = "profile.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Read returns the content of an embedded schema.
func Read(name string) ([]byte, error) {
	return files.ReadFile(name)
}

// Names lists every embedded schema.
func Names() []string {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}
