package test

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Program is one end-to-end case: a source text, the output it prints and,
// when it fails, the stage that fails and a fragment of the message.
type Program struct {
	Name   string `yaml:"name"`
	Source string `yaml:"source"`
	Output string `yaml:"output"`
	Error  string `yaml:"error"`
	Cause  string `yaml:"cause"`
}

type programsFile struct {
	Programs []Program `yaml:"programs"`
}

const (
	ErrorLex     = "lex"
	ErrorParse   = "parse"
	ErrorRuntime = "runtime"
)

func LoadPrograms(path string) ([]Program, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw programsFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("fixtures: %s: %w", path, err)
	}

	for i, p := range raw.Programs {
		switch p.Error {
		case "", ErrorLex, ErrorParse, ErrorRuntime:
		default:
			return nil, fmt.Errorf("fixtures: %s: program %d (%s): unknown error stage %q", path, i, p.Name, p.Error)
		}
	}

	return raw.Programs, nil
}
