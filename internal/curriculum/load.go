package curriculum

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the data format version this build reads. Files with
// a different major version are rejected.
const SupportedVersion = "v1.0.0"

// ErrUnsupportedVersion is returned for data files from another major version.
var ErrUnsupportedVersion = errors.New("unsupported data version")

// LoadFile reads a dataset from a YAML file, or from every YAML file in a
// directory (merged in lexical file order).
func LoadFile(p string) (Dataset, error) {
	info, err := os.Stat(p)
	if err != nil {
		return Dataset{}, fmt.Errorf("stat dataset: %w", err)
	}
	if info.IsDir() {
		return loadFS(os.DirFS(p), ".")
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := decode(b)
	if err != nil {
		return Dataset{}, fmt.Errorf("%s: %w", filepath.Base(p), err)
	}
	return ds, nil
}

// decode parses one data file and checks its version.
func decode(b []byte) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return Dataset{}, fmt.Errorf("empty data file")
		}
		return Dataset{}, fmt.Errorf("decode yaml: %w", err)
	}
	if err := checkVersion(ds.Version); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrUnsupportedVersion)
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(SupportedVersion) {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, v, semver.Major(SupportedVersion))
	}
	return nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
