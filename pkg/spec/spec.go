// Package spec defines the InstallSpec configuration that drives an
// installation run: which published Zsh distribution to fetch, how to
// validate it, and which pieces of the extracted tree to merge into the
// Git for Windows installation.
package spec

import (
	"fmt"
	"os"
	"path/filepath"
)

// Variant selects one of the published Zsh distribution flavors. The
// two flavors differ in archive format and in which safeguards the
// release pipeline bakes in.
type Variant string

const (
	// VariantZip is the zip release: size-checked download, elevation
	// requested before installing.
	VariantZip Variant = "zip"
	// VariantTarGz is the tar.gz release: no download size check, no
	// elevation, ships an extra lib tree.
	VariantTarGz Variant = "tar.gz"
)

// Fixed release URLs, one per variant.
const (
	defaultZipURL   = "https://github.com/zsh-install/zsh-dist/releases/download/v5.9/zsh-5.9-x86_64-msys2.zip"
	defaultTarGzURL = "https://github.com/zsh-install/zsh-dist/releases/download/v5.9/zsh-5.9-x86_64-msys2.tar.gz"
)

// DefaultMinSize is the smallest byte count a real distribution archive
// can plausibly have. Anything under it is almost certainly a server
// error page that arrived with a 200.
const DefaultMinSize int64 = 1 << 20

// InstallSpec describes one installation run. Optional fields are
// pointers so that an absent field and an explicit zero can be told
// apart when applying defaults.
type InstallSpec struct {
	Schema          *string  `yaml:"schema,omitempty"`
	Variant         *Variant `yaml:"variant,omitempty"`
	URL             *string  `yaml:"url,omitempty"`
	MinSize         *int64   `yaml:"min_size,omitempty"`
	Elevate         *bool    `yaml:"elevate,omitempty"`
	StripComponents *int     `yaml:"strip_components,omitempty"`
	Prefix          *string  `yaml:"prefix,omitempty"`
	Dirs            []string `yaml:"dirs,omitempty"`
	GitRoot         *string  `yaml:"git_root,omitempty"`
	WorkDir         *string  `yaml:"work_dir,omitempty"`
}

// SetDefaults fills unset fields with the variant's defaults.
func (s *InstallSpec) SetDefaults() {
	if StringValue(s.Schema) == "" {
		s.Schema = StringPtr("v1")
	}
	if s.Variant == nil || *s.Variant == "" {
		v := VariantZip
		s.Variant = &v
	}
	if StringValue(s.URL) == "" {
		switch *s.Variant {
		case VariantTarGz:
			s.URL = StringPtr(defaultTarGzURL)
		default:
			s.URL = StringPtr(defaultZipURL)
		}
	}
	if s.MinSize == nil {
		min := int64(0)
		if *s.Variant == VariantZip {
			min = DefaultMinSize
		}
		s.MinSize = &min
	}
	if s.Elevate == nil {
		elevate := *s.Variant == VariantZip
		s.Elevate = &elevate
	}
	if s.StripComponents == nil {
		strip := 0
		s.StripComponents = &strip
	}
	if StringValue(s.Prefix) == "" {
		s.Prefix = StringPtr("usr")
	}
	if len(s.Dirs) == 0 {
		s.Dirs = []string{"bin", "share"}
		if *s.Variant == VariantTarGz {
			s.Dirs = append(s.Dirs, "lib")
		}
	}
	if StringValue(s.WorkDir) == "" {
		s.WorkDir = StringPtr(filepath.Join(os.TempDir(), "zshup"))
	}
}

// Validate reports the first problem that would make the spec unusable.
func (s *InstallSpec) Validate() error {
	if s.Variant == nil {
		return fmt.Errorf("variant is required")
	}
	switch *s.Variant {
	case VariantZip, VariantTarGz:
	default:
		return fmt.Errorf("unknown variant: %s (valid variants are: %s, %s)", *s.Variant, VariantZip, VariantTarGz)
	}
	if StringValue(s.URL) == "" {
		return fmt.Errorf("url is required")
	}
	if Int64Value(s.MinSize) < 0 {
		return fmt.Errorf("min_size must not be negative")
	}
	if IntValue(s.StripComponents) < 0 {
		return fmt.Errorf("strip_components must not be negative")
	}
	if len(s.Dirs) == 0 {
		return fmt.Errorf("dirs must name at least one subdirectory to install")
	}
	if StringValue(s.WorkDir) == "" {
		return fmt.Errorf("work_dir is required")
	}
	return nil
}

// ArchivePath is the fixed local path the fetched archive is written to.
func (s *InstallSpec) ArchivePath() string {
	name := "zsh-dist.zip"
	if s.Variant != nil && *s.Variant == VariantTarGz {
		name = "zsh-dist.tar.gz"
	}
	return filepath.Join(StringValue(s.WorkDir), name)
}

// ExtractDir is the directory the archive is unpacked into. It is left
// behind after a successful install.
func (s *InstallSpec) ExtractDir() string {
	return filepath.Join(StringValue(s.WorkDir), "extracted")
}

// StringPtr returns a pointer to the given string.
func StringPtr(s string) *string { return &s }

// StringValue returns the value of a possibly nil string pointer.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// BoolValue returns the value of a possibly nil bool pointer.
func BoolValue(p *bool) bool { return p != nil && *p }

// IntValue returns the value of a possibly nil int pointer.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// Int64Value returns the value of a possibly nil int64 pointer.
func Int64Value(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
