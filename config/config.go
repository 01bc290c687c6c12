// Package config loads run settings from defaults, a YAML file, the
// environment and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"greg-hacke/exifsheet/meta"
	"greg-hacke/exifsheet/publish"
	"greg-hacke/exifsheet/report"
)

// ErrInvalid is returned for settings that fail validation.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix prefixes every environment override.
const EnvPrefix = "EXIFSHEET_"

// Error policies for files that cannot be read.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// XMPField maps an XMP property path, segments separated by "/", to a
// report column name.
type XMPField struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Config holds everything a run needs.
type Config struct {
	RootDir     string     `yaml:"root_dir"`
	Pattern     string     `yaml:"pattern"`
	Tags        []string   `yaml:"tags"`
	OutputPath  string     `yaml:"output_path"`
	Exclude     []string   `yaml:"exclude"`
	XMP         bool       `yaml:"xmp"`
	XMPFields   []XMPField `yaml:"xmp_fields"`
	Decoder     string     `yaml:"decoder"`
	SubIFDs     bool       `yaml:"sub_ifds"`
	OnError     string     `yaml:"on_error"`
	MissingTags string     `yaml:"missing_tags"`
	LogLevel    string     `yaml:"log_level"`
	LogFormat   string     `yaml:"log_format"`

	Publish publish.Config `yaml:"publish"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		RootDir:     ".",
		Pattern:     `\.jpg`,
		Tags:        []string{"ImageWidth", "Make", "Model", "GPSInfo"},
		OutputPath:  "exif-report.xlsx",
		Decoder:     string(meta.DecoderBuiltin),
		SubIFDs:     true,
		OnError:     OnErrorAbort,
		MissingTags: string(report.MissingFill),
		LogLevel:    "info",
		LogFormat:   "console",
	}
}

// Load starts from Default, overlays the YAML file at path (when path is
// not empty), loads .env if present and applies EXIFSHEET_* variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := LoadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	_ = godotenv.Load()
	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from
// the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalid, path, err)
	}
	return nil
}

// ApplyEnv overlays environment variables read through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = SplitList(v)
		}
	}
	var boolErr error
	boolean := func(name string, dst *bool) {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			boolErr = errors.Join(boolErr, fmt.Errorf("%w: %s%s=%q", ErrInvalid, EnvPrefix, name, v))
			return
		}
		*dst = b
	}

	str("ROOT_DIR", &cfg.RootDir)
	str("PATTERN", &cfg.Pattern)
	list("TAGS", &cfg.Tags)
	str("OUTPUT_PATH", &cfg.OutputPath)
	list("EXCLUDE", &cfg.Exclude)
	boolean("XMP", &cfg.XMP)
	str("DECODER", &cfg.Decoder)
	boolean("SUB_IFDS", &cfg.SubIFDs)
	str("ON_ERROR", &cfg.OnError)
	str("MISSING_TAGS", &cfg.MissingTags)
	str("LOG_LEVEL", &cfg.LogLevel)
	str("LOG_FORMAT", &cfg.LogFormat)

	s3 := &cfg.Publish.S3
	str("S3_ENDPOINT", &s3.Endpoint)
	str("S3_REGION", &s3.Region)
	str("S3_ACCESS_KEY", &s3.AccessKey)
	str("S3_SECRET_KEY", &s3.SecretKey)
	str("S3_BUCKET", &s3.Bucket)
	str("S3_PREFIX", &s3.Prefix)
	boolean("S3_USE_SSL", &s3.UseSSL)

	gcs := &cfg.Publish.GCS
	str("GCS_BUCKET", &gcs.Bucket)
	str("GCS_PREFIX", &gcs.Prefix)
	str("GCS_CREDENTIALS_FILE", &gcs.CredentialsFile)

	return boolErr
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks required settings and enumerations.
func (c Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if strings.TrimSpace(c.RootDir) == "" {
		fail("root_dir is required")
	}
	if _, err := regexp.Compile(c.Pattern); err != nil {
		fail("pattern %q: %v", c.Pattern, err)
	}
	if len(c.Tags) == 0 && len(c.XMPFields) == 0 {
		fail("tags must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		fail("output_path is required")
	}
	switch meta.DecoderKind(c.Decoder) {
	case meta.DecoderBuiltin, meta.DecoderGoexif:
	default:
		fail("decoder %q: want %s or %s", c.Decoder, meta.DecoderBuiltin, meta.DecoderGoexif)
	}
	switch c.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		fail("on_error %q: want %s or %s", c.OnError, OnErrorAbort, OnErrorSkip)
	}
	if _, err := report.ParseMissingPolicy(c.MissingTags); err != nil {
		fail("missing_tags: %v", err)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		fail("log_format %q: want json or console", c.LogFormat)
	}
	for i, f := range c.XMPFields {
		if f.Name == "" || f.Path == "" {
			fail("xmp_fields[%d] needs name and path", i)
		}
	}
	return errors.Join(errs...)
}

// Regexp compiles the file name pattern.
func (c Config) Regexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %v", ErrInvalid, c.Pattern, err)
	}
	return re, nil
}

// AllowList is the set of dictionary names projected into the report:
// the EXIF tags followed by the XMP field names.
func (c Config) AllowList() []string {
	out := append([]string(nil), c.Tags...)
	for _, f := range c.XMPFields {
		out = append(out, f.Name)
	}
	return out
}

// ReaderOptions converts the extraction settings for meta.NewReader.
func (c Config) ReaderOptions() meta.Options {
	opts := meta.Options{
		Decoder: meta.DecoderKind(c.Decoder),
		SubIFDs: c.SubIFDs,
		XMP:     c.XMP || len(c.XMPFields) > 0,
	}
	for _, f := range c.XMPFields {
		opts.XMPFields = append(opts.XMPFields, meta.XMPField{
			Name: f.Name,
			Path: strings.Split(strings.Trim(f.Path, "/"), "/"),
		})
	}
	return opts
}

// MissingPolicy returns the parsed missing_tags setting.
func (c Config) MissingPolicy() report.MissingPolicy {
	p, err := report.ParseMissingPolicy(c.MissingTags)
	if err != nil {
		return report.MissingFill
	}
	return p
}
