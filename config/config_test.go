package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greg-hacke/exifsheet/meta"
	"greg-hacke/exifsheet/report"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, `\.jpg`, cfg.Pattern)
	assert.Equal(t, []string{"ImageWidth", "Make", "Model", "GPSInfo"}, cfg.Tags)
	assert.Equal(t, "exif-report.xlsx", cfg.OutputPath)
	assert.Equal(t, report.MissingFill, cfg.MissingPolicy())
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exifsheet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root_dir: /photos
tags: [Make, Model]
exclude: ["**/thumbs"]
xmp_fields:
  - name: Keywords
    path: dc:subject
publish:
  s3:
    endpoint: localhost:9000
    bucket: reports
`), 0o644))

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "/photos", cfg.RootDir)
	assert.Equal(t, []string{"Make", "Model"}, cfg.Tags)
	assert.Equal(t, `\.jpg`, cfg.Pattern, "unset keys keep defaults")
	assert.True(t, cfg.SubIFDs)
	assert.Equal(t, "reports", cfg.Publish.S3.Bucket)
	assert.Equal(t, []string{"Make", "Model", "Keywords"}, cfg.AllowList())

	opts := cfg.ReaderOptions()
	assert.True(t, opts.XMP)
	assert.Equal(t, []meta.XMPField{{Name: "Keywords", Path: []string{"dc:subject"}}}, opts.XMPFields)
}

func TestLoadFileErrors(t *testing.T) {
	cfg := Default()
	err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tags: [unterminated"), 0o644))
	assert.True(t, errors.Is(LoadFile(bad, &cfg), ErrInvalid))
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"EXIFSHEET_ROOT_DIR":    "/mnt/photos",
		"EXIFSHEET_TAGS":        "Make, Model,,",
		"EXIFSHEET_SUB_IFDS":    "false",
		"EXIFSHEET_ON_ERROR":    "skip",
		"EXIFSHEET_S3_USE_SSL":  "true",
		"EXIFSHEET_GCS_BUCKET":  "gcs-reports",
		"EXIFSHEET_OUTPUT_PATH": "  ",
		"UNRELATED_ROOT_DIR":    "/nope",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := Default()
	require.NoError(t, ApplyEnv(&cfg, lookup))
	assert.Equal(t, "/mnt/photos", cfg.RootDir)
	assert.Equal(t, []string{"Make", "Model"}, cfg.Tags)
	assert.False(t, cfg.SubIFDs)
	assert.Equal(t, OnErrorSkip, cfg.OnError)
	assert.True(t, cfg.Publish.S3.UseSSL)
	assert.Equal(t, "gcs-reports", cfg.Publish.GCS.Bucket)
	assert.Equal(t, "exif-report.xlsx", cfg.OutputPath, "blank values are ignored")

	env["EXIFSHEET_XMP"] = "maybe"
	assert.True(t, errors.Is(ApplyEnv(&cfg, lookup), ErrInvalid))
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"pattern":      func(c *Config) { c.Pattern = "(" },
		"tags":         func(c *Config) { c.Tags = nil },
		"output":       func(c *Config) { c.OutputPath = "" },
		"decoder":      func(c *Config) { c.Decoder = "exiftool" },
		"on_error":     func(c *Config) { c.OnError = "retry" },
		"missing_tags": func(c *Config) { c.MissingTags = "drop" },
		"log_format":   func(c *Config) { c.LogFormat = "xml" },
		"xmp_fields":   func(c *Config) { c.XMPFields = []XMPField{{Name: "Keywords"}} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
		})
	}
}

func TestRegexp(t *testing.T) {
	cfg := Default()
	re, err := cfg.Regexp()
	require.NoError(t, err)
	assert.True(t, re.MatchString("holiday.jpg.bak"))
	assert.False(t, re.MatchString("holiday.png"))

	cfg.Pattern = "["
	_, err = cfg.Regexp()
	assert.True(t, errors.Is(err, ErrInvalid))
}
