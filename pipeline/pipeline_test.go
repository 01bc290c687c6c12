package pipeline

import (
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"greg-hacke/exifsheet/config"
	"greg-hacke/exifsheet/imagetest"
	"greg-hacke/exifsheet/meta"
	"greg-hacke/exifsheet/publish"
	"greg-hacke/exifsheet/report"
	"greg-hacke/exifsheet/tags"
)

func testConfig(root string) config.Config {
	cfg := config.Default()
	cfg.RootDir = root
	cfg.OutputPath = filepath.Join(root, "out", "report.xlsx")
	return cfg
}

func makeOnly(maker string) []byte {
	return imagetest.JPEG(imagetest.TIFF(binary.BigEndian, imagetest.Dir{Fields: []imagetest.Field{
		imagetest.ASCII(0x010F, maker),
	}}), nil)
}

func link(path string) string { return report.Hyperlink(path) }

func TestRunAcmeScenario(t *testing.T) {
	root := t.TempDir()
	a := imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	b := imagetest.WriteFile(t, root, "sub/b.jpg", imagetest.CameraJPEG("Acme", "X2"))
	imagetest.WriteFile(t, root, "c.png", imagetest.PNG(nil, nil))

	cfg := testConfig(root)
	res, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 2, res.Rows)
	assert.Empty(t, res.Skipped)
	assert.Positive(t, res.Bytes)

	rows, err := report.Read(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Filepath", "Make", "Model"},
		{link(a), "Acme", "X1"},
		{link(b), "Acme", "X2"},
	}, rows)
}

func TestRunNoMatchesWritesNothing(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "c.png", imagetest.PNG(nil, nil))

	cfg := testConfig(root)
	res, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	assert.True(t, errors.Is(err, ErrNoMatches))
	require.NotNil(t, res)
	assert.Zero(t, res.Matched)

	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingTag(t *testing.T) {
	root := t.TempDir()
	a := imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	b := imagetest.WriteFile(t, root, "b.jpg", makeOnly("Acme"))

	cfg := testConfig(root)
	cfg.OutputPath = filepath.Join(root, "report.csv")
	_, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	rows, err := report.Read(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Filepath", "Make", "Model"},
		{link(a), "Acme", "X1"},
		{link(b), "Acme", ""},
	}, rows)

	cfg.MissingTags = string(report.MissingError)
	cfg.OutputPath = filepath.Join(root, "strict.csv")
	_, err = Run(context.Background(), cfg, zaptest.NewLogger(t))
	var mt *report.MissingTagError
	require.True(t, errors.As(err, &mt))
	assert.Equal(t, b, mt.Path)
	assert.Equal(t, "Model", mt.Tag)
	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunErrorPolicy(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	bad := imagetest.WriteFile(t, root, "b.jpg", imagetest.CameraJPEG("Acme", "X2")[:30])

	cfg := testConfig(root)
	_, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	assert.True(t, errors.Is(err, meta.ErrCorruptFile), "got %v", err)
	_, statErr := os.Stat(cfg.OutputPath)
	assert.True(t, os.IsNotExist(statErr), "abort must not leave a report behind")

	core, logs := observer.New(zapcore.WarnLevel)
	cfg.OnError = config.OnErrorSkip
	res, err := Run(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Matched)
	assert.Equal(t, 1, res.Rows)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, bad, res.Skipped[0].Path)
	assert.True(t, errors.Is(res.Skipped[0].Err, meta.ErrCorruptFile))

	warned := logs.FilterMessage("skipping file").All()
	require.Len(t, warned, 1)
	assert.Equal(t, bad, warned[0].ContextMap()["path"])
}

func TestRunXMPFields(t *testing.T) {
	root := t.TempDir()
	xmp := imagetest.XMPPacket(`xmp:Rating="5"`, "")
	a := imagetest.WriteFile(t, root, "a.jpg", imagetest.JPEG(imagetest.TIFF(binary.LittleEndian, imagetest.Dir{
		Fields: []imagetest.Field{imagetest.ASCII(0x010F, "Acme")},
	}), xmp))

	cfg := testConfig(root)
	cfg.Tags = []string{"Make"}
	cfg.XMPFields = []config.XMPField{{Name: "Rating", Path: "xmp:Rating"}}
	_, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	rows, err := report.Read(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Filepath", "Make", "Rating"},
		{link(a), "Acme", "5"},
	}, rows)
}

type fakePublisher struct {
	published string
	closed    bool
}

func (f *fakePublisher) Close() error {
	f.closed = true
	return nil
}

func (f *fakePublisher) Publish(_ context.Context, localPath string) (string, error) {
	f.published = localPath
	return "s3://reports/" + filepath.Base(localPath), nil
}

func TestRunPublishes(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))

	cfg := testConfig(root)
	pub := &fakePublisher{}
	res, err := run(context.Background(), cfg, zaptest.NewLogger(t), pub)
	require.NoError(t, err)
	assert.Equal(t, cfg.OutputPath, pub.published)
	assert.Equal(t, "s3://reports/report.xlsx", res.Published)
}

func TestRunClosesPublisher(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))

	pub := &fakePublisher{}
	orig := newPublisher
	newPublisher = func(context.Context, publish.Config) (publish.Publisher, error) { return pub, nil }
	t.Cleanup(func() { newPublisher = orig })

	cfg := testConfig(root)
	cfg.Publish.S3.Bucket = "reports"
	res, err := Run(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "s3://reports/report.xlsx", res.Published)
	assert.True(t, pub.closed)

	// a failed run still releases the client
	pub = &fakePublisher{}
	cfg.Pattern = `\.png$`
	_, err = Run(context.Background(), cfg, zaptest.NewLogger(t))
	assert.True(t, errors.Is(err, ErrNoMatches))
	assert.True(t, pub.closed)
}

func TestUnknownTagsAreReported(t *testing.T) {
	assert.Equal(t, []string{"Mkae"}, unknownTags(tags.Default(), []string{"Make", "Mkae", "GPSLatitude", "48879"}))

	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	cfg := testConfig(root)
	cfg.Tags = []string{"Make", "Modle"}

	core, logs := observer.New(zapcore.WarnLevel)
	_, err := Run(context.Background(), cfg, zap.New(core))
	require.NoError(t, err)
	warned := logs.FilterField(zap.String("tag", "Modle")).All()
	require.Len(t, warned, 1)
}

func TestRunHonorsCancellation(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(root), nil)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Pattern = "("
	_, err := Run(context.Background(), cfg, nil)
	assert.True(t, errors.Is(err, config.ErrInvalid))
}

func TestScheduleRunsUntilCancelled(t *testing.T) {
	root := t.TempDir()
	imagetest.WriteFile(t, root, "a.jpg", imagetest.CameraJPEG("Acme", "X1"))
	cfg := testConfig(root)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Schedule(ctx, "@every 1s", cfg, zaptest.NewLogger(t)) }()

	require.Eventually(t, func() bool {
		_, err := os.Stat(cfg.OutputPath)
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("schedule did not stop")
	}
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	err := Schedule(context.Background(), "every tuesday", testConfig(t.TempDir()), nil)
	assert.ErrorContains(t, err, "cron spec")
}
