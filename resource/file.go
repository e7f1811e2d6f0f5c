package resource

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sync"

	"github.com/NASA-AMMOS/aerie-sub004/interval"
	"github.com/sgostarter/i/l"
	"github.com/sgostarter/i/stg"
	"github.com/sgostarter/libeasygo/stg/fs/rawfs"
)

// FileFetcher reads each resource from a YAML document named after it.
type FileFetcher struct {
	logger  l.Wrapper
	storage stg.FileStorage
	dir     string
	suffix  string

	appendLock sync.Mutex
}

func NewFileFetcher(cfg *Config, logger l.Wrapper) *FileFetcher {
	return NewFileFetcherEx(cfg, rawfs.NewFSStorage(""), logger)
}

func NewFileFetcherEx(cfg *Config, storage stg.FileStorage, logger l.Wrapper) *FileFetcher {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}

	if cfg == nil {
		cfg = &Config{}
	}

	cfg.init()

	if storage == nil {
		storage = rawfs.NewFSStorage("")
	}

	return &FileFetcher{
		logger:  logger.WithFields(l.StringField(l.ClsKey, "fileFetcher")),
		storage: storage,
		dir:     cfg.Dir,
		suffix:  cfg.Suffix,
	}
}

func (impl *FileFetcher) fileName(name string) string {
	return path.Join(impl.dir, name+impl.suffix)
}

func (impl *FileFetcher) Fetch(_ context.Context, name string, bounds interval.Interval) ([]RawSegment, error) {
	segments, err := impl.load(name)
	if err != nil {
		return nil, err
	}

	return overlapping(segments, bounds), nil
}

func (impl *FileFetcher) load(name string) ([]RawSegment, error) {
	d, err := impl.storage.ReadFile(impl.fileName(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("read resource failed")

		return nil, err
	}

	segments, err := UnmarshalRawSegments(d)
	if err != nil {
		impl.logger.WithFields(l.ErrorField(err), l.StringField("name", name)).Error("parse resource failed")

		return nil, err
	}

	return segments, nil
}

// Append adds segments to the resource document, creating it if needed.
func (impl *FileFetcher) Append(_ context.Context, name string, segments ...RawSegment) error {
	impl.appendLock.Lock()
	defer impl.appendLock.Unlock()

	existing, err := impl.load(name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	return impl.Save(name, append(existing, segments...))
}

// Save writes a resource document, replacing any previous one.
func (impl *FileFetcher) Save(name string, segments []RawSegment) error {
	d, err := MarshalRawSegments(segments)
	if err != nil {
		return err
	}

	return impl.storage.WriteFile(impl.fileName(name), d)
}
