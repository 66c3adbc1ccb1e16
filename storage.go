package pipeline

import (
	"log/slog"
	"sync"
	"sync/atomic"
)

// Pipeline is one built graphics pipeline: the backend object plus the
// interface it was created against.
type Pipeline struct {
	// Handle is the backend pipeline object.
	Handle PipelineHandle

	// Interface is the pipeline's resource binding and vertex layout.
	Interface PipelineInterface
}

// PipelineMetadata records what a pipeline was built from.
type PipelineMetadata struct {
	// Data is the create info the pipeline was built with.
	Data *PipelineCreateInfo
}

// PipelineStorage builds pipelines and caches them by name.
//
// Build and Lookup may be called from different goroutines: the two cache
// maps are guarded by one RWMutex held only across map access, never
// across reflection or device work, so concurrent builds do not serialize
// on each other's expensive stages. Builds for the same name race on who
// stores last; engines load pipeline packs serially so this does not
// arise in practice.
type PipelineStorage struct {
	device   Device
	registry RenderpassRegistry

	// mu guards the two cache maps.
	mu        sync.RWMutex
	pipelines map[string]Pipeline
	metadata  map[string]PipelineMetadata

	// hits counts Lookup hits (atomic for lock-free reads).
	hits uint64

	// misses counts Lookup misses (atomic for lock-free reads).
	misses uint64
}

// NewPipelineStorage creates an empty storage building through the given
// device and resolving render passes through the given registry. Both
// dependencies are required.
func NewPipelineStorage(device Device, registry RenderpassRegistry) (*PipelineStorage, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if registry == nil {
		return nil, ErrNilRegistry
	}
	return &PipelineStorage{
		device:    device,
		registry:  registry,
		pipelines: make(map[string]Pipeline),
		metadata:  make(map[string]PipelineMetadata),
	}, nil
}

// Lookup returns the cached pipeline for an exact name match. It has no
// side effects beyond hit/miss accounting.
func (s *PipelineStorage) Lookup(name string) (Pipeline, bool) {
	s.mu.RLock()
	p, ok := s.pipelines[name]
	s.mu.RUnlock()

	if ok {
		atomic.AddUint64(&s.hits, 1)
	} else {
		atomic.AddUint64(&s.misses, 1)
	}
	return p, ok
}

// Metadata returns the create info a cached pipeline was built from.
func (s *PipelineStorage) Metadata(name string) (PipelineMetadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.metadata[name]
	return m, ok
}

// Len returns the number of cached pipelines.
func (s *PipelineStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pipelines)
}

// Stats returns the Lookup hit and miss counts.
func (s *PipelineStorage) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&s.hits), atomic.LoadUint64(&s.misses)
}

// Build constructs the pipeline described by info and caches it under
// info.Name, overwriting any previous pipeline with that name.
//
// The build proceeds in three steps, each terminal on failure: resolve the
// target render pass's metadata, construct the pipeline interface from
// cross-stage reflection, and allocate the backend pipeline object. Build
// reports success; failures are fully explained on the log channel with
// the pipeline's name attached. The caller decides whether a failed build
// is retried, skipped, or fatal.
func (s *PipelineStorage) Build(info *PipelineCreateInfo) bool {
	if err := info.validate(); err != nil {
		Logger().Error("rejecting pipeline build", slog.Any("error", err))
		return false
	}

	meta, ok := s.registry.RenderpassMetadata(info.Pass)
	if !ok {
		Logger().Error("pipeline targets a renderpass with no registered metadata",
			slog.String("pipeline", info.Name),
			slog.String("renderpass", info.Pass))
		return false
	}

	iface, err := s.createPipelineInterface(info, meta.ColorAttachments, meta.DepthAttachment)
	if err != nil {
		Logger().Error("pipeline has an invalid interface",
			slog.String("pipeline", info.Name),
			slog.Any("error", err))
		return false
	}

	handle, err := s.device.CreatePipeline(iface, info)
	if err != nil {
		Logger().Error("could not create pipeline",
			slog.String("pipeline", info.Name),
			slog.Any("error", err))
		return false
	}

	s.mu.Lock()
	s.pipelines[info.Name] = Pipeline{Handle: handle, Interface: iface}
	s.metadata[info.Name] = PipelineMetadata{Data: info}
	s.mu.Unlock()

	return true
}
