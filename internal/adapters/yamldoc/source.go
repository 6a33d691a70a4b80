package yamldoc

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/xup/internal/domain"
	"github.com/jsamuelsen/xup/internal/platform/logging"
	"github.com/jsamuelsen/xup/internal/ports"
)

const (
	instrumentationName = "github.com/jsamuelsen/xup/yamldoc"

	// CheckerName identifies the doctrine file in readiness responses.
	CheckerName = "doctrine-file"
)

var (
	_ ports.DoctrineSource = (*FileSource)(nil)
	_ ports.HealthChecker  = (*FileSource)(nil)
)

// FileSource loads doctrines from a YAML file on every call, so edits to the
// file are picked up without a restart.
type FileSource struct {
	path   string
	tracer trace.Tracer
}

// NewFileSource creates a source reading the doctrine file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{
		path:   path,
		tracer: otel.Tracer(instrumentationName),
	}
}

// Path returns the doctrine file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load reads, decodes and parses the doctrine file.
func (s *FileSource) Load(ctx context.Context) ([]domain.Doctrine, error) {
	ctx, span := s.tracer.Start(ctx, "yamldoc.Load",
		trace.WithAttributes(attribute.String("doctrine.path", s.path)),
	)
	defer span.End()

	doctrines, err := s.load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("doctrine.count", len(doctrines)))

	return doctrines, nil
}

func (s *FileSource) load(ctx context.Context) ([]domain.Doctrine, error) {
	logger := logging.FromContext(ctx)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, domain.NewUnavailableError("doctrine file", err)
	}
	defer f.Close()

	root, info, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}

	if info.Documents > 1 {
		logger.WarnContext(ctx, "multiple documents found, reading doctrines from the first",
			slog.String("path", s.path),
			slog.Int("documents", info.Documents),
		)
	}

	doctrines, err := ParseManyDoctrines(root)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}

	logger.DebugContext(ctx, "doctrines loaded",
		slog.String("path", s.path),
		slog.Int("count", len(doctrines)),
	)

	return doctrines, nil
}

// Name implements ports.HealthChecker.
func (s *FileSource) Name() string {
	return CheckerName
}

// Check implements ports.HealthChecker by loading the file.
func (s *FileSource) Check(ctx context.Context) error {
	_, err := s.Load(ctx)
	return err
}
