package service

import (
	"context"
	"strings"

	"github.com/biztech/portal-bff-go/internal/domain"
	"github.com/biztech/portal-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var notesTracer = otel.Tracer("service/notes")

// NotesService handles the project discussion thread shared by clients and
// agents. The thread is append-only.
type NotesService struct {
	projects port.ProjectStore
	logger   *zap.Logger
}

// NewNotesService creates the notes service.
func NewNotesService(projects port.ProjectStore, logger *zap.Logger) *NotesService {
	return &NotesService{projects: projects, logger: logger}
}

// List returns a project's notes in backend order.
func (s *NotesService) List(ctx context.Context, projectID int64) ([]domain.Note, error) {
	ctx, span := notesTracer.Start(ctx, "NotesService.List")
	defer span.End()

	return s.projects.ListNotes(ctx, projectID)
}

// Add appends a note to a project's thread.
func (s *NotesService) Add(ctx context.Context, projectID int64, content string) (*domain.Note, error) {
	ctx, span := notesTracer.Start(ctx, "NotesService.Add")
	defer span.End()

	if strings.TrimSpace(content) == "" {
		return nil, &domain.ErrValidation{Field: "content", Message: "required"}
	}

	note, err := s.projects.CreateNote(ctx, projectID, content)
	if err != nil {
		s.logger.Error("failed to create note",
			zap.Int64("project_id", projectID),
			zap.Error(err),
		)
		return nil, err
	}

	return note, nil
}
