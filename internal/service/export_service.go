package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-records/internal/models"
	appErrors "github.com/noah-isme/campus-records/pkg/errors"
	"github.com/noah-isme/campus-records/pkg/export"
	"github.com/noah-isme/campus-records/pkg/jobs"
)

var transcriptHeaders = []string{"course_code", "course_name", "term", "credits", "grade", "points"}

type transcriptBuilder interface {
	Build(ctx context.Context, studentID string) (*models.Transcript, error)
}

type fileStore interface {
	Save(filename string, data []byte) (string, error)
}

// ExportDocument is a rendered transcript ready to be served or written.
type ExportDocument struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SavedExport is the outcome of one transcript in a batch export.
type SavedExport struct {
	StudentID string `json:"student_id"`
	Path      string `json:"path,omitempty"`
	Error     string `json:"error,omitempty"`
}

// ExportService renders transcripts as CSV or PDF documents.
type ExportService struct {
	transcripts transcriptBuilder
	renderers   map[export.Format]export.Renderer
	files       fileStore
	batch       *jobs.Pool
	logger      *zap.Logger
}

// NewExportService constructs ExportService. files may be nil when documents
// are only streamed, never saved. workers bounds batch exports.
func NewExportService(transcripts transcriptBuilder, csvExporter *export.CSVExporter, pdfExporter *export.PDFExporter, files fileStore, workers int, logger *zap.Logger) *ExportService {
	if csvExporter == nil {
		csvExporter = export.NewCSVExporter()
	}
	if pdfExporter == nil {
		pdfExporter = export.NewPDFExporter()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ExportService{
		transcripts: transcripts,
		renderers: map[export.Format]export.Renderer{
			export.FormatCSV: csvExporter,
			export.FormatPDF: pdfExporter,
		},
		files:  files,
		logger: logger,
	}
	svc.batch = jobs.NewPool("transcript-export", svc.handleExportJob, jobs.PoolConfig{
		Workers:    workers,
		MaxRetries: 2,
		RetryDelay: 50 * time.Millisecond,
		Retryable:  isServerFault,
		Logger:     logger,
	})
	return svc
}

// Transcript renders the student's transcript in the requested format.
func (s *ExportService) Transcript(ctx context.Context, studentID string, format export.Format) (*ExportDocument, error) {
	format = export.Format(strings.ToLower(string(format)))
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	transcript, err := s.transcripts.Build(ctx, studentID)
	if err != nil {
		return nil, err
	}
	data, err := renderer.Render(transcriptDataset(transcript))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render transcript")
	}
	return &ExportDocument{
		Filename:    transcriptFilename(studentID, format),
		ContentType: renderer.ContentType(),
		Data:        data,
	}, nil
}

// SaveTranscript renders the transcript and writes it to the export directory,
// returning the written path.
func (s *ExportService) SaveTranscript(ctx context.Context, studentID string, format export.Format) (string, error) {
	if s.files == nil {
		return "", appErrors.Clone(appErrors.ErrInternal, "export storage not configured")
	}
	doc, err := s.Transcript(ctx, studentID, format)
	if err != nil {
		return "", err
	}
	path, err := s.files.Save(doc.Filename, doc.Data)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save transcript")
	}
	s.logger.Info("transcript exported", zap.String("student_id", studentID), zap.String("path", path))
	return path, nil
}

// SaveTranscripts writes one transcript file per student concurrently and
// reports each outcome in the order of studentIDs. Failures of individual
// students do not stop the batch.
func (s *ExportService) SaveTranscripts(ctx context.Context, studentIDs []string, format export.Format) ([]SavedExport, error) {
	format = export.Format(strings.ToLower(string(format)))
	if _, ok := s.renderers[format]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	batch := make([]jobs.Job, 0, len(studentIDs))
	for _, id := range studentIDs {
		batch = append(batch, jobs.Job{ID: id, Type: string(format), Payload: format})
	}

	results := s.batch.Run(ctx, batch)
	saved := make([]SavedExport, 0, len(results))
	for _, res := range results {
		out := SavedExport{StudentID: res.Job.ID}
		if res.Err != nil {
			out.Error = appErrors.FromError(res.Err).Message
		} else {
			out.Path, _ = res.Value.(string)
		}
		saved = append(saved, out)
	}
	return saved, nil
}

func (s *ExportService) handleExportJob(ctx context.Context, job jobs.Job) (interface{}, error) {
	format, _ := job.Payload.(export.Format)
	return s.SaveTranscript(ctx, job.ID, format)
}

// transcriptFilename keeps the file directly under the export directory
// whatever separators the student ID contains.
func transcriptFilename(studentID string, format export.Format) string {
	safe := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, studentID)
	return fmt.Sprintf("transcript_%s.%s", safe, format)
}

func isServerFault(err error) bool {
	return appErrors.FromError(err).Status >= 500
}

func transcriptDataset(t *models.Transcript) export.Dataset {
	rows := make([]map[string]string, 0, len(t.Lines))
	for _, line := range t.Lines {
		rows = append(rows, map[string]string{
			"course_code": line.CourseCode,
			"course_name": line.CourseName,
			"term":        line.Term.DisplayName(),
			"credits":     strconv.Itoa(line.Credits),
			"grade":       line.Grade.DisplayName(),
			"points":      strconv.FormatFloat(line.Points, 'f', 1, 64),
		})
	}
	return export.Dataset{
		Title:   fmt.Sprintf("Transcript - %s (%s)", t.Student.FullName, t.Student.ID),
		Headers: transcriptHeaders,
		Rows:    rows,
		Footer: []export.FooterLine{
			{Label: "Total Credits", Value: strconv.Itoa(t.TotalCredits)},
			{Label: "GPA", Value: strconv.FormatFloat(t.GPA, 'f', 2, 64)},
		},
	}
}
