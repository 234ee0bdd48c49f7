package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/cardscan/internal/classify"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/dedupe"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/ocr"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Processor coordinates OCR, classification and the duplicate check for one
// card. Each call is synchronous and owns its inputs; the only shared state
// is the contact set behind the repository, which is read as a snapshot.
type Processor struct {
	logger     *slog.Logger
	extractor  ocr.TextExtractor
	classifier *classify.Classifier
	contacts   repository.ContactRepository
}

// Result is the outcome of processing one card image or text blob.
type Result struct {
	JobID         uuid.UUID              `json:"job_id"`
	Card          entity.Card            `json:"card"`
	OCRConfidence float32                `json:"ocr_confidence,omitempty"`
	OCRWarnings   []string               `json:"ocr_warnings,omitempty"`
	Duplicates    entity.DuplicateReport `json:"duplicates"`
}

func NewProcessor(logger *slog.Logger, extractor ocr.TextExtractor, contacts repository.ContactRepository) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		extractor:  extractor,
		classifier: classify.NewClassifier(logger),
		contacts:   contacts,
	}
}

// ProcessImage OCRs a card image, classifies the text and checks duplicates.
func (p *Processor) ProcessImage(ctx context.Context, path string) (Result, error) {
	jobID := uuid.New()

	ocrRes, err := p.extractor.Extract(ctx, path)
	if err != nil {
		p.logger.Error("pipeline.ocr.failed", "job_id", jobID, "path", path, "err", err)
		return Result{JobID: jobID}, err
	}
	p.logger.Info("pipeline.ocr.ok",
		"job_id", jobID,
		"confidence", ocrRes.Confidence,
		"bytes", len(ocrRes.Text),
	)

	res, err := p.ProcessText(ctx, ocrRes.Text)
	res.JobID = jobID
	res.OCRConfidence = ocrRes.Confidence
	res.OCRWarnings = ocrRes.Warnings
	return res, err
}

// ProcessText classifies already-recognized text and checks duplicates
// against the current stored set.
func (p *Processor) ProcessText(ctx context.Context, text string) (Result, error) {
	jobID := uuid.New()

	card, err := p.classifier.Classify(text)
	if err != nil {
		p.logger.Error("pipeline.classify.failed", "job_id", jobID, "err", err)
		return Result{JobID: jobID, Card: card}, err
	}

	contacts, err := p.contacts.ListContacts(ctx)
	if err != nil {
		return Result{JobID: jobID, Card: card}, common.WrapError(err, "duplicate check snapshot")
	}
	report := dedupe.CheckDuplicates(card, contacts)

	p.logger.Info("pipeline.classify.ok",
		"job_id", jobID,
		"has_duplicates", report.HasDuplicates,
		"duplicate_records", len(report.Duplicates),
	)
	return Result{JobID: jobID, Card: card, Duplicates: report}, nil
}

// SaveCard flattens and persists a candidate card, returning the stored row.
func (p *Processor) SaveCard(ctx context.Context, card entity.Card) (*entity.Contact, error) {
	contact := entity.FromCard(card)
	if err := p.contacts.Insert(ctx, &contact); err != nil {
		return nil, err
	}
	p.logger.Info("pipeline.save.ok", "contact_id", contact.ID)
	return &contact, nil
}
