package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"pipedrive-webhook/pkg/clients/pipedrive"
	"pipedrive-webhook/pkg/config"
	"pipedrive-webhook/pkg/mapper"
	"pipedrive-webhook/pkg/metrics"
	"pipedrive-webhook/pkg/models"
	"pipedrive-webhook/pkg/utils"
)

// Step names a stage of the ingestion pipeline
type Step string

const (
	StepValidate     Step = "validate"
	StepCreatePerson Step = "create_person"
	StepCreateLead   Step = "create_lead"
	StepAttachNote   Step = "attach_note"
)

// noteTimeLayout renders the submission time the way an en-AU locale would
const noteTimeLayout = "02/01/2006, 3:04:05 pm"

// StepError is returned when a pipeline step fails. LeadID is set when the
// lead already exists in Pipedrive; it is not rolled back.
type StepError struct {
	Step   Step
	LeadID models.EntityID
	Err    error
}

func (e *StepError) Error() string {
	return e.Err.Error()
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Result is what a successful ingestion produced
type Result struct {
	Variant  mapper.Variant
	Contact  models.Contact
	PersonID models.EntityID
	LeadID   models.EntityID
	NoteID   models.EntityID
}

// LeadIngestionService relays one form submission into Pipedrive
type LeadIngestionService interface {
	Ingest(ctx context.Context, sub models.Submission) (Result, error)
}

type leadIngestionServiceImpl struct {
	client   pipedrive.Client
	config   *config.Config
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

type Option func(*leadIngestionServiceImpl)

// WithClock replaces time.Now for the note's submission time
func WithClock(now func() time.Time) Option {
	return func(s *leadIngestionServiceImpl) {
		s.now = now
	}
}

// NewLeadIngestionService creates the ingestion workflow. An unknown
// NoteTimezone falls back to UTC.
func NewLeadIngestionService(
	client pipedrive.Client,
	cfg *config.Config,
	logger *zap.Logger,
	opts ...Option,
) LeadIngestionService {
	location, err := time.LoadLocation(cfg.NoteTimezone)
	if err != nil {
		logger.Warn("Unknown note timezone, using UTC",
			zap.String("timezone", cfg.NoteTimezone),
			zap.Error(err))
		location = time.UTC
	}

	s := &leadIngestionServiceImpl{
		client:   client,
		config:   cfg,
		logger:   logger,
		location: location,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest runs validate, create person, create lead and attach note in order.
// Each step only runs once the previous one has returned its id.
func (s *leadIngestionServiceImpl) Ingest(ctx context.Context, sub models.Submission) (Result, error) {
	variant, contact := mapper.Map(sub)
	result := Result{Variant: variant, Contact: contact}

	logger := s.logger.With(
		zap.String("variant", string(variant)),
		zap.String("contact", utils.Fingerprint(contact.Phone)))

	if err := mapper.Validate(contact); err != nil {
		metrics.Submissions.WithLabelValues(metrics.OutcomeInvalid).Inc()
		logger.Info("Rejected submission", zap.Error(err))
		return result, &StepError{Step: StepValidate, Err: err}
	}

	personID, err := s.createPerson(ctx, contact)
	if err != nil {
		return result, s.fail(logger, &StepError{Step: StepCreatePerson, Err: err})
	}
	result.PersonID = personID

	leadID, err := s.createLead(ctx, personID, contact)
	if err != nil {
		return result, s.fail(logger, &StepError{Step: StepCreateLead, Err: err})
	}
	result.LeadID = leadID

	noteID, err := s.attachNote(ctx, leadID, contact)
	if err != nil {
		return result, s.fail(logger, &StepError{Step: StepAttachNote, LeadID: leadID, Err: err})
	}
	result.NoteID = noteID

	metrics.Submissions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	logger.Info("Created lead in Pipedrive",
		zap.String("personID", personID.String()),
		zap.String("leadID", leadID.String()))
	return result, nil
}

func (s *leadIngestionServiceImpl) createPerson(ctx context.Context, contact models.Contact) (models.EntityID, error) {
	return s.client.CreatePerson(ctx, models.PersonRequest{
		Name:  contact.Name,
		Email: []models.ContactValue{{Value: contact.Email, Primary: true}},
		Phone: []models.ContactValue{{Value: contact.Phone, Primary: true}},
	})
}

func (s *leadIngestionServiceImpl) createLead(ctx context.Context, personID models.EntityID, contact models.Contact) (models.EntityID, error) {
	return s.client.CreateLead(ctx, models.LeadRequest{
		Title:    LeadTitle(s.config.LeadTitlePrefix, contact.Name),
		PersonID: personID,
		Value: models.LeadValue{
			Amount:   0,
			Currency: s.config.LeadCurrency,
		},
		Status: "open",
		Label:  s.config.LeadLabel,
	})
}

func (s *leadIngestionServiceImpl) attachNote(ctx context.Context, leadID models.EntityID, contact models.Contact) (models.EntityID, error) {
	content := NoteContent(s.config.LeadTitlePrefix, s.config.NoteSource, contact, s.now().In(s.location))
	return s.client.CreateNote(ctx, models.NoteRequest{
		Content: content,
		LeadID:  leadID,
	})
}

func (s *leadIngestionServiceImpl) fail(logger *zap.Logger, err *StepError) error {
	metrics.Submissions.WithLabelValues(metrics.OutcomeFailed).Inc()

	fields := []zap.Field{zap.String("step", string(err.Step)), zap.Error(err.Err)}
	if err.LeadID != "" {
		// The lead stays in Pipedrive without its note.
		fields = append(fields, zap.String("leadID", err.LeadID.String()))
	}
	logger.Error("Error processing webhook", fields...)
	return err
}

// LeadTitle builds "<prefix> - <name>", using "Unknown" for a blank name.
func LeadTitle(prefix, name string) string {
	if strings.TrimSpace(name) == "" {
		name = "Unknown"
	}
	return fmt.Sprintf("%s - %s", prefix, name)
}

// NoteContent renders the note attached to every lead.
func NoteContent(prefix, source string, contact models.Contact, submitted time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Details:\n", prefix)
	b.WriteString("--------------------------\n")
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	fmt.Fprintf(&b, "Email: %s\n", contact.Email)
	fmt.Fprintf(&b, "Contact Number: %s\n", contact.Phone)
	fmt.Fprintf(&b, "Preferred Call Time: %s\n", contact.PreferredContactTime)
	b.WriteString("\n")
	fmt.Fprintf(&b, "Source: %s\n", source)
	fmt.Fprintf(&b, "Submission Time: %s", submitted.Format(noteTimeLayout))
	return b.String()
}
