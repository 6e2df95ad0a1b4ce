package service

import (
	"context"
	"log/slog"

	"github.com/guttakrutt/guildsite/internal/domain"
	"github.com/guttakrutt/guildsite/internal/repository"
)

// RecruitmentService handles recruitment applications and their review.
type RecruitmentService struct {
	store  repository.Store
	audit  *AuditService
	logger *slog.Logger
}

// NewRecruitmentService creates a RecruitmentService.
func NewRecruitmentService(store repository.Store, audit *AuditService, logger *slog.Logger) *RecruitmentService {
	return &RecruitmentService{store: store, audit: audit, logger: logger}
}

// Submit validates and stores a public recruitment application.
func (s *RecruitmentService) Submit(ctx context.Context, a *domain.Application) (*domain.Application, error) {
	if err := domain.ValidateCharacterName(a.CharacterName); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if a.Realm == "" || a.Class == "" {
		return nil, domain.ErrValidation("realm and class are required")
	}
	if err := domain.ValidateBattleTag(a.BattleTag); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	a.Status = domain.ApplicationPending
	created, err := s.store.Applications().Create(ctx, a)
	if err != nil {
		return nil, wrapWrite("create application", err)
	}

	s.audit.Record(ctx, "application.submit", domain.LogStatusOK, created.CharacterName, nil, nil)
	return created, nil
}

// List returns applications, optionally filtered by status. Read failures
// degrade to an empty list.
func (s *RecruitmentService) List(ctx context.Context, status string) []domain.Application {
	var (
		out []domain.Application
		err error
	)
	if status == "" {
		out, err = s.store.Applications().List(ctx)
	} else {
		if verr := domain.ValidateApplicationStatus(status); verr != nil {
			return []domain.Application{}
		}
		out, err = s.store.Applications().ListByStatus(ctx, status)
	}
	if err != nil {
		s.logger.Error("list applications", "status", status, "error", err)
		return []domain.Application{}
	}
	return out
}

// Get returns a single application with its comments.
func (s *RecruitmentService) Get(ctx context.Context, id int64) (*domain.Application, []domain.ApplicationComment, error) {
	a, err := s.store.Applications().FindByID(ctx, id)
	if err != nil {
		return nil, nil, domain.ErrInternal("load application", err)
	}
	if a == nil {
		return nil, nil, domain.ErrNotFound("application", itoa(id))
	}

	comments, err := s.store.Applications().ListComments(ctx, id)
	if err != nil {
		s.logger.Error("list application comments", "application_id", id, "error", err)
		comments = []domain.ApplicationComment{}
	}
	return a, comments, nil
}

// Review moves an application to approved or rejected, recording the reviewer
// and their notes.
func (s *RecruitmentService) Review(ctx context.Context, id int64, status string, reviewerID int64, notes string) (*domain.Application, error) {
	if err := domain.ValidateApplicationStatus(status); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if status == domain.ApplicationPending {
		return nil, domain.ErrValidation("cannot review an application back to pending")
	}

	updated, err := s.store.Applications().ChangeStatus(ctx, id, status, reviewerID, notes)
	if err != nil {
		return nil, wrapWrite("change application status", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound("application", itoa(id))
	}

	s.audit.Record(ctx, "application.review", domain.LogStatusOK, status, nil, &reviewerID)
	return updated, nil
}

// Comment adds an admin comment to an application.
func (s *RecruitmentService) Comment(ctx context.Context, applicationID, adminID int64, text string) (*domain.ApplicationComment, error) {
	if text == "" {
		return nil, domain.ErrValidation("comment text is required")
	}

	a, err := s.store.Applications().FindByID(ctx, applicationID)
	if err != nil {
		return nil, domain.ErrInternal("load application", err)
	}
	if a == nil {
		return nil, domain.ErrNotFound("application", itoa(applicationID))
	}

	created, err := s.store.Applications().AddComment(ctx, &domain.ApplicationComment{
		ApplicationID: applicationID,
		AdminID:       adminID,
		Comment:       text,
	})
	if err != nil {
		return nil, wrapWrite("add application comment", err)
	}
	return created, nil
}
