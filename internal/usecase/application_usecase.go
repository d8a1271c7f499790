package usecase

import (
	"context"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	events          domain.EventPublisher
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	events domain.EventPublisher,
	validate *validator.Validate,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		jobRepo:         jobRepo,
		events:          events,
		validate:        validate,
	}
}

// Apply allows a candidate to apply once to an active job
func (uc *applicationUsecase) Apply(ctx context.Context, user *domain.User, req domain.ApplyRequest) (*domain.Application, error) {
	if user == nil || user.Role != domain.RoleCandidate {
		return nil, apperror.Forbidden("Only candidates can apply to jobs")
	}
	if err := validation.Struct(uc.validate, &req); err != nil {
		return nil, err
	}

	job, err := uc.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		return nil, repoError(err, "Job not found")
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperror.BadRequest("Cannot apply to inactive job")
	}

	exists, err := uc.applicationRepo.CheckExists(ctx, req.JobID, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		JobID:           req.JobID,
		CandidateID:     user.ID,
		CandidateName:   user.Name,
		CandidateEmail:  user.Email,
		CandidateSkills: req.Skills,
		Stage:           domain.StageApplied,
		CoverLetter:     optionalString(req.CoverLetter),
	}
	if app.CandidateSkills == nil {
		app.CandidateSkills = []string{}
	}
	if err := app.Validate(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	app.JobTitle = &job.Title
	app.CompanyID = &job.CompanyID

	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationCreated,
		Kind:       domain.JobVocabulary.Kind(),
		EntityID:   app.ID,
		ActorID:    user.ID,
		Attributes: map[string]string{"jobId": job.ID, "companyId": job.CompanyID},
		OccurredAt: time.Now().UTC(),
	})
	return app, nil
}

// GetMyApplications returns all applications for the current user
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.GetByCandidateID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Withdraw deletes the caller's own application unless it already reached a final stage
func (uc *applicationUsecase) Withdraw(ctx context.Context, userID, applicationID string) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return repoError(err, "Application not found")
	}
	if app.CandidateID != userID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}
	if domain.JobVocabulary.IsFinal(app.Stage) {
		return apperror.BadRequest("Application can no longer be withdrawn")
	}

	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		return repoError(err, "Application not found")
	}

	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationWithdrawn,
		Kind:       domain.JobVocabulary.Kind(),
		EntityID:   applicationID,
		ActorID:    userID,
		Attributes: map[string]string{"jobId": app.JobID},
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

// ListForCompany returns the applications to the company's jobs narrowed by filter
func (uc *applicationUsecase) ListForCompany(ctx context.Context, companyID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter.Stage != "" {
		stage, err := domain.JobVocabulary.Parse(string(filter.Stage))
		if err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		filter.Stage = stage
	}

	apps, err := uc.applicationRepo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pipeline.Filter(apps, filter), nil
}

// jobStageInput tags a requested stage with the job pipeline vocabulary.
type jobStageInput struct {
	Stage domain.Stage `validate:"required,job_stage"`
}

// UpdateStatus moves an application of one of the company's jobs to any stage of the job pipeline
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, companyID, applicationID string, change domain.StatusChange) (*domain.Application, error) {
	change.Stage = domain.NormalizeStage(string(change.Stage))
	if err := validation.Struct(uc.validate, &jobStageInput{Stage: change.Stage}); err != nil {
		return nil, err
	}
	if err := validation.Struct(uc.validate, &change); err != nil {
		return nil, err
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}
	if app.CompanyID == nil || *app.CompanyID != companyID {
		return nil, apperror.Forbidden("You can only manage applications to your own jobs")
	}

	updated, err := uc.applicationRepo.UpdateStatus(ctx, applicationID, change)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}

	logger.Log.InfoContext(ctx, "application status changed",
		"application_id", applicationID,
		"from", app.Stage,
		"to", updated.Stage)
	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationStatusChanged,
		Kind:       domain.JobVocabulary.Kind(),
		EntityID:   applicationID,
		ActorID:    companyID,
		Attributes: map[string]string{"from": string(app.Stage), "to": string(updated.Stage), "jobId": app.JobID},
		OccurredAt: time.Now().UTC(),
	})
	return updated, nil
}

// Stats summarizes the company's incoming applications, or the candidate's own
func (uc *applicationUsecase) Stats(ctx context.Context, user *domain.User) (*domain.ApplicationStats, error) {
	if user == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	var (
		apps []domain.Application
		err  error
	)
	if user.IsCompany() {
		apps, err = uc.applicationRepo.GetByCompanyID(ctx, user.ID)
	} else {
		apps, err = uc.applicationRepo.GetByCandidateID(ctx, user.ID)
	}
	if err != nil {
		return nil, apperror.Internal(err)
	}

	scores := make([]*float64, len(apps))
	for i := range apps {
		scores[i] = apps[i].Score
	}

	return &domain.ApplicationStats{
		Total:        len(apps),
		ByStage:      pipeline.CountByStage(domain.JobVocabulary, apps),
		Stages:       pipeline.StageCounts(domain.JobVocabulary, apps),
		AverageScore: pipeline.AverageScore(scores),
	}, nil
}
