package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type internshipApplicationUsecase struct {
	repo           domain.InternshipApplicationRepository
	internshipRepo domain.InternshipRepository
	events         domain.EventPublisher
	validate       *validator.Validate
}

func NewInternshipApplicationUsecase(
	repo domain.InternshipApplicationRepository,
	internshipRepo domain.InternshipRepository,
	events domain.EventPublisher,
	validate *validator.Validate,
) domain.InternshipApplicationUsecase {
	return &internshipApplicationUsecase{
		repo:           repo,
		internshipRepo: internshipRepo,
		events:         events,
		validate:       validate,
	}
}

func (uc *internshipApplicationUsecase) Apply(ctx context.Context, user *domain.User, req domain.InternshipApplyRequest) (*domain.InternshipApplication, error) {
	if user == nil || user.Role != domain.RoleCandidate {
		return nil, apperror.Forbidden("Only candidates can apply to internships")
	}
	if err := validation.Struct(uc.validate, &req); err != nil {
		return nil, err
	}

	in, err := uc.internshipRepo.GetByID(ctx, req.InternshipID)
	if err != nil {
		return nil, repoError(err, "Internship not found")
	}
	if in.Status != domain.InternshipStatusOpen {
		return nil, apperror.BadRequest("Internship is not open for applications")
	}

	exists, err := uc.repo.CheckExists(ctx, req.InternshipID, user.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this internship")
	}

	app := &domain.InternshipApplication{
		InternshipID:    req.InternshipID,
		CandidateID:     user.ID,
		CandidateName:   user.Name,
		CandidateEmail:  user.Email,
		CandidateSkills: req.Skills,
		Stage:           domain.StageApplied,
		University:      req.University,
		Major:           req.Major,
		Semester:        req.Semester,
		GPAValue:        pipeline.Round(*req.GPA, 2),
		CoverLetter:     optionalString(req.CoverLetter),
	}
	if app.CandidateSkills == nil {
		app.CandidateSkills = []string{}
	}
	if err := app.Validate(); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := uc.repo.Create(ctx, app); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Position = &in.Position
	app.CompanyID = &in.CompanyID

	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationCreated,
		Kind:       domain.InternshipVocabulary.Kind(),
		EntityID:   app.ID,
		ActorID:    user.ID,
		Attributes: map[string]string{"internshipId": in.ID, "companyId": in.CompanyID},
		OccurredAt: time.Now().UTC(),
	})
	return app, nil
}

func (uc *internshipApplicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.InternshipApplication, error) {
	apps, err := uc.repo.GetByCandidateID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *internshipApplicationUsecase) Withdraw(ctx context.Context, userID, applicationID string) error {
	app, err := uc.repo.GetByID(ctx, applicationID)
	if err != nil {
		return repoError(err, "Application not found")
	}
	if app.CandidateID != userID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}
	if domain.InternshipVocabulary.IsFinal(app.Stage) {
		return apperror.BadRequest("Application can no longer be withdrawn")
	}

	if err := uc.repo.Delete(ctx, applicationID); err != nil {
		return repoError(err, "Application not found")
	}

	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationWithdrawn,
		Kind:       domain.InternshipVocabulary.Kind(),
		EntityID:   applicationID,
		ActorID:    userID,
		Attributes: map[string]string{"internshipId": app.InternshipID},
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (uc *internshipApplicationUsecase) ListForCompany(ctx context.Context, companyID string, filter domain.ApplicationFilter) ([]domain.InternshipApplication, error) {
	if filter.Stage != "" {
		stage, err := domain.InternshipVocabulary.Parse(string(filter.Stage))
		if err != nil {
			return nil, apperror.BadRequest(err.Error())
		}
		filter.Stage = stage
	}
	if filter.MinGPA != nil && (*filter.MinGPA < 0 || *filter.MinGPA > 4) {
		return nil, apperror.BadRequest("minGpa must be between 0 and 4")
	}

	apps, err := uc.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pipeline.Filter(apps, filter), nil
}

// internshipStageInput tags a requested stage with the internship pipeline vocabulary.
type internshipStageInput struct {
	Stage domain.Stage `validate:"required,internship_stage"`
}

func (uc *internshipApplicationUsecase) UpdateStatus(ctx context.Context, companyID, applicationID string, change domain.StatusChange) (*domain.InternshipApplication, error) {
	change.Stage = domain.NormalizeStage(string(change.Stage))
	if err := validation.Struct(uc.validate, &internshipStageInput{Stage: change.Stage}); err != nil {
		return nil, err
	}
	if err := validation.Struct(uc.validate, &change); err != nil {
		return nil, err
	}

	app, err := uc.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}
	if app.CompanyID == nil || *app.CompanyID != companyID {
		return nil, apperror.Forbidden("You can only manage applications to your own internships")
	}

	updated, err := uc.repo.UpdateStatus(ctx, applicationID, change)
	if err != nil {
		return nil, repoError(err, "Application not found")
	}

	logger.Log.InfoContext(ctx, "internship application status changed",
		"application_id", applicationID,
		"from", app.Stage,
		"to", updated.Stage)
	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectApplicationStatusChanged,
		Kind:       domain.InternshipVocabulary.Kind(),
		EntityID:   applicationID,
		ActorID:    companyID,
		Attributes: map[string]string{"from": string(app.Stage), "to": string(updated.Stage), "internshipId": app.InternshipID},
		OccurredAt: time.Now().UTC(),
	})
	return updated, nil
}

func (uc *internshipApplicationUsecase) CompanyStats(ctx context.Context, companyID string) (*domain.InternshipStats, error) {
	apps, err := uc.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.InternshipStats{
		Total:        len(apps),
		ByStage:      pipeline.CountByStage(domain.InternshipVocabulary, apps),
		Stages:       pipeline.StageCounts(domain.InternshipVocabulary, apps),
		AverageGPA:   pipeline.FormatGPA(pipeline.AverageGPA(apps)),
		Universities: pipeline.CountByUniversity(apps),
	}, nil
}

// Export renders the filtered applicants as an xlsx workbook
func (uc *internshipApplicationUsecase) Export(ctx context.Context, companyID string, filter domain.ApplicationFilter) ([]byte, string, error) {
	apps, err := uc.ListForCompany(ctx, companyID, filter)
	if err != nil {
		return nil, "", err
	}

	headers := []string{"NAME", "EMAIL", "POSITION", "UNIVERSITY", "MAJOR", "SEMESTER", "GPA", "SKILLS", "STATUS", "APPLIED AT"}
	rows := make([][]interface{}, 0, len(apps))
	for _, a := range apps {
		position := ""
		if a.Position != nil {
			position = *a.Position
		}
		rows = append(rows, []interface{}{
			a.CandidateName,
			a.CandidateEmail,
			position,
			a.University,
			a.Major,
			a.Semester,
			pipeline.FormatGPA(a.GPAValue),
			strings.Join(a.CandidateSkills, ", "),
			domain.InternshipVocabulary.LabelOf(a.Stage),
			a.AppliedDate.Format("2006-01-02 15:04"),
		})
	}

	data, err := writeSheet("Applicants", headers, rows)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("internship_applicants_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}
