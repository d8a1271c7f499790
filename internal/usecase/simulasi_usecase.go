package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"simhire-backend/internal/domain"
	"simhire-backend/internal/pipeline"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/logger"
	"simhire-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// maxLeaderboardEntries is both the request cap and the size of a cached board
const maxLeaderboardEntries = 100

// boardVersions counts submissions per category so a board computed before a
// submission is not left in the cache after it.
type boardVersions struct {
	mu sync.Mutex
	v  map[string]uint64
}

func (b *boardVersions) current(categoryID string) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.v[categoryID]
}

func (b *boardVersions) bump(categoryID string) {
	b.mu.Lock()
	b.v[categoryID]++
	b.mu.Unlock()
}

type simulasiUsecase struct {
	repo        domain.SimulasiRepository
	cache       domain.LeaderboardCache
	versions    *boardVersions
	events      domain.EventPublisher
	validate    *validator.Validate
	defaultSize int
	now         func() time.Time
}

func NewSimulasiUsecase(
	repo domain.SimulasiRepository,
	cache domain.LeaderboardCache,
	events domain.EventPublisher,
	validate *validator.Validate,
	defaultSize int,
) domain.SimulasiUsecase {
	if defaultSize <= 0 || defaultSize > maxLeaderboardEntries {
		defaultSize = 10
	}
	return &simulasiUsecase{
		repo:        repo,
		cache:       cache,
		versions:    &boardVersions{v: make(map[string]uint64)},
		events:      events,
		validate:    validate,
		defaultSize: defaultSize,
		now:         time.Now,
	}
}

// Submit stores an attempt. A badge and certificate are awarded from 80%.
func (uc *simulasiUsecase) Submit(ctx context.Context, user *domain.User, req domain.SubmitRequest) (*domain.SimulasiResult, error) {
	if user == nil {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	req.CategoryID = strings.ToLower(strings.TrimSpace(req.CategoryID))
	if err := validation.Struct(uc.validate, &req); err != nil {
		return nil, err
	}

	result := &domain.SimulasiResult{
		UserID:           user.ID,
		UserName:         user.Name,
		CategoryID:       req.CategoryID,
		TotalScore:       req.TotalScore,
		MaxScore:         req.MaxScore,
		Percentage:       pipeline.Percentage(req.TotalScore, req.MaxScore),
		Breakdown:        req.Breakdown,
		TimeSpentSeconds: req.TimeSpentSeconds,
		CompletedAt:      uc.now().UTC(),
	}
	if pipeline.BadgeEligible(float64(result.Percentage)) {
		badge := badgeName(result.Percentage)
		certificate := certificateID()
		result.Badge = &badge
		result.CertificateID = &certificate
	}

	if err := uc.repo.Create(ctx, result); err != nil {
		return nil, apperror.Internal(err)
	}

	// Invalidate after the write so the next read ranks the new attempt
	uc.versions.bump(result.CategoryID)
	if err := uc.cache.Invalidate(ctx, result.CategoryID); err != nil {
		logger.Log.WarnContext(ctx, "leaderboard cache not invalidated", "category_id", result.CategoryID, "error", err)
	}

	logger.Log.InfoContext(ctx, "simulasi submitted",
		"result_id", result.ID,
		"category_id", result.CategoryID,
		"percentage", result.Percentage)
	publish(ctx, uc.events, domain.Event{
		Subject:    domain.SubjectSimulasiSubmitted,
		Kind:       "simulasi",
		EntityID:   result.ID,
		ActorID:    user.ID,
		Attributes: map[string]string{"categoryId": result.CategoryID, "percentage": fmt.Sprint(result.Percentage)},
		OccurredAt: result.CompletedAt,
	})
	return result, nil
}

func badgeName(percentage int) string {
	switch letter := pipeline.RankLetter(float64(percentage)); letter {
	case "S":
		return "Elite Performer"
	case "A+", "A":
		return "Expert"
	default:
		return "Proficient"
	}
}

func certificateID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "SIM-" + raw[:12]
}

func (uc *simulasiUsecase) MyResults(ctx context.Context, userID string) ([]domain.SimulasiResult, error) {
	results, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return results, nil
}

func (uc *simulasiUsecase) GetResult(ctx context.Context, userID, id string) (*domain.SimulasiResult, error) {
	result, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, repoError(err, "Result not found")
	}
	if result.UserID != userID {
		return nil, apperror.Forbidden("You can only view your own results")
	}
	return result, nil
}

// Leaderboard returns the top limit entries of the category, best attempt per user
func (uc *simulasiUsecase) Leaderboard(ctx context.Context, categoryID string, limit int) (*domain.Leaderboard, error) {
	categoryID = strings.ToLower(strings.TrimSpace(categoryID))
	if categoryID == "" || len(categoryID) > 50 {
		return nil, apperror.BadRequest("Invalid category")
	}
	if limit <= 0 {
		limit = uc.defaultSize
	}
	if limit > maxLeaderboardEntries {
		limit = maxLeaderboardEntries
	}

	board, err := uc.board(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	out := *board
	if len(out.Entries) > limit {
		out.Entries = out.Entries[:limit]
	}
	return &out, nil
}

func (uc *simulasiUsecase) board(ctx context.Context, categoryID string) (*domain.Leaderboard, error) {
	cached, err := uc.cache.Get(ctx, categoryID)
	if err != nil {
		logger.Log.WarnContext(ctx, "leaderboard cache read failed", "category_id", categoryID, "error", err)
	}
	if cached != nil {
		return cached, nil
	}

	version := uc.versions.current(categoryID)
	results, err := uc.repo.BestByCategory(ctx, categoryID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	board := &domain.Leaderboard{
		CategoryID:        categoryID,
		Participants:      len(results),
		AveragePercentage: pipeline.AveragePercentage(results),
		Entries:           pipeline.TopN(results, maxLeaderboardEntries),
	}
	if err := uc.cache.Set(ctx, board); err != nil {
		logger.Log.WarnContext(ctx, "leaderboard cache write failed", "category_id", categoryID, "error", err)
	}
	// A submission landed while ranking; drop what was just cached.
	if uc.versions.current(categoryID) != version {
		if err := uc.cache.Invalidate(ctx, categoryID); err != nil {
			logger.Log.WarnContext(ctx, "leaderboard cache not invalidated", "category_id", categoryID, "error", err)
		}
	}
	return board, nil
}

// Leaderboards builds every category's board concurrently, in category order
func (uc *simulasiUsecase) Leaderboards(ctx context.Context, limit int) ([]domain.Leaderboard, error) {
	categories, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	boards := make([]domain.Leaderboard, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			board, err := uc.Leaderboard(gctx, category, limit)
			if err != nil {
				return err
			}
			boards[i] = *board
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return boards, nil
}

// ExportLeaderboard renders the full ranking of a category as xlsx
func (uc *simulasiUsecase) ExportLeaderboard(ctx context.Context, categoryID string) ([]byte, string, error) {
	categoryID = strings.ToLower(strings.TrimSpace(categoryID))
	if categoryID == "" {
		return nil, "", apperror.BadRequest("Invalid category")
	}

	results, err := uc.repo.BestByCategory(ctx, categoryID)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	headers := []string{"RANK", "NAME", "SCORE", "PERCENTAGE", "GRADE", "BADGE", "COMPLETED AT"}
	entries := pipeline.Rank(results)
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		badge := ""
		if e.Badge != nil {
			badge = *e.Badge
		}
		rows = append(rows, []interface{}{
			e.Rank,
			e.UserName,
			e.TotalScore,
			e.Percentage,
			e.RankLetter,
			badge,
			e.CompletedAt.Format("2006-01-02 15:04"),
		})
	}

	data, err := writeSheet("Leaderboard", headers, rows)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}
	filename := fmt.Sprintf("leaderboard_%s_%s.xlsx", categoryID, uc.now().Format("20060102_150405"))
	return data, filename, nil
}
