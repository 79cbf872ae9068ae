package httpapi

import (
	"context"
	"fmt"
	"io"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/the-gaffer/internal/domain/fixture"
	"github.com/riskibarqy/the-gaffer/internal/domain/league"
	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	"github.com/riskibarqy/the-gaffer/internal/domain/solution"
	"github.com/riskibarqy/the-gaffer/internal/domain/user"
	"github.com/riskibarqy/the-gaffer/internal/platform/logging"
	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

// DefaultUploadMaxBytes caps multipart solution uploads when no limit is configured.
const DefaultUploadMaxBytes int64 = 10 << 20

var strictJSON = sonic.Config{DisallowUnknownFields: true}.Froze()

type Handler struct {
	sessionService     *usecase.SessionService
	onboardingService  *usecase.OnboardingService
	regulationsService *usecase.RegulationsService
	dashboardService   *usecase.DashboardService
	tableService       *usecase.LeagueTableService
	vaultService       *usecase.VaultService
	mediaService       *usecase.MediaService
	uploadMaxBytes     int64
	logger             *logging.Logger
	validator          *validator.Validate
}

func NewHandler(
	sessionService *usecase.SessionService,
	onboardingService *usecase.OnboardingService,
	regulationsService *usecase.RegulationsService,
	dashboardService *usecase.DashboardService,
	tableService *usecase.LeagueTableService,
	vaultService *usecase.VaultService,
	mediaService *usecase.MediaService,
	uploadMaxBytes int64,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if uploadMaxBytes <= 0 {
		uploadMaxBytes = DefaultUploadMaxBytes
	}

	return &Handler{
		sessionService:     sessionService,
		onboardingService:  onboardingService,
		regulationsService: regulationsService,
		dashboardService:   dashboardService,
		tableService:       tableService,
		vaultService:       vaultService,
		mediaService:       mediaService,
		uploadMaxBytes:     uploadMaxBytes,
		logger:             logger,
		validator:          validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, payload any) error {
	if err := strictJSON.NewDecoder(body).Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func requestWorkspace(ctx context.Context) (string, error) {
	workspace, ok := workspaceFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("%w: workspace is missing from request context", usecase.ErrInvalidInput)
	}
	return workspace, nil
}

type createLeagueRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	LeagueName string `json:"leagueName" validate:"omitempty,max=100"`
}

type joinLeagueRequest struct {
	Name       string `json:"name" validate:"required,max=100"`
	InviteCode string `json:"inviteCode" validate:"required,max=32"`
}

type acceptRegulationsRequest struct {
	Checklist []bool `json:"checklist" validate:"required,len=3"`
}

type imageEditRequest struct {
	Image  string `json:"image" validate:"required"`
	Prompt string `json:"prompt" validate:"required,max=2000"`
}

type userDTO struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email,omitempty"`
	Avatar        string  `json:"avatar,omitempty"`
	Role          string  `json:"role"`
	TotalPoints   float64 `json:"totalPoints"`
	AcceptedRules bool    `json:"acceptedRules"`
}

type leagueDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	InviteCode string   `json:"inviteCode"`
	Members    []string `json:"members"`
}

type sessionDTO struct {
	LoggedIn      bool       `json:"loggedIn"`
	RulesAccepted bool       `json:"rulesAccepted"`
	Celebrating   bool       `json:"celebrating"`
	User          *userDTO   `json:"user"`
	League        *leagueDTO `json:"league"`
	Members       []userDTO  `json:"members"`
}

type ruleDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type regulationsDTO struct {
	Rules       []ruleDTO `json:"rules"`
	Pledges     []string  `json:"pledges"`
	Punishments []string  `json:"punishments"`
}

type fixtureDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Deadline    string `json:"deadline"`
	Difficulty  int    `json:"difficulty"`
	Matchweek   int    `json:"matchweek"`
	LeagueID    string `json:"leagueId"`
	IsCommon    bool   `json:"isCommon"`
}

type fixtureCardDTO struct {
	fixtureDTO
	Status    string `json:"status"`
	Completed bool   `json:"completed"`
}

type dashboardStatsDTO struct {
	ManagerPoints float64 `json:"managerPoints"`
	LeagueName    string  `json:"leagueName"`
	InviteCode    string  `json:"inviteCode"`
}

type dashboardDTO struct {
	Fixtures    []fixtureCardDTO  `json:"fixtures"`
	Stats       dashboardStatsDTO `json:"stats"`
	Celebrating bool              `json:"celebrating"`
}

type solutionDTO struct {
	ID          string  `json:"id"`
	FixtureID   string  `json:"fixtureId"`
	UserID      string  `json:"userId"`
	UserName    string  `json:"userName"`
	SubmittedAt string  `json:"submittedAt"`
	FileName    string  `json:"fileName"`
	FileURL     string  `json:"fileUrl"`
	Points      float64 `json:"points"`
}

type submissionDTO struct {
	ID           string  `json:"id"`
	FixtureID    string  `json:"fixtureId"`
	UserID       string  `json:"userId"`
	SubmittedAt  string  `json:"submittedAt"`
	Rank         int     `json:"rank"`
	PointsEarned float64 `json:"pointsEarned"`
	Status       string  `json:"status"`
}

type submissionResultDTO struct {
	Solution   solutionDTO   `json:"solution"`
	Submission submissionDTO `json:"submission"`
	Session    sessionDTO    `json:"session"`
}

type standingDTO struct {
	Position int     `json:"position"`
	User     userDTO `json:"user"`
}

type vaultEntryDTO struct {
	Solution solutionDTO `json:"solution"`
	Fixture  fixtureDTO  `json:"fixture"`
}

type vaultDTO struct {
	Query    string          `json:"query"`
	Entries  []vaultEntryDTO `json:"entries"`
	Expiring []fixtureDTO    `json:"expiring"`
}

type imageEditJobDTO struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Prompt      string `json:"prompt"`
	SubmittedAt string `json:"submittedAt"`
	FinishedAt  string `json:"finishedAt,omitempty"`
	Image       string `json:"image,omitempty"`
	Message     string `json:"message,omitempty"`
}

func userToDTO(v user.User) userDTO {
	return userDTO{
		ID:            v.ID,
		Name:          v.Name,
		Email:         v.Email,
		Avatar:        v.Avatar,
		Role:          string(v.Role),
		TotalPoints:   v.TotalPoints,
		AcceptedRules: v.AcceptedRules,
	}
}

func leagueToDTO(v league.League) leagueDTO {
	members := v.Members
	if members == nil {
		members = []string{}
	}
	return leagueDTO{
		ID:         v.ID,
		Name:       v.Name,
		InviteCode: v.InviteCode,
		Members:    members,
	}
}

func sessionToDTO(v usecase.SessionView) sessionDTO {
	out := sessionDTO{
		LoggedIn:      v.LoggedIn(),
		RulesAccepted: v.RulesAccepted(),
		Celebrating:   v.Celebrating,
		Members:       make([]userDTO, 0, len(v.Members)),
	}
	if v.User != nil {
		u := userToDTO(*v.User)
		out.User = &u
	}
	if v.League != nil {
		l := leagueToDTO(*v.League)
		out.League = &l
	}
	for _, m := range v.Members {
		out.Members = append(out.Members, userToDTO(m))
	}
	return out
}

func regulationsToDTO(v usecase.Regulations) regulationsDTO {
	rules := make([]ruleDTO, 0, len(v.Rules))
	for _, r := range v.Rules {
		rules = append(rules, ruleDTO{Title: r.Title, Description: r.Description})
	}
	return regulationsDTO{
		Rules:       rules,
		Pledges:     v.Pledges[:],
		Punishments: v.Punishments,
	}
}

func fixtureToDTO(v fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Deadline:    formatTime(v.Deadline),
		Difficulty:  v.Difficulty,
		Matchweek:   v.Matchweek,
		LeagueID:    v.LeagueID,
		IsCommon:    v.IsCommon,
	}
}

func dashboardToDTO(v usecase.Dashboard) dashboardDTO {
	cards := make([]fixtureCardDTO, 0, len(v.Fixtures))
	for _, c := range v.Fixtures {
		cards = append(cards, fixtureCardDTO{
			fixtureDTO: fixtureToDTO(c.Fixture),
			Status:     string(c.Status),
			Completed:  c.Completed,
		})
	}
	return dashboardDTO{
		Fixtures: cards,
		Stats: dashboardStatsDTO{
			ManagerPoints: v.Stats.ManagerPoints,
			LeagueName:    v.Stats.LeagueName,
			InviteCode:    v.Stats.InviteCode,
		},
		Celebrating: v.Celebrating,
	}
}

func solutionToDTO(v solution.Solution) solutionDTO {
	return solutionDTO{
		ID:          v.ID,
		FixtureID:   v.FixtureID,
		UserID:      v.UserID,
		UserName:    v.UserName,
		SubmittedAt: formatTime(v.SubmittedAt),
		FileName:    v.FileName,
		FileURL:     "/v1/vault/solutions/" + v.ID + "/file",
		Points:      v.Points,
	}
}

func submissionResultToDTO(v usecase.SubmissionResult) submissionResultDTO {
	return submissionResultDTO{
		Solution: solutionToDTO(v.Solution),
		Submission: submissionDTO{
			ID:           v.Submission.ID,
			FixtureID:    v.Submission.FixtureID,
			UserID:       v.Submission.UserID,
			SubmittedAt:  formatTime(v.Submission.SubmittedAt),
			Rank:         v.Submission.Rank,
			PointsEarned: v.Submission.PointsEarned,
			Status:       string(v.Submission.Status),
		},
		Session: sessionToDTO(v.Session),
	}
}

func standingsToDTO(items []usecase.Standing) []standingDTO {
	out := make([]standingDTO, 0, len(items))
	for _, s := range items {
		out = append(out, standingDTO{Position: s.Position, User: userToDTO(s.User)})
	}
	return out
}

func vaultToDTO(query string, v usecase.Vault) vaultDTO {
	out := vaultDTO{
		Query:    query,
		Entries:  make([]vaultEntryDTO, 0, len(v.Entries)),
		Expiring: make([]fixtureDTO, 0, len(v.Expiring)),
	}
	for _, e := range v.Entries {
		out.Entries = append(out.Entries, vaultEntryDTO{
			Solution: solutionToDTO(e.Solution),
			Fixture:  fixtureToDTO(e.Fixture),
		})
	}
	for _, f := range v.Expiring {
		out.Expiring = append(out.Expiring, fixtureToDTO(f))
	}
	return out
}

func imageEditJobToDTO(v media.EditJob, image string) imageEditJobDTO {
	out := imageEditJobDTO{
		ID:          v.ID,
		Status:      string(v.Status),
		Prompt:      v.Prompt,
		SubmittedAt: formatTime(v.SubmittedAt),
		Image:       image,
		Message:     v.Message,
	}
	if !v.FinishedAt.IsZero() {
		out.FinishedAt = formatTime(v.FinishedAt)
	}
	return out
}

func formatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}
