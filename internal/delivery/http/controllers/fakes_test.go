package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"seekers/internal/delivery/http/middleware"
	"seekers/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// authedRequest returns req with the user ID set in its context, the way the
// auth middleware would in production.
func authedRequest(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.SetUserID(req.Context(), userID))
}

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token       string
	user        *domain.User
	registerErr error
	loginErr    error
	googleErr   error
	getErr      error
	updateErr   error
	lastEmail   string
}

func (f *fakeAuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.registerErr != nil {
		return "", nil, f.registerErr
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) GoogleSignIn(ctx context.Context, credential string) (string, *domain.User, error) {
	if f.googleErr != nil {
		return "", nil, f.googleErr
	}
	return f.token, f.user, nil
}

func (f *fakeAuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeAuthService) Update(ctx context.Context, user *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.user = user
	return nil
}

// fakeJobService implements domain.JobService for handler tests.
type fakeJobService struct {
	page       *domain.JobPage
	job        *domain.Job
	analysis   *domain.MatchAnalysis
	listErr    error
	getErr     error
	analyzeErr error
	lastSearch string
	lastParams domain.PaginationParams
}

func (f *fakeJobService) List(ctx context.Context, search string, params domain.PaginationParams) (*domain.JobPage, error) {
	f.lastSearch = search
	f.lastParams = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.page, nil
}

func (f *fakeJobService) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.job, nil
}

func (f *fakeJobService) AnalyzeMatch(ctx context.Context, userID, jobID string) (*domain.MatchAnalysis, error) {
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return f.analysis, nil
}

// fakeProfileService implements domain.ProfileService for handler tests.
type fakeProfileService struct {
	profile     *domain.Profile
	summary     string
	bullets     []string
	skills      []string
	headline    string
	err         error
	lastUserID  string
	lastRole    string
	lastPersist bool
}

func (f *fakeProfileService) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileService) CreateOrUpdate(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.profile = profile
	return profile, nil
}

func (f *fakeProfileService) AddExperience(ctx context.Context, userID string, exp *domain.Experience) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileService) AddEducation(ctx context.Context, userID string, edu *domain.Education) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileService) AddSkill(ctx context.Context, userID, name string, category domain.SkillCategory) (*domain.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func (f *fakeProfileService) EnhanceSummary(ctx context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.summary, nil
}

func (f *fakeProfileService) OptimizeDescription(ctx context.Context, userID, experienceID, targetRole string) ([]string, error) {
	f.lastRole = targetRole
	if f.err != nil {
		return nil, f.err
	}
	return f.bullets, nil
}

func (f *fakeProfileService) SuggestSkills(ctx context.Context, userID, targetRole string) ([]string, error) {
	f.lastRole = targetRole
	if f.err != nil {
		return nil, f.err
	}
	return f.skills, nil
}

func (f *fakeProfileService) GenerateHeadline(ctx context.Context, userID string, updateProfile bool) (string, *domain.Profile, error) {
	f.lastPersist = updateProfile
	if f.err != nil {
		return "", nil, f.err
	}
	if updateProfile {
		return f.headline, f.profile, nil
	}
	return f.headline, nil, nil
}

// fakeInterviewService implements domain.InterviewService for handler tests.
type fakeInterviewService struct {
	categories  []*domain.Category
	tiers       []*domain.Tier
	count       int
	setup       *domain.Setup
	session     *domain.InterviewSession
	record      *domain.InterviewRecord
	evaluation  *domain.InterviewEvaluation
	history     []*domain.InterviewRecord
	err         error
	lastUserID  string
	lastCfg     domain.InterviewConfig
	lastAnswers []domain.Answer
}

func (f *fakeInterviewService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, f.err
}

func (f *fakeInterviewService) ListTiers(ctx context.Context) ([]*domain.Tier, error) {
	return f.tiers, f.err
}

func (f *fakeInterviewService) QuestionCount(ctx context.Context, categoryID string, level domain.Level) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.count, nil
}

func (f *fakeInterviewService) CreateSetup(ctx context.Context, userID string) (*domain.Setup, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) GetSetup(ctx context.Context, setupID, userID string) (*domain.Setup, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) SelectCategory(ctx context.Context, setupID, userID, categoryID string) (*domain.Setup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) SelectLevel(ctx context.Context, setupID, userID string, level domain.Level) (*domain.Setup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) SelectTier(ctx context.Context, setupID, userID, tierID string) (*domain.Setup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) Confirm(ctx context.Context, setupID, userID string) (*domain.Setup, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.setup, nil
}

func (f *fakeInterviewService) Start(ctx context.Context, userID string, cfg domain.InterviewConfig) (*domain.InterviewSession, error) {
	f.lastUserID = userID
	f.lastCfg = cfg
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeInterviewService) Session(ctx context.Context, userID string) (*domain.InterviewSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.session, nil
}

func (f *fakeInterviewService) Finish(ctx context.Context, userID string, answers []domain.Answer) (*domain.InterviewRecord, error) {
	f.lastUserID = userID
	f.lastAnswers = answers
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeInterviewService) Evaluate(ctx context.Context, userID, interviewID string) (*domain.InterviewEvaluation, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.evaluation, nil
}

func (f *fakeInterviewService) History(ctx context.Context, userID string) ([]*domain.InterviewRecord, error) {
	f.lastUserID = userID
	if f.err != nil {
		return nil, f.err
	}
	return f.history, nil
}

// fakePaymentService implements domain.PaymentService for handler tests.
type fakePaymentService struct {
	packages    []domain.TokenPackage
	order       *domain.PaymentOrder
	checkoutErr error
	notifyErr   error
	lastPackage string
	lastNotif   *domain.PaymentNotification
}

func (f *fakePaymentService) Packages(ctx context.Context) []domain.TokenPackage {
	return f.packages
}

func (f *fakePaymentService) CreateCheckout(ctx context.Context, userID, packageType string) (*domain.PaymentOrder, error) {
	f.lastPackage = packageType
	if f.checkoutErr != nil {
		return nil, f.checkoutErr
	}
	return f.order, nil
}

func (f *fakePaymentService) HandleNotification(ctx context.Context, notif *domain.PaymentNotification) error {
	f.lastNotif = notif
	return f.notifyErr
}

// fakeResumeService implements domain.ResumeService for handler tests.
type fakeResumeService struct {
	parsed *domain.ParsedResume
	err    error
}

func (f *fakeResumeService) Parse(ctx context.Context, filename string, size int64, r io.ReaderAt) (*domain.ParsedResume, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.parsed, nil
}
