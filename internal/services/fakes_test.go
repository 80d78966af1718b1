package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"time"

	"seekers/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserRepo implements domain.UserRepository for tests.
type fakeUserRepo struct {
	byID       map[string]*domain.User
	byEmail    map[string]*domain.User
	byGoogleID map[string]*domain.User
	getErr     error
	updateErr  error
	adjustErr  error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       make(map[string]*domain.User),
		byEmail:    make(map[string]*domain.User),
		byGoogleID: make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) add(u *domain.User) {
	f.byID[u.ID] = u
	if u.Email != "" {
		f.byEmail[u.Email] = u
	}
	if u.GoogleID != "" {
		f.byGoogleID[u.GoogleID] = u
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	u.ID = "created-1"
	f.add(u)
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	if u, ok := f.byGoogleID[googleID]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Update(ctx context.Context, u *domain.User) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	f.add(u)
	return nil
}

func (f *fakeUserRepo) AdjustTokenBalance(ctx context.Context, userID string, delta int) (int, error) {
	if f.adjustErr != nil {
		return 0, f.adjustErr
	}
	u, ok := f.byID[userID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	if u.TokenBalance+delta < 0 {
		return 0, domain.ErrInsufficientBalance
	}
	u.TokenBalance += delta
	return u.TokenBalance, nil
}

// fakePasswordHasher implements domain.PasswordHasher for tests.
type fakePasswordHasher struct {
	salt string
	hash string
}

func (f *fakePasswordHasher) GenerateSalt() (string, error) { return f.salt, nil }

func (f *fakePasswordHasher) Hash(salt, password string) (string, error) {
	if f.hash != "" {
		return f.hash, nil
	}
	return "hash-" + password, nil
}

func (f *fakePasswordHasher) Compare(hash, salt, password string) error {
	if f.hash != "" && hash != f.hash {
		return errors.New("mismatch")
	}
	return nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	token string
	err   error
}

func (f *fakeTokenIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.token != "" {
		return f.token, nil
	}
	return "token-" + userID, nil
}

// fakeGoogleVerifier implements domain.GoogleVerifier for tests.
type fakeGoogleVerifier struct {
	identity *domain.GoogleIdentity
	err      error
}

func (f *fakeGoogleVerifier) Verify(ctx context.Context, credential string) (*domain.GoogleIdentity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	welcomes []string
	receipts []string
	err      error
}

func (f *fakeEmailService) SendWelcome(ctx context.Context, data *domain.WelcomeEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.welcomes = append(f.welcomes, data.Email)
	return nil
}

func (f *fakeEmailService) SendReceipt(ctx context.Context, data *domain.ReceiptEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.receipts = append(f.receipts, data.OrderID)
	return nil
}

// fakeProfileRepo implements domain.ProfileRepository for tests.
type fakeProfileRepo struct {
	byUserID map[string]*domain.Profile
	getErr   error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byUserID: make(map[string]*domain.Profile)}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byUserID[userID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = "profile-1"
	}
	cp := *p
	f.byUserID[p.UserID] = &cp
	return nil
}

func (f *fakeProfileRepo) AddExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	p, ok := f.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Experience = append(p.Experience, *exp)
	return nil
}

func (f *fakeProfileRepo) UpdateExperience(ctx context.Context, userID string, exp *domain.Experience) error {
	p, ok := f.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	for i := range p.Experience {
		if p.Experience[i].ID == exp.ID {
			p.Experience[i] = *exp
			return nil
		}
	}
	return domain.ErrExperienceNotFound
}

func (f *fakeProfileRepo) AddEducation(ctx context.Context, userID string, edu *domain.Education) error {
	p, ok := f.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Education = append(p.Education, *edu)
	return nil
}

func (f *fakeProfileRepo) AddSkill(ctx context.Context, userID string, skill domain.Skill) error {
	p, ok := f.byUserID[userID]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Skills = append(p.Skills, skill)
	return nil
}

// fakeJobRepo implements domain.JobRepository for tests.
type fakeJobRepo struct {
	jobs    []*domain.Job
	listErr error
}

func (f *fakeJobRepo) List(ctx context.Context, search string, params domain.PaginationParams) ([]*domain.Job, int, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	total := len(f.jobs)
	start := params.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return f.jobs[start:end], total, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	for _, j := range f.jobs {
		if j.ID == id {
			return j, nil
		}
	}
	return nil, sql.ErrNoRows
}

// fakeMatchAnalyzer implements domain.MatchAnalyzer for tests.
type fakeMatchAnalyzer struct {
	analysis *domain.MatchAnalysis
	err      error
	calls    int
}

func (f *fakeMatchAnalyzer) AnalyzeMatch(ctx context.Context, job *domain.Job, profile *domain.Profile) (*domain.MatchAnalysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

// fakeCVAssistant implements domain.CVAssistant for tests.
type fakeCVAssistant struct {
	summary     string
	description []string
	suggestions []string
	headline    string
	err         error
}

func (f *fakeCVAssistant) EnhanceSummary(ctx context.Context, profile *domain.Profile) (string, error) {
	return f.summary, f.err
}

func (f *fakeCVAssistant) OptimizeDescription(ctx context.Context, exp *domain.Experience, targetRole string) ([]string, error) {
	return f.description, f.err
}

func (f *fakeCVAssistant) SuggestSkills(ctx context.Context, profile *domain.Profile, targetRole string) ([]string, error) {
	return f.suggestions, f.err
}

func (f *fakeCVAssistant) GenerateHeadline(ctx context.Context, profile *domain.Profile) (string, error) {
	return f.headline, f.err
}

// fakeCatalogRepo implements domain.CatalogRepository for tests.
type fakeCatalogRepo struct {
	categories []*domain.Category
	tiers      []*domain.Tier
	questions  []*domain.Question
	counts     map[string]int
	countErr   error
	listQErr   error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{counts: make(map[string]int)}
}

func countKey(categoryID string, level domain.Level) string {
	return categoryID + "/" + string(level)
}

func (f *fakeCatalogRepo) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return f.categories, nil
}

func (f *fakeCatalogRepo) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogRepo) ListTiers(ctx context.Context) ([]*domain.Tier, error) {
	return f.tiers, nil
}

func (f *fakeCatalogRepo) GetTier(ctx context.Context, id string) (*domain.Tier, error) {
	for _, t := range f.tiers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogRepo) CountQuestions(ctx context.Context, categoryID string, level domain.Level) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[countKey(categoryID, level)], nil
}

func (f *fakeCatalogRepo) ListQuestions(ctx context.Context, categoryID string, level domain.Level, limit int) ([]*domain.Question, error) {
	if f.listQErr != nil {
		return nil, f.listQErr
	}
	var out []*domain.Question
	for _, q := range f.questions {
		if q.CategoryID == categoryID && q.Level == level && len(out) < limit {
			out = append(out, q)
		}
	}
	return out, nil
}

// fakeSetupStore implements domain.SetupStore for tests.
type fakeSetupStore struct {
	setups     map[string]*domain.Setup
	sessions   map[string]*domain.InterviewSession
	saveErr    error
	sessionErr error
}

func newFakeSetupStore() *fakeSetupStore {
	return &fakeSetupStore{
		setups:   make(map[string]*domain.Setup),
		sessions: make(map[string]*domain.InterviewSession),
	}
}

func (f *fakeSetupStore) SaveSetup(ctx context.Context, setup *domain.Setup) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	cp := *setup
	f.setups[setup.ID] = &cp
	return nil
}

func (f *fakeSetupStore) GetSetup(ctx context.Context, id string) (*domain.Setup, error) {
	if s, ok := f.setups[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrSetupNotFound
}

func (f *fakeSetupStore) DeleteSetup(ctx context.Context, id string) error {
	delete(f.setups, id)
	return nil
}

func (f *fakeSetupStore) SaveSession(ctx context.Context, userID string, session *domain.InterviewSession) error {
	if f.sessionErr != nil {
		return f.sessionErr
	}
	cp := *session
	f.sessions[userID] = &cp
	return nil
}

func (f *fakeSetupStore) GetSession(ctx context.Context, userID string) (*domain.InterviewSession, error) {
	if s, ok := f.sessions[userID]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.ErrSetupNotFound
}

func (f *fakeSetupStore) DeleteSession(ctx context.Context, userID string) error {
	delete(f.sessions, userID)
	return nil
}

// fakeInterviewRepo implements domain.InterviewRepository for tests.
type fakeInterviewRepo struct {
	records   map[string]*domain.InterviewRecord
	createErr error
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{records: make(map[string]*domain.InterviewRecord)}
}

func (f *fakeInterviewRepo) Create(ctx context.Context, rec *domain.InterviewRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *rec
	f.records[rec.ID] = &cp
	return nil
}

func (f *fakeInterviewRepo) GetByID(ctx context.Context, id string) (*domain.InterviewRecord, error) {
	if r, ok := f.records[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, domain.ErrInterviewNotFound
}

func (f *fakeInterviewRepo) ListByUser(ctx context.Context, userID string) ([]*domain.InterviewRecord, error) {
	var out []*domain.InterviewRecord
	for _, r := range f.records {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInterviewRepo) SaveEvaluation(ctx context.Context, id string, eval *domain.InterviewEvaluation) error {
	r, ok := f.records[id]
	if !ok {
		return domain.ErrInterviewNotFound
	}
	r.Evaluated = true
	r.Evaluation = eval
	return nil
}

// fakeEvaluator implements domain.InterviewEvaluator for tests.
type fakeEvaluator struct {
	evaluation *domain.InterviewEvaluation
	err        error
	calls      int
}

func (f *fakeEvaluator) EvaluateInterview(ctx context.Context, rec *domain.InterviewRecord) (*domain.InterviewEvaluation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.evaluation
	return &cp, nil
}

// fakePaymentRepo implements domain.PaymentRepository for tests.
type fakePaymentRepo struct {
	orders map[string]*domain.PaymentOrder
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{orders: make(map[string]*domain.PaymentOrder)}
}

func (f *fakePaymentRepo) Create(ctx context.Context, o *domain.PaymentOrder) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, orderID string) (*domain.PaymentOrder, error) {
	if o, ok := f.orders[orderID]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (f *fakePaymentRepo) UpdateStatus(ctx context.Context, orderID string, status domain.PaymentStatus, settledAt *time.Time) (bool, error) {
	o, ok := f.orders[orderID]
	if !ok {
		return false, domain.ErrOrderNotFound
	}
	if o.Status != domain.PaymentPending || o.Status == status {
		return false, nil
	}
	o.Status = status
	if settledAt != nil {
		o.SettledAt = settledAt
	}
	return true, nil
}

// fakeCheckoutGateway implements domain.CheckoutGateway for tests.
type fakeCheckoutGateway struct {
	snapToken   string
	redirectURL string
	createErr   error
	validSig    bool
}

func (f *fakeCheckoutGateway) CreateTransaction(ctx context.Context, order *domain.PaymentOrder, customer *domain.User) (string, string, error) {
	if f.createErr != nil {
		return "", "", f.createErr
	}
	return f.snapToken, f.redirectURL, nil
}

func (f *fakeCheckoutGateway) VerifySignature(orderID, statusCode, grossAmount, signature string) bool {
	return f.validSig
}

// fakePDFExtractor implements domain.PDFExtractor for tests.
type fakePDFExtractor struct {
	text string
	err  error
}

func (f *fakePDFExtractor) ExtractText(r io.ReaderAt, size int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
