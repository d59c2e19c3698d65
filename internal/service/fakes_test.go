package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Dan9191/budget-advisor/internal/config"
	"github.com/Dan9191/budget-advisor/internal/models"
	"github.com/Dan9191/budget-advisor/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store
type memStore struct {
	mu            sync.Mutex
	nextID        int64
	users         map[string]*models.User
	profiles      map[int64]*models.Profile
	budgets       map[int64]*models.Budget
	decisions     []models.DecisionRecord
	conversations map[uuid.UUID]*models.Conversation
	messages      []repository.StoredMessage
	updates       int
	failUpdate    bool
}

func newMemStore() *memStore {
	return &memStore{
		users:         make(map[string]*models.User),
		profiles:      make(map[int64]*models.Profile),
		budgets:       make(map[int64]*models.Budget),
		conversations: make(map[uuid.UUID]*models.Conversation),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(_ context.Context, u *models.User, th models.Thresholds) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return fmt.Errorf("user %s: %w", u.Email, repository.ErrDuplicate)
	}
	u.ID = m.id()
	u.CreatedAt = time.Now()
	m.users[u.Email] = u
	m.profiles[u.ID] = &models.Profile{UserID: u.ID, DisplayName: u.Username, SubscriptionTier: models.TierFree, Thresholds: th}
	return nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (m *memStore) GetProfile(_ context.Context, userID int64) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpdateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.profiles[p.UserID]
	if !ok {
		return repository.ErrNotFound
	}
	cur.DisplayName, cur.Thresholds = p.DisplayName, p.Thresholds
	p.SubscriptionTier = cur.SubscriptionTier
	return nil
}

func (m *memStore) SaveBudget(_ context.Context, b *models.Budget) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.id()
	b.IsActive = true
	b.CreatedAt = time.Now()
	m.budgets[b.UserID] = b
	return nil
}

func (m *memStore) ActiveBudget(_ context.Context, userID int64) (*models.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.budgets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memStore) ListBudgetOwners(context.Context) ([]repository.BudgetOwner, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var owners []repository.BudgetOwner
	for _, u := range m.users {
		b, ok := m.budgets[u.ID]
		if !ok {
			continue
		}
		owners = append(owners, repository.BudgetOwner{User: *u, Profile: *m.profiles[u.ID], Budget: *b})
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i].User.ID < owners[j].User.ID })
	return owners, nil
}

func (m *memStore) CreateDecision(_ context.Context, d *models.DecisionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.id()
	d.CreatedAt = time.Now()
	m.decisions = append(m.decisions, *d)
	return nil
}

func (m *memStore) ListDecisions(_ context.Context, userID int64, limit int) ([]models.DecisionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.DecisionRecord{}
	for i := len(m.decisions) - 1; i >= 0; i-- {
		if m.decisions[i].UserID == userID {
			out = append(out, m.decisions[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memStore) UpdateDecisionResult(_ context.Context, id int64, result []byte, tier string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return errors.New("write failed")
	}
	for i := range m.decisions {
		if m.decisions[i].ID == id {
			m.decisions[i].Result = bytes.Clone(result)
			m.decisions[i].Tier = tier
			m.updates++
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) CreateConversation(_ context.Context, c *models.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.CreatedAt = time.Now()
	m.conversations[c.ID] = c
	return nil
}

func (m *memStore) GetConversation(_ context.Context, id uuid.UUID, userID int64) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.conversations[id]
	if !ok || c.UserID != userID {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (m *memStore) AddMessage(_ context.Context, msg *repository.StoredMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = m.id()
	msg.CreatedAt = time.Now()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memStore) ListMessages(_ context.Context, conversationID uuid.UUID) ([]repository.StoredMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []repository.StoredMessage
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

type fakeAdvisor struct {
	reply   string
	err     error
	budget  *models.BudgetSnapshot
	history []models.Message
	calls   int
}

func (f *fakeAdvisor) Advise(ctx context.Context, budget *models.BudgetSnapshot, history []models.Message, message string) (string, error) {
	f.calls++
	f.budget, f.history = budget, history
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("advisor called without a deadline")
	}
	return f.reply, f.err
}

type sentAlert struct {
	to, name string
	report   models.HealthReport
}

type fakeNotifier struct {
	sent    []sentAlert
	failFor string
}

func (f *fakeNotifier) SendHealthAlert(to, username string, report models.HealthReport) error {
	if to == f.failFor {
		return errors.New("smtp down")
	}
	f.sent = append(f.sent, sentAlert{to, username, report})
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "secret",
		HMACSecret:        "hmac",
		EncryptionKey:     bytes.Repeat([]byte{1}, 32),
		AITimeout:         time.Second,
		DefaultThresholds: models.DefaultThresholds(),
		HistoryLimit:      10,
	}
}

type fixture struct {
	svc      *Service
	store    *memStore
	advisor  *fakeAdvisor
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	f := &fixture{store: newMemStore(), advisor: &fakeAdvisor{reply: "Keep saving."}, notifier: &fakeNotifier{}}
	f.svc = NewService(f.store, f.advisor, f.notifier, log, testConfig())
	return f
}

// user registers a user and optionally saves a budget of income/expenses/savings
func (f *fixture) user(t *testing.T, email string, budget ...int64) int64 {
	t.Helper()
	u, err := f.svc.Register(context.Background(), "user", email, "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if len(budget) == 3 {
		_, err := f.svc.SaveBudget(context.Background(), u.ID, models.BudgetSnapshot{
			MonthlyIncome:   decimal.NewFromInt(budget[0]),
			MonthlyExpenses: decimal.NewFromInt(budget[1]),
			Savings:         decimal.NewFromInt(budget[2]),
			EmergencyFund:   decimal.Zero,
		})
		if err != nil {
			t.Fatalf("SaveBudget: %v", err)
		}
	}
	return u.ID
}

func (f *fixture) premium(userID int64) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.profiles[userID].SubscriptionTier = models.TierPremium
}
