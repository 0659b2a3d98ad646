package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avelier/forecast-service/internal/cache"
	"github.com/avelier/forecast-service/internal/config"
	"github.com/avelier/forecast-service/internal/engine"
	"github.com/avelier/forecast-service/internal/export"
	"github.com/avelier/forecast-service/internal/models"
	"github.com/avelier/forecast-service/internal/repository"
	"github.com/avelier/forecast-service/internal/utils/email"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Service handles business logic
type Service struct {
	repo   *repository.Repository
	drafts *cache.DraftCache
	mailer *email.Sender
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(repo *repository.Repository, drafts *cache.DraftCache, mailer *email.Sender, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{repo: repo, drafts: drafts, mailer: mailer, log: log, config: cfg}
}

// Register creates a new user with hashed password
func (s *Service) Register(username, emailAddr, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        emailAddr,
		PasswordHash: string(hashedPassword),
	}

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(emailAddr, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(emailAddr)
	if err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}

// Compute runs the projection engine over an assumption set. It is the
// only computation path: metrics are never read from storage.
func (s *Service) Compute(a engine.AssumptionSet) engine.CalculatedMetrics {
	return engine.ComputeMetrics(a)
}

// CreateScenario persists a new named assumption set for the current user.
func (s *Service) CreateScenario(ctx context.Context, name, description string, a engine.AssumptionSet) (*models.Scenario, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scenario := &models.Scenario{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Assumptions: a,
	}
	if err := s.repo.CreateScenario(scenario); err != nil {
		return nil, err
	}

	s.log.Infof("Scenario created for user %d: %s", userID, scenario.ID)
	return scenario, nil
}

// ListScenarios returns the current user's scenarios.
func (s *Service) ListScenarios(ctx context.Context) ([]models.ScenarioSummary, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListScenarios(userID)
}

// GetScenario fetches one of the current user's scenarios.
func (s *Service) GetScenario(ctx context.Context, id string) (*models.Scenario, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindScenario(id, userID)
}

// UpdateScenario replaces a scenario's name, description and assumptions.
func (s *Service) UpdateScenario(ctx context.Context, id, name, description string, a engine.AssumptionSet) (*models.Scenario, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}

	scenario := &models.Scenario{
		ID:          id,
		UserID:      userID,
		Name:        name,
		Description: description,
		Assumptions: a,
	}
	if err := s.repo.UpdateScenario(scenario); err != nil {
		return nil, err
	}

	s.log.Infof("Scenario updated for user %d: %s", userID, id)
	return scenario, nil
}

// DeleteScenario soft-deletes one of the current user's scenarios.
func (s *Service) DeleteScenario(ctx context.Context, id string) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteScenario(id, userID); err != nil {
		return err
	}
	s.log.Infof("Scenario deleted for user %d: %s", userID, id)
	return nil
}

// ScenarioMetrics loads a scenario and computes its metrics.
func (s *Service) ScenarioMetrics(ctx context.Context, id string) (*models.Scenario, engine.CalculatedMetrics, error) {
	scenario, err := s.GetScenario(ctx, id)
	if err != nil {
		return nil, engine.CalculatedMetrics{}, err
	}
	return scenario, engine.ComputeMetrics(scenario.Assumptions), nil
}

// EmailReport generates the PDF projection report for a scenario and sends
// it to the given address.
func (s *Service) EmailReport(ctx context.Context, id, to string) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}

	scenario, err := s.repo.FindScenario(id, userID)
	if err != nil {
		return err
	}
	user, err := s.repo.FindUserByID(userID)
	if err != nil {
		return err
	}

	metrics := engine.ComputeMetrics(scenario.Assumptions)
	report, err := export.GeneratePDF(scenario, metrics)
	if err != nil {
		return err
	}

	if err := s.mailer.SendScenarioReport(to, user.Username, scenario.Name, report.Bytes()); err != nil {
		return err
	}

	s.log.Infof("Report for scenario %s emailed to %s", id, to)
	return nil
}

// SaveDraft caches the current user's in-progress assumption set.
func (s *Service) SaveDraft(ctx context.Context, a engine.AssumptionSet) error {
	userID, err := userFromContext(ctx)
	if err != nil {
		return err
	}
	return s.drafts.Save(ctx, userID, a)
}

// LoadDraft restores the current user's in-progress assumption set.
func (s *Service) LoadDraft(ctx context.Context) (*engine.AssumptionSet, error) {
	userID, err := userFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.drafts.Load(ctx, userID)
}

// userFromContext extracts the authenticated user ID set by the auth
// middleware.
func userFromContext(ctx context.Context) (int64, error) {
	userIDStr, ok := ctx.Value("userID").(string)
	if !ok || userIDStr == "" {
		return 0, fmt.Errorf("user ID not found in context")
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user ID: %w", err)
	}
	return userID, nil
}
