package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/avelier/forecast-service/internal/models"
)

// Not-found sentinels, matched by the handler layer to return 404s.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrScenarioNotFound = errors.New("scenario not found")
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(user *models.User) error {
	query := `
		INSERT INTO forecast.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM forecast.users
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// FindUserByID retrieves a user by its primary key
func (r *Repository) FindUserByID(id int64) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM forecast.users
		WHERE id = $1`
	err := r.db.QueryRow(query, id).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// CreateScenario stores a new scenario. The assumption set is serialized
// as an opaque JSONB blob; calculated metrics are never persisted.
func (r *Repository) CreateScenario(s *models.Scenario) error {
	blob, err := json.Marshal(s.Assumptions)
	if err != nil {
		return fmt.Errorf("failed to serialize assumptions: %w", err)
	}
	query := `
		INSERT INTO forecast.scenarios (id, user_id, name, description, assumptions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING created_at, updated_at`
	err = r.db.QueryRow(query, s.ID, s.UserID, s.Name, s.Description, blob).
		Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}
	return nil
}

// FindScenario retrieves a scenario by id, scoped to its owner. Soft-deleted
// rows are invisible.
func (r *Repository) FindScenario(id string, userID int64) (*models.Scenario, error) {
	s := &models.Scenario{}
	var blob []byte
	query := `
		SELECT id, user_id, name, description, assumptions, created_at, updated_at
		FROM forecast.scenarios
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	err := r.db.QueryRow(query, id, userID).
		Scan(&s.ID, &s.UserID, &s.Name, &s.Description, &blob, &s.CreatedAt, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrScenarioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find scenario: %w", err)
	}
	if err := json.Unmarshal(blob, &s.Assumptions); err != nil {
		return nil, fmt.Errorf("failed to deserialize assumptions: %w", err)
	}
	return s, nil
}

// ListScenarios returns the owner's scenarios without the assumptions blob,
// newest first.
func (r *Repository) ListScenarios(userID int64) ([]models.ScenarioSummary, error) {
	query := `
		SELECT id, name, description, updated_at
		FROM forecast.scenarios
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY updated_at DESC`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	summaries := []models.ScenarioSummary{}
	for rows.Next() {
		var s models.ScenarioSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario row: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scenarios: %w", err)
	}
	return summaries, nil
}

// UpdateScenario replaces a scenario's name, description and assumptions.
func (r *Repository) UpdateScenario(s *models.Scenario) error {
	blob, err := json.Marshal(s.Assumptions)
	if err != nil {
		return fmt.Errorf("failed to serialize assumptions: %w", err)
	}
	query := `
		UPDATE forecast.scenarios
		SET name = $1, description = $2, assumptions = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
		RETURNING updated_at`
	err = r.db.QueryRow(query, s.Name, s.Description, blob, s.ID, s.UserID).
		Scan(&s.UpdatedAt)
	if err == sql.ErrNoRows {
		return ErrScenarioNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}
	return nil
}

// DeleteScenario soft-deletes a scenario. The row is purged permanently by
// the scheduled cleanup job.
func (r *Repository) DeleteScenario(id string, userID int64) error {
	query := `
		UPDATE forecast.scenarios
		SET deleted_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`
	res, err := r.db.Exec(query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrScenarioNotFound
	}
	return nil
}

// PurgeDeletedScenarios permanently removes scenarios soft-deleted before
// the retention cutoff. Returns the number of purged rows.
func (r *Repository) PurgeDeletedScenarios(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res, err := r.db.Exec(`DELETE FROM forecast.scenarios WHERE deleted_at IS NOT NULL AND deleted_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge scenarios: %w", err)
	}
	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}
	return purged, nil
}
