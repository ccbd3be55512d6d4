// Package identity is the identity store: accounts, password checks and
// the sessions behind issued tokens.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"campus_hub/internal/models"
	"campus_hub/internal/session"
	"campus_hub/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

const MinPasswordLength = 6

// SignupMetadata is what the signup form carries besides credentials.
type SignupMetadata struct {
	Name      string
	AvatarURL string
}

// Result is a freshly established session.
type Result struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   session.Session `json:"user"`
}

type Service struct {
	db     *gorm.DB
	store  *store.Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	derive func(tx *gorm.DB, acct *models.Account, meta SignupMetadata) error
}

func New(st *store.Store, secret string, ttl time.Duration) *Service {
	return &Service{
		db:     st.DB(),
		store:  st,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
		derive: deriveProfileAndRole,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the account and, in the same transaction, its profile and
// default role. If derivation fails the account is rolled back with it.
func (s *Service) SignUp(ctx context.Context, email, password string, meta SignupMetadata, userAgent string) (*Result, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, &store.ValidationError{Field: "email", Message: "is required"}
	}
	if len(password) < MinPasswordLength {
		return nil, &store.ValidationError{Field: "password", Message: fmt.Sprintf("must be at least %d characters", MinPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	acct := models.Account{Email: email, PasswordHash: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&acct).Error; err != nil {
			return err
		}
		return s.derive(tx, &acct, meta)
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("could not create account: %w", err)
	}

	logrus.WithField("user_id", acct.ID).Info("account created")
	return s.issue(ctx, acct, userAgent)
}

func (s *Service) SignIn(ctx context.Context, email, password, userAgent string) (*Result, error) {
	var acct models.Account
	err := s.db.WithContext(ctx).First(&acct, "email = ?", normalizeEmail(email)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.db.WithContext(ctx).Model(&acct).Update("last_sign_in_at", now).Error; err != nil {
		logrus.WithError(err).Warn("could not record last sign-in")
	}
	return s.issue(ctx, acct, userAgent)
}

// SignOut revokes the session. Revoking an already revoked session is fine.
func (s *Service) SignOut(ctx context.Context, sessionID uuid.UUID) error {
	res := s.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND revoked_at IS NULL", sessionID).
		Update("revoked_at", s.now())
	return res.Error
}

// Authenticate turns a bearer token into the caller's session context.
func (s *Service) Authenticate(ctx context.Context, token string) (session.Session, error) {
	c, err := s.parse(token)
	if err != nil {
		return session.Session{}, err
	}
	sessionID, err := uuid.Parse(c.ID)
	if err != nil {
		return session.Session{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return session.Session{}, ErrInvalidToken
	}

	var row models.Session
	err = s.db.WithContext(ctx).First(&row, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return session.Session{}, ErrInvalidToken
	}
	if err != nil {
		return session.Session{}, err
	}
	if row.UserID != userID || !row.Active(s.now()) {
		return session.Session{}, ErrInvalidToken
	}

	roles, err := s.store.RoleNames(ctx, userID)
	if err != nil {
		return session.Session{}, err
	}
	return session.Session{
		ID:     sessionID,
		UserID: userID,
		Email:  c.Email,
		Roles:  roles,
	}, nil
}

func (s *Service) issue(ctx context.Context, acct models.Account, userAgent string) (*Result, error) {
	now := s.now()
	row := models.Session{
		UserID:    acct.ID,
		ExpiresAt: now.Add(s.ttl),
		UserAgent: userAgent,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("could not create session: %w", err)
	}
	token, err := s.sign(row, acct.Email, now)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}
	roles, err := s.store.RoleNames(ctx, acct.ID)
	if err != nil {
		return nil, err
	}
	return &Result{
		Token:     token,
		ExpiresAt: row.ExpiresAt,
		Session: session.Session{
			ID:     row.ID,
			UserID: acct.ID,
			Email:  acct.Email,
			Roles:  roles,
		},
	}, nil
}
