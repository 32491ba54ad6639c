package identity

import (
	"context"

	"cuecafe/internal/session"
	"cuecafe/internal/validate"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"

	"github.com/google/uuid"
)

// UserStore is the slice of the table facade the identity service needs.
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertUser(ctx context.Context, user model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch map[string]any) (*model.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}

type Service struct {
	users     UserStore
	sessions  session.Store
	validator *validate.Validator
	salt      string
	log       *logger.Logger
}

func NewService(users UserStore, sessions session.Store, salt string, log *logger.Logger) *Service {
	return &Service{
		users:     users,
		sessions:  sessions,
		validator: validate.NewValidator(),
		salt:      salt,
		log:       log,
	}
}

// Signup registers a new user and signs them in. The returned session has
// already been persisted.
func (s *Service) Signup(ctx context.Context, in model.SignupInput) (*model.Session, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindUserByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("Signup lookup failed", "email", in.Email, "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmail()
	}

	created, err := s.users.InsertUser(ctx, model.User{
		Email:        in.Email,
		Phone:        in.Phone,
		Name:         in.Name,
		PasswordHash: Digest(in.Password, s.salt),
		IsAdmin:      false,
	})
	if err != nil {
		s.log.Error("Signup insert failed", "email", in.Email, "error", err)
		return nil, err
	}

	sess, err := s.startSession(*created)
	if err != nil {
		return nil, err
	}

	s.log.Info("Signup successful", "user_id", created.ID, "email", created.Email)
	return sess, nil
}

// Login verifies credentials. Unknown email and wrong password return the
// same error. A user row with an empty stored digest is let through, which
// is how pre-digest rows behaved in production.
func (s *Service) Login(ctx context.Context, in model.LoginInput) (*model.Session, error) {
	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.users.FindUserByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("Login lookup failed", "email", in.Email, "error", err)
		return nil, err
	}
	if user == nil {
		return nil, apperrors.InvalidCredentials()
	}

	if user.PasswordHash != "" && user.PasswordHash != Digest(in.Password, s.salt) {
		return nil, apperrors.InvalidCredentials()
	}

	// Last-login is best effort; a failed write must not block the login.
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		s.log.Warn("Could not update last_login", "user_id", user.ID, "error", err)
	}

	sess, err := s.startSession(*user)
	if err != nil {
		return nil, err
	}

	s.log.Info("Login successful", "user_id", user.ID, "email", user.Email)
	return sess, nil
}

// UpdateProfile patches name and phone on the remote row and merges only
// those two fields into the stored session.
func (s *Service) UpdateProfile(ctx context.Context, token string, in model.ProfileUpdate) (*model.Session, error) {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return nil, apperrors.NotAuthenticated()
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	updated, err := s.users.UpdateUser(ctx, sess.UserID, map[string]any{
		"name":  in.Name,
		"phone": in.Phone,
	})
	if err != nil {
		s.log.Error("Profile update failed", "user_id", sess.UserID, "error", err)
		return nil, err
	}

	sess.Name = updated.Name
	sess.Phone = updated.Phone
	if err := s.sessions.Put(sess); err != nil {
		s.log.Error("Could not persist updated session", "user_id", sess.UserID, "error", err)
		return nil, apperrors.Internal("failed to persist session", err)
	}

	s.log.Info("Profile updated", "user_id", sess.UserID)
	return &sess, nil
}

// Logout clears the session unconditionally. It never fails: a store error
// is logged and swallowed.
func (s *Service) Logout(token string) {
	if err := s.sessions.Delete(token); err != nil {
		s.log.Warn("Could not delete session", "error", err)
	}
}

func (s *Service) Current(token string) *model.Session {
	sess, ok := s.sessions.Get(token)
	if !ok {
		return nil
	}
	return &sess
}

func (s *Service) IsLoggedIn(token string) bool {
	_, ok := s.sessions.Get(token)
	return ok
}

func (s *Service) startSession(user model.User) (*model.Session, error) {
	sess := model.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
	if err := s.sessions.Put(sess); err != nil {
		s.log.Error("Could not persist session", "user_id", user.ID, "error", err)
		return nil, apperrors.Internal("failed to persist session", err)
	}
	return &sess, nil
}
