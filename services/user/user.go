package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Service interface {
	GetUser(ctx context.Context, ID string) (*User, error)
	// EnsureUser creates the profile document on first sign-in and returns it.
	EnsureUser(ctx context.Context, user *User) (*User, error)
	// GetTheme returns the stored theme, DefaultTheme when none is stored.
	GetTheme(ctx context.Context, userID string) (Theme, error)
	SetTheme(ctx context.Context, userID string, theme Theme) error
	ToggleTheme(ctx context.Context, userID string) (Theme, error)
}

type userService struct {
	db *firestore.Client
}

var _ Service = (*userService)(nil)

const (
	userCollection = "users"
	themeKey       = "theme"
)

func NewUserService(client *firestore.Client) Service {
	return &userService{
		db: client,
	}
}

var (
	NotFound        = errors.New("user not found")
	ErrInvalidTheme = errors.New("invalid theme")
)

func (s *userService) doc(ID string) *firestore.DocumentRef {
	return s.db.Collection(userCollection).Doc(ID)
}

func (s *userService) GetUser(ctx context.Context, ID string) (*User, error) {
	snap, err := s.doc(ID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, NotFound
	}
	if err != nil {
		return nil, err
	}
	user := User{}
	if err := snap.DataTo(&user); err != nil {
		return nil, err
	}
	if user.Theme == "" {
		user.Theme = DefaultTheme
	}
	return &user, nil
}

func (s *userService) EnsureUser(ctx context.Context, user *User) (*User, error) {
	if user == nil || user.ID == "" {
		return nil, errors.New("user is nil")
	}
	existing, err := s.GetUser(ctx, user.ID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, NotFound) {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if user.Theme == "" {
		user.Theme = DefaultTheme
	}
	user.CreatedAt = time.Time{}
	_, err = s.doc(user.ID).Create(ctx, user)
	if status.Code(err) == codes.AlreadyExists {
		return s.GetUser(ctx, user.ID)
	}
	if err != nil {
		log.Error().Err(err).Str("uid", user.ID).Msg("failed to create user profile")
		return nil, err
	}
	log.Info().Str("uid", user.ID).Msg("created user profile")
	return user, nil
}

func (s *userService) GetTheme(ctx context.Context, userID string) (Theme, error) {
	u, err := s.GetUser(ctx, userID)
	if errors.Is(err, NotFound) {
		return DefaultTheme, nil
	}
	if err != nil {
		return "", err
	}
	return u.Theme, nil
}

func (s *userService) SetTheme(ctx context.Context, userID string, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	_, err := s.doc(userID).Set(ctx, map[string]any{themeKey: theme}, firestore.MergeAll)
	if err != nil {
		log.Error().Err(err).Str("uid", userID).Msg("failed to store theme")
		return err
	}
	return nil
}

func (s *userService) ToggleTheme(ctx context.Context, userID string) (Theme, error) {
	var next Theme
	ref := s.doc(userID)
	err := s.db.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		current := DefaultTheme
		snap, err := tx.Get(ref)
		switch {
		case status.Code(err) == codes.NotFound:
		case err != nil:
			return err
		default:
			if v, ok := snap.Data()[themeKey].(string); ok {
				if t, err := ParseTheme(v); err == nil {
					current = t
				} else {
					log.Warn().Str("uid", userID).Str("theme", v).Msg("ignoring stored theme")
				}
			}
		}
		next = current.Toggle()
		return tx.Set(ref, map[string]any{themeKey: next}, firestore.MergeAll)
	})
	if err != nil {
		log.Error().Err(err).Str("uid", userID).Msg("failed to toggle theme")
		return "", err
	}
	return next, nil
}
