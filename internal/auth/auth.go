// Package auth is the identity provider: it registers users, checks passwords
// and issues and validates bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/banlist"
	"github.com/pageza/recipeshare/backend/internal/models"
	"github.com/pageza/recipeshare/backend/internal/repository"
	"github.com/pageza/recipeshare/backend/internal/validation"
)

var (
	errInvalidCredentials = apperrors.Unauthorized("invalid credentials")
	errInvalidToken       = apperrors.Unauthorized("invalid or expired token")
)

// Identity is the authenticated caller.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Claims are the JWT claims issued by Service.
type Claims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Username string `json:"username" validate:"required,username"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Service owns the identity records.
type Service struct {
	db         *gorm.DB
	users      *repository.UserRepository
	bans       *repository.BannedEmailRepository
	secret     []byte
	ttl        time.Duration
	bcryptCost int
	log        zerolog.Logger
	now        func() time.Time
}

func NewService(db *gorm.DB, jwtSecret string, ttl time.Duration, log zerolog.Logger) *Service {
	return &Service{
		db:         db,
		users:      repository.NewUserRepository(db),
		bans:       repository.NewBannedEmailRepository(db),
		secret:     []byte(jwtSecret),
		ttl:        ttl,
		bcryptCost: bcrypt.DefaultCost,
		log:        log,
		now:        time.Now,
	}
}

// Register creates the identity record and its profile in one transaction
// and returns a token for the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	in.Email = banlist.Normalize(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return "", nil, err
	}

	bans, err := s.bans.List(ctx)
	if err != nil {
		return "", nil, apperrors.Store(err)
	}
	if banlist.MatchEmail(in.Email, bans).Banned {
		s.log.Warn().Str("email", in.Email).Msg("registration attempt with banned email")
		return "", nil, apperrors.Forbidden("this email address cannot be used to register")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: in.Email, PasswordHash: string(hash)}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		profiles := repository.NewProfileRepository(tx)

		if _, err := users.GetByEmail(ctx, in.Email); err == nil {
			return apperrors.Conflict("email already registered")
		} else if !repository.IsNotFound(err) {
			return apperrors.Store(err)
		}
		if _, err := profiles.GetByUsername(ctx, in.Username); err == nil {
			return apperrors.Conflict("username already taken")
		} else if !repository.IsNotFound(err) {
			return apperrors.Store(err)
		}

		if err := users.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.Conflict("email already registered")
			}
			return apperrors.Store(err)
		}
		profile := &models.Profile{ID: user.ID, Username: strings.ToLower(in.Username)}
		if err := profiles.Create(ctx, profile); err != nil {
			if repository.IsUniqueViolation(err) {
				return apperrors.Conflict("username already taken")
			}
			return apperrors.Store(err)
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.Issue(user)
	if err != nil {
		return "", nil, err
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return token, user, nil
}

// Login checks the password and returns a fresh token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	in.Email = banlist.Normalize(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", nil, errInvalidCredentials
		}
		return "", nil, apperrors.Store(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, errInvalidCredentials
	}

	token, err := s.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Issue signs an HS256 token for user.
func (s *Service) Issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// ValidateToken parses and verifies a token. Any failure is Unauthorized.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.UserID == uuid.Nil {
		return nil, errInvalidToken
	}
	return claims, nil
}

// CurrentUser resolves a token to an identity that still exists.
func (s *Service) CurrentUser(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidToken
		}
		return nil, apperrors.Store(err)
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}
