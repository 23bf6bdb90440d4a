package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wanderlog/backend/internal/config"
	"github.com/wanderlog/backend/internal/db"
	"github.com/wanderlog/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	minUsernameLength = 3
	minPasswordLength = 6
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrMisconfigured = errors.New("auth config invalid")
)

// UserStore is the credential-store surface the token service needs.
// *db.Postgres satisfies it; tests substitute fakes.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, fullName, passwordHash, avatar, coverImage string) (*model.User, error)
	GetUserByID(ctx context.Context, userID int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, userID int64, token *string) error
}

type CookieConfig struct {
	Path          string
	Domain        string
	Secure        bool
	SameSite      http.SameSite
	AccessMaxAge  int
	RefreshMaxAge int
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type AuthService struct {
	store         UserStore
	media         MediaStore
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	cookieCfg     CookieConfig
}

func NewAuthService(store UserStore, media MediaStore, cfg config.AuthConfig) (*AuthService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required", ErrMisconfigured)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", ErrMisconfigured)
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ACCESS_TOKEN_TTL", ErrMisconfigured)
	}

	refreshTTL, err := time.ParseDuration(cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid REFRESH_TOKEN_TTL", ErrMisconfigured)
	}

	cookieSecure := true
	if v := strings.TrimSpace(cfg.CookieSecure); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid AUTH_COOKIE_SECURE", ErrMisconfigured)
		}
		cookieSecure = parsed
	}

	cookiePath := cfg.CookiePath
	if strings.TrimSpace(cookiePath) == "" {
		cookiePath = "/"
	}

	return &AuthService{
		store:         store,
		media:         media,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		cookieCfg: CookieConfig{
			Path:          cookiePath,
			Domain:        cfg.CookieDomain,
			Secure:        cookieSecure,
			SameSite:      http.SameSiteLaxMode,
			AccessMaxAge:  int(accessTTL.Seconds()),
			RefreshMaxAge: int(refreshTTL.Seconds()),
		},
	}, nil
}

func (s *AuthService) CookieConfig() CookieConfig {
	return s.cookieCfg
}

type RegisterParams struct {
	FullName   string
	Email      string
	Username   string
	Password   string
	Avatar     *Upload
	CoverImage *Upload
}

func (s *AuthService) Register(ctx context.Context, params RegisterParams) (*model.AuthUser, error) {
	fullName := strings.TrimSpace(params.FullName)
	email := strings.TrimSpace(params.Email)
	username := strings.ToLower(strings.TrimSpace(params.Username))
	password := params.Password

	if fullName == "" || email == "" || username == "" || password == "" {
		return nil, fmt.Errorf("%w: all fields are required", ErrInvalidInput)
	}
	if len(username) < minUsernameLength || len(password) < minPasswordLength {
		return nil, ErrInvalidInput
	}
	if params.Avatar == nil {
		return nil, fmt.Errorf("%w: avatar file is required", ErrInvalidInput)
	}

	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrConflict
	} else if !db.IsNoRows(err) {
		return nil, err
	}
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrConflict
	} else if !db.IsNoRows(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	avatarURL, err := s.media.Upload(ctx, mediaKey("avatars", params.Avatar.Filename), params.Avatar.ContentType, params.Avatar.Reader, params.Avatar.Size)
	if err != nil {
		return nil, err
	}

	coverURL := ""
	if params.CoverImage != nil {
		coverURL, err = s.media.Upload(ctx, mediaKey("covers", params.CoverImage.Filename), params.CoverImage.ContentType, params.CoverImage.Reader, params.CoverImage.Size)
		if err != nil {
			return nil, err
		}
	}

	user, err := s.store.CreateUser(ctx, username, email, fullName, string(hash), avatarURL, coverURL)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	return user.Sanitized(), nil
}

// Login resolves the identifier against username or email. A miss is
// ErrNotFound; a bad password is ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, email, password string) (*model.AuthUser, TokenPair, error) {
	if username == "" && email == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: username or email is required", ErrInvalidInput)
	}
	if password == "" {
		return nil, TokenPair{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	var user *model.User
	var err error
	if username != "" {
		user, err = s.store.GetUserByUsername(ctx, strings.ToLower(username))
	} else {
		user, err = s.store.GetUserByEmail(ctx, email)
	}
	if err != nil {
		if db.IsNoRows(err) {
			return nil, TokenPair{}, ErrNotFound
		}
		return nil, TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, TokenPair{}, ErrUnauthorized
	}

	pair, err := s.IssueTokenPair(ctx, user)
	if err != nil {
		return nil, TokenPair{}, err
	}

	return user.Sanitized(), pair, nil
}

// IssueTokenPair signs both tokens and persists the refresh token onto the
// user row before returning. The single slot means issuing a new pair
// invalidates whatever refresh token was stored before.
func (s *AuthService) IssueTokenPair(ctx context.Context, user *model.User) (TokenPair, error) {
	accessToken, err := s.signToken(user.ID, s.accessSecret, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := s.signToken(user.ID, s.refreshSecret, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	// Persist first: a token pair must never outlive a failed write.
	if err := s.store.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL.Seconds()),
	}, nil
}

// ParseAccessToken checks signature and expiry only; no store lookup.
func (s *AuthService) ParseAccessToken(tokenStr string) (int64, error) {
	return parseSubject(tokenStr, s.accessSecret)
}

// Authenticate resolves an access token to a sanitized principal. The store
// lookup rejects tokens whose user no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, tokenStr string) (*model.AuthUser, error) {
	userID, err := s.ParseAccessToken(tokenStr)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
		}
		return nil, err
	}

	return user.Sanitized(), nil
}

// Refresh rotates the refresh token. The presented token must verify AND
// exactly match the stored slot; logout or a prior rotation leaves any older
// token structurally valid but non-matching, which is the revocation.
func (s *AuthService) Refresh(ctx context.Context, presented string) (TokenPair, error) {
	if strings.TrimSpace(presented) == "" {
		return TokenPair{}, ErrUnauthorized
	}

	userID, err := parseSubject(presented, s.refreshSecret)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if db.IsNoRows(err) {
			return TokenPair{}, ErrUnauthorized
		}
		return TokenPair{}, err
	}

	if user.RefreshToken == nil || *user.RefreshToken != presented {
		return TokenPair{}, fmt.Errorf("%w: refresh token is expired or used", ErrUnauthorized)
	}

	return s.IssueTokenPair(ctx, user)
}

// Logout clears the refresh-token slot; issued refresh tokens then fail
// rotation even while unexpired.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	return s.store.UpdateRefreshToken(ctx, userID, nil)
}

func (s *AuthService) signToken(userID int64, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	// The jti keeps a rotated token distinct from its predecessor even when
	// both are signed within the same second.
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseSubject(tokenStr string, secret []byte) (int64, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthorized
		}
		return secret, nil
	})
	if err != nil {
		// Both collapse to ErrUnauthorized; the detail is for logs only.
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, fmt.Errorf("%w: token expired", ErrUnauthorized)
		}
		return 0, fmt.Errorf("%w: token malformed", ErrUnauthorized)
	}
	if !token.Valid {
		return 0, ErrUnauthorized
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: token malformed", ErrUnauthorized)
	}
	return userID, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
