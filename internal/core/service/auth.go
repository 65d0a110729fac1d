package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/util"
	"todoapi/pkg/config"
)

// AuthService is the register/login/me/logout flow. Issued tokens are HS256
// JWTs that reference a persisted token row by jti; deleting the rows on
// logout revokes every outstanding token for the user at once.
type AuthService struct {
	users  port.UserRepository
	tokens port.TokenRepository
	cache  port.CacheRepository

	secret    []byte
	decoyHash string
	cacheTTL  time.Duration
}

func NewAuthService(users port.UserRepository, tokens port.TokenRepository, cache port.CacheRepository, cfg config.AuthConfig) *AuthService {
	decoyHash, err := util.GenerateEncrypt(cfg.DecoyPassword)

	if err != nil {
		// bcrypt only fails on malformed cost, which DefaultCost is not
		panic(fmt.Sprintf("auth: decoy hash: %v", err))
	}

	return &AuthService{
		users:     users,
		tokens:    tokens,
		cache:     cache,
		secret:    []byte(cfg.TokenSecret),
		decoyHash: decoyHash,
		cacheTTL:  cfg.TokenCacheTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, req *request.RegisterRequest) (domain.User, string, error) {
	existing, err := s.users.GetByEmail(ctx, req.Email)

	if err == nil && existing.Email != "" {
		return domain.User{}, "", domain.Validation(map[string][]string{
			"email": {"email has already been taken"},
		})
	}

	// Only a missing row means the email is available; any other storage
	// error aborts the registration.
	if err != nil && !domain.IsNotFound(err) {
		return domain.User{}, "", err
	}

	encrypted, err := util.GenerateEncrypt(req.Password)

	if err != nil {
		return domain.User{}, "", err
	}

	now := time.Now()

	user, err := s.users.Create(ctx, domain.User{
		Name:              req.Name,
		Email:             req.Email,
		EncryptedPassword: encrypted,
		CreatedAt:         now,
		UpdatedAt:         now,
	})

	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.issueToken(ctx, user)

	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, req *request.LoginRequest) (domain.User, string, error) {
	user, lookupErr := s.users.GetByEmail(ctx, req.Email)

	// Compare against the decoy hash when the email is unknown, so both
	// failure paths take a bcrypt comparison and answer identically.
	encrypted := s.decoyHash

	if lookupErr == nil {
		encrypted = user.EncryptedPassword
	}

	compareErr := util.ComparePassword(req.Password, encrypted)

	if lookupErr != nil || compareErr != nil {
		return domain.User{}, "", domain.Unauthorized()
	}

	token, err := s.issueToken(ctx, user)

	if err != nil {
		return domain.User{}, "", err
	}

	return user, token, nil
}

// Authorize resolves a bearer token to its user. The JWT signature proves the
// token was minted here; the row lookup makes revocation stick.
func (s *AuthService) Authorize(ctx context.Context, bearer string) (domain.User, error) {
	parsed, err := jwt.Parse(bearer, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return s.secret, nil
	})

	if err != nil || !parsed.Valid {
		return domain.User{}, domain.Unauthorized()
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)

	if !ok {
		return domain.User{}, domain.Unauthorized()
	}

	jti, _ := claims["jti"].(string)
	userID, idOK := claims["user_id"].(float64)

	if jti == "" || !idOK {
		return domain.User{}, domain.Unauthorized()
	}

	if err := s.checkTokenRow(ctx, int64(userID), jti); err != nil {
		return domain.User{}, domain.Unauthorized()
	}

	user, err := s.users.GetByID(ctx, int64(userID))

	if err != nil {
		return domain.User{}, domain.Unauthorized()
	}

	return user, nil
}

// Logout deletes every token owned by the user, not just the one presented.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokens.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}

	if err := s.cache.DeleteByPrefix(ctx, tokenCachePrefix(userID)); err != nil {
		slog.Warn("Auth#Logout", "cache_invalidate", err)
	}

	return nil
}

func (s *AuthService) issueToken(ctx context.Context, user domain.User) (string, error) {
	row, err := s.tokens.Create(ctx, domain.Token{
		UUID:      uuid.New(),
		UserID:    user.ID,
		Name:      user.Name + "-AuthToken",
		CreatedAt: time.Now(),
	})

	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"jti":     row.UUID.String(),
		"user_id": user.ID,
		"iat":     row.CreatedAt.Unix(),
	})

	return token.SignedString(s.secret)
}

func (s *AuthService) checkTokenRow(ctx context.Context, userID int64, jti string) error {
	key := tokenCachePrefix(userID) + jti

	if cached, _ := s.cache.Get(ctx, key); cached != nil {
		return nil
	}

	if _, err := s.tokens.GetByUUID(ctx, jti); err != nil {
		return err
	}

	if err := s.cache.Set(ctx, key, []byte("1"), s.cacheTTL); err != nil {
		slog.Warn("Auth#Authorize", "cache_set", err)
	}

	return nil
}

func tokenCachePrefix(userID int64) string {
	return fmt.Sprintf("token:%d:", userID)
}
