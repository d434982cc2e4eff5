package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hongjunna/toporider/internal/db"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 12 * time.Hour

// uniqueViolation is the Postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrTokenInvalid       = errors.New("token invalid")
)

type Service struct {
	secret []byte
	db     db.Querier
}

type Claims struct {
	RiderID string `json:"rider_id"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (Rider, TokenResponse, error) {
	if req.Email == "" || req.Username == "" || req.Password == "" {
		return Rider{}, TokenResponse{}, errors.New("email, username, password required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return Rider{}, TokenResponse{}, err
	}

	rider := Rider{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO riders (id, email, username, password_hash)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, rider.ID, rider.Email, rider.Username, rider.PasswordHash)
	if err := row.Scan(&rider.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Rider{}, TokenResponse{}, ErrEmailTaken
		}
		return Rider{}, TokenResponse{}, fmt.Errorf("insert rider: %w", err)
	}

	tokens, err := s.GenerateToken(rider.ID)
	if err != nil {
		return Rider{}, TokenResponse{}, err
	}
	return rider, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (Rider, TokenResponse, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, username, password_hash, created_at
		FROM riders WHERE email = $1
	`, req.Email)

	var rider Rider
	if err := row.Scan(&rider.ID, &rider.Email, &rider.Username, &rider.PasswordHash, &rider.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Rider{}, TokenResponse{}, ErrInvalidCredentials
		}
		return Rider{}, TokenResponse{}, fmt.Errorf("load rider: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rider.PasswordHash), []byte(req.Password)); err != nil {
		return Rider{}, TokenResponse{}, ErrInvalidCredentials
	}

	tokens, err := s.GenerateToken(rider.ID)
	if err != nil {
		return Rider{}, TokenResponse{}, err
	}
	return rider, tokens, nil
}

func (s *Service) GenerateToken(riderID string) (TokenResponse, error) {
	access, err := s.signToken(riderID, accessTokenTTL)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int64(accessTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateAccessToken(token string) (string, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", err
	}
	return claims.RiderID, nil
}

func (s *Service) signToken(riderID string, ttl time.Duration) (string, error) {
	claims := Claims{
		RiderID: riderID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parseToken(token string) (*Claims, error) {
	return parseClaims(token, s.secret)
}

func parseClaims(token string, secret []byte) (*Claims, error) {
	parsed, err := parseClaimsFn(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.RiderID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

var parseClaimsFn = jwt.ParseWithClaims
