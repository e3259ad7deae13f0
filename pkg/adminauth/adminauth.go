package adminauth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer       = "lesson-booking"
	adminSubject = "admin"
	adminRole    = "admin"
)

var (
	// ErrUnauthorized возвращается при отсутствии или недействительности прав администратора
	ErrUnauthorized = errors.New("adminauth: unauthorized")

	// ErrInvalidPassword возвращается при неверном пароле администратора
	ErrInvalidPassword = errors.New("adminauth: invalid password")

	// ErrMisconfigured возвращается, когда не задан хеш пароля или секрет подписи
	ErrMisconfigured = errors.New("adminauth: authority is not configured")
)

// Grant подтверждение прав администратора.
// Создается только через Authority.Verify, поэтому нулевое значение означает отсутствие прав.
type Grant struct {
	subject   string
	expiresAt time.Time
}

// Valid проверяет, что grant выдан Authority
func (g Grant) Valid() bool {
	return g.subject != ""
}

// Subject возвращает субъект токена
func (g Grant) Subject() string {
	return g.subject
}

// ExpiresAt возвращает момент истечения токена
func (g Grant) ExpiresAt() time.Time {
	return g.expiresAt
}

// Require возвращает ErrUnauthorized для нулевого grant.
// Вызывается в начале каждой административной операции.
func Require(g Grant) error {
	if !g.Valid() {
		return ErrUnauthorized
	}
	return nil
}

// Token подписанный токен администратора
type Token struct {
	Value     string
	ExpiresAt time.Time
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Option настройка Authority
type Option func(*Authority)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(a *Authority) {
		a.now = now
	}
}

// Authority проверяет пароль администратора и выпускает/проверяет токены
type Authority struct {
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewAuthority создает Authority по bcrypt-хешу пароля и секрету HS256
func NewAuthority(passwordHash, secret string, ttl time.Duration, opts ...Option) (*Authority, error) {
	if passwordHash == "" || secret == "" || ttl <= 0 {
		return nil, ErrMisconfigured
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return nil, fmt.Errorf("%w: bad password hash: %v", ErrMisconfigured, err)
	}

	a := &Authority{
		passwordHash: []byte(passwordHash),
		secret:       []byte(secret),
		ttl:          ttl,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Login проверяет пароль и выпускает токен администратора
func (a *Authority) Login(password string) (Token, error) {
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return Token{}, ErrInvalidPassword
	}

	now := a.now().UTC()
	exp := now.Add(a.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: adminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminSubject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(a.secret)
	if err != nil {
		return Token{}, fmt.Errorf("adminauth: sign token: %w", err)
	}
	return Token{Value: signed, ExpiresAt: exp}, nil
}

// Verify проверяет токен и возвращает grant
func (a *Authority) Verify(raw string) (Grant, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !tok.Valid {
		return Grant{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if c.Role != adminRole || c.Subject == "" {
		return Grant{}, fmt.Errorf("%w: unexpected role %q", ErrUnauthorized, c.Role)
	}

	return Grant{subject: c.Subject, expiresAt: c.ExpiresAt.Time}, nil
}

// HashPassword возвращает bcrypt-хеш пароля (для утилиты генерации конфига и тестов)
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

type grantKey struct{}

// WithGrant кладет grant в контекст запроса (используется middleware на границе HTTP)
func WithGrant(ctx context.Context, g Grant) context.Context {
	return context.WithValue(ctx, grantKey{}, g)
}

// GrantFromContext достает grant из контекста запроса
func GrantFromContext(ctx context.Context) Grant {
	g, _ := ctx.Value(grantKey{}).(Grant)
	return g
}
