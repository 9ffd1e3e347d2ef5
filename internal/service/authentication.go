// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Mooyguy/Travel-Magazine-Secure/internal/database"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/model"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/session"
	"github.com/Mooyguy/Travel-Magazine-Secure/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName 存放 session token 的 cookie
const SessionCookieName = "travel_admin_session"

var (
	// ErrInvalidCredentials 帳號不存在與密碼錯誤一律回傳此錯誤
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoSession token 無效、過期或 session 已刪除
	ErrNoSession = errors.New("no active session")
)

var (
	findAdminByUsername = store.FindAdminByUsername
	newSessionID        = uuid.NewString
	timeNow             = time.Now
	parseWithClaims     = jwt.ParseWithClaims
)

// Authenticator 管理管理員 session 的建立、查詢與刪除。
// cookie 內只放簽章過的 session id，實際狀態保存在 session.Store。
type Authenticator struct {
	db       database.DB
	sessions session.Store
	hasher   *Hasher
	secret   []byte
	ttl      time.Duration
}

func NewAuthenticator(db database.DB, sessions session.Store, hasher *Hasher, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		db:       db,
		sessions: sessions,
		hasher:   hasher,
		secret:   []byte(secret),
		ttl:      ttl,
	}
}

// Login 驗證帳密並建立 session，回傳 session 與要寫入 cookie 的 token
func (a *Authenticator) Login(ctx context.Context, username, password string) (*model.Session, string, error) {
	admin, err := findAdminByUsername(ctx, a.db, username)
	if errors.Is(err, store.ErrNotFound) {
		// 帳號不存在也比對一次，避免以回應時間判斷帳號是否存在
		if _, err := a.hasher.Compare(ctx, dummyHash(), password); err != nil {
			return nil, "", fmt.Errorf("Login: %w", err)
		}
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("Login: %w", err)
	}

	ok, err := a.hasher.Compare(ctx, admin.PasswordHash, password)
	if err != nil {
		return nil, "", fmt.Errorf("Login: %w", err)
	}
	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	now := timeNow()
	s := model.Session{
		ID:        newSessionID(),
		AdminID:   admin.ID,
		Username:  admin.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(a.ttl),
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, "", fmt.Errorf("Login: %w", err)
	}
	token, err := a.signToken(s)
	if err != nil {
		_ = a.sessions.Delete(ctx, s.ID)
		return nil, "", fmt.Errorf("Login: %w", err)
	}
	return &s, token, nil
}

// CurrentSession 解析 token 並回傳有效的 session；無效時回傳 ErrNoSession
func (a *Authenticator) CurrentSession(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	claims, err := a.parseToken(token, jwt.WithTimeFunc(timeNow))
	if err != nil {
		return nil, ErrNoSession
	}
	s, err := a.sessions.Get(ctx, claims.ID)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("CurrentSession: %w", err)
	}
	return s, nil
}

// Logout 刪除 token 對應的 session；token 無效或 session 不存在都視為成功
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	// 過期的 token 也要能登出，因此不檢查 exp
	claims, err := a.parseToken(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	if err := a.sessions.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("Logout: %w", err)
	}
	return nil
}

func (a *Authenticator) signToken(s model.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        s.ID,
		Subject:   s.Username,
		IssuedAt:  jwt.NewNumericDate(s.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *Authenticator) parseToken(tokenString string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
