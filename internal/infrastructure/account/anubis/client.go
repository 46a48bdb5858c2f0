package anubis

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/platform/cache"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
	"github.com/riskibarqy/league-draft/internal/platform/resilience"
	"github.com/riskibarqy/league-draft/internal/usecase"
)

const (
	DefaultAdminRole  = "admin"
	defaultCacheTTL   = 30 * time.Second
	maxResponseBytes  = 1 << 20
	tokenCachePrefix  = "anubis:token:"
	adminKeyHeaderKey = "x-admin-key"
)

var errAnubisTransient = crerr.New("anubis transient failure")

type CircuitBreakerConfig = resilience.CircuitBreakerConfig

func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return resilience.DefaultCircuitBreakerConfig()
}

type Config struct {
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	// AdminRole grants mutation rights on draft sessions.
	AdminRole      string
	CacheTTL       time.Duration
	CircuitBreaker CircuitBreakerConfig
}

// Client verifies bearer tokens against the anubis introspection endpoint.
type Client struct {
	httpClient    *http.Client
	introspectURL string
	adminKey      string
	adminRole     string
	cache         *cache.Store
	breaker       *resilience.CircuitBreaker
	logger        *logging.Logger
}

func NewClient(httpClient *http.Client, cfg Config, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	if strings.TrimSpace(cfg.AdminRole) == "" {
		cfg.AdminRole = DefaultAdminRole
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}

	logger = logger.Named("anubis")
	breaker := resilience.NewCircuitBreaker(cfg.CircuitBreaker, nil)
	breaker.OnStateChange(func(from, to resilience.CircuitState) {
		logger.Warn("anubis circuit state changed", "from", string(from), "to", string(to))
	})

	return &Client{
		httpClient:    httpClient,
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		adminRole:     strings.TrimSpace(cfg.AdminRole),
		cache:         cache.NewStore(cfg.CacheTTL),
		breaker:       breaker,
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "token is required")
	}

	principal, err := cache.Load(ctx, c.cache, tokenCachePrefix+hashToken(token), func(ctx context.Context) (user.Principal, error) {
		var principal user.Principal
		err := c.breaker.Execute(func() error {
			var err error
			principal, err = c.introspect(ctx, token)
			return err
		}, isCircuitFailure)
		return principal, err
	})
	if err != nil {
		if crerr.Is(err, resilience.ErrCircuitOpen) {
			return user.Principal{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis circuit open: %v", err)
		}
		return user.Principal{}, err
	}
	return principal, nil
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	encoded, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "marshal introspect request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.introspectURL, bytes.NewReader(encoded))
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.adminKey != "" {
		req.Header.Set(adminKeyHeaderKey, c.adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, transient(crerr.Wrap(err, "request introspection to anubis"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return user.Principal{}, transient(crerr.Wrap(err, "read introspect response"))
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "introspection denied")
	case resp.StatusCode == http.StatusForbidden:
		// anubis rejected our admin key, not the caller's token.
		c.logger.ErrorContext(ctx, "anubis rejected admin key", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "anubis rejected admin key")
	case resp.StatusCode >= http.StatusInternalServerError:
		c.logger.WarnContext(ctx, "anubis introspection failed", "status_code", resp.StatusCode)
		return user.Principal{}, transient(crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis introspection status %d", resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		c.logger.WarnContext(ctx, "anubis introspection non-200", "status_code", resp.StatusCode)
		return user.Principal{}, crerr.Wrapf(usecase.ErrDependencyUnavailable, "anubis introspection status %d", resp.StatusCode)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(body, &decoded); err != nil {
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "unmarshal introspect response")
	}
	if !decoded.Active {
		return user.Principal{}, crerr.Wrap(usecase.ErrUnauthorized, "inactive token")
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, crerr.Wrap(usecase.ErrDependencyUnavailable, "invalid introspect response: user_id is empty")
	}

	principal := user.Principal{
		UserID: decoded.UserID,
		Email:  decoded.Email,
		Roles:  decoded.Roles,
	}
	principal.IsAdmin = principal.HasRole(c.adminRole)
	return principal, nil
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool     `json:"active"`
	UserID string   `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}
