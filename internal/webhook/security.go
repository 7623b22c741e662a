package webhook

import (
	"fmt"
	"net"
	"strings"

	gh "github.com/google/go-github/v57/github"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

// SecurityConfig holds webhook security settings.
type SecurityConfig struct {
	Secret          string   // Shared secret for signature verification, empty disables it
	AllowedIPs      []string // IP or CIDR allow-list (optional)
	RateLimitPerMin int      // Sustained requests per minute per source IP, also the burst size. <= 0 disables it
}

// SecurityValidator validates webhook requests
type SecurityValidator struct {
	config      SecurityConfig
	rateLimiter *rateLimiter
}

func NewSecurityValidator(config SecurityConfig) *SecurityValidator {
	v := &SecurityValidator{config: config}
	if config.RateLimitPerMin > 0 {
		v.rateLimiter = newRateLimiter(config.RateLimitPerMin)
	}
	return v
}

// ValidateSignature verifies the X-Hub-Signature-256 header when a secret is configured.
func (v *SecurityValidator) ValidateSignature(payload []byte, signature string) error {
	if v.config.Secret == "" {
		return nil
	}
	if err := gh.ValidateSignature(signature, payload, []byte(v.config.Secret)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	return nil
}

// ValidateIPAddress checks the client IP against the allow-list. The caller resolves ip,
// trusting forwarding headers only from configured proxies.
func (v *SecurityValidator) ValidateIPAddress(ip string) error {
	if len(v.config.AllowedIPs) == 0 {
		return nil
	}

	parsed := net.ParseIP(ip)

	for _, allowedIP := range v.config.AllowedIPs {
		if ip == allowedIP {
			return nil
		}

		if strings.Contains(allowedIP, "/") {
			_, ipNet, err := net.ParseCIDR(allowedIP)
			if err != nil {
				continue
			}
			if parsed != nil && ipNet.Contains(parsed) {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %s", ErrIPNotAllowed, ip)
}

// CheckRateLimit enforces the per-source limit.
func (v *SecurityValidator) CheckRateLimit(source string) error {
	if v.rateLimiter == nil {
		return nil
	}
	return v.rateLimiter.Allow(source)
}

// rateLimiter keeps one token bucket per source, expiring idle ones. A single GitHub
// event fans out into several deliveries at once, so a full minute's worth may arrive together.
type rateLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMin int) *rateLimiter {
	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](defaultLimiterSize, nil, defaultLimiterTTL),
		rate:     rate.Limit(float64(requestsPerMin) / 60.0),
		burst:    requestsPerMin,
	}
}

func (rl *rateLimiter) Allow(key string) error {
	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}

	if !limiter.Allow() {
		return fmt.Errorf("%w for %s", ErrRateLimited, key)
	}
	return nil
}
