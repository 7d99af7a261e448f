package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/ratelimit"
	"wedding-rsvp/internal/storage"
)

const (
	maxNameLength   = 100
	minGuests       = 1
	maxGuests       = 2
	duplicateWindow = 24 * time.Hour
)

// emailPattern accepts local@domain.tld shapes: no whitespace or extra @,
// and the domain must contain a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Notifier is the best-effort post-persist notification hook.
type Notifier interface {
	Notify(rsvp models.RSVP)
}

// RSVPHandler runs the intake pipeline: rate limit, spam filter,
// validation, duplicate guard, persistence, async notification.
type RSVPHandler struct {
	store    storage.RSVPStore
	limiter  *ratelimit.Limiter
	notifier Notifier
	devMode  bool
	log      zerolog.Logger
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(store storage.RSVPStore, limiter *ratelimit.Limiter, notifier Notifier, devMode bool, log zerolog.Logger) *RSVPHandler {
	return &RSVPHandler{
		store:    store,
		limiter:  limiter,
		notifier: notifier,
		devMode:  devMode,
		log:      log,
	}
}

// Submit handles POST /api/rsvp.
func (h *RSVPHandler) Submit(c *gin.Context) {
	ip := clientIP(c)

	if !h.limiter.Allow(ip) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Please try again later."})
		return
	}

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	// Honeypot: reject as spam but answer exactly like a success so bots
	// get no signal to adapt against.
	if strings.TrimSpace(sub.Honeypot) != "" {
		h.log.Warn().Str("ip", ip).Str("email", sub.Email).Msg("honeypot triggered, spam bot detected")
		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "RSVP submitted successfully",
		})
		return
	}

	if sub.FullName == "" || sub.Email == "" || sub.Attending == nil || sub.Guests == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if !emailPattern.MatchString(sub.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
		return
	}

	// Guest counts outside range are corrected, not rejected.
	guests := sub.Guests
	if guests < minGuests {
		guests = minGuests
	} else if guests > maxGuests {
		guests = maxGuests
	}

	if len(sub.FullName) > maxNameLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is too long"})
		return
	}

	since := time.Now().Add(-duplicateWindow)
	isDuplicate, err := h.store.HasRecentDuplicate(c.Request.Context(), sub.Email, *sub.Attending, since)
	if err != nil {
		// Fail open: a broken duplicate check must not block real guests.
		h.log.Warn().Err(err).Str("email", sub.Email).Msg("duplicate check failed, allowing submission")
		isDuplicate = false
	}
	if isDuplicate {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already submitted an RSVP with this status recently. Please contact us if you need to make changes."})
		return
	}

	rsvp, err := h.store.Append(c.Request.Context(), models.NewRecord{
		FullName:  sub.FullName,
		Email:     sub.Email,
		Attending: *sub.Attending,
		Guests:    guests,
		Notes:     sub.Notes,
		IPAddress: ip,
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.log.Error().Err(err).Msg("failed to save RSVP")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save RSVP. Please try again."})
		return
	}

	// Fire and forget; the response never waits on the notification.
	go h.notifier.Notify(rsvp)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "RSVP submitted successfully",
		"data":    rsvp,
	})
}

// List handles GET /api/rsvp. Only available in development.
func (h *RSVPHandler) List(c *gin.Context) {
	if !h.devMode {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	rsvps, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch RSVPs")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch RSVPs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rsvps})
}

// clientIP derives the rate-limit key from forwarded-IP headers, falling
// back to a literal "unknown" token when neither is set.
func clientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	if real := c.GetHeader("X-Real-IP"); real != "" {
		return real
	}
	return "unknown"
}
