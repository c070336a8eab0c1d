package relay

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/olivier-w/folio/internal/contact"
	"github.com/olivier-w/folio/internal/util"
)

// Reply texts are part of the relay contract.
const (
	replyMissingFields = "All fields are required"
	replySent          = "Message sent successfully!"
	replyMockSent      = "Mock message sent!"
	replyFailed        = "Failed to send message"
)

// outbox is the subset of Store the handlers use.
type outbox interface {
	Create(ctx context.Context, m contact.Message) (Submission, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, cause error) error
	List(ctx context.Context, st Status, limit int) ([]Submission, error)
}

// Server handles contact submissions.
type Server struct {
	mailer Mailer
	store  outbox
	mock   bool
	token  string
}

// NewServer creates a server. In development mode the mailer is replaced
// by one that only logs. store may be nil to skip the outbox.
func NewServer(c Config, mailer Mailer, store *Store) *Server {
	s := &Server{mailer: mailer, mock: c.Development(), token: c.AdminToken}
	if store != nil {
		s.store = store
	}
	if s.mock {
		s.mailer = logMailer{}
	}
	return s
}

// Handler builds the gin engine.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), cors())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/contact", s.handleContact)

	if s.token != "" && s.store != nil {
		admin := r.Group("/admin")
		admin.Use(adminAuth(s.token))
		admin.GET("/outbox", s.handleOutbox)
	}
	return r
}

func (s *Server) handleContact(c *gin.Context) {
	var m contact.Message
	if err := c.ShouldBindJSON(&m); err != nil || m.Validate() != nil {
		c.JSON(http.StatusBadRequest, contact.Reply{Error: replyMissingFields})
		return
	}
	m = m.Trimmed()
	ctx := c.Request.Context()

	var id string
	if s.store != nil {
		sub, err := s.store.Create(ctx, m)
		if err != nil {
			log.Printf("outbox: %v", err)
			c.JSON(http.StatusInternalServerError, contact.Reply{Error: replyFailed})
			return
		}
		id = sub.ID
	}

	start := time.Now()
	if err := s.mailer.Send(m); err != nil {
		log.Printf("delivery %s failed: %v", id, err)
		if s.store != nil {
			if err := s.store.MarkFailed(ctx, id, err); err != nil {
				log.Printf("outbox: %v", err)
			}
		}
		c.JSON(http.StatusInternalServerError, contact.Reply{Error: replyFailed})
		return
	}
	if s.store != nil {
		if err := s.store.MarkSent(ctx, id); err != nil {
			log.Printf("outbox: %v", err)
		}
	}

	reply := replySent
	if s.mock {
		reply = replyMockSent
	}
	log.Printf("delivery %s sent for %s in %s", id, m.Email, util.FormatDuration(time.Since(start)))
	c.JSON(http.StatusOK, contact.Reply{Success: reply})
}

// handleOutbox lists submissions, optionally filtered by ?status= and
// capped by ?limit=.
func (s *Server) handleOutbox(c *gin.Context) {
	st := Status(c.Query("status"))
	switch st {
	case "", StatusPending, StatusSent, StatusFailed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	subs, err := s.store.List(c.Request.Context(), st, limit)
	if err != nil {
		log.Printf("outbox: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load outbox"})
		return
	}
	if subs == nil {
		subs = []Submission{}
	}
	c.JSON(http.StatusOK, subs)
}

// adminAuth requires "Authorization: Bearer <token>".
func adminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// cors allows any origin, matching a relay meant to sit behind a static
// site on another host.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
