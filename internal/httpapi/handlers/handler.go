package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vitamed/backend/internal/ai"
	"github.com/vitamed/backend/internal/chat"
	"github.com/vitamed/backend/internal/config"
	"github.com/vitamed/backend/internal/documents"
	"github.com/vitamed/backend/internal/httpapi/middleware"
	"github.com/vitamed/backend/internal/store/rabbitmq"
	"gorm.io/gorm"
)

// VerificationStore is the phone verification registry. The Redis store
// implements it; tests substitute an in-memory fake.
type VerificationStore interface {
	PutCode(ctx context.Context, phone, code string) error
	ConfirmCode(ctx context.Context, phone, code string) error
	IsVerified(ctx context.Context, phone string) (bool, error)
	Delete(ctx context.Context, phone string) error
}

// SMSPublisher enqueues simulated SMS deliveries. May be nil when no broker
// is configured; send-code then relies on the demo_code in the response.
type SMSPublisher interface {
	PublishSMS(ctx context.Context, msg rabbitmq.SMSMessage) error
}

type Handler struct {
	DB       *gorm.DB
	Cfg      config.Config
	Verifier VerificationStore
	SMS      SMSPublisher
	Docs     *documents.Repo
	ChatSvc  *chat.Service
}

func NewHandler(db *gorm.DB, cfg config.Config, verifier VerificationStore, sms SMSPublisher) (*Handler, error) {
	provider, err := ai.NewProviderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	chatSvc := chat.NewService(chat.NewRepo(db), provider, 10, cfg.AITimeout)
	return &Handler{
		DB:       db,
		Cfg:      cfg,
		Verifier: verifier,
		SMS:      sms,
		Docs:     documents.NewRepo(db),
		ChatSvc:  chatSvc,
	}, nil
}

func fail(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

func userIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "VitaMed API çalışıyor", "version": "1.0.0"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "VitaMed API"})
}
