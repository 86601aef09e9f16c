package handlers

import (
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/vitamed/backend/internal/auth"
	"github.com/vitamed/backend/internal/common"
	"github.com/vitamed/backend/internal/models"
	"github.com/vitamed/backend/internal/store/rabbitmq"
	"github.com/vitamed/backend/internal/store/redisstore"
	"gorm.io/gorm"
)

type sendCodeReq struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyCodeReq struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type registerReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type loginReq struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResp struct {
	AccessToken string          `json:"access_token"`
	User        models.UserView `json:"user"`
}

// generate a 6 digit verification code
func randomCode6() (string, error) {
	const digits = "0123456789"
	out := make([]byte, 6)
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		if err != nil {
			return "", err
		}
		out[i] = digits[n.Int64()]
	}
	return string(out), nil
}

// SendCode issues a fresh verification code for the phone. Delivery is
// simulated: the code goes to the SMS queue when a broker is configured and
// is additionally echoed in the response as demo_code. A real deployment
// must deliver out-of-band only.
func (h *Handler) SendCode(c *gin.Context) {
	var req sendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	code, err := randomCode6()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	if err := h.Verifier.PutCode(c.Request.Context(), req.Phone, code); err != nil {
		log.Printf("[SendCode] put code failed phone=%s err=%v", req.Phone, err)
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	if h.SMS != nil {
		jobID, err := common.NewULID()
		if err == nil {
			err = h.SMS.PublishSMS(c.Request.Context(), rabbitmq.SMSMessage{
				JobID: jobID,
				Phone: req.Phone,
				Code:  code,
			})
		}
		if err != nil {
			// best effort: simulated delivery must not fail the request
			log.Printf("[SendCode] sms publish failed phone=%s err=%v", req.Phone, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Doğrulama kodu gönderildi",
		"demo_code": code,
	})
}

func (h *Handler) VerifyCode(c *gin.Context) {
	var req verifyCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	err := h.Verifier.ConfirmCode(c.Request.Context(), req.Phone, req.Code)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Telefon doğrulandı", "verified": true})
	case errors.Is(err, redisstore.ErrCodeNotFound):
		fail(c, http.StatusBadRequest, "Doğrulama kodu bulunamadı")
	case errors.Is(err, redisstore.ErrCodeExpired):
		fail(c, http.StatusBadRequest, "Doğrulama kodu süresi doldu")
	case errors.Is(err, redisstore.ErrCodeMismatch):
		fail(c, http.StatusBadRequest, "Geçersiz doğrulama kodu")
	default:
		log.Printf("[VerifyCode] confirm failed phone=%s err=%v", req.Phone, err)
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	verified, err := h.Verifier.IsVerified(c.Request.Context(), req.Phone)
	if err != nil {
		log.Printf("[Register] verification lookup failed phone=%s err=%v", req.Phone, err)
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}
	if !verified {
		fail(c, http.StatusBadRequest, "Lütfen önce telefonunuzu doğrulayın")
		return
	}

	var cnt int64
	if err := h.DB.Model(&models.User{}).Where("phone = ?", req.Phone).Count(&cnt).Error; err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}
	if cnt > 0 {
		fail(c, http.StatusBadRequest, "Bu telefon numarası zaten kayıtlı")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Phone:        req.Phone,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// unique index on phone: a concurrent registration lost the race
		fail(c, http.StatusBadRequest, "Bu telefon numarası zaten kayıtlı")
		return
	}

	// consume the verification entry; a leftover entry after a crash here
	// is harmless, the phone is already registered
	if err := h.Verifier.Delete(c.Request.Context(), req.Phone); err != nil {
		log.Printf("[Register] verification cleanup failed phone=%s err=%v", req.Phone, err)
	}

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, auth.TokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, tokenResp{AccessToken: token, User: user.View()})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Geçersiz istek")
		return
	}

	// identical response for unknown phone and wrong password
	var user models.User
	if err := h.DB.Where("phone = ?", req.Phone).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusUnauthorized, "Telefon numarası veya şifre hatalı")
			return
		}
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}
	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		fail(c, http.StatusUnauthorized, "Telefon numarası veya şifre hatalı")
		return
	}

	token, err := auth.SignJWT(user.ID, h.Cfg.JWTSecret, auth.TokenTTL)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, tokenResp{AccessToken: token, User: user.View()})
}

func (h *Handler) Me(c *gin.Context) {
	uid, ok := userIDFromContext(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Geçersiz veya süresi dolmuş token")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "Kullanıcı bulunamadı")
			return
		}
		fail(c, http.StatusInternalServerError, "Sunucu hatası")
		return
	}

	c.JSON(http.StatusOK, user.View())
}
