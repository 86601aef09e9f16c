package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vitamed/backend/internal/ai"
)

// systemPrompt is the fixed Turkish medical-assistant persona. It is sent
// as the first provider message on every call.
const systemPrompt = `Sen VitaMed uygulamasının sağlık asistanısın. Türkçe konuşuyorsun.

Görevin:
- Kullanıcılara genel sağlık bilgileri vermek
- Sağlıklı yaşam önerileri sunmak
- Tıbbi terimleri açıklamak
- Laboratuvar sonuçlarını genel olarak yorumlamak

ÖNEMLİ KURALLAR:
1. ASLA tanı koyma veya tedavi önerme
2. Her zaman "Bu bilgiler genel bilgilendirme amaçlıdır, kesin tanı ve tedavi için mutlaka bir doktora başvurunuz" uyarısı yap
3. Acil durumları tanımla ve hemen tıbbi yardım almalarını söyle
4. Nazik, anlayışlı ve profesyonel ol
5. Yanıtlarını kısa ve öz tut`

type Service struct {
	repo          *Repo
	provider      ai.Provider
	historyWindow int
	timeout       time.Duration
}

func NewService(repo *Repo, provider ai.Provider, historyWindow int, timeout time.Duration) *Service {
	if historyWindow <= 0 || historyWindow > 50 {
		historyWindow = 10
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{repo: repo, provider: provider, historyWindow: historyWindow, timeout: timeout}
}

// Converse forwards the user message to the provider under the fixed system
// prompt, then persists the pair. Recent exchanges are replayed oldest-first
// so the provider sees per-user conversation continuity. Nothing is stored
// when the provider fails.
func (s *Service) Converse(ctx context.Context, userID, message string) (*Exchange, error) {
	recentDesc, err := s.repo.ListRecentDesc(ctx, userID, s.historyWindow)
	if err != nil {
		return nil, err
	}

	msgs := make([]ai.Message, 0, 2*len(recentDesc)+2)
	msgs = append(msgs, ai.Message{Role: "system", Content: systemPrompt})
	for i := len(recentDesc) - 1; i >= 0; i-- {
		e := recentDesc[i]
		msgs = append(msgs,
			ai.Message{Role: "user", Content: e.UserMessage},
			ai.Message{Role: "assistant", Content: e.AssistantMessage},
		)
	}
	msgs = append(msgs, ai.Message{Role: "user", Content: message})

	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.provider.Chat(cctx, msgs)
	if err != nil {
		return nil, err
	}

	e := &Exchange{
		ID:               uuid.NewString(),
		UserID:           userID,
		UserMessage:      message,
		AssistantMessage: reply,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) History(ctx context.Context, userID string) ([]Exchange, error) {
	return s.repo.ListByUser(ctx, userID)
}
