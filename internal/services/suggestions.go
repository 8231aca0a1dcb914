package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"smartlist/internal/models"
	"smartlist/internal/store"
)

const (
	historyScanLimit    = 20
	suggestionCap       = 8
	historyOnlyMinimum  = 5
	weeklyHistoryLimit  = 10
	weeklySuggestionCap = 5
)

// Categories is the fixed set the categorizer may answer with.
var Categories = []string{
	"Hortifruti", "Laticínios", "Padaria", "Carnes",
	"Limpeza", "Higiene", "Bebidas", "Outros",
}

// SuggestionService is the gateway to the completion model plus the
// per-user frequency tracker that ranks autocomplete. Every model call is
// single-shot and non-streaming; calls with a safe degraded result swallow
// upstream failures, smart-list generation surfaces them.
type SuggestionService struct {
	stats     store.SuggestionStore
	completer Completer
}

func NewSuggestionService(stats store.SuggestionStore, completer Completer) *SuggestionService {
	return &SuggestionService{stats: stats, completer: completer}
}

// RecordUsage upserts the (user, item name) counter. Names match exactly,
// case included; suggestion search stays case-insensitive.
func (s *SuggestionService) RecordUsage(ctx context.Context, userID int, itemName, category string) error {
	if category == "" {
		category = defaultCategory
	}
	return s.stats.IncrementStat(ctx, userID, itemName, category, time.Now())
}

const smartListPrompt = `Você é um assistente especializado em listas de compras brasileiras.
%sCrie uma lista de compras baseada no pedido do usuário.
Responda APENAS com um JSON válido no formato:
{
  "title": "Título da lista",
  "description": "Descrição opcional",
  "items": [
    {
      "name": "Nome do item",
      "quantity": "Quantidade (opcional)",
      "category": "Categoria (Hortifruti, Laticínios, Padaria, Carnes, Limpeza, Higiene, Bebidas, Outros)"
    }
  ]
}

Use nomes de produtos brasileiros e quantidades realistas.`

// GenerateSmartList asks the model for a complete list. There is no safe
// fallback here: parse or validation failures surface to the caller.
func (s *SuggestionService) GenerateSmartList(ctx context.Context, prompt string, dietaryPreferences []string) (*models.SmartList, error) {
	dietaryInfo := ""
	if len(dietaryPreferences) > 0 {
		dietaryInfo = fmt.Sprintf("Preferências alimentares: %s. ", strings.Join(dietaryPreferences, ", "))
	}
	system := fmt.Sprintf(smartListPrompt, dietaryInfo)

	content, err := s.completer.Complete(ctx, system, prompt, 0.7)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	var list models.SmartList
	if err := json.Unmarshal([]byte(content), &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if list.Title == "" || list.Items == nil {
		return nil, fmt.Errorf("%w: missing title or items", ErrInvalidResponse)
	}

	return &list, nil
}

const itemSuggestionsPrompt = `Você é um assistente de lista de compras brasileiro.
Sugira itens de supermercado que começam com ou são relacionados ao texto fornecido.
Responda APENAS com um array JSON de strings com nomes de produtos brasileiros.
Máximo 8 sugestões. Exemplo: ["Leite integral", "Leite desnatado", "Leite condensado"]`

// ItemSuggestions ranks the user's history first and only consults the
// model when history alone is thin. Model failures degrade to the history
// results already gathered.
func (s *SuggestionService) ItemSuggestions(ctx context.Context, userID int, query string) ([]models.ItemSuggestion, error) {
	stats, err := s.stats.TopStats(ctx, userID, historyScanLimit)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(query)
	var history []models.ItemSuggestion
	for _, st := range stats {
		if strings.Contains(strings.ToLower(st.ItemName), lowered) {
			history = append(history, models.ItemSuggestion{
				Name:      st.ItemName,
				Category:  st.Category,
				Frequency: st.Frequency,
			})
		}
	}

	if len(history) >= historyOnlyMinimum {
		if len(history) > suggestionCap {
			history = history[:suggestionCap]
		}
		return history, nil
	}

	content, err := s.completer.Complete(ctx, itemSuggestionsPrompt, query, 0.3)
	if err != nil {
		logrus.WithError(err).Warn("Item suggestion completion failed, serving history only")
		return history, nil
	}

	var names []string
	if err := json.Unmarshal([]byte(content), &names); err != nil {
		logrus.WithError(err).Warn("Unparseable item suggestion response, serving history only")
		return history, nil
	}

	combined := history
	for _, name := range names {
		if len(combined) >= suggestionCap {
			break
		}
		duplicate := false
		for _, existing := range combined {
			if strings.EqualFold(existing.Name, name) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			combined = append(combined, models.ItemSuggestion{
				Name:      name,
				Category:  defaultCategory,
				Frequency: 0,
			})
		}
	}

	if len(combined) > suggestionCap {
		combined = combined[:suggestionCap]
	}
	return combined, nil
}

const categorizePrompt = `Categorize o item de supermercado brasileiro fornecido em uma das seguintes categorias:
- Hortifruti
- Laticínios
- Padaria
- Carnes
- Limpeza
- Higiene
- Bebidas
- Outros

Responda APENAS com o nome da categoria.`

// Categorize never fails: anything other than a valid category, including a
// dead upstream, yields the catch-all.
func (s *SuggestionService) Categorize(ctx context.Context, itemName string) string {
	content, err := s.completer.Complete(ctx, categorizePrompt, itemName, 0.1)
	if err != nil {
		logrus.WithError(err).Warn("Categorize completion failed, using fallback category")
		return defaultCategory
	}

	category := strings.TrimSpace(content)
	for _, valid := range Categories {
		if category == valid {
			return category
		}
	}
	return defaultCategory
}

const weeklyPrompt = `Baseado no histórico de compras do usuário, sugira itens que ele pode ter esquecido de comprar esta semana.
Considere itens básicos e essenciais para uma casa brasileira.
Responda com um JSON no formato:
{
  "suggestions": [
    {
      "name": "Nome do item",
      "reason": "Motivo da sugestão",
      "category": "Categoria"
    }
  ]
}
Máximo 5 sugestões.`

// WeeklySuggestions proposes commonly forgotten items given the user's top
// history. Any failure yields an empty result.
func (s *SuggestionService) WeeklySuggestions(ctx context.Context, userID int) []models.WeeklySuggestion {
	stats, err := s.stats.TopStats(ctx, userID, weeklyHistoryLimit)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load history for weekly suggestions")
		return nil
	}

	names := make([]string, 0, len(stats))
	for _, st := range stats {
		names = append(names, st.ItemName)
	}

	content, err := s.completer.Complete(ctx, weeklyPrompt,
		"Histórico de itens frequentes: "+strings.Join(names, ", "), 0.5)
	if err != nil {
		logrus.WithError(err).Warn("Weekly suggestion completion failed")
		return nil
	}

	var parsed struct {
		Suggestions []models.WeeklySuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logrus.WithError(err).Warn("Unparseable weekly suggestion response")
		return nil
	}

	if len(parsed.Suggestions) > weeklySuggestionCap {
		parsed.Suggestions = parsed.Suggestions[:weeklySuggestionCap]
	}
	return parsed.Suggestions
}
