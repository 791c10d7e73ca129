package onboardsdk

import "time"

// ============================================================================
// Messaging webhook
// ============================================================================

// Reply is the body returned for every inbound message.
type Reply struct {
	Status         string   `json:"status"          example:"pending"`
	Reply          string   `json:"reply"`
	Missing        []string `json:"missing,omitempty"`
	ProfessionalID *int64   `json:"professional_id,omitempty"`
}

// Reply statuses.
const (
	StatusOK      = "ok"
	StatusPending = "pending"
	StatusError   = "error"
	StatusWarning = "warning"
)

// WebhookPayload is the subset of the WhatsApp Cloud API notification the
// webhook reads.
type WebhookPayload struct {
	Object string         `json:"object,omitempty"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id,omitempty"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field,omitempty"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product,omitempty"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	From string       `json:"from"`
	ID   string       `json:"id,omitempty"`
	Type string       `json:"type,omitempty"`
	Text *WebhookText `json:"text,omitempty"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// NewTextPayload builds a single text message notification from phone.
func NewTextPayload(phone, text string) WebhookPayload {
	return WebhookPayload{
		Object: "whatsapp_business_account",
		Entry: []WebhookEntry{{
			Changes: []WebhookChange{{
				Field: "messages",
				Value: WebhookValue{
					MessagingProduct: "whatsapp",
					Messages: []WebhookMessage{{
						From: phone,
						Type: "text",
						Text: &WebhookText{Body: text},
					}},
				},
			}},
		}},
	}
}

// ============================================================================
// Invitations
// ============================================================================

type CreateInvitationRequest struct {
	Phone string `json:"phone" example:"5491155550000"`
}

type Invitation struct {
	ID             int64             `json:"id"`
	Phone          string            `json:"phone"`
	Consumed       bool              `json:"consumed"`
	Partial        map[string]string `json:"partial"`
	Missing        []string          `json:"missing"`
	Version        int64             `json:"version"`
	ProfessionalID *int64            `json:"professional_id,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ConsumedAt     *time.Time        `json:"consumed_at,omitempty"`
}

type ListInvitationsResponse struct {
	Invitations []Invitation `json:"invitations"`
}

// ============================================================================
// Relationships
// ============================================================================

type RefreshRequest struct {
	ProfessionalID int64 `json:"professional_id"`
	ClientID       int64 `json:"client_id"`
	RecentLimit    int   `json:"recent_limit,omitempty"`
}

type BookingRef struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	ServiceID int64  `json:"service_id"`
	Status    string `json:"status"`
}

type Snapshot struct {
	NextBooking    *BookingRef  `json:"next_booking"`
	RecentBookings []BookingRef `json:"recent_bookings"`
	TotalPaid      float64      `json:"total_paid"`
	EstimatedCost  float64      `json:"estimated_cost"`
	PendingBalance float64      `json:"pending_balance"`
}

type Relationship struct {
	ID             int64     `json:"id"`
	ProfessionalID int64     `json:"professional_id"`
	ClientID       int64     `json:"client_id"`
	Snapshot       Snapshot  `json:"snapshot"`
	Summary        string    `json:"summary"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RelationshipMatch struct {
	Relationship Relationship `json:"relationship"`
	Score        float64      `json:"score"`
}

type SearchResponse struct {
	Query   string              `json:"query"`
	Matches []RelationshipMatch `json:"matches"`
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
type HealthResponse struct {
	Status  string        `json:"status"  example:"ok"`
	Uptime  string        `json:"uptime"  example:"1h2m3s"`
	Version string        `json:"version" example:"v0.1.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Embedder string `json:"embedder"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}
