// Package testing provides test utilities and database setup for integration tests
package testing

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/sajtem/sajtem-backend/models"
	"github.com/sajtem/sajtem-backend/utils"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// CreateTestShortURL creates a short URL row with a random code
func (tf *TestFixtures) CreateTestShortURL(expiresAt *time.Time) (*models.ShortURL, error) {
	shortURL := &models.ShortURL{
		ShortCode:   fmt.Sprintf("tst%06d", rand.Intn(1000000)),
		OriginalURL: fmt.Sprintf("https://example.com/page/%d", rand.Intn(100000)),
		ExpiresAt:   expiresAt,
	}

	if err := tf.DB.DB.Create(shortURL).Error; err != nil {
		return nil, fmt.Errorf("failed to create test short URL: %w", err)
	}

	return shortURL, nil
}

// CreateExpiredShortURL creates a short URL whose expiry is already in the past
func (tf *TestFixtures) CreateExpiredShortURL() (*models.ShortURL, error) {
	expired := utils.UTCNow().Add(-1 * time.Hour)
	return tf.CreateTestShortURL(&expired)
}

// CreateTestClick records a click against the given short URL
func (tf *TestFixtures) CreateTestClick(shortURL *models.ShortURL) (*models.ShortURLClick, error) {
	click := &models.ShortURLClick{
		ShortURLID: shortURL.ID,
		ShortCode:  &shortURL.ShortCode,
		UserAgent:  utils.ToPtr("Test User Agent"),
		IP:         utils.ToPtr("127.0.0.1"),
	}

	if err := tf.DB.DB.Create(click).Error; err != nil {
		return nil, fmt.Errorf("failed to create test click: %w", err)
	}

	return click, nil
}

// CreateTestPlano creates an active subscription plan
func (tf *TestFixtures) CreateTestPlano(nome string, precoMensal float64) (*models.Plano, error) {
	plano := &models.Plano{
		Nome:        nome,
		Descricao:   utils.ToPtr("Plano de teste"),
		PrecoMensal: precoMensal,
		Ativo:       utils.ToPtr(true),
	}

	if err := tf.DB.DB.Create(plano).Error; err != nil {
		return nil, fmt.Errorf("failed to create test plano: %w", err)
	}

	return plano, nil
}

// CreateInactivePlano creates a plan that cannot be purchased
func (tf *TestFixtures) CreateInactivePlano(nome string) (*models.Plano, error) {
	plano := &models.Plano{
		Nome:        nome,
		PrecoMensal: 49.90,
		Ativo:       utils.ToPtr(false),
	}

	if err := tf.DB.DB.Create(plano).Error; err != nil {
		return nil, fmt.Errorf("failed to create inactive plano: %w", err)
	}

	return plano, nil
}

// CreateTestPagamento records a payment as reported by the gateway
func (tf *TestFixtures) CreateTestPagamento(planoID *uint, status string, amount float64) (*models.Pagamento, error) {
	pagamento := &models.Pagamento{
		GatewayPaymentID: fmt.Sprintf("%d", rand.Int63n(9000000000)+1000000000),
		PlanoID:          planoID,
		Status:           status,
		Amount:           amount,
		PaymentMethodID:  utils.ToPtr("pix"),
		PayerEmail:       utils.ToPtr(fmt.Sprintf("payer%d@example.com", rand.Intn(100000))),
	}

	if err := tf.DB.DB.Create(pagamento).Error; err != nil {
		return nil, fmt.Errorf("failed to create test pagamento: %w", err)
	}

	return pagamento, nil
}

// CreateTestSecurityLog creates a security event row
func (tf *TestFixtures) CreateTestSecurityLog(eventType string) (*models.SecurityLog, error) {
	metadata, _ := json.Marshal(map[string]any{"source": "test"})

	entry := &models.SecurityLog{
		EventType: eventType,
		IPAddress: utils.ToPtr("127.0.0.1"),
		UserAgent: utils.ToPtr("Test User Agent"),
		Metadata:  metadata,
	}

	if err := tf.DB.DB.Create(entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create test security log: %w", err)
	}

	return entry, nil
}

// CreateRateLimitEntries inserts n admitted-request rows for an identifier,
// spaced inside the current window
func (tf *TestFixtures) CreateRateLimitEntries(identifier string, n int) ([]*models.RateLimitLog, error) {
	var entries []*models.RateLimitLog
	for i := 0; i < n; i++ {
		entry := &models.RateLimitLog{
			Identifier: identifier,
			IPAddress:  utils.ToPtr("127.0.0.1"),
		}
		if err := tf.DB.DB.Create(entry).Error; err != nil {
			return nil, fmt.Errorf("failed to create rate limit entry %d: %w", i, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// CreateMultipleShortURLs creates n short URLs for pagination and export tests
func (tf *TestFixtures) CreateMultipleShortURLs(n int) ([]*models.ShortURL, error) {
	var shortURLs []*models.ShortURL
	for i := 0; i < n; i++ {
		shortURL, err := tf.CreateTestShortURL(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create short URL %d: %w", i, err)
		}
		shortURLs = append(shortURLs, shortURL)
	}

	return shortURLs, nil
}
