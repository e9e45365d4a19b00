package services

import (
	"bytes"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/yeremiapane/catering-app/models"
)

// MidtransConfig holds Midtrans configuration
type MidtransConfig struct {
	ServerKey    string
	ClientKey    string
	IsProduction bool
	MerchantName string
	// BaseURL menimpa URL API Midtrans, dipakai di test untuk mengarah
	// ke httptest server. Kosong = pilih otomatis dari IsProduction.
	BaseURL string
}

// MidtransService handles Midtrans Snap API interactions
type MidtransService struct {
	config     *MidtransConfig
	httpClient *http.Client
}

var (
	midtransService *MidtransService
	midtransOnce    sync.Once
)

// GetMidtransService returns singleton instance of MidtransService
func GetMidtransService() *MidtransService {
	midtransOnce.Do(func() {
		serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
		clientKey := os.Getenv("MIDTRANS_CLIENT_KEY")
		isProduction := os.Getenv("MIDTRANS_ENV") == "production"
		merchantName := os.Getenv("MIDTRANS_MERCHANT_NAME")

		if merchantName == "" {
			merchantName = "Katering Sekolah"
		}

		midtransService = NewMidtransService(&MidtransConfig{
			ServerKey:    serverKey,
			ClientKey:    clientKey,
			IsProduction: isProduction,
			MerchantName: merchantName,
			BaseURL:      os.Getenv("MIDTRANS_BASE_URL"),
		})
	})
	return midtransService
}

// NewMidtransService creates a new instance of MidtransService
func NewMidtransService(config *MidtransConfig) *MidtransService {
	return &MidtransService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ValidateConfig validates Midtrans configuration
func (ms *MidtransService) ValidateConfig() error {
	if ms.config.ServerKey == "" {
		return fmt.Errorf("MIDTRANS_SERVER_KEY is not set")
	}
	if ms.config.ClientKey == "" {
		return fmt.Errorf("MIDTRANS_CLIENT_KEY is not set")
	}
	return nil
}

// ClientKey dipakai endpoint config untuk widget di sisi client.
func (ms *MidtransService) ClientKey() string {
	return ms.config.ClientKey
}

func (ms *MidtransService) IsProduction() bool {
	return ms.config.IsProduction
}

// CustomerDetails adalah data pembeli yang dikirim ke Midtrans.
type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// ItemDetail adalah rincian item untuk transaksi Midtrans.
type ItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

// SnapResponse represents Midtrans Snap API response
type SnapResponse struct {
	Token         string   `json:"token"`
	RedirectURL   string   `json:"redirect_url"`
	ErrorMessages []string `json:"error_messages,omitempty"`
}

// CreateSnapTransaction membuat transaksi Snap dan mengembalikan token
// berumur pendek untuk payment widget. Token inilah yang dibutuhkan
// widget; persistensinya ke order bersifat advisory di caller.
func (ms *MidtransService) CreateSnapTransaction(orderID string, amount int64, customer CustomerDetails, items []ItemDetail) (*SnapResponse, error) {
	url := fmt.Sprintf("%s/snap/v1/transactions", ms.getBaseURL())

	payload := map[string]interface{}{
		"transaction_details": map[string]interface{}{
			"order_id":     orderID,
			"gross_amount": amount,
		},
		"customer_details": customer,
		"item_details":     items,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	// Basic auth: server key sebagai username, password kosong
	authString := "Basic " + base64.StdEncoding.EncodeToString([]byte(ms.config.ServerKey+":"))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authString)

	resp, err := ms.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("Midtrans API error: %s", string(body))
	}

	var snapResp SnapResponse
	if err := json.Unmarshal(body, &snapResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}
	if snapResp.Token == "" {
		return nil, fmt.Errorf("Midtrans response has no token: %s", string(body))
	}

	return &snapResp, nil
}

// ValidateSignature memverifikasi signature_key notifikasi Midtrans.
// Format sesuai dokumentasi: sha512(order_id + status_code + gross_amount + server_key).
func (ms *MidtransService) ValidateSignature(orderID, statusCode, grossAmount, signature string) bool {
	signatureString := fmt.Sprintf("%s%s%s%s", orderID, statusCode, grossAmount, ms.config.ServerKey)
	hash := sha512.New()
	hash.Write([]byte(signatureString))
	calculatedSignature := hex.EncodeToString(hash.Sum(nil))
	return calculatedSignature == signature
}

// MapTransactionStatus maps Midtrans transaction status to internal
// (payment_status, order_status). known=false untuk status yang tidak
// dikenal; caller tidak boleh mengubah state order untuk kasus itu.
func (ms *MidtransService) MapTransactionStatus(status string) (paymentStatus, orderStatus string, known bool) {
	switch status {
	case "capture", "settlement":
		return models.PaymentStatusPaid, models.OrderStatusConfirmed, true
	case "pending":
		return models.PaymentStatusPending, models.OrderStatusPending, true
	case "cancel", "expire", "failure":
		return models.PaymentStatusFailed, models.OrderStatusCancelled, true
	default:
		return "", "", false
	}
}

// getBaseURL returns the appropriate Midtrans API base URL
func (ms *MidtransService) getBaseURL() string {
	if ms.config.BaseURL != "" {
		return ms.config.BaseURL
	}
	if ms.config.IsProduction {
		return "https://app.midtrans.com"
	}
	return "https://app.sandbox.midtrans.com"
}
