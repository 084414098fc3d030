package util

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var orderNumberSeq atomic.Uint64

// NewOrderNumber 產生人類可讀訂單編號
// 時間戳+序號，同一毫秒內連續建單也不會重複
func NewOrderNumber(t time.Time) string {
	seq := orderNumberSeq.Add(1)
	return fmt.Sprintf("CB%d%04d", t.UnixMilli(), seq%10000)
}

// 取餐憑證內容
// 出示給櫃檯核對訂單身份用，內容不可被前端拼湊
type pickupCredential struct {
	CredentialID string    `json:"credential_id"`
	OrderID      string    `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	UserID       string    `json:"user_id"`
	IssuedAt     time.Time `json:"issued_at"`
}

// NewPickupCredential 產生QR payload
func NewPickupCredential(orderID, orderNumber, userID string, issuedAt time.Time) (string, error) {
	credential := pickupCredential{
		CredentialID: uuid.New().String(),
		OrderID:      orderID,
		OrderNumber:  orderNumber,
		UserID:       userID,
		IssuedAt:     issuedAt,
	}
	payload, err := json.Marshal(credential)
	if err != nil {
		return "", fmt.Errorf("marshal pickup credential: %w", err)
	}
	return base64.URLEncoding.EncodeToString(payload), nil
}

// DecodePickupCredential 解回憑證內容，供櫃檯核對
func DecodePickupCredential(encoded string) (orderID string, orderNumber string, userID string, err error) {
	payload, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", "", fmt.Errorf("decode pickup credential: %w", err)
	}
	var credential pickupCredential
	if err = json.Unmarshal(payload, &credential); err != nil {
		return "", "", "", fmt.Errorf("unmarshal pickup credential: %w", err)
	}
	return credential.OrderID, credential.OrderNumber, credential.UserID, nil
}
