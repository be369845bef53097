package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// Payload holds the claimed fields of an inbound notification that may take
// part in a signature.
type Payload struct {
	MerchantCode string
	MerchantRef  string
	Reference    string
	Amount       int64
	Status       string
	Body         []byte
}

// Strategy builds the message one historical signing scheme feeds to the
// keyed hash. A nil message means the scheme does not apply to the payload.
// ByReference marks schemes that identify the payment by the gateway's own
// reference instead of the merchant ref.
type Strategy struct {
	Name        string
	ByReference bool
	Message     func(p Payload) []byte
}

func concat(parts ...string) []byte {
	return []byte(strings.Join(parts, ""))
}

func amountString(p Payload) string {
	return strconv.FormatInt(p.Amount, 10)
}

// byMerchantRef skips the scheme when the payload names no merchant ref.
func byMerchantRef(build func(p Payload) []byte) func(p Payload) []byte {
	return func(p Payload) []byte {
		if p.MerchantRef == "" {
			return nil
		}
		return build(p)
	}
}

// byReference skips the scheme when the payload names no gateway reference.
func byReference(build func(p Payload) []byte) func(p Payload) []byte {
	return func(p Payload) []byte {
		if p.Reference == "" {
			return nil
		}
		return build(p)
	}
}

// StrategyRawBody is the only scheme whose message covers every field of the
// notification.
const StrategyRawBody = "raw_body"

// Strategies is tried in order by Verify.
var Strategies = []Strategy{
	{Name: "merchant_code+merchant_ref+amount", Message: byMerchantRef(func(p Payload) []byte {
		return concat(p.MerchantCode, p.MerchantRef, amountString(p))
	})},
	{Name: "merchant_code+merchant_ref+amount+status", Message: byMerchantRef(func(p Payload) []byte {
		return concat(p.MerchantCode, p.MerchantRef, amountString(p), p.Status)
	})},
	{Name: "merchant_ref+amount", Message: byMerchantRef(func(p Payload) []byte {
		return concat(p.MerchantRef, amountString(p))
	})},
	{Name: "merchant_ref+amount+status", Message: byMerchantRef(func(p Payload) []byte {
		return concat(p.MerchantRef, amountString(p), p.Status)
	})},
	{Name: "merchant_code+reference+amount", ByReference: true, Message: byReference(func(p Payload) []byte {
		return concat(p.MerchantCode, p.Reference, amountString(p))
	})},
	{Name: "merchant_code+reference+amount+status", ByReference: true, Message: byReference(func(p Payload) []byte {
		return concat(p.MerchantCode, p.Reference, amountString(p), p.Status)
	})},
	{Name: "reference+amount+status", ByReference: true, Message: byReference(func(p Payload) []byte {
		return concat(p.Reference, amountString(p), p.Status)
	})},
	{Name: StrategyRawBody, Message: func(p Payload) []byte {
		if len(p.Body) == 0 {
			return nil
		}
		return p.Body
	}},
}

// Sign returns the lowercase hex HMAC-SHA256 of msg under key.
func Sign(key string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}

// CheckoutSignature signs an outbound create-transaction request.
func CheckoutSignature(key, merchantCode, merchantRef string, amount int64) string {
	return Sign(key, concat(merchantCode, merchantRef, strconv.FormatInt(amount, 10)))
}

// Match returns the first strategy whose signature equals supplied.
func Match(key string, p Payload, supplied string) (Strategy, bool) {
	supplied = strings.ToLower(strings.TrimSpace(supplied))
	if key == "" || supplied == "" {
		return Strategy{}, false
	}

	for _, s := range Strategies {
		msg := s.Message(p)
		if msg == nil {
			continue
		}
		if hmac.Equal([]byte(Sign(key, msg)), []byte(supplied)) {
			return s, true
		}
	}
	return Strategy{}, false
}

// Verify reports whether supplied was produced by any known strategy. It
// fails closed.
func Verify(key string, p Payload, supplied string) bool {
	_, ok := Match(key, p, supplied)
	return ok
}
