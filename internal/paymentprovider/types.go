package paymentprovider

// PaymentIntent представляет платёжное намерение у провайдера.
// ClientSecret передаётся клиенту для завершения оплаты напрямую
// с провайдером: данные карты через нашу систему не проходят.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"` // например requires_payment_method, processing, succeeded
	Amount       int64  `json:"amount"` // В минимальных единицах валюты
	Currency     string `json:"currency"`
}

// Customer представляет клиента у провайдера.
type Customer struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Refund представляет возврат платежа.
type Refund struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Status   string `json:"status"`
	ChargeID string `json:"charge"`
	Created  int64  `json:"created"`
}

// Charge представляет списание. Используется админ-панелью для
// статистики и списка платежей.
type Charge struct {
	ID             string            `json:"id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	Status         string            `json:"status"`
	Refunded       bool              `json:"refunded"`
	Created        int64             `json:"created"`
	Metadata       map[string]string `json:"metadata"`
	BillingDetails struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	} `json:"billing_details"`
}

// chargeList ответ провайдера на запрос списка списаний.
type chargeList struct {
	Data []Charge `json:"data"`
}

// providerError тело ошибки провайдера.
type providerError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
