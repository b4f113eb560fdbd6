// Package errs определяет общую таксономию ошибок платформы.
//
// Адаптеры внешних провайдеров переводят свои ошибки в типы этого пакета
// на своей границе; HTTP-обработчики транслируют их в статусы ответов
// через errors.Is/errors.As, не заглядывая внутрь провайдеров.
package errs

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается, когда запрошенная сущность не существует.
var ErrNotFound = errors.New("not found")

// ErrConflict возвращается при нарушении уникальности.
var ErrConflict = errors.New("already exists")

// GatewayError описывает ошибку платёжного провайдера. Сообщение провайдера
// сохраняется для диагностики и не должно теряться при логировании.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("payment gateway error: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("payment gateway error: %s", e.Message)
}

// MeetingProviderError описывает ошибку провайдера видеовстреч с сохранением
// статуса и сообщения ответа.
type MeetingProviderError struct {
	StatusCode int
	Message    string
}

func (e *MeetingProviderError) Error() string {
	return fmt.Sprintf("meeting provider error: status %d: %s", e.StatusCode, e.Message)
}

// AuthError описывает неудачный обмен учётных данных на токен доступа
// у внешнего провайдера. Не повторяется автоматически.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("provider authentication failed: %s", e.Message)
}

// OrphanedPaymentError означает, что оплата прошла успешно, но локальной
// записи на курс для этого payment intent нет. Деньги переведены без
// записи — событие высокой важности для оператора.
type OrphanedPaymentError struct {
	PaymentIntentID string
}

func (e *OrphanedPaymentError) Error() string {
	return fmt.Sprintf("payment %s succeeded but no enrollment record exists", e.PaymentIntentID)
}
