package domain

import "errors"

var (
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item quantity must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка отсутствующей ссылки на продукт в позиции.
	ErrProductIDRequired = errors.New("product_id is required")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order total does not match items sum")
	// Процент скидки вне допустимых уровней.
	ErrInvalidDiscount = errors.New("discount percentage is not a supported tier")
	// Итоговая сумма не соответствует сумме со скидкой.
	ErrFinalAmountMismatch = errors.New("final amount does not match discounted total")
	// Пустое название продукта.
	ErrProductNameRequired = errors.New("product name is required")
	// Неизвестный тип продукта.
	ErrProductTypeInvalid = errors.New("product type must be Sandwich or Extra")
	// Цена с точностью больше двух знаков.
	ErrPricePrecision = errors.New("price must have at most two decimal places")
	// ErrProductNotFound возвращается, если продукт не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists — попытка создать заказ с существующим ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOrderItemNotFound — удаляемая позиция не принадлежит заказу.
	ErrOrderItemNotFound = errors.New("order item not found")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// Пустой ключ идемпотентности.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// Пустой хеш запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists — ключ уже зарегистрирован для того же запроса.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyHashMismatch — ключ переиспользован для другого тела запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with different request")
	// ErrIdempotencyKeyNotFound — ключ идемпотентности не найден.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)

// IsNotFound сообщает, что ошибка означает отсутствие продукта или заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrOrderNotFound)
}
