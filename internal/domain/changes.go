package domain

// ItemChanges — набор изменений позиций заказа при обновлении.
// Retired удаляются, Attached вставляются; хранилище применяет оба списка
// вместе с новыми суммами заказа в одной транзакции.
type ItemChanges struct {
	Retired  []OrderItem
	Attached []OrderItem
}

// Retire помечает позицию на удаление.
func (c *ItemChanges) Retire(item OrderItem) {
	c.Retired = append(c.Retired, item)
}

// Attach помечает позицию на вставку.
func (c *ItemChanges) Attach(item OrderItem) {
	c.Attached = append(c.Attached, item)
}

// Empty сообщает, что изменений позиций нет.
func (c ItemChanges) Empty() bool {
	return len(c.Retired) == 0 && len(c.Attached) == 0
}

// RetiredIDs возвращает идентификаторы удаляемых позиций.
func (c ItemChanges) RetiredIDs() []string {
	ids := make([]string, 0, len(c.Retired))
	for _, item := range c.Retired {
		ids = append(ids, item.ID)
	}
	return ids
}
