package domain

import "context"

// ProductRepository описывает чтение меню из хранилища.
type ProductRepository interface {
	// Get возвращает продукт по идентификатору или ErrProductNotFound.
	Get(ctx context.Context, id string) (Product, error)
	// List возвращает все продукты.
	List(ctx context.Context) ([]Product, error)
	// ListByType возвращает продукты заданного типа.
	ListByType(ctx context.Context, t ProductType) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет заказ вместе с позициями атомарно. ErrOrderAlreadyExists для повторного ID.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает все заказы, новые первыми.
	List(ctx context.Context) ([]Order, error)
	// Update сохраняет суммы заказа и применяет изменения позиций в одной транзакции.
	Update(ctx context.Context, order Order, changes ItemChanges) error
	// Delete удаляет заказ с позициями или возвращает ErrOrderNotFound.
	Delete(ctx context.Context, id string) error
}
