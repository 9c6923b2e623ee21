package repository

// Store agrupa los repositorios atados a una misma transacción.
// Lo entrega la unidad de trabajo; los repositorios nunca hacen commit.
type Store interface {
	Users() UserRepository
	Products() ProductRepository
	Categories() CategoryRepository
	Orders() OrderRepository
	Payments() PaymentRepository
	Coupons() CouponRepository
}
