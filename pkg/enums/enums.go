package enums

// UserCategory discriminates the kinds of rows sharing m_user.
type UserCategory int

const (
	CategoryIndividual UserCategory = 1
	CategoryCorporate  UserCategory = 2
	CategoryAdmin      UserCategory = 3
	CategoryAgency     UserCategory = 4
)

// Row status values shared by the master tables. Deletion is always the
// soft kind: rows flip to StatusDeleted and stay in place.
const (
	StatusActive   = 1
	StatusInactive = 2
	StatusDeleted  = 3
)

// Payment status values on t_charge_payment.
const (
	PaymentUnpaid = 0
	PaymentPaid   = 1
)
