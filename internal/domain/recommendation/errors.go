package recommendation

import "errors"

// Domain-specific errors для recommendation domain.
// Все три терминальны для запроса: ядро не делает retry и не деградирует.
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrNoPurchaseHistory = errors.New("customer has no purchase history")
	ErrEmptyDataset      = errors.New("purchase dataset is empty")
)
